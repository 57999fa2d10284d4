package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps every browser namespace in process memory.
type MemoryBackend struct {
	mu   sync.Mutex
	data map[string]map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]map[string]string)}
}

func (m *MemoryBackend) Open(browserID string) Local {
	return &memoryLocal{m: m, id: browserID}
}

func (m *MemoryBackend) Close() error { return nil }

type memoryLocal struct {
	m  *MemoryBackend
	id string
}

func (l *memoryLocal) Get(_ context.Context, key string) (string, bool, error) {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	v, ok := l.m.data[l.id][key]
	return v, ok, nil
}

func (l *memoryLocal) Set(_ context.Context, key, value string) error {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	ns, ok := l.m.data[l.id]
	if !ok {
		ns = make(map[string]string)
		l.m.data[l.id] = ns
	}
	ns[key] = value
	return nil
}

func (l *memoryLocal) Remove(_ context.Context, keys ...string) error {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	ns, ok := l.m.data[l.id]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(ns, k)
	}
	if len(ns) == 0 {
		delete(l.m.data, l.id)
	}
	return nil
}

// NewMemory returns a standalone Local, handy in tests.
func NewMemory() Local {
	return NewMemoryBackend().Open("local")
}
