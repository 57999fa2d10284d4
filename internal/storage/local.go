// Package storage holds the per-browser key/value store that backs the
// storefront and admin sessions. Every browser gets its own namespace,
// selected by an opaque id carried in a cookie.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Fixed keys shared by the session stores, guards and the API client.
const (
	KeyUserToken  = "userToken"
	KeyUser       = "user"
	KeyAdminToken = "adminToken"
	KeyAdminUser  = "adminUser"
	KeyFlash      = "flash"
)

// SessionKeys are cleared together when the backend rejects a token.
var SessionKeys = []string{KeyAdminToken, KeyAdminUser, KeyUserToken, KeyUser}

var ErrMalformed = errors.New("storage: malformed value")

// Local is one browser's view of the store.
type Local interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}

// Backend hands out Local views keyed by browser id.
type Backend interface {
	Open(browserID string) Local
	Close() error
}

// GetJSON decodes the value under key into v. A missing key reports
// false with no error; a value that does not decode wraps ErrMalformed.
func GetJSON(ctx context.Context, l Local, key string, v any) (bool, error) {
	raw, ok, err := l.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, l Local, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return l.Set(ctx, key, string(b))
}

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func PushFlash(ctx context.Context, l Local, kind, message string) error {
	return SetJSON(ctx, l, KeyFlash, Flash{Kind: kind, Message: message})
}

// PopFlash returns and removes the pending flash, if any.
func PopFlash(ctx context.Context, l Local) *Flash {
	var f Flash
	ok, err := GetJSON(ctx, l, KeyFlash, &f)
	if !ok {
		return nil
	}
	_ = l.Remove(ctx, KeyFlash)
	if err != nil {
		return nil
	}
	return &f
}
