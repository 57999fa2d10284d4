// Package session holds the per-browser auth and cart state built on top of
// storage.Local. Values are created per request and injected explicitly;
// there is no package level state.
package session

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/auth"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

var (
	ErrUnauthenticated = errors.New("please log in first")
	ErrMissingRole     = errors.New("account lacks the required role")
)

// Slot names the pair of storage keys a session lives under.
type Slot struct {
	TokenKey     string
	UserKey      string
	RequiredRole string
}

var (
	StorefrontSlot = Slot{TokenKey: storage.KeyUserToken, UserKey: storage.KeyUser}
	AdminSlot      = Slot{TokenKey: storage.KeyAdminToken, UserKey: storage.KeyAdminUser, RequiredRole: model.RoleAdmin}
)

// LoginFunc performs the backend login call for a slot.
type LoginFunc func(ctx context.Context, local storage.Local, creds model.Credentials) (*model.Session, error)

type Auth struct {
	local  storage.Local
	login  LoginFunc
	slot   Slot
	logger *log.Logger

	checkExpiry bool
	now         func() time.Time

	user          *model.User
	token         string
	authenticated bool
}

type Option func(*Auth)

// WithTokenExpiry makes Init treat a JWT whose exp has passed as absent.
func WithTokenExpiry(now func() time.Time) Option {
	return func(a *Auth) {
		a.checkExpiry = true
		if now != nil {
			a.now = now
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(a *Auth) { a.logger = l }
}

func NewAuth(local storage.Local, login LoginFunc, slot Slot, opts ...Option) *Auth {
	a := &Auth{local: local, login: login, slot: slot, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init hydrates the session from storage. It never fails: unreadable or
// malformed data leaves the session logged out.
func (a *Auth) Init(ctx context.Context) {
	a.reset()

	token, ok, err := a.local.Get(ctx, a.slot.TokenKey)
	if err != nil {
		a.logf("read %s: %v", a.slot.TokenKey, err)
		return
	}
	if !ok || token == "" {
		return
	}

	var u model.User
	found, err := storage.GetJSON(ctx, a.local, a.slot.UserKey, &u)
	if err != nil {
		if errors.Is(err, storage.ErrMalformed) {
			a.logf("discarding stored session: %v", err)
			a.clear(ctx)
		} else {
			a.logf("read %s: %v", a.slot.UserKey, err)
		}
		return
	}
	if !found {
		return
	}

	if a.checkExpiry && auth.Expired(token, a.now()) {
		a.logf("stored %s expired", a.slot.TokenKey)
		a.clear(ctx)
		return
	}

	a.user = &u
	a.token = token
	a.authenticated = true
}

// Login calls the backend and persists the session on success. On failure
// storage and in-memory state are left exactly as they were.
func (a *Auth) Login(ctx context.Context, creds model.Credentials) (*model.Session, error) {
	s, err := a.login(ctx, a.local, creds)
	if err != nil {
		return nil, err
	}
	if a.slot.RequiredRole != "" && !s.User.HasRole(a.slot.RequiredRole) {
		return nil, ErrMissingRole
	}

	if err := a.local.Set(ctx, a.slot.TokenKey, s.Token); err != nil {
		return nil, err
	}
	if err := storage.SetJSON(ctx, a.local, a.slot.UserKey, s.User); err != nil {
		_ = a.local.Remove(ctx, a.slot.TokenKey)
		return nil, err
	}

	u := s.User
	a.user = &u
	a.token = s.Token
	a.authenticated = true
	return s, nil
}

// Logout always succeeds; storage errors are only logged.
func (a *Auth) Logout(ctx context.Context) {
	a.clear(ctx)
	a.reset()
}

func (a *Auth) IsAuthenticated() bool { return a.authenticated }

// User is nil when logged out.
func (a *Auth) User() *model.User { return a.user }

func (a *Auth) Local() storage.Local { return a.local }

func (a *Auth) clear(ctx context.Context) {
	if err := a.local.Remove(ctx, a.slot.TokenKey, a.slot.UserKey); err != nil {
		a.logf("clear session: %v", err)
	}
}

func (a *Auth) reset() {
	a.user = nil
	a.token = ""
	a.authenticated = false
}

func (a *Auth) logf(format string, args ...any) {
	if a.logger != nil {
		a.logger.Printf("session: "+format, args...)
	}
}
