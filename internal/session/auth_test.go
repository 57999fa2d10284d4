package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

func loginReturning(s *model.Session, err error) LoginFunc {
	return func(context.Context, storage.Local, model.Credentials) (*model.Session, error) {
		return s, err
	}
}

func TestAuth_LoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	local := storage.NewMemory()
	sess := &model.Session{Token: "tok-1", User: model.User{ID: 7, Name: "Ann", Email: "ann@example.com", Roles: []string{model.RoleUser}}}

	a := NewAuth(local, loginReturning(sess, nil), StorefrontSlot)
	got, err := a.Login(ctx, model.Credentials{Email: "ann@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.Token)
	assert.True(t, a.IsAuthenticated())
	require.NotNil(t, a.User())
	assert.Equal(t, int64(7), a.User().ID)

	tok, ok, _ := local.Get(ctx, storage.KeyUserToken)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", tok)

	var stored model.User
	found, err := storage.GetJSON(ctx, local, storage.KeyUser, &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "ann@example.com", stored.Email)

	// a fresh store over the same storage hydrates the same session
	b := NewAuth(local, nil, StorefrontSlot)
	b.Init(ctx)
	assert.True(t, b.IsAuthenticated())
	assert.Equal(t, "Ann", b.User().Name)
}

func TestAuth_InvalidLoginLeavesStorageUntouched(t *testing.T) {
	ctx := context.Background()
	local := storage.NewMemory()
	require.NoError(t, local.Set(ctx, "unrelated", "x"))

	apiErr := &clients.APIError{Status: 401, Message: "bad credentials"}
	a := NewAuth(local, loginReturning(nil, apiErr), StorefrontSlot)

	_, err := a.Login(ctx, model.Credentials{Email: "a@b.c", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, "bad credentials", clients.Message(err))
	assert.False(t, a.IsAuthenticated())

	_, ok, _ := local.Get(ctx, storage.KeyUserToken)
	assert.False(t, ok)
	_, ok, _ = local.Get(ctx, storage.KeyUser)
	assert.False(t, ok)
	v, _, _ := local.Get(ctx, "unrelated")
	assert.Equal(t, "x", v)
}

func TestAuth_AdminSlotRequiresAdminRole(t *testing.T) {
	ctx := context.Background()
	local := storage.NewMemory()
	sess := &model.Session{Token: "tok", User: model.User{ID: 1, Roles: []string{model.RoleUser}}}

	a := NewAuth(local, loginReturning(sess, nil), AdminSlot)
	_, err := a.Login(ctx, model.Credentials{})
	assert.ErrorIs(t, err, ErrMissingRole)
	assert.False(t, a.IsAuthenticated())

	_, ok, _ := local.Get(ctx, storage.KeyAdminToken)
	assert.False(t, ok)
}

func TestAuth_InitWithMalformedUserClearsSlot(t *testing.T) {
	ctx := context.Background()
	local := storage.NewMemory()
	require.NoError(t, local.Set(ctx, storage.KeyAdminToken, "tok"))
	require.NoError(t, local.Set(ctx, storage.KeyAdminUser, "{not json"))
	require.NoError(t, local.Set(ctx, storage.KeyUserToken, "user-tok"))

	a := NewAuth(local, nil, AdminSlot)
	a.Init(ctx)
	assert.False(t, a.IsAuthenticated())
	assert.Nil(t, a.User())

	_, ok, _ := local.Get(ctx, storage.KeyAdminToken)
	assert.False(t, ok)
	_, ok, _ = local.Get(ctx, storage.KeyAdminUser)
	assert.False(t, ok)
	// the other slot is not ours to clear
	_, ok, _ = local.Get(ctx, storage.KeyUserToken)
	assert.True(t, ok)
}

func TestAuth_InitWithoutDataIsLoggedOut(t *testing.T) {
	ctx := context.Background()
	local := storage.NewMemory()
	require.NoError(t, local.Set(ctx, storage.KeyUserToken, "tok"))

	a := NewAuth(local, nil, StorefrontSlot)
	a.Init(ctx)
	assert.False(t, a.IsAuthenticated())
}

type failingLocal struct{ storage.Local }

func (failingLocal) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("redis down")
}

func TestAuth_InitNeverFailsOnStorageError(t *testing.T) {
	a := NewAuth(failingLocal{storage.NewMemory()}, nil, StorefrontSlot)
	a.Init(context.Background())
	assert.False(t, a.IsAuthenticated())
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "exp": exp.Unix()})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestAuth_TokenExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		name  string
		exp   time.Time
		authd bool
	}{
		{"valid", now.Add(time.Hour), true},
		{"expired", now.Add(-time.Minute), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			local := storage.NewMemory()
			require.NoError(t, local.Set(ctx, storage.KeyUserToken, signed(t, tc.exp)))
			require.NoError(t, storage.SetJSON(ctx, local, storage.KeyUser, model.User{ID: 1}))

			a := NewAuth(local, nil, StorefrontSlot, WithTokenExpiry(func() time.Time { return now }))
			a.Init(ctx)
			assert.Equal(t, tc.authd, a.IsAuthenticated())
		})
	}
}

func TestAuth_LogoutClearsSlot(t *testing.T) {
	ctx := context.Background()
	local := storage.NewMemory()
	sess := &model.Session{Token: "t", User: model.User{ID: 2, Roles: []string{model.RoleAdmin}}}

	a := NewAuth(local, loginReturning(sess, nil), AdminSlot)
	_, err := a.Login(ctx, model.Credentials{})
	require.NoError(t, err)

	a.Logout(ctx)
	assert.False(t, a.IsAuthenticated())
	for _, k := range []string{storage.KeyAdminToken, storage.KeyAdminUser} {
		_, ok, _ := local.Get(ctx, k)
		assert.False(t, ok, fmt.Sprintf("%s should be gone", k))
	}
}

func TestAuth_OpaqueTokenIgnoresExpiryCheck(t *testing.T) {
	ctx := context.Background()
	local := storage.NewMemory()
	require.NoError(t, local.Set(ctx, storage.KeyUserToken, strings.Repeat("a", 20)))
	require.NoError(t, storage.SetJSON(ctx, local, storage.KeyUser, model.User{ID: 1}))

	a := NewAuth(local, nil, StorefrontSlot, WithTokenExpiry(nil))
	a.Init(ctx)
	assert.True(t, a.IsAuthenticated())
}
