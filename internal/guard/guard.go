// Package guard gates page routes on the sessions persisted in
// storage.Local. Guards only look at stored data and never call the
// backend, which re-checks authorization on every request anyway.
package guard

import (
	"context"
	"errors"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

const (
	UserLoginPath  = "/login"
	AdminLoginPath = "/admin/login"
)

// UserAllowed reports whether a storefront token and a readable profile
// are stored.
func UserAllowed(ctx context.Context, local storage.Local) bool {
	_, ok := loadSlot(ctx, local, storage.KeyUserToken, storage.KeyUser, false)
	return ok
}

// AdminAllowed reports whether an admin session carrying the ADMIN role is
// stored. An unreadable admin profile is removed together with its token.
func AdminAllowed(ctx context.Context, local storage.Local) bool {
	u, ok := loadSlot(ctx, local, storage.KeyAdminToken, storage.KeyAdminUser, true)
	return ok && u.HasRole(model.RoleAdmin)
}

func loadSlot(ctx context.Context, local storage.Local, tokenKey, userKey string, clearMalformed bool) (model.User, bool) {
	var u model.User
	if local == nil {
		return u, false
	}
	tok, ok, err := local.Get(ctx, tokenKey)
	if err != nil || !ok || tok == "" {
		return u, false
	}
	found, err := storage.GetJSON(ctx, local, userKey, &u)
	if err != nil {
		if clearMalformed && errors.Is(err, storage.ErrMalformed) {
			_ = local.Remove(ctx, tokenKey, userKey)
		}
		return u, false
	}
	return u, found
}

// RequireUser redirects to the storefront login unless UserAllowed.
func RequireUser(next http.Handler) http.Handler {
	return gate(UserAllowed, UserLoginPath, next)
}

// RequireAdmin redirects to the admin login unless AdminAllowed.
func RequireAdmin(next http.Handler) http.Handler {
	return gate(AdminAllowed, AdminLoginPath, next)
}

func gate(allowed func(context.Context, storage.Local) bool, loginPath string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		local := middleware.GetStorage(r.Context())
		if !allowed(r.Context(), local) {
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
