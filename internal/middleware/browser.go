package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

const BrowserCookie = "sf_browser"

type ctxKey string

const (
	ctxCorrelationID ctxKey = "correlation_id"
	ctxStorage       ctxKey = "browser_storage"
)

// Browser identifies the calling browser by cookie, minting a new id when
// the cookie is missing or not a uuid, and attaches that browser's storage
// view to the request context.
func Browser(backend storage.Backend, secure bool, maxAge time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(BrowserCookie); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					id = c.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
			}

			// Refresh on every request so idle expiry slides with the store TTL.
			http.SetCookie(w, &http.Cookie{
				Name:     BrowserCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(maxAge.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := WithStorage(r.Context(), backend.Open(id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithStorage(ctx context.Context, l storage.Local) context.Context {
	return context.WithValue(ctx, ctxStorage, l)
}

// GetStorage returns the browser storage, or nil outside Browser.
func GetStorage(ctx context.Context) storage.Local {
	if l, ok := ctx.Value(ctxStorage).(storage.Local); ok {
		return l
	}
	return nil
}
