package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/session"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Base carries what every page handler needs: the renderer, the logger and
// the pieces to build per-request session stores.
type Base struct {
	Logger      *log.Logger
	Renderer    *Renderer
	Auth        *clients.AuthClient
	Cart        *clients.CartClient
	CheckExpiry bool
}

func (b *Base) local(r *http.Request) storage.Local {
	if l := middleware.GetStorage(r.Context()); l != nil {
		return l
	}
	// Outside the Browser middleware (tests, misconfigured routes) fall
	// back to a throwaway store so nothing persists.
	return storage.NewMemory()
}

func (b *Base) authOptions() []session.Option {
	opts := []session.Option{session.WithLogger(b.Logger)}
	if b.CheckExpiry {
		opts = append(opts, session.WithTokenExpiry(time.Now))
	}
	return opts
}

// storefront returns the hydrated storefront session for r.
func (b *Base) storefront(r *http.Request) *session.Auth {
	a := session.NewAuth(b.local(r), b.Auth.Login, session.StorefrontSlot, b.authOptions()...)
	a.Init(r.Context())
	return a
}

// adminSession returns the hydrated admin session for r.
func (b *Base) adminSession(r *http.Request) *session.Auth {
	a := session.NewAuth(b.local(r), b.Auth.AdminLogin, session.AdminSlot, b.authOptions()...)
	a.Init(r.Context())
	return a
}

func (b *Base) cartFor(a *session.Auth) *session.Cart {
	return session.NewCart(a, b.Cart, b.Logger)
}

func (b *Base) flash(r *http.Request, kind, msg string) {
	if err := storage.PushFlash(r.Context(), b.local(r), kind, msg); err != nil {
		b.Logger.Printf("flash: %v", err)
	}
}

func (b *Base) redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// fail reports err to the user. A torn down session sends them to the
// login screen of the area they were in; anything else is flashed and
// the browser goes back to fallback.
func (b *Base) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if clients.SessionCleared(err) {
		b.flash(r, FlashInfo, "Your session has expired, please log in again")
		b.redirect(w, r, clients.LoginRouteFor(r.URL.Path))
		return
	}
	if errors.Is(err, session.ErrUnauthenticated) {
		b.flash(r, FlashInfo, err.Error())
		b.redirect(w, r, clients.LoginRouteFor(r.URL.Path))
		return
	}
	b.flash(r, FlashError, clients.Message(err))
	b.redirect(w, r, fallback)
}

// view starts a View for r, consuming any pending flash.
func (b *Base) view(r *http.Request, area, title string) View {
	return View{
		Title: title,
		Area:  area,
		Path:  r.URL.Path,
		Flash: storage.PopFlash(r.Context(), b.local(r)),
		Data:  map[string]any{},
	}
}

// shopView is view for storefront pages, with the user and cart badge.
func (b *Base) shopView(r *http.Request, a *session.Auth, title string) View {
	v := b.view(r, AreaShop, title)
	v.User = a.User()
	if a.IsAuthenticated() {
		n, err := b.Cart.CountItems(r.Context(), a.Local())
		switch {
		case err == nil:
			v.CartCount = n
		case clients.SessionCleared(err):
			a.Logout(r.Context())
			v.User = nil
		default:
			b.Logger.Printf("cart count: %v", err)
		}
	}
	return v
}

func (b *Base) adminView(r *http.Request, a *session.Auth, title string) View {
	v := b.view(r, AreaAdmin, title)
	v.User = a.User()
	return v
}

func (b *Base) render(w http.ResponseWriter, status int, page string, v View) {
	if err := b.Renderer.Render(w, status, page, v); err != nil {
		b.Logger.Printf("%v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// renderError shows the error page, or redirects to login when the
// backend tore the session down.
func (b *Base) renderError(w http.ResponseWriter, r *http.Request, area string, err error) {
	if clients.SessionCleared(err) {
		b.fail(w, r, err, "")
		return
	}
	status := http.StatusBadGateway
	title := "Something went wrong"
	if clients.NotFound(err) {
		status, title = http.StatusNotFound, "Not found"
	}
	v := b.view(r, area, title)
	v.Data["message"] = clients.Message(err)
	b.render(w, status, "error", v)
}

// NotFound renders the 404 page in the area r.URL.Path belongs to.
func (b *Base) NotFound(w http.ResponseWriter, r *http.Request) {
	area := AreaShop
	if clients.LoginRouteFor(r.URL.Path) == "/admin/login" {
		area = AreaAdmin
	}
	b.notFound(w, r, area)
}

func (b *Base) notFound(w http.ResponseWriter, r *http.Request, area string) {
	v := b.view(r, area, "Not found")
	v.Data["message"] = "The page you are looking for does not exist"
	b.render(w, http.StatusNotFound, "error", v)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func formInt(r *http.Request, name string, def int) int {
	return atoiOr(r.FormValue(name), def)
}

var errBadID = errors.New("invalid id")

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

// isLocalPath accepts only same-site absolute paths as redirect targets.
func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.Contains(p, `\`)
}
