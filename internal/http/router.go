package http

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/guard"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/handlers"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/telemetry"
)

type Deps struct {
	Logger   *log.Logger
	Cfg      config.Config
	Storage  storage.Backend
	Renderer *handlers.Renderer

	Auth          *clients.AuthClient
	Products      *clients.ProductClient
	Cart          *clients.CartClient
	Orders        *clients.OrderClient
	Admin         *clients.AdminClient
	AdminProducts *clients.AdminProductClient

	HealthProbes []clients.HealthProbe
}

func NewRouter(d Deps) http.Handler {
	base := &handlers.Base{
		Logger:      d.Logger,
		Renderer:    d.Renderer,
		Auth:        d.Auth,
		Cart:        d.Cart,
		CheckExpiry: d.Cfg.CheckTokenExpiry,
	}
	health := &handlers.HealthHandler{Probes: d.HealthProbes}
	authH := handlers.NewAuthHandler(base)
	catalog := handlers.NewCatalogHandler(base, d.Products)
	cart := handlers.NewCartHandler(base)
	orders := handlers.NewOrderHandler(base, d.Orders)
	adminH := handlers.NewAdminHandler(base, d.Admin)
	adminProducts := handlers.NewAdminProductHandler(base, d.AdminProducts)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging(d.Logger))
	r.Use(middleware.Recover(d.Logger))
	if d.Cfg.TracingEnabled {
		r.Use(telemetry.Middleware("storefront", "/health"))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.CORS(d.Cfg.CORSAllowOrigins))
		r.Get("/health", health.Self)
		r.Get("/health/upstreams", health.Upstreams)
		r.Options("/health", noContent)
		r.Options("/health/upstreams", noContent)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Browser(d.Storage, d.Cfg.CookieSecure, d.Cfg.StorageTTL))

		// Storefront, public
		r.Get("/", catalog.Home)
		r.Get("/products/{id}", catalog.Product)
		r.Get("/login", authH.LoginPage)
		r.Post("/login", authH.Login)
		r.Get("/register", authH.RegisterPage)
		r.Post("/register", authH.Register)
		r.Get("/forgot-password", authH.ForgotPasswordPage)
		r.Post("/forgot-password", authH.ForgotPassword)
		r.Post("/logout", authH.Logout)

		// Storefront, signed in
		r.Group(func(r chi.Router) {
			r.Use(guard.RequireUser)
			r.Get("/dashboard", orders.Dashboard)

			r.Get("/cart", cart.Page)
			r.Post("/cart/items", cart.AddItem)
			r.Post("/cart/items/{id}", cart.UpdateItem)
			r.Post("/cart/items/{id}/remove", cart.RemoveItem)
			r.Post("/cart/items/{id}/toggle", cart.ToggleItem)
			r.Post("/cart/toggle-all", cart.ToggleAll)
			r.Post("/cart/clear", cart.Clear)

			r.Get("/checkout", orders.CheckoutPage)
			r.Post("/checkout", orders.Checkout)
			r.Get("/orders", orders.List)
			r.Get("/orders/{id}", orders.Detail)
			r.Post("/orders/{id}/cancel", orders.Cancel)
		})

		// Admin console
		r.Route("/admin", func(r chi.Router) {
			r.Get("/login", authH.AdminLoginPage)
			r.Post("/login", authH.AdminLogin)
			r.Post("/logout", authH.AdminLogout)

			r.Group(func(r chi.Router) {
				r.Use(guard.RequireAdmin)
				r.Get("/", adminH.Dashboard)
				r.Get("/dashboard", adminH.Dashboard)

				r.Get("/users", adminH.Users)
				r.Get("/admins", adminH.Admins)
				r.Post("/users/{id}/toggle-status", adminH.ToggleStatus)
				r.Post("/users/{id}/delete", adminH.Delete)
				r.Post("/users/{id}/restore", adminH.Restore)
				r.Post("/users/{id}/roles/add", adminH.AddRole)
				r.Post("/users/{id}/roles/remove", adminH.RemoveRole)
				r.Get("/create-user", adminH.CreateUserPage)
				r.Post("/create-user", adminH.CreateUser)

				r.Get("/products", adminProducts.List)
				r.Get("/products/search", adminProducts.Search)
				r.Get("/products/create", adminProducts.CreatePage)
				r.Post("/products/create", adminProducts.Create)
				r.Get("/products/{id}", adminProducts.Detail)
				r.Get("/products/{id}/edit", adminProducts.EditPage)
				r.Post("/products/{id}/edit", adminProducts.Edit)
				r.Post("/products/{id}/delete", adminProducts.Delete)
				r.Post("/products/{id}/hard-delete", adminProducts.HardDelete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, "/health") {
			handlers.WriteJSONError(w, req, http.StatusNotFound, "not found")
			return
		}
		base.NotFound(w, req)
	})

	return r
}

func noContent(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }
