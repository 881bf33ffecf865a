package router

import (
	"net/http"

	"slay-store/internal/handler"
	"slay-store/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Users          *handler.UserHandler
	Addresses      *handler.AddressHandler
	PaymentMethods *handler.PaymentMethodHandler
	Orders         *handler.OrderHandler
	Products       *handler.ProductHandler
	Banners        *handler.BannerHandler
	Health         *handler.HealthHandler
}

// Options configures cross-cutting behaviour of the router.
type Options struct {
	AllowedOrigins []string
	Authenticator  middleware.Authenticator
	Registry       *prometheus.Registry
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	authenticated := func(fn http.HandlerFunc) http.Handler {
		return middleware.Authenticate(opts.Authenticator, logger)(fn)
	}
	admin := func(fn http.HandlerFunc) http.Handler {
		return middleware.Chain(fn,
			middleware.Authenticate(opts.Authenticator, logger),
			middleware.RequireAdmin(logger),
		)
	}
	optional := func(fn http.HandlerFunc) http.Handler {
		return middleware.OptionalAuth(opts.Authenticator)(fn)
	}

	// Health and metrics (no authentication required)
	mux.Handle("GET /api/health", h.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{Registry: opts.Registry}))

	// Account
	mux.HandleFunc("POST /api/user/register", h.Users.Register)
	mux.HandleFunc("POST /api/user/login", h.Users.Login)
	mux.Handle("GET /api/user/profile", authenticated(h.Users.Profile))
	mux.Handle("PUT /api/user/profile", authenticated(h.Users.UpdateProfile))
	mux.HandleFunc("GET /api/user/cart", h.Users.GetCart)
	mux.HandleFunc("PUT /api/user/cart", h.Users.SaveCart)

	mux.HandleFunc("GET /api/user/addresses", h.Addresses.List)
	mux.HandleFunc("POST /api/user/addresses", h.Addresses.Create)
	mux.HandleFunc("PUT /api/user/addresses/{id}", h.Addresses.Update)
	mux.HandleFunc("DELETE /api/user/addresses/{id}", h.Addresses.Delete)

	mux.HandleFunc("GET /api/user/payment-methods", h.PaymentMethods.List)
	mux.HandleFunc("POST /api/user/payment-methods", h.PaymentMethods.Create)
	mux.HandleFunc("PUT /api/user/payment-methods/{id}", h.PaymentMethods.Update)
	mux.HandleFunc("DELETE /api/user/payment-methods/{id}", h.PaymentMethods.Delete)

	// Orders
	mux.HandleFunc("POST /api/orders", h.Orders.Create)
	mux.HandleFunc("GET /api/orders", h.Orders.List)
	mux.HandleFunc("GET /api/orders/{id}", h.Orders.Get)
	mux.HandleFunc("PUT /api/orders/{id}", h.Orders.Update)
	mux.HandleFunc("POST /api/orders/{id}/cancel", h.Orders.Cancel)

	// Public catalog
	mux.Handle("GET /api/public/products", optional(h.Products.List))
	mux.Handle("GET /api/public/products/{id}", optional(h.Products.Get))
	mux.Handle("GET /api/public/banners", optional(h.Banners.Public))

	// Admin
	mux.Handle("GET /api/admin/orders", admin(h.Orders.AdminList))
	mux.Handle("GET /api/admin/orders/{id}", admin(h.Orders.AdminGet))
	mux.Handle("PUT /api/admin/orders/{id}", admin(h.Orders.AdminUpdate))
	mux.Handle("GET /api/admin/users", admin(h.Users.List))
	mux.Handle("PUT /api/admin/users/{id}/role", admin(h.Users.SetRole))
	mux.Handle("POST /api/admin/products", admin(h.Products.Create))
	mux.Handle("PUT /api/admin/products/{id}", admin(h.Products.Update))
	mux.Handle("DELETE /api/admin/products/{id}", admin(h.Products.Delete))
	mux.Handle("GET /api/admin/banners", admin(h.Banners.List))
	mux.Handle("POST /api/admin/banners", admin(h.Banners.Create))
	mux.Handle("PUT /api/admin/banners/{id}", admin(h.Banners.Update))
	mux.Handle("DELETE /api/admin/banners/{id}", admin(h.Banners.Delete))

	// Apply middleware in order: Recovery -> Metrics -> Logging -> CORS
	metrics := middleware.NewMetrics(opts.Registry)
	return middleware.Chain(mux,
		middleware.Recovery(logger),
		metrics.Middleware,
		middleware.Logging(logger),
		middleware.CORS(opts.AllowedOrigins, logger),
	)
}
