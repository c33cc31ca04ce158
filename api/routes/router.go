package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thitipat-dev/petshop-backend/api/controllers"
	"github.com/thitipat-dev/petshop-backend/api/middleware"
	checkoutsvc "github.com/thitipat-dev/petshop-backend/internal/checkout"
	"github.com/thitipat-dev/petshop-backend/internal/discounts"
	"github.com/thitipat-dev/petshop-backend/internal/orders"
	"github.com/thitipat-dev/petshop-backend/internal/products"
	"github.com/thitipat-dev/petshop-backend/internal/settings"
	"github.com/thitipat-dev/petshop-backend/pkg/config"
	"github.com/thitipat-dev/petshop-backend/pkg/db"
	"github.com/thitipat-dev/petshop-backend/pkg/logger"
	"github.com/thitipat-dev/petshop-backend/pkg/redis"
)

// Deps bundles the wired services the router exposes.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        db.Pinger
	Redis     redis.Pinger
	Registry  *prometheus.Registry
	Checkout  checkoutsvc.Service
	Orders    orders.Service
	Discounts discounts.Service
	Products  products.Repository
	Settings  settings.Repository
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Products, logg))
			r.Get("/{productID}", controllers.ProductGet(deps.Products, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/analyze", controllers.CheckoutAnalyze(deps.Checkout, logg))
		})

		r.Route("/discounts", func(r chi.Router) {
			r.Post("/validate", controllers.DiscountValidate(deps.Discounts, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderCreate(deps.Orders, logg))
			r.Get("/", controllers.OrderList(deps.Orders, logg))
			r.Get("/{orderID}", controllers.OrderGet(deps.Orders, logg))
			r.Get("/{orderID}/status", controllers.OrderStatus(deps.Orders, logg))
			r.Patch("/{orderID}/status", controllers.OrderUpdateStatus(deps.Orders, logg))
			r.Post("/{orderID}/advance", controllers.OrderAdvance(deps.Orders, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/discounts", controllers.DiscountCreate(deps.Discounts, logg))
		r.Route("/settings/deposit", func(r chi.Router) {
			r.Get("/", controllers.SettingsGetDeposit(deps.Settings, logg))
			r.Put("/", controllers.SettingsUpdateDeposit(deps.Settings, logg))
		})
	})

	return r
}
