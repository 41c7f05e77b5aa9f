package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tuananhdo/shopora-backend/api/controllers"
	"github.com/tuananhdo/shopora-backend/api/middleware"
	"github.com/tuananhdo/shopora-backend/internal/auth"
	"github.com/tuananhdo/shopora-backend/pkg/auth/session"
	"github.com/tuananhdo/shopora-backend/pkg/config"
	"github.com/tuananhdo/shopora-backend/pkg/db"
	"github.com/tuananhdo/shopora-backend/pkg/logger"
	"github.com/tuananhdo/shopora-backend/pkg/metrics"
	"github.com/tuananhdo/shopora-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    redis.Pinger
	Sessions session.AccessSessionChecker

	AuthService     auth.Service
	ProductService  controllers.ProductService
	CategoryService controllers.CategoryService
	StockService    controllers.StockService
	SaleService     controllers.SaleService
	OrderService    controllers.OrderService

	Metrics  *metrics.HTTPMetrics
	Registry *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.MethodOverride,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, controllers.ReadinessDeps(deps.DB, deps.Redis)))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	if dir := cfg.Uploads.Dir; dir != "" {
		prefix := strings.TrimSuffix(cfg.Uploads.PublicBase, "/") + "/"
		fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
		r.Method(http.MethodGet, prefix+"*", fileServer)
	}

	r.Route("/api", func(r chi.Router) {
		// storefront surface, no credentials required
		r.Get("/products", controllers.ProductIndex(deps.ProductService, logg))
		r.Get("/products/{id}", controllers.ProductShow(deps.ProductService, logg))
		r.Get("/categories", controllers.CategoryIndex(deps.CategoryService, logg))
		r.Get("/categories/{id}", controllers.CategoryShow(deps.CategoryService, logg))
		r.Post("/checkout", controllers.Checkout(deps.OrderService, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.AuthRegister(deps.AuthService, logg))
			r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
				r.Get("/profile", controllers.AuthProfile(deps.AuthService, logg))
				r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Post("/products", controllers.ProductCreate(deps.ProductService, logg))
			r.Post("/products/import", controllers.ProductImport(deps.ProductService, logg))
			r.Put("/products/{id}", controllers.ProductUpdate(deps.ProductService, logg))
			r.Delete("/products/{id}", controllers.ProductDelete(deps.ProductService, logg))

			r.Post("/categories", controllers.CategoryCreate(deps.CategoryService, logg))
			r.Put("/categories/{id}", controllers.CategoryUpdate(deps.CategoryService, logg))
			r.Delete("/categories/{id}", controllers.CategoryDelete(deps.CategoryService, logg))

			r.Route("/product-stores", func(r chi.Router) {
				r.Get("/", controllers.StockIndex(deps.StockService, logg))
				r.Post("/import", controllers.StockImport(deps.StockService, logg))
				r.Put("/{id}", controllers.StockUpdate(deps.StockService, logg))
				r.Delete("/{id}", controllers.StockDelete(deps.StockService, logg))
			})

			r.Route("/product-sales", func(r chi.Router) {
				r.Get("/", controllers.SaleIndex(deps.SaleService, logg))
				r.Post("/", controllers.SaleCreate(deps.SaleService, logg))
				r.Post("/batch", controllers.SaleBatch(deps.SaleService, logg))
				r.Post("/import", controllers.SaleImport(deps.SaleService, logg))
				r.Put("/{id}", controllers.SaleUpdate(deps.SaleService, logg))
				r.Delete("/{id}", controllers.SaleDelete(deps.SaleService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderIndex(deps.OrderService, logg))
				r.Get("/{id}", controllers.OrderShow(deps.OrderService, logg))
				r.Put("/{id}", controllers.OrderUpdate(deps.OrderService, logg))
				r.Delete("/{id}", controllers.OrderDelete(deps.OrderService, logg))
			})
		})
	})

	return r
}
