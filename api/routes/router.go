package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/storeops/storefront-backend/api/controllers"
	"github.com/storeops/storefront-backend/api/middleware"
	cartsvc "github.com/storeops/storefront-backend/internal/cart"
	ordersvc "github.com/storeops/storefront-backend/internal/orders"
	"github.com/storeops/storefront-backend/pkg/config"
	"github.com/storeops/storefront-backend/pkg/db"
	"github.com/storeops/storefront-backend/pkg/logger"
	"github.com/storeops/storefront-backend/pkg/metrics"
	pkgredis "github.com/storeops/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	cartService cartsvc.Service,
	ordersService ordersvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		if redisClient != nil {
			r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
		} else {
			r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
		}
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, logg))
		if redisClient != nil {
			r.Use(middleware.Idempotency(redisClient, logg))
		}

		r.Route("/carts", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Put("/items/{itemId}", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(cartService, logg))
			r.Post("/checkout", controllers.CartCheckout(ordersService, logg))
		})

		r.Post("/cart/validate", controllers.CartValidate(cartService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(ordersService, logg))
			r.Post("/", controllers.OrdersCreate(ordersService, logg))
			r.Post("/checkout", controllers.OrdersCheckout(ordersService, logg))
			r.Get("/{orderId}", controllers.OrdersGet(ordersService, logg))
			r.Put("/{orderId}", controllers.OrdersUpdate(ordersService, logg))
			r.Delete("/{orderId}", controllers.OrdersDelete(ordersService, logg))
		})
	})

	return r
}
