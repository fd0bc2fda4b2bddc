package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sellerdesk/sellerdesk-backend/api/controllers"
	ordercontrollers "github.com/sellerdesk/sellerdesk-backend/api/controllers/orders"
	"github.com/sellerdesk/sellerdesk-backend/api/middleware"
	"github.com/sellerdesk/sellerdesk-backend/internal/orders"
	"github.com/sellerdesk/sellerdesk-backend/pkg/config"
	"github.com/sellerdesk/sellerdesk-backend/pkg/logger"
	"github.com/sellerdesk/sellerdesk-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store *orders.Store,
	orderMetrics *metrics.OrderMetrics,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/", ordercontrollers.List(store, logg))
		r.Post("/", ordercontrollers.Create(store, logg))

		// Aggregates registered before the {orderId} subtree so chi does
		// not treat them as order ids.
		r.Get("/pending", ordercontrollers.Pending(store, logg))
		r.Get("/active-deliveries", ordercontrollers.ActiveDeliveries(store, logg))
		r.Get("/today", ordercontrollers.Today(store, logg))
		r.Get("/stats", ordercontrollers.Stats(store, logg))
		r.Get("/revenue", ordercontrollers.Revenue(store, logg))

		r.Route("/{orderId}", func(r chi.Router) {
			r.Get("/", ordercontrollers.Detail(store, logg))
			r.Get("/actions", ordercontrollers.Actions(store, logg))
			r.Post("/transition", ordercontrollers.Transition(store, orderMetrics, logg))
			r.Post("/cancel", ordercontrollers.Cancel(store, orderMetrics, logg))
			r.Post("/payment", ordercontrollers.PaymentStatus(store, logg))
		})
	})

	return r
}
