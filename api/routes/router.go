package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/delegance/storefront-backend/api/controllers"
	"github.com/delegance/storefront-backend/api/middleware"
	"github.com/delegance/storefront-backend/internal/cart"
	"github.com/delegance/storefront-backend/internal/catalog"
	"github.com/delegance/storefront-backend/internal/checkout"
	"github.com/delegance/storefront-backend/pkg/config"
	"github.com/delegance/storefront-backend/pkg/logger"
)

// ReadinessChecks maps dependency names to their ping functions.
type ReadinessChecks map[string]func(context.Context) error

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	checks ReadinessChecks,
	catalogService catalog.Service,
	cartManager *cart.Manager,
	draftManager *checkout.DraftManager,
	handoffBuilder *checkout.Builder,
	metricsRegistry *prometheus.Registry,
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, checks))
	})

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Route("/shop", func(r chi.Router) {
			r.Get("/products", controllers.ShopProducts(catalogService, logg))
			r.Get("/products/{slug}", controllers.ShopProductBySlug(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartManager, logg))
			r.Delete("/", controllers.CartClear(cartManager, logg))
			r.Post("/items", controllers.CartAddItem(cartManager, logg))
			r.Put("/items/{itemId}/quantity", controllers.CartSetQty(cartManager, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(cartManager, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/draft", controllers.DraftFetch(draftManager, logg))
			r.Put("/draft", controllers.DraftSave(draftManager, logg))
			r.Delete("/draft", controllers.DraftClear(draftManager, logg))
			r.Post("/handoff", controllers.CheckoutHandoff(cartManager, draftManager, handoffBuilder, logg))
		})
	})

	return r
}
