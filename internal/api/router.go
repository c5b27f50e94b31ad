package api

import (
	"net/http"

	"github.com/aaravmahajanofficial/safari-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/safari-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/safari-storefront/internal/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter wires the public catalog routes plus /metrics and /health.
// health may be nil, in which case /health is not served.
func NewRouter(catalog *handlers.CatalogHandler, health http.Handler) http.Handler {

	routerMux := http.NewServeMux()

	routes := map[string]http.Handler{
		"GET /api/config":        catalog.GetConfig(),
		"GET /api/categories":    catalog.ListCategories(),
		"GET /api/products":      catalog.ListProducts(),
		"GET /api/products/{id}": catalog.GetProduct(),
	}

	for pattern, h := range routes {
		routerMux.Handle(pattern, metrics.Route(pattern, otelhttp.WithRouteTag(pattern, h)))
	}

	routerMux.Handle("GET /metrics", metrics.Handler())
	if health != nil {
		routerMux.Handle("GET /health", health)
	}

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = middleware.CORS(handler)
	handler = otelhttp.NewHandler(handler, "safari-storefront")

	return handler
}
