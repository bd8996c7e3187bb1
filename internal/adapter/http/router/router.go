package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

// New assembles the public surface. Admin controllers share the channel
// auth middleware; the portal controller gets the bearer middleware for
// its session-scoped routes.
func New(
	adminControllers []RouteRegistrar,
	portalController RouteRegistrar,
	adminMiddleware func(http.Handler) http.Handler,
	portalMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	for _, controller := range adminControllers {
		if controller != nil {
			controller.RegisterRoutes(mux, adminMiddleware)
		}
	}

	if portalController != nil {
		portalController.RegisterRoutes(mux, portalMiddleware)
	}

	return mux
}
