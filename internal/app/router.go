package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tair/retail-dashboard/docs"
	sessionhttp "github.com/tair/retail-dashboard/internal/session/delivery/http"
	"github.com/tair/retail-dashboard/pkg/httpapi"
)

// NewRouter mounts every route behind the shared middleware chain and CORS
func NewRouter(h *Handlers, stores *Stores, gatherer prometheus.Gatherer, mwConfig *httpapi.MiddlewareConfig) http.Handler {
	router := mux.NewRouter()

	// Operational endpoints stay outside the session middleware
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	router.HandleFunc("/health", healthHandler(stores)).Methods("GET")

	api := router.NewRoute().Subrouter()
	httpapi.RegisterMiddlewares(api, mwConfig)
	api.Use(sessionhttp.SessionMiddleware(h.Controller))

	h.Session.RegisterRoutes(api)
	h.User.RegisterRoutes(api)
	h.Product.RegisterRoutes(api)
	h.Order.RegisterRoutes(api)

	return httpapi.SetupCORS(mwConfig)(router)
}

func healthHandler(stores *Stores) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := stores.Ping(r.Context()); err != nil {
			httpapi.RespondJSON(w, http.StatusServiceUnavailable, httpapi.Response{
				Success: false,
				Error:   "Store unavailable",
			})
			return
		}
		httpapi.RespondJSON(w, http.StatusOK, httpapi.Response{
			Success: true,
			Message: "Catalog service is healthy",
			Data:    map[string]string{"driver": stores.Driver},
		})
	}
}
