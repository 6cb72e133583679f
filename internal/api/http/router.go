package http

import (
	"net/http"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/security"

	"github.com/gorilla/mux"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth      *AuthHandler
	Customer  *CustomerHandler
	Equipment *EquipmentHandler
	Rental    *RentalHandler
	Analytics *AnalyticsHandler
	Photo     *PhotoHandler
}

// NewRouter assembles the full API surface under /api/v1. Auth endpoints
// and photo downloads are public; everything else requires a staff access
// token.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	h.Auth.RegisterRoutes(api.PathPrefix("/auth").Subrouter())
	h.Photo.RegisterPublicRoutes(api)

	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(tokens))

	h.Auth.RegisterProtectedRoutes(protected.PathPrefix("/auth").Subrouter())
	h.Customer.RegisterRoutes(protected.PathPrefix("/customers").Subrouter())
	h.Equipment.RegisterRoutes(protected.PathPrefix("/equipment").Subrouter())
	h.Rental.RegisterRoutes(protected.PathPrefix("/rentals").Subrouter())
	h.Analytics.RegisterRoutes(protected.PathPrefix("/analytics").Subrouter())
	h.Photo.RegisterRoutes(protected)

	return router
}
