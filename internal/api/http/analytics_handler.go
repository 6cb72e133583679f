package http

import (
	"net/http"
	"strconv"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/service"

	"github.com/gorilla/mux"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	router.HandleFunc("/revenue", h.MonthlyRevenue).Methods("GET")
	router.HandleFunc("/outstanding", h.Outstanding).Methods("GET")
}

func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsService.GetDashboardSummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *AnalyticsHandler) MonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	months := 12
	if raw := r.URL.Query().Get("months"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 60 {
			months = v
		}
	}

	revenue, err := h.analyticsService.GetMonthlyRevenue(r.Context(), months)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, revenue)
}

func (h *AnalyticsHandler) Outstanding(w http.ResponseWriter, r *http.Request) {
	rows, err := h.analyticsService.GetOutstandingByCustomer(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
