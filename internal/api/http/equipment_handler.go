package http

import (
	"net/http"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/service"

	"github.com/gorilla/mux"
)

type EquipmentHandler struct {
	equipmentService service.EquipmentService
}

func NewEquipmentHandler(equipmentService service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentService: equipmentService}
}

func (h *EquipmentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("", h.Create).Methods("POST")
	router.HandleFunc("", h.List).Methods("GET")
	router.HandleFunc("/{id:[0-9]+}", h.Get).Methods("GET")
	router.HandleFunc("/{id:[0-9]+}", h.Update).Methods("PUT")
	router.HandleFunc("/{id:[0-9]+}", h.Delete).Methods("DELETE")
	router.HandleFunc("/{id:[0-9]+}/maintenance", h.SetMaintenance).Methods("PUT")
}

// equipmentView adds the derived available count to the stored counters.
type equipmentView struct {
	*domain.Equipment
	Available int32 `json:"available"`
}

func toEquipmentView(e *domain.Equipment) equipmentView {
	return equipmentView{Equipment: e, Available: e.Available()}
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req equipmentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	eq := &domain.Equipment{
		Name:            req.Name,
		Category:        req.Category,
		RatePerDayPaise: req.RatePerDayPaise,
		PhotoURL:        req.PhotoURL,
		TotalManaged:    req.TotalManaged,
	}
	if err := h.equipmentService.AddEquipment(r.Context(), eq); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEquipmentView(eq))
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	eq, err := h.equipmentService.GetEquipment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEquipmentView(eq))
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req equipmentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	eq, err := h.equipmentService.GetEquipment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	eq.Name = req.Name
	eq.Category = req.Category
	eq.RatePerDayPaise = req.RatePerDayPaise
	eq.PhotoURL = req.PhotoURL
	eq.TotalManaged = req.TotalManaged

	if err := h.equipmentService.UpdateEquipment(r.Context(), eq); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEquipmentView(eq))
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.equipmentService.DeleteEquipment(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	equipment, total, err := h.equipmentService.ListEquipment(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]equipmentView, len(equipment))
	for i := range equipment {
		views[i] = toEquipmentView(&equipment[i])
	}
	writeJSON(w, http.StatusOK, listResponse{Items: views, Total: total, Page: page})
}

func (h *EquipmentHandler) SetMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req maintenanceRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	eq, err := h.equipmentService.SetMaintenanceCount(r.Context(), id, req.Count)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEquipmentView(eq))
}
