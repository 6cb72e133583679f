package http

import (
	"net/http"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/service"

	"github.com/gorilla/mux"
)

type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

func (h *CustomerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("", h.Create).Methods("POST")
	router.HandleFunc("", h.List).Methods("GET")
	router.HandleFunc("/search", h.Search).Methods("GET")
	router.HandleFunc("/{id:[0-9]+}", h.Get).Methods("GET")
	router.HandleFunc("/{id:[0-9]+}", h.Update).Methods("PUT")
	router.HandleFunc("/{id:[0-9]+}", h.Delete).Methods("DELETE")
	router.HandleFunc("/{id:[0-9]+}/restore", h.Restore).Methods("POST")
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	customer := &domain.Customer{
		Name:          req.Name,
		Phone:         req.Phone,
		Address:       req.Address,
		PhotoURL:      req.PhotoURL,
		IDProofURL:    req.IDProofURL,
		MediatorName:  req.MediatorName,
		MediatorPhone: req.MediatorPhone,
	}
	if err := h.customerService.CreateCustomer(r.Context(), customer); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	customer, rentals, err := h.customerService.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"customer": customer,
		"rentals":  rentals,
	})
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req customerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	customer, _, err := h.customerService.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.PhotoURL = req.PhotoURL
	customer.IDProofURL = req.IDProofURL
	customer.MediatorName = req.MediatorName
	customer.MediatorPhone = req.MediatorPhone

	if err := h.customerService.UpdateCustomer(r.Context(), customer); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.customerService.DeleteCustomer(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *CustomerHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.customerService.RestoreCustomer(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	includeDeleted := r.URL.Query().Get("include_deleted") == "true"

	customers, total, err := h.customerService.ListCustomers(r.Context(), includeDeleted, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: customers, Total: total, Page: page})
}

func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	customers, total, err := h.customerService.SearchCustomers(r.Context(), query, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: customers, Total: total, Page: page})
}
