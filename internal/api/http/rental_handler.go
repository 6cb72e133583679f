package http

import (
	"net/http"
	"time"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/billing"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/service"

	"github.com/gorilla/mux"
)

type RentalHandler struct {
	rentalService service.RentalService
}

func NewRentalHandler(rentalService service.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

func (h *RentalHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("", h.Create).Methods("POST")
	router.HandleFunc("", h.List).Methods("GET")
	router.HandleFunc("/{id:[0-9]+}", h.Get).Methods("GET")
	router.HandleFunc("/{id:[0-9]+}/payments", h.AddPayment).Methods("POST")
	router.HandleFunc("/{id:[0-9]+}/return", h.Return).Methods("POST")
	router.HandleFunc("/{id:[0-9]+}/invoice", h.Invoice).Methods("GET")
	router.HandleFunc("/{id:[0-9]+}/credit", h.Credit).Methods("GET")
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	startDate, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]billing.ItemRequest, len(req.Items))
	for i, it := range req.Items {
		items[i] = billing.ItemRequest{EquipmentID: it.EquipmentID, Quantity: it.Quantity}
	}

	rental, err := h.rentalService.CreateRental(r.Context(), service.CreateRentalInput{
		CustomerID:   req.CustomerID,
		SiteAddress:  req.SiteAddress,
		StartDate:    startDate,
		AdvancePaise: req.AdvancePaise,
		Items:        items,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.rentalService.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	if customerID := queryInt32(r, "customer_id", 0); customerID > 0 {
		rentals, err := h.rentalService.ListCustomerRentals(r.Context(), customerID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, listResponse{Items: rentals, Total: int32(len(rentals)), Page: 1})
		return
	}

	rentals, total, err := h.rentalService.ListRentals(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: rentals, Total: total, Page: page})
}

func (h *RentalHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req paymentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	paidOn, err := parseDate("paid_on", req.PaidOn)
	if err != nil {
		writeError(w, err)
		return
	}
	if paidOn.IsZero() {
		paidOn = time.Now()
	}

	rental, err := h.rentalService.AddPayment(r.Context(), id, req.AmountPaise, paidOn, req.Note, recordedBy(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req returnRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	returnDate, err := parseDate("return_date", req.ReturnDate)
	if err != nil {
		writeError(w, err)
		return
	}
	if returnDate.IsZero() {
		returnDate = time.Now()
	}

	rental, err := h.rentalService.ReturnRental(r.Context(), id, billing.ReturnInput{
		ReturnDate:   returnDate,
		PaymentPaise: req.PaymentPaise,
		CreditPaise:  req.CreditPaise,
		RefundPaise:  req.RefundPaise,
		Note:         req.Note,
		RecordedBy:   recordedBy(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	invoice, err := h.rentalService.GetInvoice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

// Credit previews the surplus transferable into this rental from the same
// customer's other settled rentals.
func (h *RentalHandler) Credit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.rentalService.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	total, sources, err := h.rentalService.CustomerCredit(r.Context(), rental.CustomerID, rental.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_paise": total,
		"sources":     sources,
	})
}
