package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/logger"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/service"

	"github.com/go-playground/validator/v10"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain and service errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var stockErr *domain.InsufficientStockError
	var equipErr *domain.EquipmentNotFoundError
	var validationErrs validator.ValidationErrors

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &stockErr):
		status = http.StatusConflict
	case errors.As(err, &equipErr):
		status = http.StatusNotFound
	case errors.As(err, &validationErrs):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrTransactionConflict),
		errors.Is(err, domain.ErrInsufficientCredit),
		errors.Is(err, domain.ErrRentalNotActive),
		errors.Is(err, domain.ErrRentalAlreadySettled),
		errors.Is(err, domain.ErrMaintenanceOutOfRange),
		errors.Is(err, domain.ErrTotalBelowCommitted),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrCustomerDeleted),
		errors.Is(err, service.ErrCustomerHasOpenRentals):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
