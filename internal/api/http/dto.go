package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var errBadRequest = errors.New("bad request")

var validate = validator.New()

// decodeAndValidate decodes the JSON body into dst and runs validator tags.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body", errBadRequest)
	}
	if err := validate.Struct(dst); err != nil {
		return err
	}
	return nil
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", errBadRequest, name)
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v <= 0 {
		return fallback
	}
	return int32(v)
}

// parseDate parses a YYYY-MM-DD date field; empty input yields the zero time.
func parseDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", errBadRequest, field)
	}
	return t, nil
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type customerRequest struct {
	Name          string `json:"name" validate:"required,min=2"`
	Phone         string `json:"phone" validate:"required,min=10"`
	Address       string `json:"address"`
	PhotoURL      string `json:"photo_url"`
	IDProofURL    string `json:"id_proof_url"`
	MediatorName  string `json:"mediator_name"`
	MediatorPhone string `json:"mediator_phone"`
}

type equipmentRequest struct {
	Name            string `json:"name" validate:"required,min=2"`
	Category        string `json:"category"`
	RatePerDayPaise int64  `json:"rate_per_day_paise" validate:"required,gt=0"`
	PhotoURL        string `json:"photo_url"`
	TotalManaged    int32  `json:"total_managed" validate:"gte=0"`
}

type maintenanceRequest struct {
	Count int32 `json:"count" validate:"gte=0"`
}

type rentalItemRequest struct {
	EquipmentID int32 `json:"equipment_id" validate:"required,gt=0"`
	Quantity    int32 `json:"quantity" validate:"required,gt=0"`
}

type createRentalRequest struct {
	CustomerID   int32               `json:"customer_id" validate:"required,gt=0"`
	SiteAddress  string              `json:"site_address"`
	StartDate    string              `json:"start_date"`
	AdvancePaise int64               `json:"advance_paise" validate:"gte=0"`
	Items        []rentalItemRequest `json:"items" validate:"required,min=1,dive"`
}

type paymentRequest struct {
	AmountPaise int64  `json:"amount_paise" validate:"required,gt=0"`
	PaidOn      string `json:"paid_on"`
	Note        string `json:"note"`
}

type returnRequest struct {
	ReturnDate   string `json:"return_date"`
	PaymentPaise int64  `json:"payment_paise" validate:"gte=0"`
	CreditPaise  int64  `json:"credit_paise" validate:"gte=0"`
	RefundPaise  int64  `json:"refund_paise" validate:"gte=0"`
	Note         string `json:"note"`
}

type listResponse struct {
	Items interface{} `json:"items"`
	Total int32       `json:"total"`
	Page  int32       `json:"page"`
}
