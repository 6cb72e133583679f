package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/billing"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRentalService struct {
	mock.Mock
}

func (m *mockRentalService) CreateRental(ctx context.Context, in service.CreateRentalInput) (*domain.Rental, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *mockRentalService) GetRental(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *mockRentalService) ListRentals(ctx context.Context, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *mockRentalService) ListCustomerRentals(ctx context.Context, customerID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *mockRentalService) ReturnRental(ctx context.Context, rentalID int32, in billing.ReturnInput) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *mockRentalService) AddPayment(ctx context.Context, rentalID int32, amountPaise int64, paidOn time.Time, note, recordedBy string) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID, amountPaise, paidOn, note, recordedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *mockRentalService) CustomerCredit(ctx context.Context, customerID, excludeRentalID int32) (int64, []billing.CreditSource, error) {
	args := m.Called(ctx, customerID, excludeRentalID)
	return args.Get(0).(int64), args.Get(1).([]billing.CreditSource), args.Error(2)
}
func (m *mockRentalService) GetInvoice(ctx context.Context, rentalID int32) (*service.Invoice, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Invoice), args.Error(1)
}

func newRentalRouter(svc service.RentalService) *mux.Router {
	router := mux.NewRouter()
	NewRentalHandler(svc).RegisterRoutes(router.PathPrefix("/rentals").Subrouter())
	return router
}

func TestRentalHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(mockRentalService)
		router := newRentalRouter(svc)

		svc.On("CreateRental", mock.Anything, mock.AnythingOfType("service.CreateRentalInput")).
			Return(&domain.Rental{ID: 42, Status: domain.RentalStatusActive}, nil)

		body, _ := json.Marshal(map[string]interface{}{
			"customer_id":   7,
			"start_date":    "2026-03-01",
			"advance_paise": 100000,
			"items":         []map[string]interface{}{{"equipment_id": 5, "quantity": 2}},
		})
		req := httptest.NewRequest("POST", "/rentals", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var rental domain.Rental
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rental))
		assert.Equal(t, int32(42), rental.ID)
	})

	t.Run("MissingItems", func(t *testing.T) {
		svc := new(mockRentalService)
		router := newRentalRouter(svc)

		body, _ := json.Marshal(map[string]interface{}{"customer_id": 7})
		req := httptest.NewRequest("POST", "/rentals", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "CreateRental", mock.Anything, mock.Anything)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		svc := new(mockRentalService)
		router := newRentalRouter(svc)

		svc.On("CreateRental", mock.Anything, mock.Anything).
			Return(nil, &domain.InsufficientStockError{EquipmentID: 5, Requested: 6, Available: 5})

		body, _ := json.Marshal(map[string]interface{}{
			"customer_id": 7,
			"items":       []map[string]interface{}{{"equipment_id": 5, "quantity": 6}},
		})
		req := httptest.NewRequest("POST", "/rentals", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestRentalHandler_Return(t *testing.T) {
	t.Run("Conflict", func(t *testing.T) {
		svc := new(mockRentalService)
		router := newRentalRouter(svc)

		svc.On("ReturnRental", mock.Anything, int32(9), mock.AnythingOfType("billing.ReturnInput")).
			Return(nil, domain.ErrTransactionConflict)

		body, _ := json.Marshal(map[string]interface{}{
			"return_date":   "2026-03-10",
			"payment_paise": 50000,
		})
		req := httptest.NewRequest("POST", "/rentals/9/return", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("StaleCredit", func(t *testing.T) {
		svc := new(mockRentalService)
		router := newRentalRouter(svc)

		svc.On("ReturnRental", mock.Anything, int32(9), mock.AnythingOfType("billing.ReturnInput")).
			Return(nil, domain.ErrInsufficientCredit)

		body, _ := json.Marshal(map[string]interface{}{
			"return_date":  "2026-03-10",
			"credit_paise": 30000,
		})
		req := httptest.NewRequest("POST", "/rentals/9/return", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestRentalHandler_Credit(t *testing.T) {
	svc := new(mockRentalService)
	router := newRentalRouter(svc)

	svc.On("GetRental", mock.Anything, int32(9)).
		Return(&domain.Rental{ID: 9, CustomerID: 7}, nil)
	svc.On("CustomerCredit", mock.Anything, int32(7), int32(9)).
		Return(int64(30000), []billing.CreditSource{{RentalID: 1, SurplusPaise: 30000}}, nil)

	req := httptest.NewRequest("GET", "/rentals/9/credit", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		TotalPaise int64                  `json:"total_paise"`
		Sources    []billing.CreditSource `json:"sources"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(30000), resp.TotalPaise)
	assert.Len(t, resp.Sources, 1)
}
