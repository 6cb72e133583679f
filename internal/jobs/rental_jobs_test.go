package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/config"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"

	"github.com/stretchr/testify/mock"
)

type mockRentalRepo struct {
	mock.Mock
}

func (m *mockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *mockRentalRepo) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *mockRentalRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *mockRentalRepo) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *mockRentalRepo) ListActiveStartedBefore(ctx context.Context, before time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendPaymentReminderDigest(ctx context.Context, rentals []domain.Rental) error {
	args := m.Called(ctx, rentals)
	return args.Error(0)
}
func (m *mockEmailService) SendLongRentalAlert(ctx context.Context, rentals []domain.Rental, thresholdDays int) error {
	args := m.Called(ctx, rentals, thresholdDays)
	return args.Error(0)
}
func (m *mockEmailService) SendPaymentReceipt(ctx context.Context, rental *domain.Rental, amountPaise int64) error {
	args := m.Called(ctx, rental, amountPaise)
	return args.Error(0)
}
func (m *mockEmailService) SendReturnSummary(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Billing.LongRentalAlertDays = 90
	return cfg
}

func TestSendPaymentReminders(t *testing.T) {
	rentalRepo := new(mockRentalRepo)
	email := new(mockEmailService)
	jr := NewJobRunner(rentalRepo, email, testConfig())

	calc := int64(100000)
	owing := domain.Rental{ID: 1, Status: domain.RentalStatusPaymentDue,
		AdvancePaise: 20000, TotalCalculatedPaise: &calc}
	// Fully paid but still flagged due; must be filtered out of the digest.
	cleared := domain.Rental{ID: 2, Status: domain.RentalStatusPaymentDue,
		AdvancePaise: calc, TotalCalculatedPaise: &calc}

	rentalRepo.On("ListByStatus", mock.Anything, domain.RentalStatusPaymentDue).
		Return([]domain.Rental{owing, cleared}, nil)
	email.On("SendPaymentReminderDigest", mock.Anything, []domain.Rental{owing}).Return(nil)

	jr.SendPaymentReminders()

	email.AssertExpectations(t)
}

func TestSendPaymentReminders_NothingDue(t *testing.T) {
	rentalRepo := new(mockRentalRepo)
	email := new(mockEmailService)
	jr := NewJobRunner(rentalRepo, email, testConfig())

	rentalRepo.On("ListByStatus", mock.Anything, domain.RentalStatusPaymentDue).
		Return([]domain.Rental{}, nil)

	jr.SendPaymentReminders()

	email.AssertNotCalled(t, "SendPaymentReminderDigest", mock.Anything, mock.Anything)
}

func TestSendLongRentalAlerts(t *testing.T) {
	rentalRepo := new(mockRentalRepo)
	email := new(mockEmailService)
	jr := NewJobRunner(rentalRepo, email, testConfig())

	old := domain.Rental{ID: 3, Status: domain.RentalStatusActive,
		StartDate: time.Now().AddDate(0, 0, -120)}

	rentalRepo.On("ListActiveStartedBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]domain.Rental{old}, nil)
	email.On("SendLongRentalAlert", mock.Anything, []domain.Rental{old}, 90).Return(nil)

	jr.SendLongRentalAlerts()

	email.AssertExpectations(t)
}
