package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/billing"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/logger"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/repository"
)

var ErrCustomerDeleted = errors.New("customer is deleted")

type rentalService struct {
	rentalRepo     repository.RentalRepository
	settlementRepo repository.SettlementRepository
	customerRepo   repository.CustomerRepository
	email          EmailService
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	settlementRepo repository.SettlementRepository,
	customerRepo repository.CustomerRepository,
	email EmailService,
) RentalService {
	return &rentalService{
		rentalRepo:     rentalRepo,
		settlementRepo: settlementRepo,
		customerRepo:   customerRepo,
		email:          email,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, in CreateRentalInput) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.CreateRental", "customerID", in.CustomerID, "lines", len(in.Items))

	customer, err := s.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.Status != domain.CustomerStatusActive {
		return nil, ErrCustomerDeleted
	}
	if in.AdvancePaise < 0 {
		return nil, fmt.Errorf("advance cannot be negative")
	}
	if in.StartDate.IsZero() {
		in.StartDate = time.Now()
	}

	rental := &domain.Rental{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		SiteAddress:  in.SiteAddress,
		StartDate:    in.StartDate,
		AdvancePaise: in.AdvancePaise,
	}
	if err := s.settlementRepo.CreateRental(ctx, rental, in.Items); err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err, "customerID", in.CustomerID)
		return nil, err
	}

	logger.ExitMethod("rentalService.CreateRental", "rentalID", rental.ID)
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, id int32) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

func (s *rentalService) ListRentals(ctx context.Context, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.List(ctx, status, page, pageSize)
}

func (s *rentalService) ListCustomerRentals(ctx context.Context, customerID int32) ([]domain.Rental, error) {
	return s.rentalRepo.ListByCustomer(ctx, customerID)
}

func (s *rentalService) ReturnRental(ctx context.Context, rentalID int32, in billing.ReturnInput) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.ReturnRental", "rentalID", rentalID,
		"paymentPaise", in.PaymentPaise, "creditPaise", in.CreditPaise)

	rental, err := s.settlementRepo.ReturnRental(ctx, rentalID, in)
	if err != nil {
		logger.ExitMethodWithError("rentalService.ReturnRental", err, "rentalID", rentalID)
		return nil, err
	}
	if err := s.email.SendReturnSummary(ctx, rental); err != nil {
		logger.Warn("Failed to send return summary email", "rentalID", rentalID, "error", err)
	}
	logger.ExitMethod("rentalService.ReturnRental", "rentalID", rentalID, "status", rental.Status)
	return rental, nil
}

func (s *rentalService) AddPayment(ctx context.Context, rentalID int32, amountPaise int64, paidOn time.Time, note, recordedBy string) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.AddPayment", "rentalID", rentalID, "amountPaise", amountPaise)

	rental, err := s.settlementRepo.AddPayment(ctx, rentalID, amountPaise, paidOn, note, recordedBy)
	if err != nil {
		logger.ExitMethodWithError("rentalService.AddPayment", err, "rentalID", rentalID)
		return nil, err
	}
	if err := s.email.SendPaymentReceipt(ctx, rental, amountPaise); err != nil {
		logger.Warn("Failed to send payment receipt email", "rentalID", rentalID, "error", err)
	}
	logger.ExitMethod("rentalService.AddPayment", "rentalID", rentalID, "status", rental.Status)
	return rental, nil
}

// CustomerCredit is a read-only preview; the settlement transaction
// re-derives the same numbers from locked rows before money moves, so a
// stale preview can never over-draw.
func (s *rentalService) CustomerCredit(ctx context.Context, customerID, excludeRentalID int32) (int64, []billing.CreditSource, error) {
	rentals, err := s.rentalRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return 0, nil, err
	}
	sources := billing.AvailableCredit(rentals, excludeRentalID)
	return billing.TotalCredit(sources), sources, nil
}

func (s *rentalService) GetInvoice(ctx context.Context, rentalID int32) (*Invoice, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	end := time.Now()
	if rental.EndDate != nil {
		end = *rental.EndDate
	}
	days := billing.RentalDays(rental.StartDate, end)
	dailyRate := billing.DailyRatePaise(rental.Items)

	total := int64(days) * dailyRate
	if rental.TotalCalculatedPaise != nil {
		total = *rental.TotalCalculatedPaise
	}
	paid := rental.TotalPaidPaise()

	return &Invoice{
		Rental:               rental,
		DurationDays:         days,
		DailyRatePaise:       dailyRate,
		TotalCalculatedPaise: total,
		TotalPaidPaise:       paid,
		BalancePaise:         total - paid,
	}, nil
}
