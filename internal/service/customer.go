package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/logger"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/repository"
)

var ErrCustomerHasOpenRentals = errors.New("customer has open rentals")

type customerService struct {
	customerRepo repository.CustomerRepository
	rentalRepo   repository.RentalRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, rentalRepo repository.RentalRepository) CustomerService {
	return &customerService{customerRepo: customerRepo, rentalRepo: rentalRepo}
}

func (s *customerService) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	logger.EnterMethod("customerService.CreateCustomer", "name", customer.Name)
	customer.Status = domain.CustomerStatusActive
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		logger.ExitMethodWithError("customerService.CreateCustomer", err)
		return err
	}
	logger.ExitMethod("customerService.CreateCustomer", "customerID", customer.ID)
	return nil
}

func (s *customerService) GetCustomer(ctx context.Context, id int32) (*domain.Customer, []domain.Rental, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rentals, err := s.rentalRepo.ListByCustomer(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return customer, rentals, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customer *domain.Customer) error {
	return s.customerRepo.Update(ctx, customer)
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int32) error {
	logger.EnterMethod("customerService.DeleteCustomer", "customerID", id)

	rentals, err := s.rentalRepo.ListByCustomer(ctx, id)
	if err != nil {
		return err
	}
	for _, r := range rentals {
		if r.Status == domain.RentalStatusActive || r.Status == domain.RentalStatusPaymentDue {
			return fmt.Errorf("rental %d is still open: %w", r.ID, ErrCustomerHasOpenRentals)
		}
	}

	if err := s.customerRepo.Tombstone(ctx, id); err != nil {
		logger.ExitMethodWithError("customerService.DeleteCustomer", err, "customerID", id)
		return err
	}
	logger.ExitMethod("customerService.DeleteCustomer", "customerID", id)
	return nil
}

func (s *customerService) RestoreCustomer(ctx context.Context, id int32) error {
	return s.customerRepo.Restore(ctx, id)
}

func (s *customerService) ListCustomers(ctx context.Context, includeDeleted bool, page, pageSize int32) ([]domain.Customer, int32, error) {
	return s.customerRepo.List(ctx, includeDeleted, page, pageSize)
}

func (s *customerService) SearchCustomers(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error) {
	return s.customerRepo.Search(ctx, query, page, pageSize)
}
