package repository

import (
	"context"
	"time"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/billing"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	// Tombstone flips the customer to DELETED without removing the row, so
	// rentals referencing it stay resolvable.
	Tombstone(ctx context.Context, id int32) error
	Restore(ctx context.Context, id int32) error
	List(ctx context.Context, includeDeleted bool, page, pageSize int32) ([]domain.Customer, int32, error)
	Search(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Equipment, int32, error)
	// SetMaintenance sets the onMaintenance counter, atomically enforcing
	// 0 <= count <= totalManaged - onRent.
	SetMaintenance(ctx context.Context, id int32, count int32) (*domain.Equipment, error)
}

type RentalRepository interface {
	// GetByID returns the rental with its line items and full payment ledger.
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.Rental, error)
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	ListActiveStartedBefore(ctx context.Context, before time.Time) ([]domain.Rental, error)
}

// SettlementRepository runs the multi-document atomic operations: every
// method reads all referenced rows, plans via the billing package, and
// commits all writes in one transaction, retrying bounded times on
// serialization conflicts.
type SettlementRepository interface {
	CreateRental(ctx context.Context, rental *domain.Rental, requests []billing.ItemRequest) error
	ReturnRental(ctx context.Context, rentalID int32, in billing.ReturnInput) (*domain.Rental, error)
	AddPayment(ctx context.Context, rentalID int32, amountPaise int64, paidOn time.Time, note, recordedBy string) (*domain.Rental, error)
}

type AnalyticsRepository interface {
	DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error)
	MonthlyRevenue(ctx context.Context, months int) ([]domain.MonthlyRevenue, error)
	OutstandingByCustomer(ctx context.Context) ([]domain.CustomerOutstanding, error)
}
