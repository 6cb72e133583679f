package service

import (
	"context"
	"time"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/billing"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, string, *domain.User, error) // access, refresh
	RefreshToken(ctx context.Context, refreshToken string) (string, string, error)
	GetUser(ctx context.Context, userID int32) (*domain.User, error)
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	// GetCustomer returns the customer with their full rental history.
	GetCustomer(ctx context.Context, id int32) (*domain.Customer, []domain.Rental, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error
	// DeleteCustomer tombstones; it refuses while the customer has open rentals.
	DeleteCustomer(ctx context.Context, id int32) error
	RestoreCustomer(ctx context.Context, id int32) error
	ListCustomers(ctx context.Context, includeDeleted bool, page, pageSize int32) ([]domain.Customer, int32, error)
	SearchCustomers(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error)
}

type EquipmentService interface {
	AddEquipment(ctx context.Context, eq *domain.Equipment) error
	GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, eq *domain.Equipment) error
	DeleteEquipment(ctx context.Context, id int32) error
	ListEquipment(ctx context.Context, page, pageSize int32) ([]domain.Equipment, int32, error)
	SetMaintenanceCount(ctx context.Context, id int32, count int32) (*domain.Equipment, error)
}

// CreateRentalInput is the service-level request for opening a rental.
type CreateRentalInput struct {
	CustomerID   int32
	SiteAddress  string
	StartDate    time.Time
	AdvancePaise int64
	Items        []billing.ItemRequest
}

// Invoice is the computed bill view for a rental.
type Invoice struct {
	Rental               *domain.Rental `json:"rental"`
	DurationDays         int32          `json:"duration_days"`
	DailyRatePaise       int64          `json:"daily_rate_paise"`
	TotalCalculatedPaise int64          `json:"total_calculated_paise"`
	TotalPaidPaise       int64          `json:"total_paid_paise"`
	BalancePaise         int64          `json:"balance_paise"`
}

type RentalService interface {
	CreateRental(ctx context.Context, in CreateRentalInput) (*domain.Rental, error)
	GetRental(ctx context.Context, id int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListCustomerRentals(ctx context.Context, customerID int32) ([]domain.Rental, error)
	ReturnRental(ctx context.Context, rentalID int32, in billing.ReturnInput) (*domain.Rental, error)
	AddPayment(ctx context.Context, rentalID int32, amountPaise int64, paidOn time.Time, note, recordedBy string) (*domain.Rental, error)
	// CustomerCredit reports the surplus currently transferable into the
	// given rental, with its per-source breakdown.
	CustomerCredit(ctx context.Context, customerID, excludeRentalID int32) (int64, []billing.CreditSource, error)
	GetInvoice(ctx context.Context, rentalID int32) (*Invoice, error)
}

type AnalyticsService interface {
	GetDashboardSummary(ctx context.Context) (*domain.DashboardSummary, error)
	GetMonthlyRevenue(ctx context.Context, months int) ([]domain.MonthlyRevenue, error)
	GetOutstandingByCustomer(ctx context.Context) ([]domain.CustomerOutstanding, error)
}

type EmailService interface {
	// SendPaymentReminderDigest mails the staff alert address one digest
	// listing every rental with an outstanding balance.
	SendPaymentReminderDigest(ctx context.Context, rentals []domain.Rental) error
	// SendLongRentalAlert mails the staff alert address the active rentals
	// older than the configured threshold.
	SendLongRentalAlert(ctx context.Context, rentals []domain.Rental, thresholdDays int) error
	// SendPaymentReceipt mails the staff alert address a record of a single
	// recorded payment.
	SendPaymentReceipt(ctx context.Context, rental *domain.Rental, amountPaise int64) error
	// SendReturnSummary mails the staff alert address the settlement result
	// of a returned rental.
	SendReturnSummary(ctx context.Context, rental *domain.Rental) error
}
