package billing

import (
	"testing"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"

	"github.com/stretchr/testify/assert"
)

func settledRental(id int32, start string, calculated, advance int64, payments ...int64) domain.Rental {
	r := domain.Rental{
		ID:                   id,
		StartDate:            date(start),
		AdvancePaise:         advance,
		TotalCalculatedPaise: &calculated,
	}
	for _, p := range payments {
		r.Payments = append(r.Payments, domain.PaymentEntry{RentalID: id, AmountPaise: p})
	}
	if r.BalancePaise() <= ClosePaise {
		r.Status = domain.RentalStatusClosed
	} else {
		r.Status = domain.RentalStatusPaymentDue
	}
	return r
}

func TestAvailableCredit(t *testing.T) {
	t.Run("Only overpaid settled rentals contribute", func(t *testing.T) {
		rentals := []domain.Rental{
			settledRental(1, "2024-01-01", 100000, 0, 130000), // overpaid 300
			settledRental(2, "2024-02-01", 100000, 0, 100000), // exactly paid
			settledRental(3, "2024-03-01", 100000, 0, 60000),  // underpaid
		}
		sources := AvailableCredit(rentals, 99)
		assert.Len(t, sources, 1)
		assert.Equal(t, int32(1), sources[0].RentalID)
		assert.Equal(t, int64(30000), sources[0].SurplusPaise)
	})

	t.Run("Rental being settled is excluded", func(t *testing.T) {
		rentals := []domain.Rental{
			settledRental(5, "2024-01-01", 100000, 0, 150000),
		}
		assert.Empty(t, AvailableCredit(rentals, 5))
	})

	t.Run("Active rentals never contribute", func(t *testing.T) {
		active := domain.Rental{
			ID:           7,
			StartDate:    date("2024-01-01"),
			Status:       domain.RentalStatusActive,
			AdvancePaise: 500000,
		}
		assert.Empty(t, AvailableCredit([]domain.Rental{active}, 99))
	})
}

func TestPlanCreditDraws(t *testing.T) {
	t.Run("Oldest source first", func(t *testing.T) {
		sources := []CreditSource{
			{RentalID: 2, StartDate: date("2024-02-01"), SurplusPaise: 40000},
			{RentalID: 1, StartDate: date("2024-01-01"), SurplusPaise: 30000},
		}
		draws, err := PlanCreditDraws(sources, 50000)
		assert.NoError(t, err)
		assert.Equal(t, []CreditDraw{
			{RentalID: 1, AmountPaise: 30000},
			{RentalID: 2, AmountPaise: 20000},
		}, draws)
	})

	t.Run("Each source capped at its own surplus", func(t *testing.T) {
		sources := []CreditSource{
			{RentalID: 1, StartDate: date("2024-01-01"), SurplusPaise: 30000},
			{RentalID: 2, StartDate: date("2024-02-01"), SurplusPaise: 10000},
		}
		draws, err := PlanCreditDraws(sources, 40000)
		assert.NoError(t, err)
		var total int64
		for _, d := range draws {
			assert.Positive(t, d.AmountPaise)
			total += d.AmountPaise
		}
		assert.Equal(t, int64(40000), total)
		assert.Equal(t, int64(30000), draws[0].AmountPaise)
		assert.Equal(t, int64(10000), draws[1].AmountPaise)
	})

	t.Run("Request beyond available fails fast", func(t *testing.T) {
		sources := []CreditSource{
			{RentalID: 1, StartDate: date("2024-01-01"), SurplusPaise: 30000},
		}
		draws, err := PlanCreditDraws(sources, 30001)
		assert.ErrorIs(t, err, domain.ErrInsufficientCredit)
		assert.Nil(t, draws)
	})

	t.Run("Zero request plans nothing", func(t *testing.T) {
		draws, err := PlanCreditDraws(nil, 0)
		assert.NoError(t, err)
		assert.Nil(t, draws)
	})

	t.Run("Scenario: closed rental overpaid by 300 funds new settlement", func(t *testing.T) {
		// Customer has a closed rental overpaid by Rs 300; settling a new
		// rental with creditToApply=300 drains the source to zero.
		source := settledRental(1, "2024-01-01", 100000, 0, 130000)
		sources := AvailableCredit([]domain.Rental{source}, 2)
		draws, err := PlanCreditDraws(sources, 30000)
		assert.NoError(t, err)
		assert.Len(t, draws, 1)
		assert.Equal(t, int64(30000), draws[0].AmountPaise)

		// Applying the draw as a negative ledger entry zeroes the surplus.
		source.Payments = append(source.Payments, domain.PaymentEntry{
			RentalID: 1, AmountPaise: -draws[0].AmountPaise,
		})
		assert.Equal(t, int64(0), source.BalancePaise())
	})
}
