package billing

import (
	"sort"
	"time"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
)

// CreditSource is a settled rental holding surplus payment that can be
// transferred to another rental of the same customer.
type CreditSource struct {
	RentalID     int32     `json:"rental_id"`
	StartDate    time.Time `json:"start_date"`
	SurplusPaise int64     `json:"surplus_paise"`
}

// CreditDraw is one planned transfer out of a source rental.
type CreditDraw struct {
	RentalID    int32
	AmountPaise int64
}

// AvailableCredit scans a customer's rentals and returns the ones that can
// fund a credit transfer into the rental being settled: every rental other
// than excludeRentalID that is settled (Closed or Payment Due) with a
// negative balance, i.e. overpaid. Active rentals never contribute, even
// when their advance exceeds rent accrued so far.
func AvailableCredit(rentals []domain.Rental, excludeRentalID int32) []CreditSource {
	var sources []CreditSource
	for i := range rentals {
		r := &rentals[i]
		if r.ID == excludeRentalID {
			continue
		}
		if r.Status != domain.RentalStatusClosed && r.Status != domain.RentalStatusPaymentDue {
			continue
		}
		if !r.IsSettled() {
			continue
		}
		surplus := -r.BalancePaise()
		if surplus <= 0 {
			continue
		}
		sources = append(sources, CreditSource{
			RentalID:     r.ID,
			StartDate:    r.StartDate,
			SurplusPaise: surplus,
		})
	}
	return sources
}

// TotalCredit sums the surplus across sources.
func TotalCredit(sources []CreditSource) int64 {
	var total int64
	for _, s := range sources {
		total += s.SurplusPaise
	}
	return total
}

// PlanCreditDraws allocates requestedPaise across the sources, oldest start
// date first, each source capped at its own surplus. If the request exceeds
// the true available credit (a stale read on the caller's side), it fails
// fast instead of planning a partial or negative draw.
func PlanCreditDraws(sources []CreditSource, requestedPaise int64) ([]CreditDraw, error) {
	if requestedPaise <= 0 {
		return nil, nil
	}
	if requestedPaise > TotalCredit(sources) {
		return nil, domain.ErrInsufficientCredit
	}

	ordered := make([]CreditSource, len(sources))
	copy(ordered, sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartDate.Before(ordered[j].StartDate)
	})

	var draws []CreditDraw
	remaining := requestedPaise
	for _, src := range ordered {
		if remaining <= 0 {
			break
		}
		draw := src.SurplusPaise
		if draw > remaining {
			draw = remaining
		}
		draws = append(draws, CreditDraw{RentalID: src.RentalID, AmountPaise: draw})
		remaining -= draw
	}
	return draws, nil
}
