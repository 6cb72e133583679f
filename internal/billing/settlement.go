package billing

import (
	"fmt"
	"time"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
)

// ItemRequest is one requested line on a new rental.
type ItemRequest struct {
	EquipmentID int32
	Quantity    int32
}

// CounterDelta is a planned change to an equipment's onRent counter. The
// executor applies it clamped so onRent never goes negative.
type CounterDelta struct {
	EquipmentID int32
	OnRentDelta int32
}

// PlanRentalItems validates a create-rental request against transactionally
// fresh equipment reads and freezes names and rates onto the line items.
// Any line whose quantity exceeds the derived available count fails the
// whole plan with InsufficientStockError before anything is written.
func PlanRentalItems(requests []ItemRequest, equipment map[int32]*domain.Equipment) ([]domain.RentalItem, []CounterDelta, error) {
	if len(requests) == 0 {
		return nil, nil, fmt.Errorf("rental must have at least one item")
	}

	items := make([]domain.RentalItem, 0, len(requests))
	deltas := make([]CounterDelta, 0, len(requests))
	for _, req := range requests {
		eq, ok := equipment[req.EquipmentID]
		if !ok || eq == nil {
			return nil, nil, &domain.EquipmentNotFoundError{EquipmentID: req.EquipmentID}
		}
		if req.Quantity <= 0 {
			return nil, nil, fmt.Errorf("quantity for equipment %d must be positive", req.EquipmentID)
		}
		if req.Quantity > eq.Available() {
			return nil, nil, &domain.InsufficientStockError{
				EquipmentID: req.EquipmentID,
				Requested:   req.Quantity,
				Available:   eq.Available(),
			}
		}
		items = append(items, domain.RentalItem{
			EquipmentID:     eq.ID,
			EquipmentName:   eq.Name,
			Quantity:        req.Quantity,
			RatePerDayPaise: eq.RatePerDayPaise,
		})
		deltas = append(deltas, CounterDelta{EquipmentID: eq.ID, OnRentDelta: req.Quantity})
	}
	return items, deltas, nil
}

// ReturnInput carries everything the caller supplies at return time.
type ReturnInput struct {
	ReturnDate   time.Time
	PaymentPaise int64
	CreditPaise  int64
	RefundPaise  int64
	Note         string
	RecordedBy   string
}

// SourceDebit is a ledger entry to append on a credit-source rental.
type SourceDebit struct {
	RentalID int32
	Entry    domain.PaymentEntry
}

// ReturnPlan is the full set of writes a return/settlement must commit.
type ReturnPlan struct {
	DurationDays         int32
	TotalCalculatedPaise int64
	TotalPaidPaise       int64
	NewStatus            domain.RentalStatus
	EndDate              time.Time

	// Entries to append to the rental being settled, in order.
	Entries []domain.PaymentEntry
	// Debits to append on credit-source rentals.
	SourceDebits []SourceDebit
	// Equipment counter adjustments for the returned quantities.
	EquipmentDeltas []CounterDelta
}

// PlanReturn computes the settlement of an active rental: the accrued bill,
// the ledger entries for credit applied, payment made and refund given, the
// resulting status, and the inventory counter releases. otherRentals are
// the customer's other rentals, read in the same transaction, used to fund
// the credit transfer. All referenced equipment must be present in the
// equipment map or the plan fails with EquipmentNotFoundError.
func PlanReturn(rental *domain.Rental, otherRentals []domain.Rental, equipment map[int32]*domain.Equipment, in ReturnInput) (*ReturnPlan, error) {
	if rental.Status != domain.RentalStatusActive {
		return nil, domain.ErrRentalNotActive
	}
	if rental.IsSettled() {
		return nil, domain.ErrRentalAlreadySettled
	}
	if in.PaymentPaise < 0 || in.CreditPaise < 0 || in.RefundPaise < 0 {
		return nil, fmt.Errorf("payment, credit and refund amounts must not be negative")
	}

	for _, it := range rental.Items {
		if _, ok := equipment[it.EquipmentID]; !ok {
			return nil, &domain.EquipmentNotFoundError{EquipmentID: it.EquipmentID}
		}
	}

	plan := &ReturnPlan{}

	// Credit draw runs first so a stale credit request aborts before any
	// bill arithmetic.
	if in.CreditPaise > 0 {
		sources := AvailableCredit(otherRentals, rental.ID)
		draws, err := PlanCreditDraws(sources, in.CreditPaise)
		if err != nil {
			return nil, err
		}
		for _, d := range draws {
			plan.SourceDebits = append(plan.SourceDebits, SourceDebit{
				RentalID: d.RentalID,
				Entry: domain.PaymentEntry{
					RentalID:    d.RentalID,
					AmountPaise: -d.AmountPaise,
					PaidOn:      in.ReturnDate,
					Note:        fmt.Sprintf("Credit transferred to rental #%d", rental.ID),
				},
			})
		}
	}

	plan.DurationDays = RentalDays(rental.StartDate, in.ReturnDate)
	plan.TotalCalculatedPaise = int64(plan.DurationDays) * DailyRatePaise(rental.Items)

	endDate := dateOnly(in.ReturnDate)
	if endDate.Before(dateOnly(rental.StartDate)) {
		endDate = dateOnly(rental.StartDate)
	}
	plan.EndDate = endDate

	appendEntry := func(amount int64, note string) {
		plan.Entries = append(plan.Entries, domain.PaymentEntry{
			RentalID:    rental.ID,
			AmountPaise: amount,
			PaidOn:      in.ReturnDate,
			Note:        note,
		})
	}
	stamp := func(base string) string {
		if in.RecordedBy == "" {
			return base
		}
		return base + " by " + in.RecordedBy
	}
	if in.CreditPaise > 0 {
		appendEntry(in.CreditPaise, stamp("Credit applied from earlier rentals"))
	}
	if in.PaymentPaise > 0 {
		appendEntry(in.PaymentPaise, stamp("Payment at return"))
	}
	if in.RefundPaise > 0 {
		appendEntry(-in.RefundPaise, stamp("Refund to customer"))
	}
	if in.Note != "" {
		if len(plan.Entries) > 0 {
			plan.Entries[len(plan.Entries)-1].Note += " - " + in.Note
		} else {
			// No money moved at return; a zero-amount entry keeps the note
			// on the ledger.
			appendEntry(0, stamp(in.Note))
		}
	}

	plan.TotalPaidPaise = rental.TotalPaidPaise() + in.CreditPaise + in.PaymentPaise - in.RefundPaise
	plan.NewStatus = StatusForSettled(plan.TotalCalculatedPaise, plan.TotalPaidPaise)

	for _, it := range rental.Items {
		plan.EquipmentDeltas = append(plan.EquipmentDeltas, CounterDelta{
			EquipmentID: it.EquipmentID,
			OnRentDelta: -it.Quantity,
		})
	}

	return plan, nil
}

// PaymentPlan is the write set for an add-payment action.
type PaymentPlan struct {
	Entry          domain.PaymentEntry
	TotalPaidPaise int64
	NewStatus      domain.RentalStatus
}

// PlanAddPayment appends a positive ledger entry and re-derives the paid
// total and status. Equipment is never touched by a payment. Unsettled
// rentals keep their Active status; settled ones may flip Payment Due to
// Closed once the balance falls inside the close tolerance.
func PlanAddPayment(rental *domain.Rental, amountPaise int64, paidOn time.Time, note, recordedBy string) (*PaymentPlan, error) {
	if amountPaise <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}
	if note == "" {
		note = "Payment received"
	}
	if recordedBy != "" {
		note += " by " + recordedBy
	}

	plan := &PaymentPlan{
		Entry: domain.PaymentEntry{
			RentalID:    rental.ID,
			AmountPaise: amountPaise,
			PaidOn:      paidOn,
			Note:        note,
		},
	}
	plan.TotalPaidPaise = rental.TotalPaidPaise() + amountPaise
	if rental.IsSettled() {
		plan.NewStatus = StatusForSettled(*rental.TotalCalculatedPaise, plan.TotalPaidPaise)
	} else {
		plan.NewStatus = rental.Status
	}
	return plan, nil
}
