package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive     RentalStatus = "ACTIVE"
	RentalStatusPaymentDue RentalStatus = "PAYMENT_DUE"
	RentalStatusClosed     RentalStatus = "CLOSED"
)

// RentalItem is one equipment line on a rental. EquipmentName and
// RatePerDayPaise are snapshots taken at rental creation; later edits to the
// equipment record do not affect a rental already written.
type RentalItem struct {
	ID              int32  `json:"id"`
	RentalID        int32  `json:"rental_id"`
	EquipmentID     int32  `json:"equipment_id"`
	EquipmentName   string `json:"equipment_name"`
	Quantity        int32  `json:"quantity"`
	RatePerDayPaise int64  `json:"rate_per_day_paise"`
}

// PaymentEntry is one row of a rental's append-only payment ledger.
// AmountPaise is signed: positive for money received, negative for refunds
// and credit transferred out to another rental. Entries are never edited or
// deleted; corrections are made with offsetting entries.
type PaymentEntry struct {
	ID          int32     `json:"id"`
	RentalID    int32     `json:"rental_id"`
	AmountPaise int64     `json:"amount_paise"`
	PaidOn      time.Time `json:"paid_on"`
	Note        string    `json:"note"`
	CreatedOn   time.Time `json:"created_on"`
}

type Rental struct {
	ID         int32 `json:"id"`
	CustomerID int32 `json:"customer_id"`
	// CustomerName is a creation-time snapshot kept for display on historical
	// records; it is intentionally not synced with later customer renames.
	CustomerName string `json:"customer_name"`
	SiteAddress  string `json:"site_address"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	Items []RentalItem `json:"items"`

	Status       RentalStatus `json:"status"`
	AdvancePaise int64        `json:"advance_paise"`
	// TotalCalculatedPaise is set exactly once, when the rental is settled.
	TotalCalculatedPaise *int64 `json:"total_calculated_paise,omitempty"`

	Payments []PaymentEntry `json:"payments"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// TotalPaidPaise re-derives the paid total from the advance and the full
// ledger instead of trusting a stored running sum.
func (r *Rental) TotalPaidPaise() int64 {
	total := r.AdvancePaise
	for _, p := range r.Payments {
		total += p.AmountPaise
	}
	return total
}

// BalancePaise is calculated minus paid. Zero until the rental is settled.
func (r *Rental) BalancePaise() int64 {
	if r.TotalCalculatedPaise == nil {
		return 0
	}
	return *r.TotalCalculatedPaise - r.TotalPaidPaise()
}

func (r *Rental) IsSettled() bool {
	return r.TotalCalculatedPaise != nil
}
