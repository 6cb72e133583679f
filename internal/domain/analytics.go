package domain

// DashboardSummary is the headline view for the dashboard page.
type DashboardSummary struct {
	ActiveRentals     int32 `json:"active_rentals"`
	PaymentDueRentals int32 `json:"payment_due_rentals"`
	ClosedRentals     int32 `json:"closed_rentals"`
	ActiveCustomers   int32 `json:"active_customers"`
	EquipmentTotal    int32 `json:"equipment_total"`
	EquipmentOnRent   int32 `json:"equipment_on_rent"`
	OutstandingPaise  int64 `json:"outstanding_paise"`
	CollectedPaise    int64 `json:"collected_paise"`
}

// MonthlyRevenue buckets received payments by calendar month.
type MonthlyRevenue struct {
	Month        string `json:"month"` // YYYY-MM
	RevenuePaise int64  `json:"revenue_paise"`
	Payments     int32  `json:"payments"`
}

// CustomerOutstanding is one row of the receivables view.
type CustomerOutstanding struct {
	CustomerID       int32  `json:"customer_id"`
	CustomerName     string `json:"customer_name"`
	OpenRentals      int32  `json:"open_rentals"`
	OutstandingPaise int64  `json:"outstanding_paise"`
}
