package postgres

import (
	"context"
	"database/sql"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/repository"
)

type analyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) repository.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	summary := &domain.DashboardSummary{}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			count(*) FILTER (WHERE status = 'ACTIVE'),
			count(*) FILTER (WHERE status = 'PAYMENT_DUE'),
			count(*) FILTER (WHERE status = 'CLOSED')
		FROM rentals`).Scan(&summary.ActiveRentals, &summary.PaymentDueRentals, &summary.ClosedRentals)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM customers WHERE status = 'ACTIVE'`).Scan(&summary.ActiveCustomers)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_managed), 0), COALESCE(SUM(on_rent), 0)
		FROM equipment WHERE deleted_on IS NULL`).Scan(&summary.EquipmentTotal, &summary.EquipmentOnRent)
	if err != nil {
		return nil, err
	}

	// Outstanding counts only settled rentals: an active rental has no
	// calculated total yet, so it cannot owe anything.
	err = r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(GREATEST(r.total_calculated_paise - r.advance_paise - COALESCE(p.paid, 0), 0)), 0)
		FROM rentals r
		LEFT JOIN (
			SELECT rental_id, SUM(amount_paise) AS paid FROM rental_payments GROUP BY rental_id
		) p ON p.rental_id = r.id
		WHERE r.status = 'PAYMENT_DUE'`).Scan(&summary.OutstandingPaise)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_paise), 0) FROM rental_payments WHERE amount_paise > 0`).Scan(&summary.CollectedPaise)
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func (r *analyticsRepository) MonthlyRevenue(ctx context.Context, months int) ([]domain.MonthlyRevenue, error) {
	if months < 1 {
		months = 12
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(date_trunc('month', paid_on), 'YYYY-MM') AS month,
		       COALESCE(SUM(amount_paise), 0),
		       count(*)
		FROM rental_payments
		WHERE amount_paise > 0
		  AND paid_on >= date_trunc('month', now()) - ($1 || ' months')::interval
		GROUP BY 1
		ORDER BY 1`, months-1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MonthlyRevenue
	for rows.Next() {
		var m domain.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.RevenuePaise, &m.Payments); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *analyticsRepository) OutstandingByCustomer(ctx context.Context) ([]domain.CustomerOutstanding, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name,
		       count(*) FILTER (WHERE r.status IN ('ACTIVE', 'PAYMENT_DUE')),
		       COALESCE(SUM(
		           CASE WHEN r.status = 'PAYMENT_DUE'
		                THEN GREATEST(r.total_calculated_paise - r.advance_paise - COALESCE(p.paid, 0), 0)
		                ELSE 0 END), 0) AS outstanding
		FROM customers c
		JOIN rentals r ON r.customer_id = c.id
		LEFT JOIN (
			SELECT rental_id, SUM(amount_paise) AS paid FROM rental_payments GROUP BY rental_id
		) p ON p.rental_id = r.id
		GROUP BY c.id, c.name
		HAVING count(*) FILTER (WHERE r.status IN ('ACTIVE', 'PAYMENT_DUE')) > 0
		ORDER BY outstanding DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CustomerOutstanding
	for rows.Next() {
		var c domain.CustomerOutstanding
		if err := rows.Scan(&c.CustomerID, &c.CustomerName, &c.OpenRentals, &c.OutstandingPaise); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
