package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/repository"

	"github.com/lib/pq"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, customer_id, customer_name, site_address, start_date, end_date, status, advance_paise, total_calculated_paise, created_on, updated_on`

// querier lets the same scan helpers serve both *sql.DB and *sql.Tx; the
// settlement executor reuses them inside its transactions.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func scanRental(row interface{ Scan(...interface{}) error }) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.CustomerID, &rt.CustomerName, &rt.SiteAddress, &rt.StartDate,
		&rt.EndDate, &rt.Status, &rt.AdvancePaise, &rt.TotalCalculatedPaise, &rt.CreatedOn, &rt.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func getRental(ctx context.Context, q querier, id int32, forUpdate bool) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rt, err := scanRental(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := loadRentalChildren(ctx, q, []*domain.Rental{rt}); err != nil {
		return nil, err
	}
	return rt, nil
}

// loadRentalChildren attaches line items and payment ledgers to the given
// rentals in two batched queries.
func loadRentalChildren(ctx context.Context, q querier, rentals []*domain.Rental) error {
	if len(rentals) == 0 {
		return nil
	}
	ids := make([]int32, 0, len(rentals))
	byID := make(map[int32]*domain.Rental, len(rentals))
	for _, rt := range rentals {
		ids = append(ids, rt.ID)
		byID[rt.ID] = rt
	}

	itemRows, err := q.QueryContext(ctx,
		`SELECT id, rental_id, equipment_id, equipment_name, quantity, rate_per_day_paise
		 FROM rental_items WHERE rental_id = ANY($1) ORDER BY id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var it domain.RentalItem
		if err := itemRows.Scan(&it.ID, &it.RentalID, &it.EquipmentID, &it.EquipmentName, &it.Quantity, &it.RatePerDayPaise); err != nil {
			return err
		}
		if rt, ok := byID[it.RentalID]; ok {
			rt.Items = append(rt.Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return err
	}

	payRows, err := q.QueryContext(ctx,
		`SELECT id, rental_id, amount_paise, paid_on, note, created_on
		 FROM rental_payments WHERE rental_id = ANY($1) ORDER BY id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer payRows.Close()
	for payRows.Next() {
		var p domain.PaymentEntry
		if err := payRows.Scan(&p.ID, &p.RentalID, &p.AmountPaise, &p.PaidOn, &p.Note, &p.CreatedOn); err != nil {
			return err
		}
		if rt, ok := byID[p.RentalID]; ok {
			rt.Payments = append(rt.Payments, p)
		}
	}
	return payRows.Err()
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	return getRental(ctx, r.db, id, false)
}

func listRentalsByCustomer(ctx context.Context, q querier, customerID int32, forUpdate bool) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE customer_id = $1 ORDER BY start_date`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := q.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*domain.Rental, len(rentals))
	for i := range rentals {
		ptrs[i] = &rentals[i]
	}
	if err := loadRentalChildren(ctx, q, ptrs); err != nil {
		return nil, err
	}
	return rentals, nil
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Rental, error) {
	return listRentalsByCustomer(ctx, r.db, customerID, false)
}

func (r *rentalRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	where := ``
	args := []interface{}{}
	if status != "" {
		where = ` WHERE status = $1`
		args = append(args, status)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rentals`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + rentalColumns + ` FROM rentals` + where + ` ORDER BY created_on DESC`
	if status != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	ptrs := make([]*domain.Rental, len(rentals))
	for i := range rentals {
		ptrs[i] = &rentals[i]
	}
	if err := loadRentalChildren(ctx, r.db, ptrs); err != nil {
		return nil, 0, err
	}
	return rentals, count, nil
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	rentals, _, err := r.List(ctx, string(status), 1, 10000)
	return rentals, err
}

func (r *rentalRepository) ListActiveStartedBefore(ctx context.Context, before time.Time) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+rentalColumns+` FROM rentals WHERE status = 'ACTIVE' AND start_date < $1 ORDER BY start_date`, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*domain.Rental, len(rentals))
	for i := range rentals {
		ptrs[i] = &rentals[i]
	}
	if err := loadRentalChildren(ctx, r.db, ptrs); err != nil {
		return nil, err
	}
	return rentals, nil
}
