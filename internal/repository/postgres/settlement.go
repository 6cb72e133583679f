package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/billing"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/logger"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/repository"

	"github.com/lib/pq"
)

// settlementRepository runs the three multi-document operations. Each one
// follows the same discipline: open a serializable transaction, read every
// referenced row, hand the reads to the billing planner, apply the planned
// writes, commit. Serialization conflicts are retried up to maxRetries
// before the caller sees ErrTransactionConflict.
type settlementRepository struct {
	db         *sql.DB
	maxRetries int
}

func NewSettlementRepository(db *sql.DB, maxRetries int) repository.SettlementRepository {
	if maxRetries < 1 {
		maxRetries = 3
	}
	return &settlementRepository{db: db, maxRetries: maxRetries}
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 40001 serialization_failure, 40P01 deadlock_detected
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

func (r *settlementRepository) withTx(ctx context.Context, name string, fn func(tx *sql.Tx) error) error {
	for attempt := 1; ; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		if attempt >= r.maxRetries {
			logger.Warn("Transaction retries exhausted", "operation", name, "attempts", attempt)
			return fmt.Errorf("%s: %w", name, domain.ErrTransactionConflict)
		}
		logger.Debug("Retrying conflicting transaction", "operation", name, "attempt", attempt)
	}
}

func (r *settlementRepository) runOnce(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// lockEquipment reads the referenced equipment rows for update and returns
// them keyed by id. Missing rows are simply absent from the map; the
// billing planner decides whether that is fatal.
func lockEquipment(ctx context.Context, tx *sql.Tx, ids []int32) (map[int32]*domain.Equipment, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT `+equipmentColumns+` FROM equipment WHERE id = ANY($1) AND deleted_on IS NULL FOR UPDATE`,
		pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	equipment := make(map[int32]*domain.Equipment)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		equipment[e.ID] = e
	}
	return equipment, rows.Err()
}

func applyCounterDeltas(ctx context.Context, tx *sql.Tx, deltas []billing.CounterDelta) error {
	for _, d := range deltas {
		// Clamped at zero so a double-return can never drive onRent negative.
		_, err := tx.ExecContext(ctx,
			`UPDATE equipment SET on_rent = GREATEST(on_rent + $1, 0), updated_on = $2 WHERE id = $3`,
			d.OnRentDelta, time.Now(), d.EquipmentID)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertPaymentEntry(ctx context.Context, tx *sql.Tx, entry *domain.PaymentEntry) error {
	return tx.QueryRowContext(ctx,
		`INSERT INTO rental_payments (rental_id, amount_paise, paid_on, note, created_on)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		entry.RentalID, entry.AmountPaise, entry.PaidOn, entry.Note, time.Now()).Scan(&entry.ID)
}

func (r *settlementRepository) CreateRental(ctx context.Context, rental *domain.Rental, requests []billing.ItemRequest) error {
	logger.EnterMethod("settlementRepository.CreateRental", "customerID", rental.CustomerID, "lines", len(requests))

	err := r.withTx(ctx, "create rental", func(tx *sql.Tx) error {
		ids := make([]int32, 0, len(requests))
		for _, req := range requests {
			ids = append(ids, req.EquipmentID)
		}
		equipment, err := lockEquipment(ctx, tx, ids)
		if err != nil {
			return err
		}

		items, deltas, err := billing.PlanRentalItems(requests, equipment)
		if err != nil {
			return err
		}

		now := time.Now()
		rental.Status = domain.RentalStatusActive
		rental.CreatedOn = now
		rental.UpdatedOn = now
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO rentals (customer_id, customer_name, site_address, start_date, end_date, status, advance_paise, total_calculated_paise, created_on, updated_on)
			 VALUES ($1, $2, $3, $4, NULL, $5, $6, NULL, $7, $8) RETURNING id`,
			rental.CustomerID, rental.CustomerName, rental.SiteAddress, rental.StartDate,
			rental.Status, rental.AdvancePaise, now, now).Scan(&rental.ID); err != nil {
			return err
		}

		for i := range items {
			items[i].RentalID = rental.ID
			if err := tx.QueryRowContext(ctx,
				`INSERT INTO rental_items (rental_id, equipment_id, equipment_name, quantity, rate_per_day_paise)
				 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				items[i].RentalID, items[i].EquipmentID, items[i].EquipmentName,
				items[i].Quantity, items[i].RatePerDayPaise).Scan(&items[i].ID); err != nil {
				return err
			}
		}
		rental.Items = items

		return applyCounterDeltas(ctx, tx, deltas)
	})

	if err != nil {
		logger.ExitMethodWithError("settlementRepository.CreateRental", err, "customerID", rental.CustomerID)
		return err
	}
	logger.ExitMethod("settlementRepository.CreateRental", "rentalID", rental.ID)
	return nil
}

func (r *settlementRepository) ReturnRental(ctx context.Context, rentalID int32, in billing.ReturnInput) (*domain.Rental, error) {
	logger.EnterMethod("settlementRepository.ReturnRental", "rentalID", rentalID)

	var settled *domain.Rental
	err := r.withTx(ctx, "return rental", func(tx *sql.Tx) error {
		rental, err := getRental(ctx, tx, rentalID, true)
		if err != nil {
			return err
		}

		var others []domain.Rental
		if in.CreditPaise > 0 {
			// Lock the customer's other rentals: their ledgers fund the
			// credit transfer.
			others, err = listRentalsByCustomer(ctx, tx, rental.CustomerID, true)
			if err != nil {
				return err
			}
		}

		ids := make([]int32, 0, len(rental.Items))
		for _, it := range rental.Items {
			ids = append(ids, it.EquipmentID)
		}
		equipment, err := lockEquipment(ctx, tx, ids)
		if err != nil {
			return err
		}

		plan, err := billing.PlanReturn(rental, others, equipment, in)
		if err != nil {
			return err
		}

		for i := range plan.SourceDebits {
			if err := insertPaymentEntry(ctx, tx, &plan.SourceDebits[i].Entry); err != nil {
				return err
			}
		}
		for i := range plan.Entries {
			if err := insertPaymentEntry(ctx, tx, &plan.Entries[i]); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE rentals SET end_date=$1, status=$2, total_calculated_paise=$3, updated_on=$4 WHERE id=$5`,
			plan.EndDate, plan.NewStatus, plan.TotalCalculatedPaise, time.Now(), rental.ID); err != nil {
			return err
		}

		if err := applyCounterDeltas(ctx, tx, plan.EquipmentDeltas); err != nil {
			return err
		}

		settled, err = getRental(ctx, tx, rentalID, false)
		return err
	})

	if err != nil {
		logger.ExitMethodWithError("settlementRepository.ReturnRental", err, "rentalID", rentalID)
		return nil, err
	}
	logger.ExitMethod("settlementRepository.ReturnRental", "rentalID", rentalID, "status", settled.Status)
	return settled, nil
}

func (r *settlementRepository) AddPayment(ctx context.Context, rentalID int32, amountPaise int64, paidOn time.Time, note, recordedBy string) (*domain.Rental, error) {
	logger.EnterMethod("settlementRepository.AddPayment", "rentalID", rentalID, "amountPaise", amountPaise)

	var updated *domain.Rental
	err := r.withTx(ctx, "add payment", func(tx *sql.Tx) error {
		rental, err := getRental(ctx, tx, rentalID, true)
		if err != nil {
			return err
		}

		plan, err := billing.PlanAddPayment(rental, amountPaise, paidOn, note, recordedBy)
		if err != nil {
			return err
		}

		if err := insertPaymentEntry(ctx, tx, &plan.Entry); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE rentals SET status=$1, updated_on=$2 WHERE id=$3`,
			plan.NewStatus, time.Now(), rental.ID); err != nil {
			return err
		}

		updated, err = getRental(ctx, tx, rentalID, false)
		return err
	})

	if err != nil {
		logger.ExitMethodWithError("settlementRepository.AddPayment", err, "rentalID", rentalID)
		return nil, err
	}
	logger.ExitMethod("settlementRepository.AddPayment", "rentalID", rentalID, "status", updated.Status)
	return updated, nil
}
