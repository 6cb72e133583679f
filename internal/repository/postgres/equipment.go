package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

const equipmentColumns = `id, name, category, rate_per_day_paise, photo_url, total_managed, on_rent, on_maintenance, created_on, updated_on, deleted_on`

func scanEquipment(row interface{ Scan(...interface{}) error }) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	err := row.Scan(&e.ID, &e.Name, &e.Category, &e.RatePerDayPaise, &e.PhotoURL,
		&e.TotalManaged, &e.OnRent, &e.OnMaintenance, &e.CreatedOn, &e.UpdatedOn, &e.DeletedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	query := `INSERT INTO equipment (name, category, rate_per_day_paise, photo_url, total_managed, on_rent, on_maintenance, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, 0, 0, $6, $7) RETURNING id`
	now := time.Now()
	e.CreatedOn = now
	e.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, e.Name, e.Category, e.RatePerDayPaise, e.PhotoURL,
		e.TotalManaged, now, now).Scan(&e.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1 AND deleted_on IS NULL`
	return scanEquipment(r.db.QueryRowContext(ctx, query, id))
}

func (r *equipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	// The new total must still cover the units out on rent or in
	// maintenance, checked in the same statement that writes.
	query := `UPDATE equipment SET name=$1, category=$2, rate_per_day_paise=$3, photo_url=$4,
	          total_managed=$5, updated_on=$6
	          WHERE id=$7 AND deleted_on IS NULL AND $5 >= on_rent + on_maintenance`
	res, err := r.db.ExecContext(ctx, query, e.Name, e.Category, e.RatePerDayPaise, e.PhotoURL,
		e.TotalManaged, time.Now(), e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, getErr := r.GetByID(ctx, e.ID); getErr != nil {
			return getErr
		}
		return fmt.Errorf("total %d for equipment %d: %w", e.TotalManaged, e.ID, domain.ErrTotalBelowCommitted)
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, id int32) error {
	// Soft delete; refuse while units are still out on rent.
	res, err := r.db.ExecContext(ctx,
		`UPDATE equipment SET deleted_on=$1, updated_on=$1 WHERE id=$2 AND deleted_on IS NULL AND on_rent = 0`,
		time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("equipment %d cannot be deleted: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *equipmentRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Equipment, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM equipment WHERE deleted_on IS NULL`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE deleted_on IS NULL ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *e)
	}
	return list, count, rows.Err()
}

func (r *equipmentRepository) SetMaintenance(ctx context.Context, id int32, count int32) (*domain.Equipment, error) {
	// The WHERE clause enforces 0 <= count <= totalManaged - onRent in the
	// same statement that writes, so a concurrent rental cannot slip a
	// stale bound past us.
	query := `UPDATE equipment SET on_maintenance=$1, updated_on=$2
	          WHERE id=$3 AND deleted_on IS NULL AND $1 >= 0 AND $1 <= total_managed - on_rent
	          RETURNING ` + equipmentColumns
	e, err := scanEquipment(r.db.QueryRowContext(ctx, query, count, time.Now(), id))
	if errors.Is(err, domain.ErrNotFound) {
		// Distinguish "no such row" from "bound violated" for the caller.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("count %d for equipment %d: %w", count, id, domain.ErrMaintenanceOutOfRange)
	}
	return e, err
}
