package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, name, phone, address, photo_url, id_proof_url, mediator_name, mediator_phone, status, created_on, updated_on`

func scanCustomer(row interface{ Scan(...interface{}) error }) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.PhotoURL, &c.IDProofURL,
		&c.MediatorName, &c.MediatorPhone, &c.Status, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, phone, address, photo_url, id_proof_url, mediator_name, mediator_phone, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	c.Status = domain.CustomerStatusActive
	c.CreatedOn = now
	c.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, c.Name, c.Phone, c.Address, c.PhotoURL, c.IDProofURL,
		c.MediatorName, c.MediatorPhone, c.Status, now, now).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return scanCustomer(r.db.QueryRowContext(ctx, query, id))
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name=$1, phone=$2, address=$3, photo_url=$4, id_proof_url=$5,
	          mediator_name=$6, mediator_phone=$7, updated_on=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Phone, c.Address, c.PhotoURL, c.IDProofURL,
		c.MediatorName, c.MediatorPhone, time.Now(), c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *customerRepository) setStatus(ctx context.Context, id int32, status domain.CustomerStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET status=$1, updated_on=$2 WHERE id=$3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *customerRepository) Tombstone(ctx context.Context, id int32) error {
	return r.setStatus(ctx, id, domain.CustomerStatusDeleted)
}

func (r *customerRepository) Restore(ctx context.Context, id int32) error {
	return r.setStatus(ctx, id, domain.CustomerStatusActive)
}

func (r *customerRepository) List(ctx context.Context, includeDeleted bool, page, pageSize int32) ([]domain.Customer, int32, error) {
	offset := (page - 1) * pageSize
	where := ""
	if !includeDeleted {
		where = ` WHERE status = 'ACTIVE'`
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM customers`+where).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + customerColumns + ` FROM customers` + where +
		` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, *c)
	}
	return customers, count, rows.Err()
}

func (r *customerRepository) Search(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error) {
	offset := (page - 1) * pageSize
	pattern := "%" + query + "%"

	var count int32
	countQuery := `SELECT count(*) FROM customers WHERE status = 'ACTIVE' AND (name ILIKE $1 OR phone ILIKE $1)`
	if err := r.db.QueryRowContext(ctx, countQuery, pattern).Scan(&count); err != nil {
		return nil, 0, err
	}

	listQuery := `SELECT ` + customerColumns + ` FROM customers
	              WHERE status = 'ACTIVE' AND (name ILIKE $1 OR phone ILIKE $1)
	              ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, listQuery, pattern, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, *c)
	}
	return customers, count, rows.Err()
}
