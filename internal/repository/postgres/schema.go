package postgres

import "database/sql"

// EnsureSchema creates the tables and indexes on startup when they do not
// exist yet.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_on TIMESTAMPTZ NOT NULL,
			updated_on TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			phone VARCHAR(32) NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			photo_url TEXT NOT NULL DEFAULT '',
			id_proof_url TEXT NOT NULL DEFAULT '',
			mediator_name VARCHAR(255) NOT NULL DEFAULT '',
			mediator_phone VARCHAR(32) NOT NULL DEFAULT '',
			status VARCHAR(16) NOT NULL DEFAULT 'ACTIVE',
			created_on TIMESTAMPTZ NOT NULL,
			updated_on TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS equipment (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(128) NOT NULL DEFAULT '',
			rate_per_day_paise BIGINT NOT NULL,
			photo_url TEXT NOT NULL DEFAULT '',
			total_managed INTEGER NOT NULL DEFAULT 0,
			on_rent INTEGER NOT NULL DEFAULT 0,
			on_maintenance INTEGER NOT NULL DEFAULT 0,
			created_on TIMESTAMPTZ NOT NULL,
			updated_on TIMESTAMPTZ NOT NULL,
			deleted_on TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS rentals (
			id SERIAL PRIMARY KEY,
			customer_id INTEGER NOT NULL REFERENCES customers(id),
			customer_name VARCHAR(255) NOT NULL,
			site_address TEXT NOT NULL DEFAULT '',
			start_date TIMESTAMPTZ NOT NULL,
			end_date TIMESTAMPTZ,
			status VARCHAR(16) NOT NULL DEFAULT 'ACTIVE',
			advance_paise BIGINT NOT NULL DEFAULT 0,
			total_calculated_paise BIGINT,
			created_on TIMESTAMPTZ NOT NULL,
			updated_on TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS rental_items (
			id SERIAL PRIMARY KEY,
			rental_id INTEGER NOT NULL REFERENCES rentals(id),
			equipment_id INTEGER NOT NULL REFERENCES equipment(id),
			equipment_name VARCHAR(255) NOT NULL,
			quantity INTEGER NOT NULL,
			rate_per_day_paise BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS rental_payments (
			id SERIAL PRIMARY KEY,
			rental_id INTEGER NOT NULL REFERENCES rentals(id),
			amount_paise BIGINT NOT NULL,
			paid_on TIMESTAMPTZ NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			created_on TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rentals_customer ON rentals (customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rentals_status ON rentals (status)`,
		`CREATE INDEX IF NOT EXISTS idx_rental_items_rental ON rental_items (rental_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rental_payments_rental ON rental_payments (rental_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
