package repository

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates the payment tables when they are missing. The check
// constraints mirror the service-level validation so that a row can never be
// persisted that the service would have rejected.
func EnsureSchema(db *sql.DB) error {
	const accounts = `
	CREATE TABLE IF NOT EXISTS accounts (
		id SERIAL PRIMARY KEY,
		balance DECIMAL(12, 2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := db.Exec(accounts); err != nil {
		return fmt.Errorf("failed to create accounts table: %w", err)
	}

	const transactions = `
	CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL PRIMARY KEY,
		from_account_id INT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		to_account_id INT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		amount DECIMAL(12, 2) NOT NULL CHECK (amount > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (from_account_id <> to_account_id)
	);`

	if _, err := db.Exec(transactions); err != nil {
		return fmt.Errorf("failed to create transactions table: %w", err)
	}

	return nil
}
