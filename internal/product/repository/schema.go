package repository

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates the product table when it is missing. Name is unique
// so imports can upsert by it.
func EnsureSchema(db *sql.DB) error {
	const products = `
	CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		brand VARCHAR(255),
		description TEXT,
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		stock INT NOT NULL DEFAULT 0,
		category VARCHAR(255),
		rank DOUBLE PRECISION,
		ingredients TEXT,
		combination BOOLEAN,
		dry BOOLEAN,
		normal BOOLEAN,
		oily BOOLEAN,
		sensitive BOOLEAN,
		main_image_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := db.Exec(products); err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}
	return nil
}
