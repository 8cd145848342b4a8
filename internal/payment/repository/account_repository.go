package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cosmassist/platform/internal/payment"
)

// AccountRepository reads account rows from the PostgreSQL write store.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) List(ctx context.Context) ([]payment.Account, error) {
	query := `
		SELECT id, balance, created_at, updated_at
		FROM accounts
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []payment.Account
	for rows.Next() {
		var account payment.Account
		if err := rows.Scan(&account.ID, &account.Balance, &account.CreatedAt, &account.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}

var _ payment.AccountStore = (*AccountRepository)(nil)
