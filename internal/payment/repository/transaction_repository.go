package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cosmassist/platform/internal/payment"
	sharedredis "github.com/cosmassist/platform/internal/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const transactionViewKeyPrefix = "payment:transaction:view:"

// TransactionRepository persists transfers in PostgreSQL and serves reads
// through a Redis view cache, falling back to the database on a miss.
type TransactionRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[payment.Transaction]
}

func NewTransactionRepository(db *sql.DB, redisClient *goredis.Client) *TransactionRepository {
	return &TransactionRepository{
		db:    db,
		cache: sharedredis.NewViewCache[payment.Transaction](redisClient, 0),
	}
}

// CreateTransfer verifies both accounts and inserts the transfer record in a
// single database transaction. If an account disappears between the check and
// the insert, the foreign key rejects the row and the whole unit rolls back.
func (r *TransactionRepository) CreateTransfer(ctx context.Context, fromAccountID, toAccountID int, amount decimal.Decimal) (*payment.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op once committed

	if err := accountExists(ctx, tx, fromAccountID); err != nil {
		if err == sql.ErrNoRows {
			return nil, payment.NotFound("Source account not found")
		}
		return nil, fmt.Errorf("failed to check source account: %w", err)
	}
	if err := accountExists(ctx, tx, toAccountID); err != nil {
		if err == sql.ErrNoRows {
			return nil, payment.NotFound("Destination account not found")
		}
		return nil, fmt.Errorf("failed to check destination account: %w", err)
	}

	transaction := &payment.Transaction{
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
	}
	const insert = `
		INSERT INTO transactions (from_account_id, to_account_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := tx.QueryRowContext(ctx, insert, fromAccountID, toAccountID, amount).
		Scan(&transaction.ID, &transaction.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.cacheTransaction(ctx, transaction)
	return transaction, nil
}

// GetByID returns a transaction by attempting Redis first, then PostgreSQL.
func (r *TransactionRepository) GetByID(ctx context.Context, id int) (*payment.Transaction, error) {
	cacheKey := fmt.Sprintf("%s%d", transactionViewKeyPrefix, id)
	if transaction, ok := r.cache.Get(ctx, cacheKey); ok {
		return transaction, nil
	}

	const query = `
		SELECT id, from_account_id, to_account_id, amount, created_at
		FROM transactions
		WHERE id = $1
	`
	var transaction payment.Transaction
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&transaction.ID, &transaction.FromAccountID, &transaction.ToAccountID,
		&transaction.Amount, &transaction.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, payment.NotFound("Transaction not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	// Warm the cache
	r.cacheTransaction(ctx, &transaction)
	return &transaction, nil
}

func (r *TransactionRepository) cacheTransaction(ctx context.Context, transaction *payment.Transaction) {
	cacheKey := fmt.Sprintf("%s%d", transactionViewKeyPrefix, transaction.ID)
	r.cache.Set(ctx, cacheKey, transaction)
}

func accountExists(ctx context.Context, tx *sql.Tx, id int) error {
	var found int
	return tx.QueryRowContext(ctx, `SELECT 1 FROM accounts WHERE id = $1`, id).Scan(&found)
}

var _ payment.TransactionStore = (*TransactionRepository)(nil)
