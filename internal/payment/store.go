package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// AccountStore reads accounts. There is deliberately no write surface:
// account rows come from external seeding.
type AccountStore interface {
	List(ctx context.Context) ([]Account, error)
}

// TransactionStore persists and reads transfer records.
//
// CreateTransfer must run the existence checks and the insert as one atomic
// unit: either the transaction row is committed with both accounts verified,
// or nothing is. Implementations return NotFoundError naming the missing
// side ("Source account not found" / "Destination account not found").
type TransactionStore interface {
	CreateTransfer(ctx context.Context, fromAccountID, toAccountID int, amount decimal.Decimal) (*Transaction, error)
	GetByID(ctx context.Context, id int) (*Transaction, error)
}
