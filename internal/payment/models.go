package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as JSON numbers, matching every other service
	// in the platform.
	decimal.MarshalJSONWithoutQuotes = true
}

// Account is the write model for a payment account. Rows are seeded
// externally; this service never mutates them, transfers included.
type Account struct {
	ID        int
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transaction is a directed, amount-bearing transfer record between two
// accounts. Immutable once created.
type Transaction struct {
	ID            int
	FromAccountID int
	ToAccountID   int
	Amount        decimal.Decimal
	CreatedAt     time.Time
}

// AccountDTO is the API projection of an account. Identifiers are strings on
// the wire.
type AccountDTO struct {
	ID      string          `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}

// TransactionDTO is the API projection of a transaction.
type TransactionDTO struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// CreateTransactionRequest is the POST body for a transfer. Amount is a
// pointer so a missing field is distinguishable from zero.
type CreateTransactionRequest struct {
	FromAccountID string           `json:"fromAccountId"`
	ToAccountID   string           `json:"toAccountId"`
	Amount        *decimal.Decimal `json:"amount"`
}

// TransactionResponse is the envelope returned by the create endpoint.
type TransactionResponse struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	Transaction *TransactionDTO `json:"transaction,omitempty"`
}
