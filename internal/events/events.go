package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	TransactionCreated = "transaction.created"

	ProductCreated  = "product.created"
	ProductUpdated  = "product.updated"
	ProductDeleted  = "product.deleted"
	ProductImported = "product.imported"
)

// Stream names
const (
	PaymentEventsStream = "payment.events"
	ProductEventsStream = "product.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// TransactionCreatedEvent is emitted after a transfer record is persisted.
// Consumers must not mutate account balances from it: the payment service
// records transfers without debiting or crediting either side.
type TransactionCreatedEvent struct {
	TransactionID string          `json:"transactionId"`
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
}

// Product events carry just enough for consumers to invalidate caches.
type ProductCreatedEvent struct {
	ProductID int    `json:"productId"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
}

type ProductUpdatedEvent struct {
	ProductID int `json:"productId"`
}

type ProductDeletedEvent struct {
	ProductID int `json:"productId"`
}

type ProductImportedEvent struct {
	Count  int    `json:"count"`
	Source string `json:"source"`
}
