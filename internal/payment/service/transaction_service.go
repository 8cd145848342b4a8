package service

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/cosmassist/platform/internal/events"
	"github.com/cosmassist/platform/internal/payment"
)

// EventPublisher is the slice of the event bus the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// TransactionService validates and persists money-transfer records. It does
// not debit or credit account balances: a transfer here is a record, and
// balance bookkeeping belongs to whatever seeds the accounts.
type TransactionService struct {
	transactions payment.TransactionStore
	publisher    EventPublisher
}

func NewTransactionService(transactions payment.TransactionStore, publisher EventPublisher) *TransactionService {
	return &TransactionService{transactions: transactions, publisher: publisher}
}

// Create validates the request, confirms both accounts exist and persists the
// transfer inside a single atomic unit. Validation failures surface as
// InvalidArgumentError, missing accounts as NotFoundError naming the side.
func (s *TransactionService) Create(ctx context.Context, req payment.CreateTransactionRequest) (*payment.TransactionDTO, error) {
	if strings.TrimSpace(req.FromAccountID) == "" {
		return nil, payment.InvalidArgument("fromAccountId is required")
	}
	if strings.TrimSpace(req.ToAccountID) == "" {
		return nil, payment.InvalidArgument("toAccountId is required")
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, payment.InvalidArgument("fromAccountId and toAccountId must be different")
	}
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		return nil, payment.InvalidArgument("amount must be greater than 0")
	}

	fromAccountID, err := strconv.Atoi(req.FromAccountID)
	if err != nil {
		return nil, payment.InvalidArgument("fromAccountId must be a numeric identifier")
	}
	toAccountID, err := strconv.Atoi(req.ToAccountID)
	if err != nil {
		return nil, payment.InvalidArgument("toAccountId must be a numeric identifier")
	}

	transaction, err := s.transactions.CreateTransfer(ctx, fromAccountID, toAccountID, *req.Amount)
	if err != nil {
		return nil, err
	}

	dto := toDTO(transaction)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.PaymentEventsStream, events.TransactionCreated, events.TransactionCreatedEvent{
			TransactionID: dto.ID,
			FromAccountID: dto.FromAccountID,
			ToAccountID:   dto.ToAccountID,
			Amount:        dto.Amount,
		}); err != nil {
			log.Printf("Failed to publish transaction.created event: %v", err)
		}
	}
	return dto, nil
}

// FindByID looks a transaction up by its string identifier. An id that does
// not parse as a number is treated as absent, never as a format error.
func (s *TransactionService) FindByID(ctx context.Context, id string) (*payment.TransactionDTO, error) {
	transactionID, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return nil, payment.NotFound("Transaction not found")
	}
	transaction, err := s.transactions.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return toDTO(transaction), nil
}

func toDTO(t *payment.Transaction) *payment.TransactionDTO {
	return &payment.TransactionDTO{
		ID:            strconv.Itoa(t.ID),
		FromAccountID: strconv.Itoa(t.FromAccountID),
		ToAccountID:   strconv.Itoa(t.ToAccountID),
		Amount:        t.Amount,
		CreatedAt:     t.CreatedAt,
	}
}
