package service

import (
	"context"
	"testing"

	"github.com/cosmassist/platform/internal/payment"
	"github.com/cosmassist/platform/internal/payment/repository/memory"
	"github.com/shopspring/decimal"
)

func newTestService(t *testing.T) (*TransactionService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SeedAccount(1, decimal.RequireFromString("100.00"))
	store.SeedAccount(2, decimal.RequireFromString("250.50"))
	return NewTransactionService(store, nil), store
}

func amountPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateValidTransfer(t *testing.T) {
	svc, _ := newTestService(t)

	dto, err := svc.Create(context.Background(), payment.CreateTransactionRequest{
		FromAccountID: "1",
		ToAccountID:   "2",
		Amount:        amountPtr("75.25"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.ID == "" {
		t.Error("expected a generated transaction id")
	}
	if dto.FromAccountID != "1" || dto.ToAccountID != "2" {
		t.Errorf("transaction does not echo account ids: %+v", dto)
	}
	if !dto.Amount.Equal(decimal.RequireFromString("75.25")) {
		t.Errorf("expected amount 75.25, got %s", dto.Amount)
	}
	if dto.CreatedAt.IsZero() {
		t.Error("expected a server-assigned timestamp")
	}
}

func TestCreateValidationOrder(t *testing.T) {
	tests := []struct {
		name        string
		req         payment.CreateTransactionRequest
		wantMessage string
	}{
		{
			name:        "missing fromAccountId",
			req:         payment.CreateTransactionRequest{ToAccountID: "2", Amount: amountPtr("10")},
			wantMessage: "fromAccountId is required",
		},
		{
			name:        "blank fromAccountId",
			req:         payment.CreateTransactionRequest{FromAccountID: "   ", ToAccountID: "2", Amount: amountPtr("10")},
			wantMessage: "fromAccountId is required",
		},
		{
			name:        "missing toAccountId",
			req:         payment.CreateTransactionRequest{FromAccountID: "1", Amount: amountPtr("10")},
			wantMessage: "toAccountId is required",
		},
		{
			name:        "same account both sides wins over bad amount",
			req:         payment.CreateTransactionRequest{FromAccountID: "1", ToAccountID: "1", Amount: amountPtr("-10")},
			wantMessage: "fromAccountId and toAccountId must be different",
		},
		{
			name:        "missing amount",
			req:         payment.CreateTransactionRequest{FromAccountID: "1", ToAccountID: "2"},
			wantMessage: "amount must be greater than 0",
		},
		{
			name:        "zero amount",
			req:         payment.CreateTransactionRequest{FromAccountID: "1", ToAccountID: "2", Amount: amountPtr("0")},
			wantMessage: "amount must be greater than 0",
		},
		{
			name:        "negative amount",
			req:         payment.CreateTransactionRequest{FromAccountID: "1", ToAccountID: "2", Amount: amountPtr("-5")},
			wantMessage: "amount must be greater than 0",
		},
		{
			name:        "non-numeric fromAccountId",
			req:         payment.CreateTransactionRequest{FromAccountID: "abc", ToAccountID: "2", Amount: amountPtr("10")},
			wantMessage: "fromAccountId must be a numeric identifier",
		},
		{
			name:        "non-numeric toAccountId",
			req:         payment.CreateTransactionRequest{FromAccountID: "1", ToAccountID: "xyz", Amount: amountPtr("10")},
			wantMessage: "toAccountId must be a numeric identifier",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			_, err := svc.Create(context.Background(), tt.req)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !payment.IsInvalidArgument(err) {
				t.Fatalf("expected InvalidArgumentError, got %T: %v", err, err)
			}
			if err.Error() != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, err.Error())
			}
		})
	}
}

func TestCreateMissingAccounts(t *testing.T) {
	tests := []struct {
		name        string
		from, to    string
		wantMessage string
	}{
		{"missing source", "999", "2", "Source account not found"},
		{"missing destination", "1", "999", "Destination account not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			_, err := svc.Create(context.Background(), payment.CreateTransactionRequest{
				FromAccountID: tt.from,
				ToAccountID:   tt.to,
				Amount:        amountPtr("10"),
			})
			if err == nil {
				t.Fatal("expected a not-found error")
			}
			if !payment.IsNotFound(err) {
				t.Fatalf("expected NotFoundError, got %T: %v", err, err)
			}
			if err.Error() != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, err.Error())
			}
		})
	}
}

func TestFindByID(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), payment.CreateTransactionRequest{
		FromAccountID: "1",
		ToAccountID:   "2",
		Amount:        amountPtr("12.34"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := svc.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Idempotent: two lookups of the same id return the same record.
	if first.ID != second.ID || !first.Amount.Equal(second.Amount) || !first.CreatedAt.Equal(second.CreatedAt) {
		t.Errorf("repeated lookups differ: %+v vs %+v", first, second)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"never created", "9999"},
		{"non-numeric id", "abc"},
		{"blank id", "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			_, err := svc.FindByID(context.Background(), tt.id)
			if err == nil {
				t.Fatal("expected a not-found error")
			}
			if !payment.IsNotFound(err) {
				t.Fatalf("expected NotFoundError, got %T: %v", err, err)
			}
		})
	}
}
