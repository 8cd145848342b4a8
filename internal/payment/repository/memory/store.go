package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cosmassist/platform/internal/payment"
	"github.com/shopspring/decimal"
)

// Store is an in-memory implementation of the payment stores. It backs
// service-level tests and local runs without PostgreSQL.
type Store struct {
	mu           sync.Mutex
	accounts     map[int]payment.Account
	transactions map[int]payment.Transaction
	nextID       int
}

func NewStore() *Store {
	return &Store{
		accounts:     make(map[int]payment.Account),
		transactions: make(map[int]payment.Transaction),
		nextID:       1,
	}
}

// SeedAccount inserts an account row, standing in for the external seeding
// the production schema receives.
func (s *Store) SeedAccount(id int, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	s.accounts[id] = payment.Account{ID: id, Balance: balance, CreatedAt: now, UpdatedAt: now}
}

func (s *Store) List(ctx context.Context) ([]payment.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]payment.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (s *Store) CreateTransfer(ctx context.Context, fromAccountID, toAccountID int, amount decimal.Decimal) (*payment.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[fromAccountID]; !ok {
		return nil, payment.NotFound("Source account not found")
	}
	if _, ok := s.accounts[toAccountID]; !ok {
		return nil, payment.NotFound("Destination account not found")
	}

	transaction := payment.Transaction{
		ID:            s.nextID,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
		CreatedAt:     time.Now().UTC(),
	}
	s.nextID++
	s.transactions[transaction.ID] = transaction
	return &transaction, nil
}

func (s *Store) GetByID(ctx context.Context, id int) (*payment.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	transaction, ok := s.transactions[id]
	if !ok {
		return nil, payment.NotFound("Transaction not found")
	}
	return &transaction, nil
}

var _ payment.AccountStore = (*Store)(nil)
var _ payment.TransactionStore = (*Store)(nil)
