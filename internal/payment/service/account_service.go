package service

import (
	"context"
	"strconv"

	"github.com/cosmassist/platform/internal/payment"
)

// AccountService serves account reads. Accounts have no create, update or
// delete surface here; rows pre-exist as seed data.
type AccountService struct {
	accounts payment.AccountStore
}

func NewAccountService(accounts payment.AccountStore) *AccountService {
	return &AccountService{accounts: accounts}
}

func (s *AccountService) List(ctx context.Context) ([]payment.AccountDTO, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]payment.AccountDTO, 0, len(accounts))
	for _, account := range accounts {
		dtos = append(dtos, payment.AccountDTO{
			ID:      strconv.Itoa(account.ID),
			Balance: account.Balance,
		})
	}
	return dtos, nil
}
