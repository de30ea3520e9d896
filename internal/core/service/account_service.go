package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bankdemo/bank-api/internal/core/domain"
	"github.com/bankdemo/bank-api/internal/core/ports"
)

type AccountService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, log: log}
}

// GetOwnAccount returns the account held by the authenticated caller.
func (s *AccountService) GetOwnAccount(ctx context.Context, principalName string) (*domain.BankAccount, error) {
	if principalName == "" {
		return nil, domain.ErrAccountNotFound
	}
	return s.repo.FindByUserName(ctx, principalName)
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]*domain.BankAccount, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	s.log.Debug().Int("count", len(accounts)).Msg("accounts listed")
	return accounts, nil
}
