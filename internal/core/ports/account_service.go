package ports

import (
	"context"

	"github.com/bankdemo/bank-api/internal/core/domain"
)

// AccountService exposes bank accounts to authorized callers.
type AccountService interface {
	GetOwnAccount(ctx context.Context, principalName string) (*domain.BankAccount, error)
	ListAccounts(ctx context.Context) ([]*domain.BankAccount, error)
}
