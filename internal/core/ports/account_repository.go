package ports

import (
	"context"

	"github.com/bankdemo/bank-api/internal/core/domain"
)

// AccountRepository defines persistence operations for bank accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.BankAccount) error
	// FindByUserName returns domain.ErrAccountNotFound when the user holds no account.
	FindByUserName(ctx context.Context, username string) (*domain.BankAccount, error)
	// List returns every account ordered by user name.
	List(ctx context.Context) ([]*domain.BankAccount, error)
}
