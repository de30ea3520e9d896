package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bankdemo/bank-api/internal/core/domain"
)

type stubAccountRepo struct {
	accounts map[string]*domain.BankAccount
	listErr  error
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.BankAccount) error {
	r.accounts[a.UserName] = a
	return nil
}

func (r *stubAccountRepo) FindByUserName(_ context.Context, username string) (*domain.BankAccount, error) {
	a, ok := r.accounts[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return a, nil
}

func (r *stubAccountRepo) List(context.Context) ([]*domain.BankAccount, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.BankAccount, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, a)
	}
	return out, nil
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: map[string]*domain.BankAccount{
		"Billy.Jean@me.com": {ID: "BF861F2B", UserName: "Billy.Jean@me.com", SSN: "123-45-6789", Balance: 5440.50},
	}}
}

func TestAccountService_GetOwnAccount(t *testing.T) {
	svc := NewAccountService(newStubAccountRepo(), zerolog.Nop())

	acc, err := svc.GetOwnAccount(context.Background(), "Billy.Jean@me.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.Balance != 5440.50 {
		t.Fatalf("unexpected balance: %v", acc.Balance)
	}

	if _, err := svc.GetOwnAccount(context.Background(), "John.Black@auditors.com"); err != domain.ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if _, err := svc.GetOwnAccount(context.Background(), ""); err != domain.ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound for empty name, got %v", err)
	}
}

func TestAccountService_ListAccounts(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, zerolog.Nop())

	accounts, err := svc.ListAccounts(context.Background())
	if err != nil || len(accounts) != 1 {
		t.Fatalf("expected one account, got %d (%v)", len(accounts), err)
	}

	repo.listErr = errors.New("boom")
	if _, err := svc.ListAccounts(context.Background()); !errors.Is(err, repo.listErr) {
		t.Fatalf("expected wrapped list error, got %v", err)
	}
}
