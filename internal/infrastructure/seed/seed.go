// Package seed resets a stack's store and loads the demonstration users,
// roles and bank accounts.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bankdemo/bank-api/internal/core/domain"
	"github.com/bankdemo/bank-api/internal/core/ports"
)

type User struct {
	UserName string
	Password string
	Roles    []string
}

type Account struct {
	ID       string
	UserName string
	SSN      string
	Balance  float64
}

type Dataset struct {
	Roles    []string
	Users    []User
	Accounts []Account
}

var demoUsers = []User{
	{UserName: "Billy.Jean@me.com", Password: "myPassword", Roles: []string{domain.RoleAccountHolders}},
	{UserName: "Emily.White@gmail.com", Password: "PaSswOrD", Roles: []string{domain.RoleAccountHolders}},
	{UserName: "Anna4564564@company.com", Password: "12345Pass", Roles: []string{domain.RoleAccountHolders}},
	{UserName: "John.Black@auditors.com", Password: "secret#$%345345345", Roles: []string{domain.RoleAuditors}},
}

var demoAccounts = []Account{
	{ID: "bf861f2b-a238-4d37-8c4d-e634b47577f0", UserName: "Billy.Jean@me.com", SSN: "123-45-6789", Balance: 5440.50},
	{ID: "f63a109f-a7af-44dc-8dcd-52fba219c9d0", UserName: "Emily.White@gmail.com", SSN: "456-78-901", Balance: 15700.00},
	{ID: "92f70a00-fc13-4a57-863a-c30e3f397fa4", UserName: "Anna4564564@company.com", SSN: "368-56-975", Balance: 8700.00},
}

// Production is the dataset loaded into the production stack.
func Production() Dataset {
	return Dataset{
		Roles:    []string{domain.RoleAccountHolders, domain.RoleAuditors},
		Users:    append([]User(nil), demoUsers...),
		Accounts: append([]Account(nil), demoAccounts...),
	}
}

// Testing is Production plus a short-password auditor for manual testing.
func Testing() Dataset {
	ds := Production()
	ds.Users = append(ds.Users, User{UserName: "test", Password: "test", Roles: []string{domain.RoleAuditors}})
	return ds
}

// Run wipes the store and loads ds. It stops at the first failure.
func Run(ctx context.Context, users ports.UserProvisioner, accounts ports.AccountRepository, ds Dataset, log zerolog.Logger) error {
	if err := users.Reset(ctx); err != nil {
		return fmt.Errorf("seed: reset: %w", err)
	}

	for _, role := range ds.Roles {
		if err := users.CreateRole(ctx, role); err != nil {
			return fmt.Errorf("seed: role %s: %w", role, err)
		}
	}

	ids := make(map[string]string, len(ds.Users))
	for _, u := range ds.Users {
		identity, err := users.CreateUser(ctx, u.UserName, u.Password)
		if err != nil {
			return fmt.Errorf("seed: user %s: %w", u.UserName, err)
		}
		ids[u.UserName] = identity.ID
		for _, role := range u.Roles {
			if err := users.AddToRole(ctx, u.UserName, role); err != nil {
				return fmt.Errorf("seed: assign %s to %s: %w", role, u.UserName, err)
			}
		}
	}

	for _, a := range ds.Accounts {
		userID, ok := ids[a.UserName]
		if !ok {
			return fmt.Errorf("seed: account %s: %w", a.ID, domain.ErrUserNotFound)
		}
		err := accounts.Create(ctx, &domain.BankAccount{
			ID:       a.ID,
			UserID:   userID,
			UserName: a.UserName,
			SSN:      a.SSN,
			Balance:  a.Balance,
		})
		if err != nil {
			return fmt.Errorf("seed: account %s: %w", a.ID, err)
		}
	}

	log.Info().
		Int("roles", len(ds.Roles)).
		Int("users", len(ds.Users)).
		Int("accounts", len(ds.Accounts)).
		Msg("seed data loaded")
	return nil
}
