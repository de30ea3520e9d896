package ports

import (
	"context"

	"github.com/bankdemo/bank-api/internal/core/domain"
)

// CredentialStore is the read side of the user store consumed by login and
// token issuance. Implementations must be safe for concurrent use.
type CredentialStore interface {
	// VerifyPassword reports whether password matches the stored hash for
	// username. Unknown usernames return false with a nil error, after the
	// same hashing work as a known one. A non-nil error means the store
	// itself failed.
	VerifyPassword(ctx context.Context, username, password string) (bool, error)
	GetRoles(ctx context.Context, username string) ([]string, error)
	// GetIdentity returns domain.ErrUserNotFound when username does not resolve.
	GetIdentity(ctx context.Context, username string) (*domain.Identity, error)
}

// UserProvisioner is the write side used when provisioning demo users.
type UserProvisioner interface {
	// Reset drops every user, role and account so a stack starts from a known state.
	Reset(ctx context.Context) error
	CreateRole(ctx context.Context, name string) error
	// CreateUser hashes password and stores a new identity. It returns
	// domain.ErrUserExists for a duplicate username and
	// domain.ErrPasswordTooShort when the password policy rejects password.
	CreateUser(ctx context.Context, username, password string) (*domain.Identity, error)
	// AddToRole returns domain.ErrRoleNotFound for roles never created.
	AddToRole(ctx context.Context, username, role string) error
}

// UserStore is a complete backing store for one stack.
type UserStore interface {
	CredentialStore
	UserProvisioner
}
