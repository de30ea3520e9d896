package ports

import (
	"context"

	"github.com/bankdemo/bank-api/internal/core/domain"
)

// TokenIssuer signs a token for an already verified username.
type TokenIssuer interface {
	Issue(ctx context.Context, username string) (string, error)
}

// TokenValidator turns a raw bearer token into a principal. It returns
// domain.ErrTokenExpired or domain.ErrTokenInvalid on failure.
type TokenValidator interface {
	Validate(raw string) (*domain.Principal, error)
}
