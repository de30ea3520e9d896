package token

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bankdemo/bank-api/internal/core/domain"
	"github.com/bankdemo/bank-api/internal/core/ports"
)

// Claims is the payload of an issued token. Roles are always encoded as a JSON
// array under "role", one entry per role held at issuance.
type Claims struct {
	Roles jwt.ClaimStrings `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs tokens for users of a single credential store.
type Issuer struct {
	cfg   Config
	store ports.CredentialStore
	opts  options
}

// NewIssuer returns domain.ErrConfiguration when cfg is incomplete.
func NewIssuer(cfg Config, store ports.CredentialStore, opts ...Option) (*Issuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: credential store is nil", domain.ErrConfiguration)
	}
	return &Issuer{cfg: cfg, store: store, opts: buildOptions(opts)}, nil
}

// Issue signs a token for username. The caller must have verified the
// password already; Issue only checks that the identity still resolves.
func (i *Issuer) Issue(ctx context.Context, username string) (string, error) {
	if i == nil || i.store == nil {
		return "", domain.ErrConfiguration
	}
	if err := i.cfg.Validate(); err != nil {
		return "", err
	}

	identity, err := i.store.GetIdentity(ctx, username)
	if err != nil {
		return "", err
	}
	roles, err := i.store.GetRoles(ctx, identity.UserName)
	if err != nil {
		return "", fmt.Errorf("load roles: %w", err)
	}

	now := i.opts.now().UTC()
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.UserName,
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.TTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
