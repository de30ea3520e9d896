package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bankdemo/bank-api/internal/core/domain"
	"github.com/bankdemo/bank-api/internal/core/ports"
)

// AuthService implements login and who-am-I on top of one credential store.
type AuthService struct {
	store  ports.CredentialStore
	issuer ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(store ports.CredentialStore, issuer ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{store: store, issuer: issuer, log: log}
}

// Login verifies the credentials and returns a freshly signed token. A wrong
// password and an unknown user both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	ok, err := s.store.VerifyPassword(ctx, username, password)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.log.Info().Str("username", username).Msg("login rejected")
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(ctx, username)
	if err != nil {
		// The user may have been removed between verification and issuance.
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.log.Debug().Str("username", username).Msg("token issued")
	return token, nil
}

// WhoAmI looks up the already authenticated principal. It never accepts a
// caller-supplied identifier.
func (s *AuthService) WhoAmI(ctx context.Context, principalName string) (*ports.UserInfo, error) {
	if principalName == "" {
		return nil, domain.ErrUserNotFound
	}

	identity, err := s.store.GetIdentity(ctx, principalName)
	if err != nil {
		return nil, err
	}
	roles, err := s.store.GetRoles(ctx, identity.UserName)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}

	return &ports.UserInfo{
		ID:       identity.ID,
		UserName: identity.UserName,
		Roles:    roles,
	}, nil
}
