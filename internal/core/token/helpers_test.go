package token

import (
	"context"
	"time"

	"github.com/bankdemo/bank-api/internal/core/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig() Config {
	return Config{
		Secret:   []byte(testSecret),
		Issuer:   "bank-api",
		Audience: "bank-api-clients",
		TTL:      time.Hour,
	}
}

type stubStore struct {
	users map[string][]string
	err   error
}

func newStubStore() *stubStore {
	return &stubStore{users: map[string][]string{
		"Billy.Jean@me.com":       {domain.RoleAccountHolders},
		"John.Black@auditors.com": {domain.RoleAuditors},
		"both@example.com":        {domain.RoleAccountHolders, domain.RoleAuditors},
	}}
}

func (s *stubStore) VerifyPassword(context.Context, string, string) (bool, error) {
	return true, nil
}

func (s *stubStore) GetRoles(_ context.Context, username string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]string(nil), s.users[username]...), nil
}

func (s *stubStore) GetIdentity(_ context.Context, username string) (*domain.Identity, error) {
	roles, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.Identity{ID: "id-" + username, UserName: username, Roles: roles}, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
