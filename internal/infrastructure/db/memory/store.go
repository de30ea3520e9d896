// Package memory is an in-process user, role and account store. The testing
// stack runs on it so that it never shares state with production.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bankdemo/bank-api/internal/core/domain"
	"github.com/bankdemo/bank-api/internal/pkg/password"
)

// Store implements ports.UserStore and ports.AccountRepository. Usernames are
// matched case-insensitively.
type Store struct {
	hasher *password.Hasher
	policy password.Policy

	mu       sync.RWMutex
	users    map[string]*domain.Identity
	roles    map[string]struct{}
	accounts map[string]*domain.BankAccount
}

func NewStore(hasher *password.Hasher, policy password.Policy) *Store {
	s := &Store{hasher: hasher, policy: policy}
	s.clear()
	return s
}

func normalize(username string) string {
	return strings.ToUpper(strings.TrimSpace(username))
}

func cloneIdentity(u *domain.Identity) *domain.Identity {
	c := *u
	c.Roles = append([]string(nil), u.Roles...)
	return &c
}

func (s *Store) clear() {
	s.users = make(map[string]*domain.Identity)
	s.roles = make(map[string]struct{})
	s.accounts = make(map[string]*domain.BankAccount)
}

func (s *Store) Reset(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
	return nil
}

func (s *Store) CreateRole(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[name] = struct{}{}
	return nil
}

func (s *Store) CreateUser(_ context.Context, username, pw string) (*domain.Identity, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("create user: empty username")
	}
	if err := s.policy.Validate(pw); err != nil {
		return nil, err
	}
	// Hash outside the lock; bcrypt is deliberately slow.
	hash, err := s.hasher.Hash(pw)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalize(username)
	if _, exists := s.users[key]; exists {
		return nil, domain.ErrUserExists
	}
	u := &domain.Identity{
		ID:           uuid.NewString(),
		UserName:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[key] = u
	return cloneIdentity(u), nil
}

func (s *Store) AddToRole(_ context.Context, username, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[normalize(username)]
	if !ok {
		return domain.ErrUserNotFound
	}
	if _, ok := s.roles[role]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrRoleNotFound, role)
	}
	if u.HasRole(role) {
		return nil
	}
	u.Roles = append(u.Roles, role)
	sort.Strings(u.Roles)
	return nil
}

func (s *Store) VerifyPassword(_ context.Context, username, pw string) (bool, error) {
	s.mu.RLock()
	u, ok := s.users[normalize(username)]
	var hash string
	if ok {
		hash = u.PasswordHash
	}
	s.mu.RUnlock()

	if !ok {
		return s.hasher.CompareMissing(pw), nil
	}
	return s.hasher.Compare(hash, pw), nil
}

func (s *Store) GetRoles(_ context.Context, username string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[normalize(username)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return append([]string(nil), u.Roles...), nil
}

func (s *Store) GetIdentity(_ context.Context, username string) (*domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[normalize(username)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneIdentity(u), nil
}

func (s *Store) Create(_ context.Context, account *domain.BankAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID]; exists {
		return fmt.Errorf("create account %s: already exists", account.ID)
	}
	c := *account
	s.accounts[account.ID] = &c
	return nil
}

func (s *Store) FindByUserName(_ context.Context, username string) (*domain.BankAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := normalize(username)
	for _, a := range s.accounts {
		if normalize(a.UserName) == key {
			c := *a
			return &c, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (s *Store) List(context.Context) ([]*domain.BankAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.BankAccount, 0, len(s.accounts))
	for _, a := range s.accounts {
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserName < out[j].UserName })
	return out, nil
}
