package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bankdemo/bank-api/internal/core/domain"
	"github.com/bankdemo/bank-api/internal/core/ports"
	"github.com/bankdemo/bank-api/internal/pkg/password"
)

var (
	_ ports.UserStore         = (*Store)(nil)
	_ ports.AccountRepository = (*Store)(nil)
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(password.NewHasher(bcrypt.MinCost), password.Policy{MinLength: 4})
	ctx := context.Background()
	require.NoError(t, s.CreateRole(ctx, domain.RoleAccountHolders))
	require.NoError(t, s.CreateRole(ctx, domain.RoleAuditors))
	_, err := s.CreateUser(ctx, "Billy.Jean@me.com", "myPassword")
	require.NoError(t, err)
	require.NoError(t, s.AddToRole(ctx, "Billy.Jean@me.com", domain.RoleAccountHolders))
	return s
}

func TestStore_VerifyPassword(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.VerifyPassword(ctx, "Billy.Jean@me.com", "myPassword")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.VerifyPassword(ctx, "billy.jean@ME.com", "myPassword")
	require.NoError(t, err)
	assert.True(t, ok, "usernames are case-insensitive")

	ok, err = s.VerifyPassword(ctx, "Billy.Jean@me.com", "wrongpass")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.VerifyPassword(ctx, "ghost@example.com", "myPassword")
	require.NoError(t, err, "unknown users fail closed without an error")
	assert.False(t, ok)
}

func TestStore_IdentityAndRoles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.GetIdentity(ctx, "BILLY.JEAN@ME.COM")
	require.NoError(t, err)
	assert.Equal(t, "Billy.Jean@me.com", id.UserName)
	assert.NotEmpty(t, id.ID)
	assert.NotEqual(t, "myPassword", id.PasswordHash)

	roles, err := s.GetRoles(ctx, "Billy.Jean@me.com")
	require.NoError(t, err)
	assert.Equal(t, []string{domain.RoleAccountHolders}, roles)

	_, err = s.GetIdentity(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = s.GetRoles(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	roles, _ := s.GetRoles(ctx, "Billy.Jean@me.com")
	roles[0] = domain.RoleAuditors

	again, _ := s.GetRoles(ctx, "Billy.Jean@me.com")
	assert.Equal(t, []string{domain.RoleAccountHolders}, again)
}

func TestStore_Provisioning(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "billy.jean@me.com", "another")
	assert.ErrorIs(t, err, domain.ErrUserExists)

	_, err = s.CreateUser(ctx, "short@example.com", "abc")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)

	assert.ErrorIs(t, s.AddToRole(ctx, "Billy.Jean@me.com", "ADMINS"), domain.ErrRoleNotFound)
	assert.ErrorIs(t, s.AddToRole(ctx, "ghost@example.com", domain.RoleAuditors), domain.ErrUserNotFound)

	require.NoError(t, s.AddToRole(ctx, "Billy.Jean@me.com", domain.RoleAccountHolders))
	roles, _ := s.GetRoles(ctx, "Billy.Jean@me.com")
	assert.Len(t, roles, 1, "adding an existing role is a no-op")
}

func TestStore_Accounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &domain.BankAccount{ID: "b", UserName: "Emily.White@gmail.com", Balance: 15700}))
	require.NoError(t, s.Create(ctx, &domain.BankAccount{ID: "a", UserName: "Billy.Jean@me.com", Balance: 5440.5}))
	assert.Error(t, s.Create(ctx, &domain.BankAccount{ID: "a"}))

	acc, err := s.FindByUserName(ctx, "billy.jean@me.com")
	require.NoError(t, err)
	assert.Equal(t, 5440.5, acc.Balance)

	_, err = s.FindByUserName(ctx, "John.Black@auditors.com")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Billy.Jean@me.com", all[0].UserName)
}

func TestStore_Reset(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Reset(ctx))

	_, err := s.GetIdentity(ctx, "Billy.Jean@me.com")
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))

	_, err = s.CreateUser(ctx, "Billy.Jean@me.com", "myPassword")
	require.NoError(t, err)
	assert.ErrorIs(t, s.AddToRole(ctx, "Billy.Jean@me.com", domain.RoleAccountHolders), domain.ErrRoleNotFound)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.VerifyPassword(ctx, "Billy.Jean@me.com", "myPassword")
			_, _ = s.GetRoles(ctx, "Billy.Jean@me.com")
		}()
		go func() {
			defer wg.Done()
			_ = s.Create(ctx, &domain.BankAccount{ID: string(rune('a' + i)), UserName: "u"})
		}()
	}
	wg.Wait()

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 8)
}
