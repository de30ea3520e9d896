package mongo

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bankdemo/bank-api/internal/pkg/password"
)

const (
	usersCollection    = "users"
	rolesCollection    = "roles"
	accountsCollection = "accounts"
)

// Store is the production user, role and account store. It implements
// ports.UserStore and ports.AccountRepository.
type Store struct {
	db       *mongo.Database
	users    *mongo.Collection
	roles    *mongo.Collection
	accounts *mongo.Collection
	hasher   *password.Hasher
	policy   password.Policy
}

func NewStore(db *mongo.Database, hasher *password.Hasher, policy password.Policy) *Store {
	return &Store{
		db:       db,
		users:    db.Collection(usersCollection),
		roles:    db.Collection(rolesCollection),
		accounts: db.Collection(accountsCollection),
		hasher:   hasher,
		policy:   policy,
	}
}

// EnsureIndexes creates the unique username index lookups rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "normalized_user_name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	_, err = s.accounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "normalized_user_name", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create accounts index: %w", err)
	}
	return nil
}

// Reset drops the whole database and recreates its indexes.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.db.Drop(ctx); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	return s.EnsureIndexes(ctx)
}

func normalize(username string) string {
	return strings.ToUpper(strings.TrimSpace(username))
}
