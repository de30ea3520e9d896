package mongo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bankdemo/bank-api/internal/core/domain"
)

type mongoUser struct {
	ID                 string   `bson:"_id"`
	UserName           string   `bson:"user_name"`
	NormalizedUserName string   `bson:"normalized_user_name"`
	PasswordHash       string   `bson:"password_hash"`
	Roles              []string `bson:"roles"`
	CreatedAt          int64    `bson:"created_at"`
}

type mongoRole struct {
	Name string `bson:"_id"`
}

func (s *Store) CreateRole(ctx context.Context, name string) error {
	if _, err := s.roles.InsertOne(ctx, mongoRole{Name: name}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, username, pw string) (*domain.Identity, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("create user: empty username")
	}
	if err := s.policy.Validate(pw); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(pw)
	if err != nil {
		return nil, err
	}

	doc := mongoUser{
		ID:                 uuid.NewString(),
		UserName:           username,
		NormalizedUserName: normalize(username),
		PasswordHash:       hash,
		Roles:              []string{},
		CreatedAt:          time.Now().UTC().Unix(),
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *Store) AddToRole(ctx context.Context, username, role string) error {
	n, err := s.roles.CountDocuments(ctx, bson.M{"_id": role})
	if err != nil {
		return fmt.Errorf("find role: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrRoleNotFound, role)
	}

	res, err := s.users.UpdateOne(ctx,
		bson.M{"normalized_user_name": normalize(username)},
		bson.M{"$addToSet": bson.M{"roles": role}},
	)
	if err != nil {
		return fmt.Errorf("add role: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *Store) VerifyPassword(ctx context.Context, username, pw string) (bool, error) {
	u, err := s.findUser(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return s.hasher.CompareMissing(pw), nil
	}
	if err != nil {
		return false, err
	}
	return s.hasher.Compare(u.PasswordHash, pw), nil
}

func (s *Store) GetRoles(ctx context.Context, username string) ([]string, error) {
	u, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.toDomain().Roles, nil
}

func (s *Store) GetIdentity(ctx context.Context, username string) (*domain.Identity, error) {
	u, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.toDomain(), nil
}

func (s *Store) findUser(ctx context.Context, username string) (*mongoUser, error) {
	var mu mongoUser
	if err := s.users.FindOne(ctx, bson.M{"normalized_user_name": normalize(username)}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &mu, nil
}

func (mu *mongoUser) toDomain() *domain.Identity {
	roles := append([]string(nil), mu.Roles...)
	sort.Strings(roles)
	return &domain.Identity{
		ID:           mu.ID,
		UserName:     mu.UserName,
		PasswordHash: mu.PasswordHash,
		Roles:        roles,
		CreatedAt:    unixToTime(mu.CreatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
