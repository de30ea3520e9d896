package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bankdemo/bank-api/internal/core/domain"
)

type mongoAccount struct {
	domain.BankAccount `bson:",inline"`
	NormalizedUserName string `bson:"normalized_user_name"`
}

func (s *Store) Create(ctx context.Context, account *domain.BankAccount) error {
	doc := mongoAccount{BankAccount: *account, NormalizedUserName: normalize(account.UserName)}
	if _, err := s.accounts.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *Store) FindByUserName(ctx context.Context, username string) (*domain.BankAccount, error) {
	var doc mongoAccount
	err := s.accounts.FindOne(ctx, bson.M{"normalized_user_name": normalize(username)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &doc.BankAccount, nil
}

func (s *Store) List(ctx context.Context) ([]*domain.BankAccount, error) {
	cur, err := s.accounts.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "user_name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAccount
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	out := make([]*domain.BankAccount, 0, len(docs))
	for i := range docs {
		out = append(out, &docs[i].BankAccount)
	}
	return out, nil
}
