package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/babylonlabs-io/stake-ledger/internal/db/model"
)

func (db *Database) SaveNewTokenAccount(ctx context.Context, account *model.TokenAccountDocument) error {
	_, err := db.collection(model.TokenAccountsCollection).
		InsertOne(ctx, account)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     account.Address,
						Message: "token account already exists",
					}
				}
			}
		}
		return err
	}

	return nil
}

func (db *Database) GetTokenAccount(ctx context.Context, address string) (*model.TokenAccountDocument, error) {
	filter := bson.M{"_id": address}

	var account model.TokenAccountDocument
	err := db.collection(model.TokenAccountsCollection).
		FindOne(ctx, filter).
		Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     address,
				Message: "token account not found",
			}
		}
		return nil, err
	}

	return &account, nil
}

func (db *Database) UpdateTokenAccountAmount(ctx context.Context, address string, amount uint64) error {
	filter := bson.M{"_id": address}
	update := bson.M{
		"$set": bson.M{
			"amount":     model.Amount(amount),
			"updated_at": time.Now().UTC(),
		},
	}

	res, err := db.collection(model.TokenAccountsCollection).
		UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     address,
			Message: "token account not found when updating amount",
		}
	}

	return nil
}
