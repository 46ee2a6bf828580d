package model

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonlabs-io/stake-ledger/internal/config"
)

type index struct {
	Keys   bson.D
	Unique bool
}

var collections = map[string][]index{
	StakersCollection: {
		{Keys: bson.D{{Key: "mint", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "_id", Value: 1}}},
	},
	TokenAccountsCollection: {
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "mint", Value: 1}}},
	},
	StakeEventsCollection: {
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "staker_account", Value: 1}, {Key: "created_at", Value: 1}}},
	},
}

// Setup creates the collections and indexes the service relies on. Collections
// have to exist up front because they are written inside transactions.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	clientOps := options.Client().ApplyURI(cfg.Address)
	if cfg.Username != "" {
		clientOps.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Failed to disconnect setup client")
		}
	}()

	database := client.Database(cfg.DbName)

	for collection := range collections {
		if err := createCollection(ctx, database, collection); err != nil {
			return err
		}
	}

	for name, idxs := range collections {
		for _, idx := range idxs {
			if err := createIndex(ctx, database, name, idx); err != nil {
				return err
			}
		}
	}

	log.Ctx(ctx).Info().Msg("Collections and indexes created successfully")
	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, collectionName string) error {
	err := database.CreateCollection(ctx, collectionName)
	if err != nil {
		var cmdErr mongo.CommandError
		// NamespaceExists
		if errors.As(err, &cmdErr) && cmdErr.Code == 48 {
			log.Ctx(ctx).Debug().Str("collection", collectionName).Msg("Collection already exists")
			return nil
		}
		return err
	}

	log.Ctx(ctx).Debug().Str("collection", collectionName).Msg("Collection created")
	return nil
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	if len(idx.Keys) == 0 {
		return nil
	}

	indexModel := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: options.Index().SetUnique(idx.Unique),
	}

	_, err := database.Collection(collectionName).Indexes().CreateOne(ctx, indexModel)
	return err
}
