//go:build integration

package services

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonlabs-io/stake-ledger/internal/db"
	"github.com/babylonlabs-io/stake-ledger/internal/db/model"
	"github.com/babylonlabs-io/stake-ledger/testutil"
)

var testDB *db.Database

// mongo connected to test database, used for truncating collections
var mongoDB *mongo.Database

func TestMain(m *testing.M) {
	dbConfig, cleanup, err := testutil.SetupMongoContainer()
	if err != nil {
		log.Fatalf("failed to setup mongo container: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = model.Setup(ctx, dbConfig)
	if err != nil {
		cleanup()
		log.Fatalf("failed to init mongo database: %v", err)
	}

	testDB, err = db.New(ctx, *dbConfig)
	if err != nil {
		cleanup()
		log.Fatalf("failed to setup client: %v", err)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(dbConfig.Address))
	if err != nil {
		cleanup()
		log.Fatalf("failed to setup mongo client: %v", err)
	}
	mongoDB = client.Database(dbConfig.DbName)

	// integration tests run on this line
	code := m.Run()
	cleanup()

	os.Exit(code)
}

func resetDatabase(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := testutil.ResetCollections(ctx, mongoDB,
		model.StakersCollection,
		model.TokenAccountsCollection,
		model.StakeEventsCollection,
	)
	require.NoError(t, err)
}
