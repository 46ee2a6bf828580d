package testutil

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonlabs-io/stake-ledger/internal/config"
)

const (
	mongoDatabaseName = "test-database"
	mongoReplicaSet   = "rs0"

	// this version corresponds to docker tag for mongodb
	// it should be in sync with mongo version used in production
	mongoVersion = "7.0.5"

	// mongo error code for an already initiated replica set
	alreadyInitializedCode = 23
)

// SetupMongoContainer starts a single node MongoDB replica set (transactions
// need one) and returns its config. Cleanup function MUST be called in the
// end to cleanup docker resources.
func SetupMongoContainer() (*config.DbConfig, func(), error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, err
	}
	pool.MaxWait = 2 * time.Minute

	// generate random string for container name
	randomString, err := RandomAlphaNum(3)
	if err != nil {
		return nil, nil, err
	}

	// there can be only 1 container with the same name, so we add
	// random string in the end in case there is still old container running
	containerName := "mongo-integration-tests-db-" + randomString
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       containerName,
		Repository: "mongo",
		Tag:        mongoVersion,
		Cmd:        []string{"--replSet", mongoReplicaSet, "--bind_ip_all"},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		err := pool.Purge(resource)
		if err != nil {
			log.Fatalf("failed to purge resource: %v", err)
		}
	}

	// get host port (randomly chosen) that is mapped to mongo port inside container
	hostPort := resource.GetPort("27017/tcp")
	address := fmt.Sprintf("mongodb://localhost:%s/?directConnection=true", hostPort)

	err = pool.Retry(func() error {
		return initiateReplicaSet(address)
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initiate replica set: %w", err)
	}

	return &config.DbConfig{
		DbName:             mongoDatabaseName,
		Address:            address,
		MaxPaginationLimit: 10,
	}, cleanup, nil
}

func initiateReplicaSet(address string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(address))
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	admin := client.Database("admin")
	err = admin.RunCommand(ctx, bson.D{{Key: "replSetInitiate", Value: bson.M{
		"_id": mongoReplicaSet,
		"members": bson.A{
			bson.M{"_id": 0, "host": "localhost:27017"},
		},
	}}}).Err()
	if err != nil {
		var cmdErr mongo.CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Code != alreadyInitializedCode {
			return err
		}
	}

	var hello struct {
		IsWritablePrimary bool `bson:"isWritablePrimary"`
	}
	if err := admin.RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		return err
	}
	if !hello.IsWritablePrimary {
		return errors.New("replica set has no primary yet")
	}
	return nil
}

// ResetCollections removes every document from the given collections.
func ResetCollections(ctx context.Context, database *mongo.Database, collections ...string) error {
	for _, collection := range collections {
		if _, err := database.Collection(collection).DeleteMany(ctx, bson.M{}); err != nil {
			return err
		}
	}
	return nil
}
