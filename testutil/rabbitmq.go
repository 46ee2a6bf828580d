package testutil

import (
	"fmt"
	"log"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/babylonlabs-io/stake-ledger/internal/config"
)

const (
	rabbitmqVersion  = "3.13-alpine"
	rabbitmqUser     = "user"
	rabbitmqPassword = "password"
)

// SetupRabbitMQContainer starts a RabbitMQ broker and returns a queue config
// pointing at it. Cleanup function MUST be called in the end to cleanup
// docker resources.
func SetupRabbitMQContainer() (*config.QueueConfig, func(), error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, err
	}
	pool.MaxWait = 2 * time.Minute

	randomString, err := RandomAlphaNum(3)
	if err != nil {
		return nil, nil, err
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       "rabbitmq-integration-tests-" + randomString,
		Repository: "rabbitmq",
		Tag:        rabbitmqVersion,
		Env: []string{
			"RABBITMQ_DEFAULT_USER=" + rabbitmqUser,
			"RABBITMQ_DEFAULT_PASS=" + rabbitmqPassword,
		},
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
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("failed to purge resource: %v", err)
		}
	}

	cfg := &config.QueueConfig{
		QueueUser:              rabbitmqUser,
		QueuePassword:          rabbitmqPassword,
		Url:                    fmt.Sprintf("localhost:%s", resource.GetPort("5672/tcp")),
		QueueName:              "stake_events_queue_" + randomString,
		QueueType:              config.QueueTypeClassic,
		QueueProcessingTimeout: 5 * time.Second,
	}

	err = pool.Retry(func() error {
		conn, err := amqp.Dial(cfg.AmqpURL())
		if err != nil {
			return err
		}
		return conn.Close()
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("rabbitmq did not become ready: %w", err)
	}

	return cfg, cleanup, nil
}
