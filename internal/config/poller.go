package config

import (
	"errors"
	"time"
)

const (
	defaultStatsPollingInterval = 5 * time.Minute
	defaultPublishMaxAttempts   = 5
)

type PollerConfig struct {
	OutboxPollingInterval time.Duration `mapstructure:"outbox-polling-interval"`
	OutboxBatchSize       uint64        `mapstructure:"outbox-batch-size"`
	// publish tries per event within one relay run
	PublishMaxAttempts    uint          `mapstructure:"publish-max-attempts"`
	PublishRetryInterval  time.Duration `mapstructure:"publish-retry-interval"`
	StatsPollingInterval  time.Duration `mapstructure:"stats-polling-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.OutboxPollingInterval <= 0 {
		return errors.New("outbox-polling-interval must be positive")
	}

	if cfg.OutboxBatchSize <= 0 {
		return errors.New("outbox-batch-size must be positive")
	}

	if cfg.PublishRetryInterval <= 0 {
		return errors.New("publish-retry-interval must be positive")
	}

	if cfg.PublishMaxAttempts == 0 {
		cfg.PublishMaxAttempts = defaultPublishMaxAttempts
	}

	if cfg.StatsPollingInterval <= 0 {
		cfg.StatsPollingInterval = defaultStatsPollingInterval
	}

	return nil
}
