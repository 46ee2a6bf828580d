package config

import (
	"fmt"
	"time"
)

const (
	QueueTypeClassic = "classic"
	QueueTypeQuorum  = "quorum"

	defaultQueueName = "stake_events_queue"
)

type QueueConfig struct {
	QueueUser              string        `mapstructure:"queue-user"`
	QueuePassword          string        `mapstructure:"queue-password"`
	Url                    string        `mapstructure:"url"`
	QueueName              string        `mapstructure:"queue-name"`
	QueueType              string        `mapstructure:"queue-type"`
	QueueProcessingTimeout time.Duration `mapstructure:"processing-timeout"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.Url == "" {
		return fmt.Errorf("missing queue url")
	}

	if cfg.QueueUser == "" || cfg.QueuePassword == "" {
		return fmt.Errorf("missing queue credentials")
	}

	if cfg.QueueName == "" {
		cfg.QueueName = defaultQueueName
	}

	switch cfg.QueueType {
	case "":
		cfg.QueueType = QueueTypeQuorum
	case QueueTypeClassic, QueueTypeQuorum:
	default:
		return fmt.Errorf("unsupported queue type: %s", cfg.QueueType)
	}

	if cfg.QueueProcessingTimeout <= 0 {
		return fmt.Errorf("processing-timeout must be positive")
	}

	return nil
}

// AmqpURL builds the broker url from the configured credentials.
func (cfg *QueueConfig) AmqpURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s", cfg.QueueUser, cfg.QueuePassword, cfg.Url)
}
