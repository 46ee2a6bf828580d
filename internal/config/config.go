package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Program ProgramConfig `mapstructure:"program"`
	Db      DbConfig      `mapstructure:"db"`
	Queue   QueueConfig   `mapstructure:"queue"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Poller  PollerConfig  `mapstructure:"poller"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Program.Validate(); err != nil {
		return fmt.Errorf("invalid program config: %w", err)
	}

	if err := cfg.Db.Validate(); err != nil {
		return fmt.Errorf("invalid db config: %w", err)
	}

	if err := cfg.Queue.Validate(); err != nil {
		return fmt.Errorf("invalid queue config: %w", err)
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("invalid metrics config: %w", err)
	}

	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("invalid poller config: %w", err)
	}

	return nil
}

// New returns a fully parsed Config object from a given file and the
// environment. Environment variables override the file: STAKE_LEDGER_DB_ADDRESS
// sets db.address.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)

	v.SetEnvPrefix("stake_ledger")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
