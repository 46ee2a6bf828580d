package config

import (
	"fmt"
	"net/url"
)

const defaultMaxPaginationLimit = 100

type DbConfig struct {
	Username           string `mapstructure:"username"`
	Password           string `mapstructure:"password"`
	DbName             string `mapstructure:"db-name"`
	Address            string `mapstructure:"address"`
	MaxPaginationLimit int64  `mapstructure:"max-pagination-limit"`
}

func (cfg *DbConfig) Validate() error {
	if cfg.Address == "" {
		return fmt.Errorf("missing db address")
	}

	u, err := url.Parse(cfg.Address)
	if err != nil {
		return fmt.Errorf("invalid db address: %w", err)
	}

	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return fmt.Errorf("unsupported db address scheme: %s", u.Scheme)
	}

	if cfg.DbName == "" {
		return fmt.Errorf("missing db name")
	}

	if cfg.MaxPaginationLimit < 0 {
		return fmt.Errorf("max-pagination-limit must not be negative")
	}
	if cfg.MaxPaginationLimit == 0 {
		cfg.MaxPaginationLimit = defaultMaxPaginationLimit
	}

	return nil
}
