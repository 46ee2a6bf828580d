package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/stake-ledger/cmd/stake-ledger/cli"
	"github.com/babylonlabs-io/stake-ledger/pkg"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}

	level, err := zerolog.ParseLevel(pkg.Getenv("LOG_LEVEL", zerolog.InfoLevel.String()))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func main() {
	if err := cli.Setup(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
