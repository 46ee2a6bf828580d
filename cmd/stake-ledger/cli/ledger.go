package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/stake-ledger/consumer"
	"github.com/babylonlabs-io/stake-ledger/internal/address"
	"github.com/babylonlabs-io/stake-ledger/internal/clients/tokenclient"
	"github.com/babylonlabs-io/stake-ledger/internal/config"
	"github.com/babylonlabs-io/stake-ledger/internal/db"
	"github.com/babylonlabs-io/stake-ledger/internal/services"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

// ledger bundles what every command talking to the store needs.
type ledger struct {
	cfg        *config.Config
	programIDs *config.ProgramIDs
	deriver    *address.Deriver
	token      tokenclient.TokenInterface
	service    *services.Service
	close      func()
}

// openLedger connects to the store. eventConsumer may be nil for commands
// that do not relay events.
func openLedger(ctx context.Context, eventConsumer consumer.EventConsumer) (*ledger, error) {
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}

	programIDs, err := cfg.Program.Parse()
	if err != nil {
		return nil, err
	}
	deriver := address.NewDeriver(programIDs.Program, programIDs.TokenProgram, programIDs.AssociatedTokenProgram)

	database, err := db.New(ctx, cfg.Db)
	if err != nil {
		return nil, fmt.Errorf("error while creating db client: %w", err)
	}
	var dbClient db.DbInterface = db.NewDbWithMetrics(database)

	var token tokenclient.TokenInterface = tokenclient.NewTokenClient(dbClient, deriver)
	token = tokenclient.NewTokenClientWithMetrics(token)

	return &ledger{
		cfg:        cfg,
		programIDs: programIDs,
		deriver:    deriver,
		token:      token,
		service:    services.NewService(cfg, programIDs, deriver, dbClient, token, eventConsumer),
		close: func() {
			if err := database.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("failed to disconnect from db")
			}
		},
	}, nil
}

func parsePublicKeyFlag(name, value string) (types.PublicKey, error) {
	if value == "" {
		return types.PublicKey{}, fmt.Errorf("--%s is required", name)
	}
	pk, err := types.PublicKeyFromBase58(value)
	if err != nil {
		return types.PublicKey{}, fmt.Errorf("--%s: %w", name, err)
	}
	return pk, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
