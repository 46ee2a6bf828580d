package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/stake-ledger/internal/config"
	dbmodel "github.com/babylonlabs-io/stake-ledger/internal/db/model"
	"github.com/babylonlabs-io/stake-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/stake-ledger/internal/observability/tracing"
	"github.com/babylonlabs-io/stake-ledger/internal/queue"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Sets up the store and runs the outbox relay and the stats poller",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up stake ledger db model")
	}

	queueManager, err := queue.NewQueueManager(&cfg.Queue)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize event consumer")
	}
	if err := queueManager.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start event consumer")
	}
	defer func() {
		if err := queueManager.Stop(); err != nil {
			log.Error().Err(err).Msg("error while stopping queue manager")
		}
	}()

	l, err := openLedger(ctx, queueManager)
	if err != nil {
		log.Fatal().Err(err).Msg("error while opening ledger")
	}
	defer l.close()

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	l.service.StartBackgroundWorkers(ctx)
	log.Info().Msg("Stake ledger started")

	<-ctx.Done()
	log.Info().Msg("Shutting down stake ledger")
	return nil
}
