package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/stake-ledger/internal/config"
	"github.com/babylonlabs-io/stake-ledger/internal/observability/tracing"
	"github.com/babylonlabs-io/stake-ledger/internal/queue"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Prints stake events as they are published",
		Args:  cobra.ExactArgs(0),
		RunE:  watch,
	}

	cmd.Flags().String("mint", "", "only print events of this mint")

	return cmd
}

func watch(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	mintFlag, _ := cmd.Flags().GetString("mint")
	var mint types.PublicKey
	if mintFlag != "" {
		var err error
		if mint, err = parsePublicKeyFlag("mint", mintFlag); err != nil {
			return err
		}
	}

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
	}
	queueManager, err := queue.NewQueueManager(&cfg.Queue)
	if err != nil {
		return err
	}
	if err := queueManager.Start(); err != nil {
		return err
	}
	defer func() {
		if err := queueManager.Stop(); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("error while stopping queue manager")
		}
	}()

	out := cmd.OutOrStdout()
	return queueManager.ConsumeStakeEvents(ctx, func(ev *types.StakeEventMessage) error {
		if !mint.IsZero() && ev.Mint != mint {
			return nil
		}
		fmt.Fprintf(out, "StakeEvent %s staker=%s mint=%s amount=%d new_total=%d\n",
			ev.EventID, ev.Staker, ev.Mint, ev.Amount, ev.NewTotal)
		return nil
	})
}
