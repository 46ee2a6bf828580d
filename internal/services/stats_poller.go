package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/stake-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
	"github.com/babylonlabs-io/stake-ledger/internal/utils/poller"
)

// StartStatsPoller starts the stats polling service
func (s *Service) StartStatsPoller(ctx context.Context) {
	statsPoller := poller.NewPoller(
		"stats",
		s.cfg.Poller.StatsPollingInterval,
		metrics.RecordPollerDuration("stats", s.calculateAndUpdateStats),
	)
	go statsPoller.Start(ctx)
}

// calculateAndUpdateStats exports the pool summary of every staked mint
func (s *Service) calculateAndUpdateStats(ctx context.Context) error {
	log := log.Ctx(ctx)

	mints, err := s.db.GetStakedMints(ctx)
	if err != nil {
		return fmt.Errorf("failed to get staked mints: %w", err)
	}

	if len(mints) == 0 {
		log.Debug().Msg("No staker accounts found - skipping stats update")
		return nil
	}

	for _, m := range mints {
		mint, err := types.PublicKeyFromBase58(m)
		if err != nil {
			log.Error().Err(err).Str("mint", m).Msg("Skipping invalid mint")
			continue
		}

		summary, err := s.GetPoolSummary(ctx, mint)
		if err != nil {
			return fmt.Errorf("failed to get pool summary for %s: %w", m, err)
		}

		total, _ := summary.TotalStaked.ToLegacyDec().Float64()
		metrics.RecordMintStats(m, total, summary.StakerCount, !summary.Balanced())

		if !summary.Balanced() {
			log.Warn().
				Str("mint", m).
				Str("total_staked", summary.TotalStaked.String()).
				Uint64("custody_balance", summary.CustodyBalance).
				Msg("Custody balance does not match ledger totals")
		}
	}

	log.Debug().Int("mint_count", len(mints)).Msg("Updated mint stats")
	return nil
}
