package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/stake-ledger/internal/db"
	"github.com/babylonlabs-io/stake-ledger/internal/db/model"
	"github.com/babylonlabs-io/stake-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
	"github.com/babylonlabs-io/stake-ledger/internal/utils/poller"
)

// errPublishDeferred stops a relay run when the queue rejects an event. The
// event stays PENDING and is picked up again by the next run.
var errPublishDeferred = errors.New("stake event publish deferred")

// StartOutboxRelay periodically publishes committed stake events to the queue.
func (s *Service) StartOutboxRelay(ctx context.Context) {
	relayPoller := poller.NewPoller(
		"outbox-relay",
		s.cfg.Poller.OutboxPollingInterval,
		metrics.RecordPollerDuration("outbox-relay", s.relayPendingEvents),
	)
	go relayPoller.Start(ctx)
}

func (s *Service) relayPendingEvents(ctx context.Context) error {
	events, err := s.db.GetPendingStakeEvents(ctx, s.cfg.Poller.OutboxBatchSize)
	if err != nil {
		return fmt.Errorf("failed to get pending stake events: %w", err)
	}
	metrics.RecordPendingEvents(len(events))

	if len(events) == 0 {
		return nil
	}
	log.Ctx(ctx).Debug().Int("count", len(events)).Msg("Relaying pending stake events")

	for _, event := range events {
		if err := s.relayEvent(ctx, event); err != nil {
			// later events wait so the queue sees them in commit order
			if errors.Is(err, errPublishDeferred) {
				return nil
			}
			return err
		}
	}

	return nil
}

// relayEvent publishes one event. Only an event that cannot be decoded is
// marked FAILED. A publish failure keeps it PENDING, records the error and
// returns errPublishDeferred.
func (s *Service) relayEvent(ctx context.Context, event *model.StakeEventDocument) error {
	log := log.Ctx(ctx).With().Str("event_id", event.ID).Logger()

	msg, err := event.ToMessage()
	if err != nil {
		log.Error().Err(err).Msg("Malformed stake event in outbox")
		return s.markEvent(ctx, event.ID, types.EventStatusFailed, err.Error())
	}

	err = retry.Do(
		func() error {
			return s.consumer.PushStakeEvent(ctx, msg)
		},
		retry.Context(ctx),
		retry.Attempts(s.cfg.Poller.PublishMaxAttempts),
		retry.Delay(s.cfg.Poller.PublishRetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().
				Uint("attempt", n+1).
				Uint("max_attempts", s.cfg.Poller.PublishMaxAttempts).
				Err(err).
				Msg("Failed to publish stake event, retrying")
		}),
	)
	if err != nil {
		metrics.RecordQueueSendError()
		log.Warn().Err(err).Uint("attempts", event.Attempts+1).Msg("Failed to publish stake event, will retry on next run")
		if err := s.markEvent(ctx, event.ID, types.EventStatusPending, err.Error()); err != nil {
			return err
		}
		return errPublishDeferred
	}

	return s.markEvent(ctx, event.ID, types.EventStatusPublished, "")
}

func (s *Service) markEvent(ctx context.Context, id string, status types.EventStatus, lastErr string) error {
	err := s.db.UpdateStakeEventStatus(ctx, id, types.QualifiedStatesForPublish(), status, lastErr)
	if err != nil {
		// another relay already moved it on
		if db.IsNotFoundError(err) {
			log.Ctx(ctx).Warn().Str("event_id", id).Msg("Stake event is no longer pending")
			return nil
		}
		return fmt.Errorf("failed to mark stake event %s as %s: %w", id, status, err)
	}
	return nil
}
