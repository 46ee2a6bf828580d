package services

import (
	"context"

	"github.com/babylonlabs-io/stake-ledger/consumer"
	"github.com/babylonlabs-io/stake-ledger/internal/address"
	"github.com/babylonlabs-io/stake-ledger/internal/clients/tokenclient"
	"github.com/babylonlabs-io/stake-ledger/internal/config"
	"github.com/babylonlabs-io/stake-ledger/internal/db"
)

type Service struct {
	cfg        *config.Config
	programIDs *config.ProgramIDs
	deriver    *address.Deriver
	db         db.DbInterface
	token      tokenclient.TokenInterface
	consumer   consumer.EventConsumer
}

func NewService(
	cfg *config.Config,
	programIDs *config.ProgramIDs,
	deriver *address.Deriver,
	db db.DbInterface,
	token tokenclient.TokenInterface,
	consumer consumer.EventConsumer,
) *Service {
	return &Service{
		cfg:        cfg,
		programIDs: programIDs,
		deriver:    deriver,
		db:         db,
		token:      token,
		consumer:   consumer,
	}
}

// StartBackgroundWorkers starts the outbox relay and the stats poller. Both
// stop when ctx is done.
func (s *Service) StartBackgroundWorkers(ctx context.Context) {
	s.StartOutboxRelay(ctx)
	s.StartStatsPoller(ctx)
}
