package consumer

import (
	"context"

	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

//go:generate mockery --name=EventConsumer --output=../tests/mocks --outpkg=mocks --filename=mock_event_consumer.go
type EventConsumer interface {
	Start() error
	PushStakeEvent(ctx context.Context, ev *types.StakeEventMessage) error
	// ConsumeStakeEvents delivers every event published from now on to handler
	// until ctx is done or handler returns an error.
	ConsumeStakeEvents(ctx context.Context, handler func(ev *types.StakeEventMessage) error) error
	Stop() error
}
