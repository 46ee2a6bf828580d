package db

import (
	"context"

	"github.com/babylonlabs-io/stake-ledger/internal/db/model"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

//go:generate mockery --name=DbInterface --output=../../tests/mocks --outpkg=mocks --filename=mock_db_client.go
type DbInterface interface {
	Ping(ctx context.Context) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// GetOrCreateStaker returns the ledger entry stored at address, allocating a
	// zero-valued one billed to payer if none exists yet.
	GetOrCreateStaker(ctx context.Context, address, payer string, space int) (*model.StakerDocument, error)
	SaveStaker(ctx context.Context, staker *model.StakerDocument) error
	GetStakerByAddress(ctx context.Context, address string) (*model.StakerDocument, error)
	GetStakers(ctx context.Context, filter StakerFilter, paginationToken string) (*DbResultMap[*model.StakerDocument], error)
	GetStakerTotalsByMint(ctx context.Context, mint string) (*model.StakerTotals, error)
	GetStakedMints(ctx context.Context) ([]string, error)

	SaveNewTokenAccount(ctx context.Context, account *model.TokenAccountDocument) error
	GetTokenAccount(ctx context.Context, address string) (*model.TokenAccountDocument, error)
	UpdateTokenAccountAmount(ctx context.Context, address string, amount uint64) error

	SaveStakeEvent(ctx context.Context, event *model.StakeEventDocument) error
	GetPendingStakeEvents(ctx context.Context, limit uint64) ([]*model.StakeEventDocument, error)
	UpdateStakeEventStatus(
		ctx context.Context, id string, qualifiedPreviousStatuses []types.EventStatus, newStatus types.EventStatus, lastErr string,
	) error
}

// StakerFilter narrows GetStakers. Empty fields match everything.
type StakerFilter struct {
	Owner string
	Mint  string
}

type DbResultMap[T any] struct {
	Data            []T    `json:"data"`
	PaginationToken string `json:"paginationToken"`
}
