package db

import (
	"context"
	"time"

	"github.com/babylonlabs-io/stake-ledger/internal/db/model"
	"github.com/babylonlabs-io/stake-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

// WithTransaction is timed as a whole; calls made inside fn are timed on their own.
func (d *DbWithMetrics) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return d.run("WithTransaction", func() error {
		return d.db.WithTransaction(ctx, fn)
	})
}

func (d *DbWithMetrics) GetOrCreateStaker(ctx context.Context, address, payer string, space int) (result *model.StakerDocument, err error) {
	//nolint:errcheck
	d.run("GetOrCreateStaker", func() error {
		result, err = d.db.GetOrCreateStaker(ctx, address, payer, space)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveStaker(ctx context.Context, staker *model.StakerDocument) error {
	return d.run("SaveStaker", func() error {
		return d.db.SaveStaker(ctx, staker)
	})
}

func (d *DbWithMetrics) GetStakerByAddress(ctx context.Context, address string) (result *model.StakerDocument, err error) {
	//nolint:errcheck
	d.run("GetStakerByAddress", func() error {
		result, err = d.db.GetStakerByAddress(ctx, address)
		return err
	})
	return
}

func (d *DbWithMetrics) GetStakers(ctx context.Context, filter StakerFilter, paginationToken string) (result *DbResultMap[*model.StakerDocument], err error) {
	//nolint:errcheck
	d.run("GetStakers", func() error {
		result, err = d.db.GetStakers(ctx, filter, paginationToken)
		return err
	})
	return
}

func (d *DbWithMetrics) GetStakerTotalsByMint(ctx context.Context, mint string) (result *model.StakerTotals, err error) {
	//nolint:errcheck
	d.run("GetStakerTotalsByMint", func() error {
		result, err = d.db.GetStakerTotalsByMint(ctx, mint)
		return err
	})
	return
}

func (d *DbWithMetrics) GetStakedMints(ctx context.Context) (result []string, err error) {
	//nolint:errcheck
	d.run("GetStakedMints", func() error {
		result, err = d.db.GetStakedMints(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveNewTokenAccount(ctx context.Context, account *model.TokenAccountDocument) error {
	return d.run("SaveNewTokenAccount", func() error {
		return d.db.SaveNewTokenAccount(ctx, account)
	})
}

func (d *DbWithMetrics) GetTokenAccount(ctx context.Context, address string) (result *model.TokenAccountDocument, err error) {
	//nolint:errcheck
	d.run("GetTokenAccount", func() error {
		result, err = d.db.GetTokenAccount(ctx, address)
		return err
	})
	return
}

func (d *DbWithMetrics) UpdateTokenAccountAmount(ctx context.Context, address string, amount uint64) error {
	return d.run("UpdateTokenAccountAmount", func() error {
		return d.db.UpdateTokenAccountAmount(ctx, address, amount)
	})
}

func (d *DbWithMetrics) SaveStakeEvent(ctx context.Context, event *model.StakeEventDocument) error {
	return d.run("SaveStakeEvent", func() error {
		return d.db.SaveStakeEvent(ctx, event)
	})
}

func (d *DbWithMetrics) GetPendingStakeEvents(ctx context.Context, limit uint64) (result []*model.StakeEventDocument, err error) {
	//nolint:errcheck
	d.run("GetPendingStakeEvents", func() error {
		result, err = d.db.GetPendingStakeEvents(ctx, limit)
		return err
	})
	return
}

func (d *DbWithMetrics) UpdateStakeEventStatus(ctx context.Context, id string, qualifiedPreviousStatuses []types.EventStatus, newStatus types.EventStatus, lastErr string) error {
	return d.run("UpdateStakeEventStatus", func() error {
		return d.db.UpdateStakeEventStatus(ctx, id, qualifiedPreviousStatuses, newStatus, lastErr)
	})
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
