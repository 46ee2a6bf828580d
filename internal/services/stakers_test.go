package services

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/stake-ledger/internal/db"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
	"github.com/babylonlabs-io/stake-ledger/testutil"
)

func TestGetStaker(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	mint := testutil.RandomPublicKey(t)
	user, key := f.participant(t, mint, 10)

	_, err := f.svc.GetStaker(ctx, user, mint)
	requireErrorCode(t, err, types.NotFound)

	receipt, err := f.svc.Stake(ctx, f.instruction(t, user, key, mint, 10))
	require.NoError(t, err)

	entry, err := f.svc.GetStaker(ctx, user, mint)
	require.NoError(t, err)
	assert.Equal(t, receipt.StakerAccount, entry.Address)
	assert.Equal(t, user, entry.Owner)
	assert.Equal(t, mint, entry.Mint)
	assert.EqualValues(t, 10, entry.Total)
	assert.Equal(t, user.String(), entry.Payer)
}

func TestListStakers(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	mintA := testutil.RandomPublicKey(t)
	mintB := testutil.RandomPublicKey(t)

	p1, p1Key := f.participant(t, mintA, 10)
	p2, p2Key := f.participant(t, mintB, 10)
	_, err := f.svc.Stake(ctx, f.instruction(t, p1, p1Key, mintA, 1))
	require.NoError(t, err)
	_, err = f.svc.Stake(ctx, f.instruction(t, p2, p2Key, mintB, 2))
	require.NoError(t, err)

	page, err := f.svc.ListStakers(ctx, db.StakerFilter{}, "")
	require.NoError(t, err)
	assert.Len(t, page.Stakers, 2)

	page, err = f.svc.ListStakers(ctx, db.StakerFilter{Mint: mintB.String()}, "")
	require.NoError(t, err)
	require.Len(t, page.Stakers, 1)
	assert.Equal(t, p2, page.Stakers[0].Owner)

	page, err = f.svc.ListStakers(ctx, db.StakerFilter{Owner: p1.String()}, "")
	require.NoError(t, err)
	require.Len(t, page.Stakers, 1)
	assert.EqualValues(t, 1, page.Stakers[0].Total)
}

func TestGetPoolSummary(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	mint := testutil.RandomPublicKey(t)

	t.Run("empty pool", func(t *testing.T) {
		summary, err := f.svc.GetPoolSummary(ctx, mint)
		require.NoError(t, err)
		assert.Zero(t, summary.StakerCount)
		assert.True(t, summary.TotalStaked.IsZero())
		assert.True(t, summary.Balanced())
	})

	p1, p1Key := f.participant(t, mint, 100)
	p2, p2Key := f.participant(t, mint, 100)
	_, err := f.svc.Stake(ctx, f.instruction(t, p1, p1Key, mint, 60))
	require.NoError(t, err)
	_, err = f.svc.Stake(ctx, f.instruction(t, p2, p2Key, mint, 40))
	require.NoError(t, err)

	summary, err := f.svc.GetPoolSummary(ctx, mint)
	require.NoError(t, err)
	assert.EqualValues(t, 2, summary.StakerCount)
	assert.True(t, summary.TotalStaked.Equal(sdkmath.NewInt(100)))
	assert.EqualValues(t, 100, summary.CustodyBalance)
	assert.True(t, summary.Balanced())

	t.Run("custody topped up outside of staking", func(t *testing.T) {
		require.NoError(t, f.token.MintTo(ctx, summary.VaultATA, 1))

		summary, err := f.svc.GetPoolSummary(ctx, mint)
		require.NoError(t, err)
		assert.False(t, summary.Balanced())
	})
	t.Run("stats poller exports every mint", func(t *testing.T) {
		require.NoError(t, f.svc.calculateAndUpdateStats(ctx))
	})
}
