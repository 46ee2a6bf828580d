package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/stake-ledger/internal/types"
	"github.com/babylonlabs-io/stake-ledger/testutil"
)

func TestResolveStakeAccounts(t *testing.T) {
	f := newFixture(t)
	user := testutil.RandomPublicKey(t)
	mint := testutil.RandomPublicKey(t)

	accounts, err := ResolveStakeAccounts(f.deriver, f.ids, user, mint)
	require.NoError(t, err)

	vaultAuthority, _, err := f.deriver.VaultAuthority(mint)
	require.NoError(t, err)
	staker, _, err := f.deriver.Staker(user, mint)
	require.NoError(t, err)
	userATA, err := f.deriver.AssociatedTokenAddress(user, mint)
	require.NoError(t, err)
	vaultATA, err := f.deriver.AssociatedTokenAddress(vaultAuthority, mint)
	require.NoError(t, err)

	assert.Equal(t, StakeAccounts{
		User:                   user,
		Mint:                   mint,
		VaultAuthority:         vaultAuthority,
		UserATA:                userATA,
		VaultATA:               vaultATA,
		Staker:                 staker,
		TokenProgram:           f.ids.TokenProgram,
		AssociatedTokenProgram: f.ids.AssociatedTokenProgram,
		SystemProgram:          f.ids.SystemProgram,
	}, *accounts)

	t.Run("custody is shared per mint", func(t *testing.T) {
		other, err := ResolveStakeAccounts(f.deriver, f.ids, testutil.RandomPublicKey(t), mint)
		require.NoError(t, err)
		assert.Equal(t, accounts.VaultAuthority, other.VaultAuthority)
		assert.Equal(t, accounts.VaultATA, other.VaultATA)
		assert.NotEqual(t, accounts.Staker, other.Staker)
	})
}

func TestStakeInstruction_Signature(t *testing.T) {
	f := newFixture(t)
	user, key := testutil.RandomKeypair(t)
	accounts, err := ResolveStakeAccounts(f.deriver, f.ids, user, testutil.RandomPublicKey(t))
	require.NoError(t, err)

	ix := NewStakeInstruction(*accounts, 42)
	assert.False(t, ix.IsSignedByUser())

	require.NoError(t, ix.Sign(key))
	assert.True(t, ix.IsSignedByUser())

	t.Run("message covers every account", func(t *testing.T) {
		tampered := *ix
		tampered.Accounts.VaultATA = testutil.RandomPublicKey(t)
		assert.False(t, tampered.IsSignedByUser())
		assert.Len(t, ix.Message(), 8+8+9*types.PublicKeySize)
	})
	t.Run("foreign key refused", func(t *testing.T) {
		_, otherKey := testutil.RandomKeypair(t)
		other := NewStakeInstruction(*accounts, 42)
		require.Error(t, other.Sign(otherKey))
		assert.Empty(t, other.Signature)
	})
	t.Run("malformed key refused", func(t *testing.T) {
		other := NewStakeInstruction(*accounts, 42)
		require.Error(t, other.Sign(key[:10]))
	})
}
