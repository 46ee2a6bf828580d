package address

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

var testProgramID = types.MustPublicKeyFromBase58("F1JH85HfWhojoEyTPq5jJHqjoEt1hPaSR9QthvCvLs9r")

func randomKey(t *testing.T) types.PublicKey {
	t.Helper()
	var pk types.PublicKey
	_, err := rand.Read(pk[:])
	require.NoError(t, err)
	return pk
}

func TestFindProgramAddress(t *testing.T) {
	seeds := [][]byte{[]byte("vault"), randomKey(t).Bytes()}

	addr, bump, err := FindProgramAddress(seeds, testProgramID)
	require.NoError(t, err)
	assert.False(t, IsOnCurve(addr))

	t.Run("deterministic", func(t *testing.T) {
		again, againBump, err := FindProgramAddress(seeds, testProgramID)
		require.NoError(t, err)
		assert.Equal(t, addr, again)
		assert.Equal(t, bump, againBump)
	})
	t.Run("bump reproduces address", func(t *testing.T) {
		created, err := CreateProgramAddress(append(seeds, []byte{bump}), testProgramID)
		require.NoError(t, err)
		assert.Equal(t, addr, created)
	})
	t.Run("program id is part of the address", func(t *testing.T) {
		other, _, err := FindProgramAddress(seeds, randomKey(t))
		require.NoError(t, err)
		assert.NotEqual(t, addr, other)
	})
	t.Run("seed order matters", func(t *testing.T) {
		swapped, _, err := FindProgramAddress([][]byte{seeds[1], seeds[0]}, testProgramID)
		require.NoError(t, err)
		assert.NotEqual(t, addr, swapped)
	})
}

func TestCreateProgramAddress_Errors(t *testing.T) {
	t.Run("seed too long", func(t *testing.T) {
		_, err := CreateProgramAddress([][]byte{bytes.Repeat([]byte{1}, MaxSeedLength+1)}, testProgramID)
		require.ErrorIs(t, err, ErrMaxSeedLengthExceeded)
	})
	t.Run("too many seeds", func(t *testing.T) {
		seeds := make([][]byte, MaxSeeds+1)
		_, err := CreateProgramAddress(seeds, testProgramID)
		require.ErrorIs(t, err, ErrTooManySeeds)
	})
	t.Run("no room for bump", func(t *testing.T) {
		seeds := make([][]byte, MaxSeeds)
		_, _, err := FindProgramAddress(seeds, testProgramID)
		require.ErrorIs(t, err, ErrTooManySeeds)
	})
}

func TestIsOnCurve(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	pk, err := types.PublicKeyFromBytes(pub)
	require.NoError(t, err)
	assert.True(t, IsOnCurve(pk))
}

func TestDeriver(t *testing.T) {
	tokenProgram := randomKey(t)
	ataProgram := randomKey(t)
	deriver := NewDeriver(testProgramID, tokenProgram, ataProgram)

	userA, userB := randomKey(t), randomKey(t)
	mintA, mintB := randomKey(t), randomKey(t)

	t.Run("staker addresses are unique per pair", func(t *testing.T) {
		seen := map[types.PublicKey]bool{}
		for _, user := range []types.PublicKey{userA, userB} {
			for _, mint := range []types.PublicKey{mintA, mintB} {
				addr, _, err := deriver.Staker(user, mint)
				require.NoError(t, err)
				assert.False(t, seen[addr], "collision for %s/%s", user, mint)
				seen[addr] = true
			}
		}
		assert.Len(t, seen, 4)
	})
	t.Run("staker matches raw seeds", func(t *testing.T) {
		addr, bump, err := deriver.Staker(userA, mintA)
		require.NoError(t, err)
		raw, rawBump, err := FindProgramAddress([][]byte{[]byte("staker"), userA[:], mintA[:]}, testProgramID)
		require.NoError(t, err)
		assert.Equal(t, raw, addr)
		assert.Equal(t, rawBump, bump)
	})
	t.Run("vault authority is one per mint", func(t *testing.T) {
		vaultA, _, err := deriver.VaultAuthority(mintA)
		require.NoError(t, err)
		again, _, err := deriver.VaultAuthority(mintA)
		require.NoError(t, err)
		vaultB, _, err := deriver.VaultAuthority(mintB)
		require.NoError(t, err)

		assert.Equal(t, vaultA, again)
		assert.NotEqual(t, vaultA, vaultB)
	})
	t.Run("associated token address", func(t *testing.T) {
		ata, err := deriver.AssociatedTokenAddress(userA, mintA)
		require.NoError(t, err)
		raw, _, err := FindProgramAddress([][]byte{userA[:], tokenProgram[:], mintA[:]}, ataProgram)
		require.NoError(t, err)
		assert.Equal(t, raw, ata)

		other, err := deriver.AssociatedTokenAddress(userB, mintA)
		require.NoError(t, err)
		assert.NotEqual(t, ata, other)
	})
}
