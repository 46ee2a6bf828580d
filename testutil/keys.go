package testutil

import (
	"crypto/rand"
	"testing"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

// RandomPublicKey returns random 32 bytes. Most of them are valid curve
// points, so use it only where that does not matter.
func RandomPublicKey(t testing.TB) types.PublicKey {
	t.Helper()

	var pk types.PublicKey
	_, err := rand.Read(pk[:])
	require.NoError(t, err)
	return pk
}

// RandomKeypair generates an ed25519 key and returns it with its address.
func RandomKeypair(t testing.TB) (types.PublicKey, ed25519.PrivateKey) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	pk, err := types.PublicKeyFromBytes(pub)
	require.NoError(t, err)
	return pk, priv
}
