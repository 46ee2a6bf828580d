package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicKey(t *testing.T) {
	t.Run("default key", func(t *testing.T) {
		assert.True(t, DefaultPublicKey.IsZero())
		assert.Equal(t, "11111111111111111111111111111111", DefaultPublicKey.String())
	})
	t.Run("base58 round trip", func(t *testing.T) {
		var pk PublicKey
		for i := range pk {
			pk[i] = byte(i + 1)
		}
		parsed, err := PublicKeyFromBase58(pk.String())
		require.NoError(t, err)
		assert.Equal(t, pk, parsed)
		assert.False(t, parsed.IsZero())
	})
	t.Run("invalid input", func(t *testing.T) {
		_, err := PublicKeyFromBase58("0OIl")
		require.Error(t, err)

		// valid base58, wrong length
		_, err = PublicKeyFromBase58("abc")
		require.Error(t, err)

		_, err = PublicKeyFromBytes(make([]byte, 31))
		require.Error(t, err)
	})
	t.Run("json", func(t *testing.T) {
		pk := MustPublicKeyFromBase58("F1JH85HfWhojoEyTPq5jJHqjoEt1hPaSR9QthvCvLs9r")
		b, err := json.Marshal(struct {
			Key PublicKey `json:"key"`
		}{Key: pk})
		require.NoError(t, err)
		assert.JSONEq(t, `{"key":"F1JH85HfWhojoEyTPq5jJHqjoEt1hPaSR9QthvCvLs9r"}`, string(b))

		var decoded struct {
			Key PublicKey `json:"key"`
		}
		require.NoError(t, json.Unmarshal(b, &decoded))
		assert.Equal(t, pk, decoded.Key)
	})
}
