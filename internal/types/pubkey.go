package types

import (
	"bytes"
	"fmt"

	"github.com/mr-tron/base58"
)

const PublicKeySize = 32

// PublicKey is a 32 byte account address, rendered in base58.
type PublicKey [PublicKeySize]byte

// DefaultPublicKey is the all-zero key. Uninitialized records carry it as owner.
var DefaultPublicKey PublicKey

func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeySize {
		return pk, fmt.Errorf("invalid public key length: expected %d bytes, got %d", PublicKeySize, len(b))
	}
	copy(pk[:], b)
	return pk, nil
}

func PublicKeyFromBase58(s string) (PublicKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("invalid base58 public key %q: %w", s, err)
	}
	return PublicKeyFromBytes(b)
}

// MustPublicKeyFromBase58 panics on malformed input. Use only for constants.
func MustPublicKeyFromBase58(s string) PublicKey {
	pk, err := PublicKeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return pk
}

func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

func (pk PublicKey) Bytes() []byte {
	return pk[:]
}

func (pk PublicKey) IsZero() bool {
	return pk == DefaultPublicKey
}

func (pk PublicKey) Equals(other PublicKey) bool {
	return bytes.Equal(pk[:], other[:])
}

func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

func (pk *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := PublicKeyFromBase58(string(text))
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}
