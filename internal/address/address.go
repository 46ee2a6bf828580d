// Package address derives program-owned sub-addresses from seeds.
//
// A derived address is sha256(seeds || bump || program id || marker) with the
// extra requirement that the digest is not a valid ed25519 point, so nobody
// can hold a private key for it. Derivation is pure: the same seeds always
// give the same address, which lets records be located without an index.
package address

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"filippo.io/edwards25519"

	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

const (
	MaxSeeds      = 16
	MaxSeedLength = 32

	pdaMarker = "ProgramDerivedAddress"
)

var (
	ErrMaxSeedLengthExceeded = errors.New("seed length exceeds maximum")
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrInvalidSeeds          = errors.New("provided seeds do not result in a valid address")
	ErrNoViableBump          = errors.New("unable to find a viable program address bump seed")
)

// CreateProgramAddress derives an address from the exact seeds given. It
// fails with ErrInvalidSeeds when the result lands on the ed25519 curve.
func CreateProgramAddress(seeds [][]byte, programID types.PublicKey) (types.PublicKey, error) {
	if len(seeds) > MaxSeeds {
		return types.PublicKey{}, fmt.Errorf("%w: %d > %d", ErrTooManySeeds, len(seeds), MaxSeeds)
	}

	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return types.PublicKey{}, fmt.Errorf("%w: %d > %d", ErrMaxSeedLengthExceeded, len(seed), MaxSeedLength)
		}
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))

	var addr types.PublicKey
	copy(addr[:], h.Sum(nil))

	if IsOnCurve(addr) {
		return types.PublicKey{}, ErrInvalidSeeds
	}
	return addr, nil
}

// FindProgramAddress appends a bump seed, starting at 255 and counting down,
// until the derived address is off the curve.
func FindProgramAddress(seeds [][]byte, programID types.PublicKey) (types.PublicKey, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return types.PublicKey{}, 0, fmt.Errorf("%w: bump seed needs room, got %d seeds", ErrTooManySeeds, len(seeds))
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)

	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		addr, err := CreateProgramAddress(withBump, programID)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if !errors.Is(err, ErrInvalidSeeds) {
			return types.PublicKey{}, 0, err
		}
	}
	return types.PublicKey{}, 0, ErrNoViableBump
}

// IsOnCurve reports whether the 32 bytes decode to a valid ed25519 point.
func IsOnCurve(pk types.PublicKey) bool {
	_, err := new(edwards25519.Point).SetBytes(pk[:])
	return err == nil
}
