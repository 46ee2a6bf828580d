package types

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

const (
	// DiscriminatorSize is the length of the record-type tag prefixing every
	// persisted account.
	DiscriminatorSize = 8
	// StakerAccountSpace is the fixed allocation for a ledger entry:
	// discriminator + owner + mint + total.
	StakerAccountSpace = DiscriminatorSize + PublicKeySize + PublicKeySize + 8
)

// StakerDiscriminator tags persisted staker records.
var StakerDiscriminator = accountDiscriminator("Staker")

func accountDiscriminator(name string) [DiscriminatorSize]byte {
	var d [DiscriminatorSize]byte
	h := sha256.Sum256([]byte("account:" + name))
	copy(d[:], h[:DiscriminatorSize])
	return d
}

// StakerAccount is the cumulative stake of one owner for one mint.
type StakerAccount struct {
	Owner PublicKey
	Mint  PublicKey
	Total uint64
}

// IsInitialized reports whether the record has been claimed by an owner.
// Freshly allocated records are zero-valued.
func (s *StakerAccount) IsInitialized() bool {
	return !s.Owner.IsZero()
}

func (s *StakerAccount) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, StakerAccountSpace)
	buf = append(buf, StakerDiscriminator[:]...)
	buf = append(buf, s.Owner[:]...)
	buf = append(buf, s.Mint[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, s.Total)
	return buf, nil
}

func (s *StakerAccount) UnmarshalBinary(data []byte) error {
	if len(data) != StakerAccountSpace {
		return fmt.Errorf("invalid staker account size: expected %d bytes, got %d", StakerAccountSpace, len(data))
	}
	if [DiscriminatorSize]byte(data[:DiscriminatorSize]) != StakerDiscriminator {
		return fmt.Errorf("account discriminator mismatch")
	}
	data = data[DiscriminatorSize:]
	copy(s.Owner[:], data[:PublicKeySize])
	copy(s.Mint[:], data[PublicKeySize:2*PublicKeySize])
	s.Total = binary.LittleEndian.Uint64(data[2*PublicKeySize:])
	return nil
}
