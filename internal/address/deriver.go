package address

import (
	"fmt"

	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

const (
	VaultSeed  = "vault"
	StakerSeed = "staker"
)

// Deriver computes the addresses the stake program relies on.
type Deriver struct {
	programID                types.PublicKey
	tokenProgramID           types.PublicKey
	associatedTokenProgramID types.PublicKey
}

func NewDeriver(programID, tokenProgramID, associatedTokenProgramID types.PublicKey) *Deriver {
	return &Deriver{
		programID:                programID,
		tokenProgramID:           tokenProgramID,
		associatedTokenProgramID: associatedTokenProgramID,
	}
}

func (d *Deriver) ProgramID() types.PublicKey {
	return d.programID
}

// VaultAuthority returns the custody authority of the given mint.
func (d *Deriver) VaultAuthority(mint types.PublicKey) (types.PublicKey, uint8, error) {
	addr, bump, err := FindProgramAddress([][]byte{[]byte(VaultSeed), mint.Bytes()}, d.programID)
	if err != nil {
		return types.PublicKey{}, 0, fmt.Errorf("failed to derive vault authority for mint %s: %w", mint, err)
	}
	return addr, bump, nil
}

// Staker returns the ledger entry address for (user, mint).
func (d *Deriver) Staker(user, mint types.PublicKey) (types.PublicKey, uint8, error) {
	addr, bump, err := FindProgramAddress(
		[][]byte{[]byte(StakerSeed), user.Bytes(), mint.Bytes()},
		d.programID,
	)
	if err != nil {
		return types.PublicKey{}, 0, fmt.Errorf("failed to derive staker account for %s/%s: %w", user, mint, err)
	}
	return addr, bump, nil
}

// AssociatedTokenAddress returns the canonical token account of owner for mint.
func (d *Deriver) AssociatedTokenAddress(owner, mint types.PublicKey) (types.PublicKey, error) {
	addr, _, err := FindProgramAddress(
		[][]byte{owner.Bytes(), d.tokenProgramID.Bytes(), mint.Bytes()},
		d.associatedTokenProgramID,
	)
	if err != nil {
		return types.PublicKey{}, fmt.Errorf("failed to derive associated token address for %s/%s: %w", owner, mint, err)
	}
	return addr, nil
}
