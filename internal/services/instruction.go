package services

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"github.com/cloudflare/circl/sign/ed25519"

	"github.com/babylonlabs-io/stake-ledger/internal/address"
	"github.com/babylonlabs-io/stake-ledger/internal/config"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

// stakeInstructionDiscriminator prefixes the signed message of a stake instruction.
var stakeInstructionDiscriminator = func() [8]byte {
	var d [8]byte
	h := sha256.Sum256([]byte("global:do_stake"))
	copy(d[:], h[:8])
	return d
}()

// StakeAccounts lists every account a stake instruction touches.
type StakeAccounts struct {
	User                   types.PublicKey `json:"user"`
	Mint                   types.PublicKey `json:"mint"`
	VaultAuthority         types.PublicKey `json:"vault_authority"`
	UserATA                types.PublicKey `json:"user_ata"`
	VaultATA               types.PublicKey `json:"vault_ata"`
	Staker                 types.PublicKey `json:"staker"`
	TokenProgram           types.PublicKey `json:"token_program"`
	AssociatedTokenProgram types.PublicKey `json:"associated_token_program"`
	SystemProgram          types.PublicKey `json:"system_program"`
}

func (a *StakeAccounts) keys() []types.PublicKey {
	return []types.PublicKey{
		a.User,
		a.Mint,
		a.VaultAuthority,
		a.UserATA,
		a.VaultATA,
		a.Staker,
		a.TokenProgram,
		a.AssociatedTokenProgram,
		a.SystemProgram,
	}
}

// ResolveStakeAccounts fills in every account of a stake of mint by user
// that can be derived.
func ResolveStakeAccounts(deriver *address.Deriver, programIDs *config.ProgramIDs, user, mint types.PublicKey) (*StakeAccounts, error) {
	vaultAuthority, _, err := deriver.VaultAuthority(mint)
	if err != nil {
		return nil, err
	}
	staker, _, err := deriver.Staker(user, mint)
	if err != nil {
		return nil, err
	}
	userATA, err := deriver.AssociatedTokenAddress(user, mint)
	if err != nil {
		return nil, err
	}
	vaultATA, err := deriver.AssociatedTokenAddress(vaultAuthority, mint)
	if err != nil {
		return nil, err
	}

	return &StakeAccounts{
		User:                   user,
		Mint:                   mint,
		VaultAuthority:         vaultAuthority,
		UserATA:                userATA,
		VaultATA:               vaultATA,
		Staker:                 staker,
		TokenProgram:           programIDs.TokenProgram,
		AssociatedTokenProgram: programIDs.AssociatedTokenProgram,
		SystemProgram:          programIDs.SystemProgram,
	}, nil
}

// StakeInstruction is a signed request to move Amount tokens into custody.
type StakeInstruction struct {
	Amount    uint64        `json:"amount"`
	Accounts  StakeAccounts `json:"accounts"`
	Signature []byte        `json:"signature,omitempty"`
}

func NewStakeInstruction(accounts StakeAccounts, amount uint64) *StakeInstruction {
	return &StakeInstruction{
		Amount:   amount,
		Accounts: accounts,
	}
}

// Message returns the bytes the participant signs: discriminator, amount
// (little endian) and the account keys in declaration order.
func (ix *StakeInstruction) Message() []byte {
	keys := ix.Accounts.keys()
	msg := make([]byte, 0, len(stakeInstructionDiscriminator)+8+len(keys)*types.PublicKeySize)
	msg = append(msg, stakeInstructionDiscriminator[:]...)
	msg = binary.LittleEndian.AppendUint64(msg, ix.Amount)
	for _, key := range keys {
		msg = append(msg, key[:]...)
	}
	return msg
}

// Sign signs the instruction with the participant's key.
func (ix *StakeInstruction) Sign(key ed25519.PrivateKey) error {
	if len(key) != ed25519.PrivateKeySize {
		return errors.New("invalid ed25519 private key")
	}
	signer, err := types.PublicKeyFromBytes(key[ed25519.SeedSize:])
	if err != nil {
		return err
	}
	if signer != ix.Accounts.User {
		return errors.New("signing key does not belong to the instruction user")
	}

	ix.Signature = ed25519.Sign(key, ix.Message())
	return nil
}

// IsSignedByUser reports whether the instruction carries a valid signature of
// the participant.
func (ix *StakeInstruction) IsSignedByUser() bool {
	if len(ix.Signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(ix.Accounts.User.Bytes()), ix.Message(), ix.Signature)
}
