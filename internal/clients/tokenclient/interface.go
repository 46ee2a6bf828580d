package tokenclient

import (
	"context"

	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

// TokenAccount is the state of a token-holding account.
type TokenAccount struct {
	Address types.PublicKey
	Mint    types.PublicKey
	Owner   types.PublicKey
	Amount  uint64
}

//go:generate mockery --name=TokenInterface --output=../../../tests/mocks --outpkg=mocks --filename=mock_token_client.go
type TokenInterface interface {
	// Transfer moves amount from one token account to another. authority must
	// own the source account. Either both balances change or neither does.
	Transfer(ctx context.Context, from, to, authority types.PublicKey, amount uint64) error
	GetAccount(ctx context.Context, address types.PublicKey) (*TokenAccount, error)
	// GetOrCreateAssociatedAccount returns the canonical token account of owner
	// for mint, creating an empty one if needed.
	GetOrCreateAssociatedAccount(ctx context.Context, mint, owner types.PublicKey) (*TokenAccount, error)
	MintTo(ctx context.Context, destination types.PublicKey, amount uint64) error
}
