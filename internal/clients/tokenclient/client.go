package tokenclient

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/stake-ledger/internal/address"
	"github.com/babylonlabs-io/stake-ledger/internal/db"
	"github.com/babylonlabs-io/stake-ledger/internal/db/model"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

// Client keeps token balances in the same database as the ledger, so a
// transfer made inside db.WithTransaction commits or rolls back together with
// the rest of the unit of work.
type Client struct {
	db      db.DbInterface
	deriver *address.Deriver
}

func NewTokenClient(db db.DbInterface, deriver *address.Deriver) *Client {
	return &Client{
		db:      db,
		deriver: deriver,
	}
}

func (c *Client) Transfer(ctx context.Context, from, to, authority types.PublicKey, amount uint64) error {
	source, err := c.loadAccount(ctx, from)
	if err != nil {
		return err
	}
	destination, err := c.loadAccount(ctx, to)
	if err != nil {
		return err
	}

	if source.Owner != authority {
		return newTransferError(OwnerMismatch, "account %s is not owned by %s", from, authority)
	}
	if source.Mint != destination.Mint {
		return newTransferError(MintMismatch, "mint %s of %s does not match mint %s of %s",
			source.Mint, from, destination.Mint, to)
	}
	if source.Amount < amount {
		return newTransferError(InsufficientFunds, "account %s holds %d, need %d", from, source.Amount, amount)
	}

	// self transfer is a no-op once the checks above passed
	if from == to {
		return nil
	}

	newDestinationAmount, carry := bits.Add64(destination.Amount, amount, 0)
	if carry != 0 {
		return newTransferError(Overflow, "crediting %d to %s overflows", amount, to)
	}

	if err := c.db.UpdateTokenAccountAmount(ctx, from.String(), source.Amount-amount); err != nil {
		return fmt.Errorf("failed to debit %s: %w", from, err)
	}
	if err := c.db.UpdateTokenAccountAmount(ctx, to.String(), newDestinationAmount); err != nil {
		return fmt.Errorf("failed to credit %s: %w", to, err)
	}

	log.Ctx(ctx).Debug().
		Stringer("from", from).
		Stringer("to", to).
		Uint64("amount", amount).
		Msg("Transferred tokens")

	return nil
}

func (c *Client) GetAccount(ctx context.Context, address types.PublicKey) (*TokenAccount, error) {
	doc, err := c.db.GetTokenAccount(ctx, address.String())
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func (c *Client) GetOrCreateAssociatedAccount(ctx context.Context, mint, owner types.PublicKey) (*TokenAccount, error) {
	ata, err := c.deriver.AssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, err
	}

	account, err := c.GetAccount(ctx, ata)
	if err == nil {
		return account, nil
	}
	if !db.IsNotFoundError(err) {
		return nil, err
	}

	doc := model.NewTokenAccountDocument(ata.String(), mint.String(), owner.String())
	if err := c.db.SaveNewTokenAccount(ctx, doc); err != nil {
		// somebody else created it in the meantime
		if db.IsDuplicateKeyError(err) {
			return c.GetAccount(ctx, ata)
		}
		return nil, fmt.Errorf("failed to create associated token account %s: %w", ata, err)
	}

	log.Ctx(ctx).Info().
		Stringer("address", ata).
		Stringer("mint", mint).
		Stringer("owner", owner).
		Msg("Created associated token account")

	return fromDocument(doc)
}

func (c *Client) MintTo(ctx context.Context, destination types.PublicKey, amount uint64) error {
	account, err := c.loadAccount(ctx, destination)
	if err != nil {
		return err
	}

	newAmount, carry := bits.Add64(account.Amount, amount, 0)
	if carry != 0 {
		return newTransferError(Overflow, "minting %d into %s overflows", amount, destination)
	}

	return c.db.UpdateTokenAccountAmount(ctx, destination.String(), newAmount)
}

func (c *Client) loadAccount(ctx context.Context, address types.PublicKey) (*TokenAccount, error) {
	account, err := c.GetAccount(ctx, address)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, newTransferError(AccountNotFound, "token account %s does not exist", address)
		}
		return nil, err
	}
	return account, nil
}

func fromDocument(doc *model.TokenAccountDocument) (*TokenAccount, error) {
	addr, err := types.PublicKeyFromBase58(doc.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid token account address: %w", err)
	}
	mint, err := types.PublicKeyFromBase58(doc.Mint)
	if err != nil {
		return nil, fmt.Errorf("invalid mint of token account %s: %w", doc.Address, err)
	}
	owner, err := types.PublicKeyFromBase58(doc.Owner)
	if err != nil {
		return nil, fmt.Errorf("invalid owner of token account %s: %w", doc.Address, err)
	}

	return &TokenAccount{
		Address: addr,
		Mint:    mint,
		Owner:   owner,
		Amount:  doc.Amount.Uint64(),
	}, nil
}
