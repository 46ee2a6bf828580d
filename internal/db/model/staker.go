package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

const StakersCollection = "stakers"

// StakerDocument is a ledger entry. The primary key is the address derived
// from (owner, mint); owner and mint are empty until the first stake claims
// the record.
type StakerDocument struct {
	Address   string    `bson:"_id"`
	Owner     string    `bson:"owner"`
	Mint      string    `bson:"mint"`
	Total     Amount    `bson:"total"`
	Data      []byte    `bson:"data,omitempty"` // fixed-size binary record
	Payer     string    `bson:"payer"`
	Space     int       `bson:"space"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// ToStakerAccount converts the stored fields into the domain record.
func (d *StakerDocument) ToStakerAccount() (*types.StakerAccount, error) {
	account := &types.StakerAccount{Total: d.Total.Uint64()}

	if d.Owner != "" {
		owner, err := types.PublicKeyFromBase58(d.Owner)
		if err != nil {
			return nil, fmt.Errorf("staker %s has invalid owner: %w", d.Address, err)
		}
		account.Owner = owner
	}
	if d.Mint != "" {
		mint, err := types.PublicKeyFromBase58(d.Mint)
		if err != nil {
			return nil, fmt.Errorf("staker %s has invalid mint: %w", d.Address, err)
		}
		account.Mint = mint
	}

	return account, nil
}

// ApplyStakerAccount copies the domain record back into the document.
func (d *StakerDocument) ApplyStakerAccount(account *types.StakerAccount) error {
	data, err := account.MarshalBinary()
	if err != nil {
		return err
	}

	d.Owner = ""
	if account.IsInitialized() {
		d.Owner = account.Owner.String()
	}
	d.Mint = ""
	if !account.Mint.IsZero() {
		d.Mint = account.Mint.String()
	}
	d.Total = Amount(account.Total)
	d.Data = data
	return nil
}

// StakerTotals aggregates all ledger entries of a mint. The sum can exceed
// uint64, so it stays a Decimal128.
type StakerTotals struct {
	Mint        string               `bson:"_id"`
	StakerCount uint64               `bson:"staker_count"`
	TotalStaked primitive.Decimal128 `bson:"total_staked"`
}
