package model

import (
	"time"

	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

const StakeEventsCollection = "stake_events"

// StakeEventDocument is the outbox copy of an audit event. It is written in
// the same transaction as the ledger update and relayed to the queue later.
type StakeEventDocument struct {
	ID            string            `bson:"_id"`
	StakerAccount string            `bson:"staker_account"`
	Staker        string            `bson:"staker"`
	Mint          string            `bson:"mint"`
	Amount        Amount            `bson:"amount"`
	NewTotal      Amount            `bson:"new_total"`
	Status        types.EventStatus `bson:"status"`
	Attempts      uint              `bson:"attempts"`
	LastError     string            `bson:"last_error,omitempty"`
	CreatedAt     time.Time         `bson:"created_at"`
	PublishedAt   *time.Time        `bson:"published_at,omitempty"`
}

func NewStakeEventDocument(id string, stakerAccount types.PublicKey, ev types.StakeEvent) *StakeEventDocument {
	return &StakeEventDocument{
		ID:            id,
		StakerAccount: stakerAccount.String(),
		Staker:        ev.Staker.String(),
		Mint:          ev.Mint.String(),
		Amount:        Amount(ev.Amount),
		NewTotal:      Amount(ev.NewTotal),
		Status:        types.EventStatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}

// ToMessage builds the queue payload for the event.
func (d *StakeEventDocument) ToMessage() (*types.StakeEventMessage, error) {
	stakerAccount, err := types.PublicKeyFromBase58(d.StakerAccount)
	if err != nil {
		return nil, err
	}
	staker, err := types.PublicKeyFromBase58(d.Staker)
	if err != nil {
		return nil, err
	}
	mint, err := types.PublicKeyFromBase58(d.Mint)
	if err != nil {
		return nil, err
	}

	ev := types.StakeEvent{
		Staker:   staker,
		Mint:     mint,
		Amount:   d.Amount.Uint64(),
		NewTotal: d.NewTotal.Uint64(),
	}
	return types.NewStakeEventMessage(d.ID, stakerAccount, ev, d.CreatedAt), nil
}
