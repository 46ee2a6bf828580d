package types

import "time"

type EventType string

func (e EventType) String() string {
	return string(e)
}

const (
	EventStake EventType = "stake_event"
)

// StakeEvent is the audit record emitted once per successful stake.
type StakeEvent struct {
	Staker   PublicKey `json:"staker"`
	Mint     PublicKey `json:"mint"`
	Amount   uint64    `json:"amount"`
	NewTotal uint64    `json:"new_total"`
}

// StakeEventMessage is the envelope pushed to the queue.
type StakeEventMessage struct {
	EventID       string    `json:"event_id"`
	EventType     EventType `json:"event_type"`
	StakerAccount PublicKey `json:"staker_account"`
	StakeEvent
	Timestamp int64 `json:"timestamp"`
}

func NewStakeEventMessage(eventID string, stakerAccount PublicKey, ev StakeEvent, createdAt time.Time) *StakeEventMessage {
	return &StakeEventMessage{
		EventID:       eventID,
		EventType:     EventStake,
		StakerAccount: stakerAccount,
		StakeEvent:    ev,
		Timestamp:     createdAt.Unix(),
	}
}
