package types

// EventStatus tracks delivery of an outbox event to the queue.
type EventStatus string

const (
	// EventStatusPending events are waiting for the relay, including those
	// whose earlier publish attempts failed.
	EventStatusPending   EventStatus = "PENDING"
	EventStatusPublished EventStatus = "PUBLISHED"
	// EventStatusFailed is terminal and only used for events that cannot be
	// decoded into a queue message.
	EventStatusFailed    EventStatus = "FAILED"
)

func (s EventStatus) String() string {
	return string(s)
}

// QualifiedStatesForPublish returns the states an event may be in when the relay publishes it
func QualifiedStatesForPublish() []EventStatus {
	return []EventStatus{EventStatusPending}
}
