package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_STARTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type codes published on the bus. The notifier worker fans these out
// to connected extension contexts; the activity pipeline records them.
const (
	TypeSessionStarted = "SESSION_STARTED"
	TypeSessionEnded   = "SESSION_ENDED"
	TypeSessionExpired = "SESSION_EXPIRED"
	TypeURLAllowed     = "URL_ALLOWED"
	TypeURLBlocked     = "URL_BLOCKED"
	TypeStateReset     = "STATE_RESET"
)

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewSessionStarted builds the event emitted when enforcement begins.
func NewSessionStarted(domain string, startTime, endTime int64) BaseEvent {
	return BaseEvent{
		Type: TypeSessionStarted,
		Data: map[string]interface{}{
			"domain":     domain,
			"start_time": startTime,
			"end_time":   endTime,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionEnded builds the teardown event. expired distinguishes the sweep
// path from an explicit user stop.
func NewSessionEnded(domain string, expired bool) BaseEvent {
	t := TypeSessionEnded
	if expired {
		t = TypeSessionExpired
	}
	return BaseEvent{
		Type: t,
		Data: map[string]interface{}{
			"domain":  domain,
			"expired": expired,
		},
		OccurredAt: time.Now(),
	}
}

// NewStateReset builds the event for a full data reset.
func NewStateReset() BaseEvent {
	return BaseEvent{
		Type:       TypeStateReset,
		Data:       map[string]interface{}{},
		OccurredAt: time.Now(),
	}
}

// NewURLDecision builds the event for a classification outcome landing in
// the decision cache.
func NewURLDecision(allowed bool, urlKey, reason string, confidence float64) BaseEvent {
	t := TypeURLBlocked
	if allowed {
		t = TypeURLAllowed
	}
	return BaseEvent{
		Type: t,
		Data: map[string]interface{}{
			"url":        urlKey,
			"reason":     reason,
			"confidence": confidence,
		},
		OccurredAt: time.Now(),
	}
}
