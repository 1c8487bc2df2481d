package idlewatch

import "time"

// State represents the current presence classification.
type State string

const (
	// StateNormal means recent input has been observed.
	StateNormal State = "normal"
	// StateConfirming means the idle threshold was crossed and presence is
	// being confirmed before committing to away.
	StateConfirming State = "confirming"
	// StateAway means the user is confirmed absent.
	StateAway State = "away"
)

// EventType defines the type of idle monitor event.
type EventType string

const (
	// EventCheckNeeded fires once per idle episode when the idle threshold
	// is crossed from the normal state.
	EventCheckNeeded EventType = "check_needed"
	// EventActivityDetected fires when fresh input is observed while the
	// user was being confirmed or away.
	EventActivityDetected EventType = "activity_detected"
)

// Event represents an idle monitor transition for observers.
type Event struct {
	Type EventType
	Idle time.Duration
	At   time.Time
}
