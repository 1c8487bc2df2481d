package countdown

import "time"

// EventType defines the type of countdown event.
type EventType string

const (
	// EventTick carries the remaining time after a decrement or a
	// pause/resume flag change.
	EventTick EventType = "tick"
	// EventCompleted fires exactly once when the countdown reaches zero.
	EventCompleted EventType = "completed"
	// EventEnabledChanged fires when the countdown is enabled or disabled.
	EventEnabledChanged EventType = "enabled_changed"
)

// Event represents a countdown update for observers.
type Event struct {
	Type      EventType
	Remaining time.Duration
	Enabled   bool
	Paused    bool
	Away      bool
	At        time.Time
}

// Status is a point-in-time snapshot of the countdown state.
type Status struct {
	Remaining time.Duration
	Enabled   bool
	Paused    bool
	Away      bool
}
