package model

import "time"

// Default durations applied by MonitorConfig.Normalize.
const (
	DefaultReminderInterval    = 30 * time.Minute
	DefaultIdleThreshold       = 5 * time.Minute
	DefaultPollInterval        = time.Second
	DefaultConfirmationTimeout = 30 * time.Second
	DefaultSnoozeDuration      = 5 * time.Minute
	DefaultGracePeriod         = 5 * time.Second
)

// MonitorConfig contains runtime settings for the walk-reminder engine.
type MonitorConfig struct {
	// ReminderInterval is the countdown length between walk reminders.
	ReminderInterval time.Duration
	// IdleThreshold is how long input may be absent before the user's
	// presence is questioned.
	IdleThreshold time.Duration
	// PollInterval is the cadence of both the countdown tick and the
	// idle sample.
	PollInterval time.Duration
	// Enabled gates the countdown entirely.
	Enabled bool
	// ConfirmationEnabled controls whether an idle episode shows a
	// "still there?" prompt or marks the user away immediately.
	ConfirmationEnabled bool
	// ConfirmationTimeout is how long the prompt waits for input before
	// committing to away.
	ConfirmationTimeout time.Duration
	// SnoozeDuration is the countdown applied when a walk alert is snoozed.
	SnoozeDuration time.Duration
	// GracePeriod suppresses activity signals right after the user
	// acknowledges a walk alert, so the acknowledging click itself is not
	// read as a return.
	GracePeriod time.Duration
}

// Normalize replaces non-positive durations with defaults.
func (config MonitorConfig) Normalize() MonitorConfig {
	if config.ReminderInterval <= 0 {
		config.ReminderInterval = DefaultReminderInterval
	}
	if config.IdleThreshold <= 0 {
		config.IdleThreshold = DefaultIdleThreshold
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	if config.ConfirmationTimeout <= 0 {
		config.ConfirmationTimeout = DefaultConfirmationTimeout
	}
	if config.SnoozeDuration <= 0 {
		config.SnoozeDuration = DefaultSnoozeDuration
	}
	if config.GracePeriod <= 0 {
		config.GracePeriod = DefaultGracePeriod
	}
	return config
}
