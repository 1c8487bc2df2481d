package preferences

import (
	"time"

	"walkwatch/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	ReminderInterval    time.Duration
	IdleThreshold       time.Duration
	Enabled             bool
	ConfirmationEnabled bool
	ConfirmationTimeout time.Duration
	SnoozeDuration      time.Duration
}

// DefaultSettings returns default settings for walkwatch.
func DefaultSettings() Settings {
	return Settings{
		ReminderInterval:    model.DefaultReminderInterval,
		IdleThreshold:       model.DefaultIdleThreshold,
		Enabled:             true,
		ConfirmationEnabled: true,
		ConfirmationTimeout: model.DefaultConfirmationTimeout,
		SnoozeDuration:      model.DefaultSnoozeDuration,
	}
}

// MonitorConfig converts settings to the engine configuration.
func (settings Settings) MonitorConfig() model.MonitorConfig {
	return model.MonitorConfig{
		ReminderInterval:    settings.ReminderInterval,
		IdleThreshold:       settings.IdleThreshold,
		Enabled:             settings.Enabled,
		ConfirmationEnabled: settings.ConfirmationEnabled,
		ConfirmationTimeout: settings.ConfirmationTimeout,
		SnoozeDuration:      settings.SnoozeDuration,
	}.Normalize()
}
