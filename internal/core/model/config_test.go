package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestNormalizeFillsDefaults verifies that non-positive durations are
// replaced while flags and explicit values survive.
func TestNormalizeFillsDefaults(t *testing.T) {
	t.Parallel()

	config := MonitorConfig{Enabled: true}.Normalize()

	require.Equal(t, DefaultReminderInterval, config.ReminderInterval)
	require.Equal(t, DefaultIdleThreshold, config.IdleThreshold)
	require.Equal(t, DefaultPollInterval, config.PollInterval)
	require.Equal(t, DefaultConfirmationTimeout, config.ConfirmationTimeout)
	require.Equal(t, DefaultSnoozeDuration, config.SnoozeDuration)
	require.Equal(t, DefaultGracePeriod, config.GracePeriod)
	require.True(t, config.Enabled)
	require.False(t, config.ConfirmationEnabled)
}

// TestNormalizeKeepsExplicitValues verifies positive values pass through.
func TestNormalizeKeepsExplicitValues(t *testing.T) {
	t.Parallel()

	config := MonitorConfig{
		ReminderInterval: 10 * time.Second,
		IdleThreshold:    15 * time.Second,
		PollInterval:     time.Second,
	}.Normalize()

	require.Equal(t, 10*time.Second, config.ReminderInterval)
	require.Equal(t, 15*time.Second, config.IdleThreshold)
}
