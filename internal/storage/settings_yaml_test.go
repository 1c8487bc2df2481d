package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"walkwatch/internal/ui/preferences"
)

// TestSaveAndLoadSettings verifies the YAML round trip through an explicit
// path.
func TestSaveAndLoadSettings(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "walkwatch", "settings.yaml")

	saved := preferences.Settings{
		ReminderInterval:    45 * time.Minute,
		IdleThreshold:       7 * time.Minute,
		Enabled:             true,
		ConfirmationEnabled: false,
		ConfirmationTimeout: 20 * time.Second,
		SnoozeDuration:      10 * time.Minute,
	}
	require.NoError(t, SaveSettingsTo(configPath, saved))

	loaded, err := LoadSettingsFrom(configPath)
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

// TestLoadMissingFileReturnsDefaults verifies a missing settings file is not
// an error.
func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	loaded, err := LoadSettingsFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, preferences.DefaultSettings(), loaded)
}

// TestLoadMalformedFileReturnsDefaultsAndError verifies broken YAML surfaces
// an error while still handing back usable defaults.
func TestLoadMalformedFileReturnsDefaultsAndError(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("{not yaml"), 0o644))

	loaded, err := LoadSettingsFrom(configPath)
	require.Error(t, err)
	require.Equal(t, preferences.DefaultSettings(), loaded)
}

// TestNonPositiveValuesFallBackToDefaults verifies zeroed duration fields in
// the file do not clobber defaults.
func TestNonPositiveValuesFallBackToDefaults(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "settings.yaml")
	raw := "reminder_interval_minutes: 0\nidle_threshold_minutes: -3\nenabled: true\nconfirmation_enabled: true\n"
	require.NoError(t, os.WriteFile(configPath, []byte(raw), 0o644))

	loaded, err := LoadSettingsFrom(configPath)
	require.NoError(t, err)

	defaults := preferences.DefaultSettings()
	require.Equal(t, defaults.ReminderInterval, loaded.ReminderInterval)
	require.Equal(t, defaults.IdleThreshold, loaded.IdleThreshold)
	require.True(t, loaded.Enabled)
	require.True(t, loaded.ConfirmationEnabled)
}
