package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"walkwatch/internal/ui/preferences"
)

// TestWatchSettingsFileReloadsOnWrite verifies that writing the settings file
// delivers freshly loaded settings to the callback.
func TestWatchSettingsFileReloadsOnWrite(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, SaveSettingsTo(configPath, preferences.DefaultSettings()))

	changes := make(chan preferences.Settings, 1)
	watcher, err := WatchSettingsFile(configPath, zap.NewNop().Sugar(),
		func(settings preferences.Settings) {
			select {
			case changes <- settings:
			default:
			}
		})
	require.NoError(t, err)
	defer func() {
		_ = watcher.Close()
	}()

	updated := preferences.DefaultSettings()
	updated.ReminderInterval = 45 * time.Minute
	require.NoError(t, SaveSettingsTo(configPath, updated))

	select {
	case settings := <-changes:
		require.Equal(t, 45*time.Minute, settings.ReminderInterval)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for settings reload")
	}
}
