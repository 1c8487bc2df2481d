package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"walkwatch/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	ReminderIntervalMinutes    int  `yaml:"reminder_interval_minutes"`
	IdleThresholdMinutes       int  `yaml:"idle_threshold_minutes"`
	Enabled                    bool `yaml:"enabled"`
	ConfirmationEnabled        bool `yaml:"confirmation_enabled"`
	ConfirmationTimeoutSeconds int  `yaml:"confirmation_timeout_seconds"`
	SnoozeMinutes              int  `yaml:"snooze_minutes"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFrom(configPath)
}

// LoadSettingsFrom reads user preferences from the given YAML file.
func LoadSettingsFrom(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsTo(configPath, settings)
}

// SaveSettingsTo writes user preferences to the given YAML file, creating
// parent directories as needed.
func SaveSettingsTo(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		ReminderIntervalMinutes:    int(settings.ReminderInterval / time.Minute),
		IdleThresholdMinutes:       int(settings.IdleThreshold / time.Minute),
		Enabled:                    settings.Enabled,
		ConfirmationEnabled:        settings.ConfirmationEnabled,
		ConfirmationTimeoutSeconds: int(settings.ConfirmationTimeout / time.Second),
		SnoozeMinutes:              int(settings.SnoozeDuration / time.Minute),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// SettingsPath resolves the settings file location under the user config dir.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.ReminderIntervalMinutes > 0 {
		settings.ReminderInterval = time.Duration(fileData.ReminderIntervalMinutes) * time.Minute
	}
	if fileData.IdleThresholdMinutes > 0 {
		settings.IdleThreshold = time.Duration(fileData.IdleThresholdMinutes) * time.Minute
	}
	if fileData.ConfirmationTimeoutSeconds > 0 {
		settings.ConfirmationTimeout = time.Duration(fileData.ConfirmationTimeoutSeconds) * time.Second
	}
	if fileData.SnoozeMinutes > 0 {
		settings.SnoozeDuration = time.Duration(fileData.SnoozeMinutes) * time.Minute
	}

	settings.Enabled = fileData.Enabled
	settings.ConfirmationEnabled = fileData.ConfirmationEnabled
}
