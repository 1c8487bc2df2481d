// Package app assembles the walk-reminder engine with its fyne presentation
// shell: one clock, one activity source, one countdown timer, one idle
// monitor, and the coordinator that owns them for the process's lifetime.
package app

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"walkwatch/internal/core/clock"
	"walkwatch/internal/core/coordinator"
	"walkwatch/internal/core/countdown"
	"walkwatch/internal/core/idlewatch"
	"walkwatch/internal/logger"
	"walkwatch/internal/platform"
	"walkwatch/internal/storage"
	"walkwatch/internal/ui/alerts"
	"walkwatch/internal/ui/preferences"
	"walkwatch/internal/ui/tray"
)

// Name is the application name used for config paths and the instance lock.
const Name = "walkwatch"

// Options configures a Run.
type Options struct {
	// ConfigPath overrides the default settings file location.
	ConfigPath string
}

// Run starts the application and blocks until quit.
func Run(options Options) error {
	log := logger.Logger()

	guard, err := platform.AcquireSingleInstance(Name)
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	configPath := options.ConfigPath
	if configPath == "" {
		configPath, err = storage.SettingsPath(Name)
		if err != nil {
			return err
		}
	}

	settings, err := storage.LoadSettingsFrom(configPath)
	if err != nil {
		log.Warnf("load settings, falling back to defaults: %v", err)
	}

	fyneApp := fyneapp.NewWithID("io.walkwatch.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	clk := clock.System
	config := settings.MonitorConfig()
	timer := countdown.New(clk, config.ReminderInterval)
	monitor := idlewatch.NewMonitor(clk, platform.NewActivitySource(), idlewatch.Config{
		Threshold:    config.IdleThreshold,
		PollInterval: config.PollInterval,
		Logger:       log.Named("idlewatch"),
	})

	var coord *coordinator.Coordinator
	shell := alerts.New(fyneApp, alerts.Callbacks{
		OnConfirmationAnswered: func(present bool) {
			coord.HandleConfirmationResponse(present)
		},
		OnWalkResponse: func(response coordinator.WalkResponse) {
			coord.HandleWalkResponse(response)
		},
	})
	coord = coordinator.New(clk, timer, monitor, shell, config, log.Named("coordinator"))

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := storage.SaveSettingsTo(configPath, updated); err != nil {
			log.Errorf("save settings: %v", err)
		}
		coord.UpdateConfig(updated.MonitorConfig())
	})

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnPreferences: prefsWindow.Show,
		OnToggle: func() {
			coord.SetEnabled(!timer.Status().Enabled)
		},
		OnSnoozeFor: coord.Snooze,
		OnQuit: func() {
			coord.Stop()
			fyneApp.Quit()
		},
	})

	timer.OnEvent(func(event countdown.Event) {
		fyne.Do(func() {
			if event.Type == countdown.EventEnabledChanged {
				trayManager.SetEnabled(event.Enabled)
				return
			}
			trayManager.SetCountdown(event.Remaining, event.Paused, event.Away)
		})
	})

	watcher, err := storage.WatchSettingsFile(configPath, log.Named("storage"),
		func(updated preferences.Settings) {
			settings = updated
			fyne.Do(func() {
				prefsWindow.UpdateSettings(updated)
			})
			coord.UpdateConfig(updated.MonitorConfig())
		})
	if err != nil {
		log.Warnf("settings watcher disabled: %v", err)
	} else {
		defer func() {
			_ = watcher.Close()
		}()
	}

	coord.Start()
	log.Infof("walkwatch started, reminder every %s", config.ReminderInterval)
	fyneApp.Run()
	coord.Stop()
	return nil
}
