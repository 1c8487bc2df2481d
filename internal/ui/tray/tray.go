package tray

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnPreferences func()
	OnToggle      func()
	OnSnoozeFor   func(time.Duration)
	OnQuit        func()
}

// Manager handles system tray state: the countdown readout and the
// paused / away / disabled indicator.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	snoozeFor   *fyne.MenuItem
	callbacks   Callbacks
	enabled     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		enabled:   true,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.snoozeFor = fyne.NewMenuItem("Snooze reminder for...", nil)
	manager.snoozeFor.ChildMenu = fyne.NewMenu("",
		fyne.NewMenuItem("5 minutes", func() {
			if manager.callbacks.OnSnoozeFor != nil {
				manager.callbacks.OnSnoozeFor(5 * time.Minute)
			}
		}), fyne.NewMenuItem("15 minutes", func() {
			if manager.callbacks.OnSnoozeFor != nil {
				manager.callbacks.OnSnoozeFor(15 * time.Minute)
			}
		}), fyne.NewMenuItem("30 minutes", func() {
			if manager.callbacks.OnSnoozeFor != nil {
				manager.callbacks.OnSnoozeFor(30 * time.Minute)
			}
		}))

	manager.toggleItem = fyne.NewMenuItem("Disable reminders", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	app.SetSystemTrayMenu(manager.buildMenu())

	return manager
}

// SetCountdown renders the remaining time together with the pause flags.
func (manager *Manager) SetCountdown(remaining time.Duration, paused, away bool) {
	switch {
	case away:
		manager.statusLabel = "away, waiting for your return"
	case paused:
		manager.statusLabel = fmt.Sprintf("paused at %s", formatRemaining(remaining))
	default:
		manager.statusLabel = fmt.Sprintf("next walk in %s", formatRemaining(remaining))
	}
	manager.refresh()
}

// SetEnabled updates the toggle label and the disabled indicator.
func (manager *Manager) SetEnabled(enabled bool) {
	manager.enabled = enabled
	if enabled {
		manager.toggleItem.Label = "Disable reminders"
	} else {
		manager.toggleItem.Label = "Enable reminders"
		manager.statusLabel = "reminders disabled"
	}
	manager.refresh()
}

func (manager *Manager) refresh() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
	manager.snoozeFor.Disabled = !manager.enabled
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.buildMenu())
	}
}

func (manager *Manager) buildMenu() *fyne.Menu {
	return fyne.NewMenu("walkwatch",
		manager.statusItem,
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		manager.snoozeFor,
		manager.toggleItem,
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
}

func formatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
