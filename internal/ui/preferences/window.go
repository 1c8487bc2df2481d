package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window       fyne.Window
	settings     Settings
	onSave       func(Settings)
	interval     *widget.Entry
	threshold    *widget.Entry
	confirmCheck *widget.Check
	confirmWait  *widget.Entry
	snooze       *widget.Entry
	enabledCheck *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("walkwatch Settings")

	interval := widget.NewEntry()
	threshold := widget.NewEntry()
	confirmWait := widget.NewEntry()
	snooze := widget.NewEntry()

	interval.SetText(fmt.Sprintf("%d", int(settings.ReminderInterval.Minutes())))
	threshold.SetText(fmt.Sprintf("%d", int(settings.IdleThreshold.Minutes())))
	confirmWait.SetText(fmt.Sprintf("%d", int(settings.ConfirmationTimeout.Seconds())))
	snooze.SetText(fmt.Sprintf("%d", int(settings.SnoozeDuration.Minutes())))

	enabledCheck := widget.NewCheck("Enable walk reminders", nil)
	enabledCheck.SetChecked(settings.Enabled)

	confirmCheck := widget.NewCheck("Ask before marking me away", nil)
	confirmCheck.SetChecked(settings.ConfirmationEnabled)

	form := container.NewVBox(
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Remind me to walk every"), interval, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Consider me idle after"), threshold, widget.NewLabel("min")),
		enabledCheck,
		confirmCheck,
		container.NewHBox(widget.NewLabel("Confirmation wait"), confirmWait, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Snooze length"), snooze, widget.NewLabel("min")),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 320))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs := &Window{
		window:       window,
		settings:     settings,
		onSave:       onSave,
		interval:     interval,
		threshold:    threshold,
		confirmCheck: confirmCheck,
		confirmWait:  confirmWait,
		snooze:       snooze,
		enabledCheck: enabledCheck,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.interval.SetText(fmt.Sprintf("%d", int(settings.ReminderInterval.Minutes())))
	prefs.threshold.SetText(fmt.Sprintf("%d", int(settings.IdleThreshold.Minutes())))
	prefs.confirmWait.SetText(fmt.Sprintf("%d", int(settings.ConfirmationTimeout.Seconds())))
	prefs.snooze.SetText(fmt.Sprintf("%d", int(settings.SnoozeDuration.Minutes())))
	prefs.enabledCheck.SetChecked(settings.Enabled)
	prefs.confirmCheck.SetChecked(settings.ConfirmationEnabled)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.interval.Text); ok {
		settings.ReminderInterval = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.threshold.Text); ok {
		settings.IdleThreshold = time.Duration(minutes) * time.Minute
	}
	if seconds, ok := parsePositiveInt(prefs.confirmWait.Text); ok {
		settings.ConfirmationTimeout = time.Duration(seconds) * time.Second
	}
	if minutes, ok := parsePositiveInt(prefs.snooze.Text); ok {
		settings.SnoozeDuration = time.Duration(minutes) * time.Minute
	}

	settings.Enabled = prefs.enabledCheck.Checked
	settings.ConfirmationEnabled = prefs.confirmCheck.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
