// Package alerts implements the coordinator's presentation shell: the
// "still there?" confirmation window and the walk alert. Both are small
// always-on-top windows rather than platform modal dialogs, so timer ticks
// and idle samples keep flowing while they are visible.
package alerts

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"walkwatch/internal/core/coordinator"
)

// Callbacks route user responses back into the coordinator.
type Callbacks struct {
	OnConfirmationAnswered func(present bool)
	OnWalkResponse         func(coordinator.WalkResponse)
}

// Shell owns the two prompt windows and implements coordinator.Presenter.
// Show and dismiss calls may arrive from timer goroutines; all window
// mutation is funneled through fyne.Do.
type Shell struct {
	confirmation fyne.Window
	walkAlert    fyne.Window
}

// New builds both windows hidden.
func New(app fyne.App, callbacks Callbacks) *Shell {
	shell := &Shell{}

	confirmation := app.NewWindow("Still there?")
	confirmationText := widget.NewLabel("You have been quiet for a while. Still there?")
	hereButton := widget.NewButton("I'm here", func() {
		confirmation.Hide()
		if callbacks.OnConfirmationAnswered != nil {
			callbacks.OnConfirmationAnswered(true)
		}
	})
	confirmation.SetContent(container.NewVBox(
		confirmationText,
		container.NewHBox(layout.NewSpacer(), hereButton, layout.NewSpacer()),
	))
	confirmation.SetCloseIntercept(func() {
		if callbacks.OnConfirmationAnswered != nil {
			callbacks.OnConfirmationAnswered(true)
		}
	})
	confirmation.Resize(fyne.NewSize(320, 120))
	shell.confirmation = confirmation

	walkAlert := app.NewWindow("Time for a walk")
	walkText := widget.NewLabelWithStyle("Time to take a walk!",
		fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	snoozeButton := widget.NewButton("Snooze", func() {
		walkAlert.Hide()
		if callbacks.OnWalkResponse != nil {
			callbacks.OnWalkResponse(coordinator.ResponseSnooze)
		}
	})
	walkButton := widget.NewButton("I'll take a walk", func() {
		walkAlert.Hide()
		if callbacks.OnWalkResponse != nil {
			callbacks.OnWalkResponse(coordinator.ResponseAcknowledge)
		}
	})
	walkAlert.SetContent(container.NewVBox(
		walkText,
		container.NewHBox(snoozeButton, layout.NewSpacer(), walkButton),
	))
	walkAlert.SetCloseIntercept(func() {
		if callbacks.OnWalkResponse != nil {
			callbacks.OnWalkResponse(coordinator.ResponseSnooze)
		}
	})
	walkAlert.Resize(fyne.NewSize(320, 140))
	shell.walkAlert = walkAlert

	return shell
}

// ShowConfirmation displays the "still there?" prompt.
func (shell *Shell) ShowConfirmation() {
	fyne.Do(func() {
		shell.confirmation.Show()
		shell.confirmation.RequestFocus()
	})
}

// DismissConfirmation hides the prompt. Safe when already hidden.
func (shell *Shell) DismissConfirmation() {
	fyne.Do(func() {
		shell.confirmation.Hide()
	})
}

// ShowWalkAlert displays the walk alert.
func (shell *Shell) ShowWalkAlert() {
	fyne.Do(func() {
		shell.walkAlert.Show()
		shell.walkAlert.RequestFocus()
	})
}

// DismissWalkAlert hides the walk alert. Safe when already hidden.
func (shell *Shell) DismissWalkAlert() {
	fyne.Do(func() {
		shell.walkAlert.Hide()
	})
}
