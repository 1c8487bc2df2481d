package coordinator

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"walkwatch/internal/core/clock"
	"walkwatch/internal/core/countdown"
	"walkwatch/internal/core/idlewatch"
	"walkwatch/internal/core/model"
)

// WalkResponse is the user's explicit answer to a walk alert.
type WalkResponse string

const (
	// ResponseSnooze postpones the reminder by the configured snooze
	// duration.
	ResponseSnooze WalkResponse = "snooze"
	// ResponseAcknowledge means the user is stepping away for the walk.
	ResponseAcknowledge WalkResponse = "acknowledge"
)

// Presenter is the presentation shell the coordinator drives. Implementations
// must tolerate dismiss calls for prompts that are no longer visible.
type Presenter interface {
	ShowConfirmation()
	DismissConfirmation()
	ShowWalkAlert()
	DismissWalkAlert()
}

// Coordinator reconciles the countdown timer, the idle monitor, and the
// interactive prompts into one notion of user presence. It is the only
// component that calls mutators on both leaves, and it enforces that at most
// one of {confirmation prompt, walk alert} is ever visible: the walk alert
// always wins.
type Coordinator struct {
	mu        sync.Mutex
	clk       clock.Clock
	timer     *countdown.Timer
	monitor   *idlewatch.Monitor
	presenter Presenter
	log       *zap.SugaredLogger
	config    model.MonitorConfig

	alertShowing            bool
	alertDismissedDueToIdle bool
	promptShowing           bool
	graceUntil              time.Time
	confirmTimeout          clock.Schedule
}

// New wires a coordinator to its timer and monitor. The coordinator holds,
// but does not independently own, both leaves.
func New(clk clock.Clock, timer *countdown.Timer, monitor *idlewatch.Monitor,
	presenter Presenter, config model.MonitorConfig, log *zap.SugaredLogger) *Coordinator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	coord := &Coordinator{
		clk:       clk,
		timer:     timer,
		monitor:   monitor,
		presenter: presenter,
		log:       log,
		config:    config.Normalize(),
	}
	timer.OnEvent(coord.handleTimerEvent)
	monitor.OnEvent(coord.handleIdleEvent)
	return coord
}

// Start launches both leaves.
func (coord *Coordinator) Start() {
	coord.timer.SetEnabled(coord.currentConfig().Enabled)
	coord.timer.Start()
	coord.monitor.StartMonitoring()
}

// Stop cancels both leaves' periodic work. Idempotent.
func (coord *Coordinator) Stop() {
	coord.timer.Stop()
	coord.monitor.StopMonitoring()

	coord.mu.Lock()
	coord.cancelConfirmTimeoutLocked()
	coord.mu.Unlock()
}

// UpdateConfig pushes changed settings into both leaves. Interval and
// threshold changes apply prospectively.
func (coord *Coordinator) UpdateConfig(config model.MonitorConfig) {
	config = config.Normalize()

	coord.mu.Lock()
	previous := coord.config
	coord.config = config
	coord.mu.Unlock()

	if previous.ReminderInterval != config.ReminderInterval {
		coord.timer.UpdateInterval(config.ReminderInterval)
	}
	if previous.IdleThreshold != config.IdleThreshold {
		coord.monitor.UpdateThreshold(config.IdleThreshold)
	}
	coord.timer.SetEnabled(config.Enabled)
}

// SetEnabled switches the reminder countdown on or off.
func (coord *Coordinator) SetEnabled(enabled bool) {
	coord.mu.Lock()
	coord.config.Enabled = enabled
	coord.mu.Unlock()

	coord.timer.SetEnabled(enabled)
}

// Snooze postpones the reminder by the given duration, e.g. from a tray
// action.
func (coord *Coordinator) Snooze(duration time.Duration) {
	coord.timer.Snooze(duration)
}

// HandleWalkResponse settles an explicit walk-alert answer. It is ignored
// entirely when the alert was already auto-dismissed because the user left
// before answering.
func (coord *Coordinator) HandleWalkResponse(response WalkResponse) {
	coord.mu.Lock()
	if !coord.alertShowing {
		coord.mu.Unlock()
		return
	}
	coord.alertShowing = false
	snoozeFor := coord.config.SnoozeDuration
	acknowledged := response == ResponseAcknowledge
	if acknowledged {
		// The click answering the alert is itself input; without the
		// grace window the next idle sample would read it as a return.
		coord.graceUntil = coord.clk.Now().Add(coord.config.GracePeriod)
	}
	coord.mu.Unlock()

	switch response {
	case ResponseSnooze:
		coord.log.Debugf("walk alert snoozed for %s", snoozeFor)
		coord.timer.Snooze(snoozeFor)
	case ResponseAcknowledge:
		coord.log.Debug("walk alert acknowledged, user stepping away")
		coord.monitor.UserConfirmedAway()
		coord.timer.PauseAsAway()
	}
}

// HandleConfirmationResponse settles an explicit answer to the "still there?"
// prompt. Ignored when no prompt is showing.
func (coord *Coordinator) HandleConfirmationResponse(present bool) {
	coord.mu.Lock()
	if !coord.promptShowing {
		coord.mu.Unlock()
		return
	}
	coord.promptShowing = false
	coord.cancelConfirmTimeoutLocked()
	coord.mu.Unlock()

	coord.presenter.DismissConfirmation()
	if present {
		coord.monitor.UserConfirmedPresent()
		return
	}
	coord.monitor.UserConfirmedAway()
	coord.timer.PauseAsAway()
}

// AlertShowing reports whether the walk alert is currently displayed.
func (coord *Coordinator) AlertShowing() bool {
	coord.mu.Lock()
	defer coord.mu.Unlock()
	return coord.alertShowing
}

// PromptShowing reports whether the confirmation prompt is currently
// displayed.
func (coord *Coordinator) PromptShowing() bool {
	coord.mu.Lock()
	defer coord.mu.Unlock()
	return coord.promptShowing
}

// AlertDismissedDueToIdle reports whether the last walk alert was closed
// because the user left instead of answering.
func (coord *Coordinator) AlertDismissedDueToIdle() bool {
	coord.mu.Lock()
	defer coord.mu.Unlock()
	return coord.alertDismissedDueToIdle
}

func (coord *Coordinator) handleTimerEvent(event countdown.Event) {
	if event.Type != countdown.EventCompleted {
		return
	}

	coord.mu.Lock()
	// The walk alert takes priority over a pending "still there?" prompt.
	dismissPrompt := coord.promptShowing
	coord.promptShowing = false
	coord.cancelConfirmTimeoutLocked()
	coord.alertShowing = true
	coord.alertDismissedDueToIdle = false
	coord.mu.Unlock()

	if dismissPrompt {
		coord.presenter.DismissConfirmation()
	}
	coord.log.Debug("countdown complete, showing walk alert")
	coord.presenter.ShowWalkAlert()
}

func (coord *Coordinator) handleIdleEvent(event idlewatch.Event) {
	switch event.Type {
	case idlewatch.EventCheckNeeded:
		coord.handleCheckNeeded()
	case idlewatch.EventActivityDetected:
		coord.handleActivity()
	}
}

func (coord *Coordinator) handleCheckNeeded() {
	status := coord.timer.Status()

	coord.mu.Lock()
	switch {
	case !status.Enabled:
		// No prompts while reminders are disabled.
		coord.mu.Unlock()

	case status.Away:
		// Already known away; avoid duplicate prompts.
		coord.mu.Unlock()

	case coord.alertShowing:
		// The user left while the walk alert was up: treat the alert as
		// taken, no explicit answer required.
		coord.alertShowing = false
		coord.alertDismissedDueToIdle = true
		coord.mu.Unlock()

		coord.log.Debug("idle during walk alert, auto-dismissing")
		coord.monitor.UserConfirmedAway()
		coord.timer.PauseAsAway()
		coord.presenter.DismissWalkAlert()

	case coord.config.ConfirmationEnabled:
		if coord.promptShowing {
			coord.mu.Unlock()
			return
		}
		coord.promptShowing = true
		coord.confirmTimeout = coord.clk.After(
			coord.config.ConfirmationTimeout, coord.handleConfirmTimeout)
		coord.mu.Unlock()

		coord.presenter.ShowConfirmation()

	default:
		coord.mu.Unlock()
		coord.log.Debug("idle threshold crossed, marking away without prompt")
		coord.monitor.UserConfirmedAway()
		coord.timer.PauseAsAway()
	}
}

func (coord *Coordinator) handleActivity() {
	coord.mu.Lock()
	if !coord.graceUntil.IsZero() {
		if coord.clk.Now().Before(coord.graceUntil) {
			coord.mu.Unlock()
			// Still inside the post-acknowledgment window: the input is
			// the acknowledging click, not a return.
			coord.monitor.UserConfirmedAway()
			return
		}
		coord.graceUntil = time.Time{}
	}

	if coord.promptShowing {
		coord.promptShowing = false
		coord.cancelConfirmTimeoutLocked()
		coord.mu.Unlock()

		coord.presenter.DismissConfirmation()
		coord.monitor.UserConfirmedPresent()
		return
	}
	coord.mu.Unlock()

	coord.timer.ResumeIfNeeded()
}

func (coord *Coordinator) handleConfirmTimeout() {
	coord.mu.Lock()
	if !coord.promptShowing {
		coord.mu.Unlock()
		return
	}
	coord.promptShowing = false
	coord.confirmTimeout = nil
	coord.mu.Unlock()

	coord.log.Debug("confirmation window elapsed, user is away")
	coord.presenter.DismissConfirmation()
	coord.monitor.UserConfirmedAway()
	coord.timer.PauseAsAway()
}

func (coord *Coordinator) cancelConfirmTimeoutLocked() {
	if coord.confirmTimeout != nil {
		coord.confirmTimeout.Stop()
		coord.confirmTimeout = nil
	}
}

func (coord *Coordinator) currentConfig() model.MonitorConfig {
	coord.mu.Lock()
	defer coord.mu.Unlock()
	return coord.config
}
