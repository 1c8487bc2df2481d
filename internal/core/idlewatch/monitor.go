package idlewatch

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"walkwatch/internal/core/clock"
)

// ErrUnsupported indicates idle detection is not available on this system.
var ErrUnsupported = errors.New("activity source unsupported")

// ActivitySource reports the duration since the last user input.
type ActivitySource interface {
	IdleDuration() (time.Duration, error)
}

// recentInputCutoff is the largest sampled idle duration still treated as
// "input just happened" when deciding whether a confirming or away user has
// returned. It must exceed the poll interval, or a single quiet poll after
// real input would be missed.
const recentInputCutoff = 2 * time.Second

// Config contains runtime options for the Monitor.
type Config struct {
	// Threshold is the idle duration that triggers a presence check.
	Threshold time.Duration
	// PollInterval is the sampling cadence. Defaults to one second.
	PollInterval time.Duration
	// Logger receives sampling errors. Defaults to a no-op logger.
	Logger *zap.SugaredLogger
}

// Monitor samples an activity source on a fixed cadence and classifies the
// user as normal, being confirmed, or away.
//
// Sampling idle-duration-since-last-input rather than relying on discrete
// input callbacks keeps the classification robust against sources that
// cannot distinguish "no event" from "not polled yet": a transition back to
// normal requires genuinely fresh input, never a stale event flag.
type Monitor struct {
	mu        sync.Mutex
	clk       clock.Clock
	source    ActivitySource
	log       *zap.SugaredLogger
	threshold time.Duration
	pollEvery time.Duration
	state     State
	cadence   clock.Schedule
	disabled  bool
	handlers  []func(Event)
}

// NewMonitor creates a Monitor in the normal state. Call StartMonitoring to
// begin sampling.
func NewMonitor(clk clock.Clock, source ActivitySource, config Config) *Monitor {
	if config.PollInterval <= 0 {
		config.PollInterval = time.Second
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop().Sugar()
	}
	return &Monitor{
		clk:       clk,
		source:    source,
		log:       config.Logger,
		threshold: config.Threshold,
		pollEvery: config.PollInterval,
		state:     StateNormal,
	}
}

// OnEvent registers an observer. Handlers are invoked synchronously with no
// monitor lock held.
func (monitor *Monitor) OnEvent(handler func(Event)) {
	monitor.mu.Lock()
	monitor.handlers = append(monitor.handlers, handler)
	monitor.mu.Unlock()
}

// State returns the current presence classification.
func (monitor *Monitor) State() State {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	return monitor.state
}

// StartMonitoring begins the sampling cadence. No-op if already started.
func (monitor *Monitor) StartMonitoring() {
	monitor.mu.Lock()
	if monitor.cadence == nil {
		monitor.cadence = monitor.clk.Every(monitor.pollEvery, monitor.sample)
	}
	monitor.mu.Unlock()
}

// StopMonitoring cancels the sampling cadence; safe to call repeatedly.
func (monitor *Monitor) StopMonitoring() {
	monitor.mu.Lock()
	if monitor.cadence != nil {
		monitor.cadence.Stop()
		monitor.cadence = nil
	}
	monitor.mu.Unlock()
}

// UpdateThreshold adopts a new idle threshold and restarts the sampling
// cadence. The new threshold applies on the next sample; the current
// classification is never revisited retroactively.
func (monitor *Monitor) UpdateThreshold(threshold time.Duration) {
	monitor.mu.Lock()
	monitor.threshold = threshold
	if monitor.cadence != nil {
		monitor.cadence.Stop()
		monitor.cadence = monitor.clk.Every(monitor.pollEvery, monitor.sample)
	}
	monitor.mu.Unlock()
}

// UserConfirmedPresent forces the normal state, regardless of sampled idle
// time. Used when the confirmation prompt is answered by explicit action.
func (monitor *Monitor) UserConfirmedPresent() {
	monitor.mu.Lock()
	monitor.state = StateNormal
	monitor.mu.Unlock()
}

// UserConfirmedAway forces the away state. Used when a confirmation window
// elapses without input, or when an external signal preempts the normal flow.
func (monitor *Monitor) UserConfirmedAway() {
	monitor.mu.Lock()
	monitor.state = StateAway
	monitor.mu.Unlock()
}

func (monitor *Monitor) sample(now time.Time) {
	monitor.mu.Lock()
	if monitor.disabled {
		monitor.mu.Unlock()
		return
	}

	idle, err := monitor.source.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			monitor.disabled = true
			monitor.log.Warnf("idle detection disabled: %v", err)
		} else {
			monitor.log.Warnf("idle sample failed: %v", err)
		}
		monitor.mu.Unlock()
		return
	}

	var event Event
	fire := false
	switch monitor.state {
	case StateConfirming, StateAway:
		if idle < recentInputCutoff {
			monitor.state = StateNormal
			event = Event{Type: EventActivityDetected, Idle: idle, At: now}
			fire = true
		}
	case StateNormal:
		if monitor.threshold > 0 && idle >= monitor.threshold {
			monitor.state = StateConfirming
			event = Event{Type: EventCheckNeeded, Idle: idle, At: now}
			fire = true
		}
	}
	monitor.mu.Unlock()

	if fire {
		monitor.dispatch(event)
	}
}

func (monitor *Monitor) dispatch(event Event) {
	monitor.mu.Lock()
	handlers := append(([]func(Event))(nil), monitor.handlers...)
	monitor.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}
