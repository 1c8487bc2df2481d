package countdown

import (
	"sync"
	"time"

	"walkwatch/internal/core/clock"
)

// Timer counts down to the next walk reminder on a 1-second cadence.
//
// Remaining time decreases only while the timer is enabled and not paused.
// The away flag marks a pause caused by a confirmed absence, which is
// settled differently on resume: the absence counts as the break, so the
// countdown restarts from the configured interval.
type Timer struct {
	mu        sync.Mutex
	clk       clock.Clock
	interval  time.Duration
	tickEvery time.Duration
	remaining time.Duration
	enabled   bool
	paused    bool
	away      bool
	cadence   clock.Schedule
	handlers  []func(Event)
}

// New creates a Timer set to the configured interval, enabled and idle.
// Call Start to begin ticking.
func New(clk clock.Clock, interval time.Duration) *Timer {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Timer{
		clk:       clk,
		interval:  interval,
		tickEvery: time.Second,
		remaining: interval,
		enabled:   true,
	}
}

// OnEvent registers an observer. Handlers are invoked synchronously with no
// timer lock held; a missing observer is simply a no-op.
func (timer *Timer) OnEvent(handler func(Event)) {
	timer.mu.Lock()
	timer.handlers = append(timer.handlers, handler)
	timer.mu.Unlock()
}

// Status returns a snapshot of the current state.
func (timer *Timer) Status() Status {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return Status{
		Remaining: timer.remaining,
		Enabled:   timer.enabled,
		Paused:    timer.paused,
		Away:      timer.away,
	}
}

// Start begins the tick cadence. No-op if already started.
func (timer *Timer) Start() {
	timer.mu.Lock()
	timer.startCadenceLocked()
	timer.mu.Unlock()
}

// Stop cancels the tick cadence; no error if already stopped.
func (timer *Timer) Stop() {
	timer.mu.Lock()
	timer.stopCadenceLocked()
	timer.mu.Unlock()
}

// Reset restores the full configured interval, clears pause and away flags,
// and restarts the cadence if enabled.
func (timer *Timer) Reset() {
	timer.mu.Lock()
	timer.resetLocked()
	event := timer.tickEventLocked()
	timer.mu.Unlock()

	timer.dispatch(event)
}

// Snooze restarts the countdown from the given duration. It clears the pause
// flags but does not alter enablement.
func (timer *Timer) Snooze(duration time.Duration) {
	if duration <= 0 {
		return
	}

	timer.mu.Lock()
	timer.remaining = duration
	timer.paused = false
	timer.away = false
	if timer.enabled {
		timer.startCadenceLocked()
	}
	event := timer.tickEventLocked()
	timer.mu.Unlock()

	timer.dispatch(event)
}

// SetEnabled switches the countdown on or off. Enabling behaves like Reset;
// disabling stops the cadence. No-op if unchanged.
func (timer *Timer) SetEnabled(enabled bool) {
	timer.mu.Lock()
	if timer.enabled == enabled {
		timer.mu.Unlock()
		return
	}

	if enabled {
		timer.enabled = true
		timer.resetLocked()
	} else {
		timer.enabled = false
		timer.stopCadenceLocked()
	}
	event := timer.tickEventLocked()
	event.Type = EventEnabledChanged
	timer.mu.Unlock()

	timer.dispatch(event)
}

// UpdateInterval adopts a new configured interval and restarts the countdown
// from it.
func (timer *Timer) UpdateInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}

	timer.mu.Lock()
	timer.interval = interval
	timer.resetLocked()
	event := timer.tickEventLocked()
	timer.mu.Unlock()

	timer.dispatch(event)
}

// Pause freezes the countdown without marking the user away. No-op unless
// enabled and running.
func (timer *Timer) Pause() {
	timer.mu.Lock()
	if !timer.enabled || timer.paused {
		timer.mu.Unlock()
		return
	}
	timer.paused = true
	event := timer.tickEventLocked()
	timer.mu.Unlock()

	timer.dispatch(event)
}

// PauseAsAway freezes the countdown because the user was confirmed away.
// No-op unless enabled and not already paused, so duplicate away signals
// are absorbed.
func (timer *Timer) PauseAsAway() {
	timer.mu.Lock()
	if !timer.enabled || timer.paused {
		timer.mu.Unlock()
		return
	}
	timer.paused = true
	timer.away = true
	event := timer.tickEventLocked()
	timer.mu.Unlock()

	timer.dispatch(event)
}

// ResumeIfNeeded unfreezes a paused countdown. A pause caused by a confirmed
// absence resolves as a full reset: the time away counted as the break.
func (timer *Timer) ResumeIfNeeded() {
	timer.mu.Lock()
	if !timer.enabled || !timer.paused {
		timer.mu.Unlock()
		return
	}
	if timer.away {
		timer.resetLocked()
	} else {
		timer.paused = false
	}
	event := timer.tickEventLocked()
	timer.mu.Unlock()

	timer.dispatch(event)
}

func (timer *Timer) tick(now time.Time) {
	timer.mu.Lock()
	if !timer.enabled || timer.paused {
		timer.mu.Unlock()
		return
	}

	timer.remaining -= timer.tickEvery
	var event Event
	if timer.remaining <= 0 {
		timer.remaining = 0
		timer.stopCadenceLocked()
		event = timer.tickEventLocked()
		event.Type = EventCompleted
	} else {
		event = timer.tickEventLocked()
	}
	event.At = now
	timer.mu.Unlock()

	timer.dispatch(event)
}

func (timer *Timer) resetLocked() {
	timer.remaining = timer.interval
	timer.paused = false
	timer.away = false
	if timer.enabled {
		timer.startCadenceLocked()
	}
}

func (timer *Timer) startCadenceLocked() {
	if timer.cadence != nil {
		return
	}
	timer.cadence = timer.clk.Every(timer.tickEvery, timer.tick)
}

func (timer *Timer) stopCadenceLocked() {
	if timer.cadence == nil {
		return
	}
	timer.cadence.Stop()
	timer.cadence = nil
}

func (timer *Timer) tickEventLocked() Event {
	return Event{
		Type:      EventTick,
		Remaining: timer.remaining,
		Enabled:   timer.enabled,
		Paused:    timer.paused,
		Away:      timer.away,
		At:        timer.clk.Now(),
	}
}

func (timer *Timer) dispatch(event Event) {
	timer.mu.Lock()
	handlers := append(([]func(Event))(nil), timer.handlers...)
	timer.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}
