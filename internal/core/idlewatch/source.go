package idlewatch

import (
	"sync"
	"time"

	"walkwatch/internal/core/clock"
)

// ManualSource is an ActivitySource driven by explicit input injection,
// tied to a clock. Intended for tests and headless runs.
type ManualSource struct {
	mu        sync.Mutex
	clk       clock.Clock
	lastInput time.Time
}

// NewManualSource creates a source whose last input is the clock's current
// time.
func NewManualSource(clk clock.Clock) *ManualSource {
	return &ManualSource{clk: clk, lastInput: clk.Now()}
}

// Touch records input happening now.
func (source *ManualSource) Touch() {
	source.mu.Lock()
	source.lastInput = source.clk.Now()
	source.mu.Unlock()
}

// IdleDuration returns the time elapsed since the last injected input.
func (source *ManualSource) IdleDuration() (time.Duration, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.clk.Now().Sub(source.lastInput), nil
}
