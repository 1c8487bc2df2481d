package idlewatch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"walkwatch/internal/core/clock"
)

func newTestMonitor(threshold time.Duration) (*Monitor, *clock.Fake, *ManualSource, *[]Event) {
	fake := clock.NewFake(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	source := NewManualSource(fake)
	monitor := NewMonitor(fake, source, Config{Threshold: threshold})
	events := &[]Event{}
	monitor.OnEvent(func(event Event) {
		*events = append(*events, event)
	})
	monitor.StartMonitoring()
	return monitor, fake, source, events
}

func countType(events []Event, eventType EventType) int {
	count := 0
	for _, event := range events {
		if event.Type == eventType {
			count++
		}
	}
	return count
}

// TestCheckNeededIsEdgeTriggered verifies that crossing the idle threshold
// fires exactly one check per idle episode, not one per poll.
func TestCheckNeededIsEdgeTriggered(t *testing.T) {
	t.Parallel()

	monitor, fake, _, events := newTestMonitor(3 * time.Second)

	fake.Advance(10 * time.Second)

	require.Equal(t, 1, countType(*events, EventCheckNeeded))
	require.Equal(t, StateConfirming, monitor.State())
}

// TestBelowThresholdNeverFires verifies that idle durations short of the
// threshold never raise a check.
func TestBelowThresholdNeverFires(t *testing.T) {
	t.Parallel()

	monitor, fake, _, events := newTestMonitor(3 * time.Second)

	fake.Advance(2 * time.Second)

	require.Empty(t, *events)
	require.Equal(t, StateNormal, monitor.State())
}

// TestPeriodicActivityKeepsNormal verifies that input injected every second
// keeps the idle clock below threshold indefinitely.
func TestPeriodicActivityKeepsNormal(t *testing.T) {
	t.Parallel()

	monitor, fake, source, events := newTestMonitor(3 * time.Second)

	for i := 0; i < 4; i++ {
		fake.Advance(time.Second)
		source.Touch()
	}

	require.Equal(t, 0, countType(*events, EventCheckNeeded))
	require.Equal(t, StateNormal, monitor.State())
}

// TestActivityReturnsFromConfirming verifies that fresh input while presence
// is being confirmed transitions back to normal and fires ActivityDetected.
func TestActivityReturnsFromConfirming(t *testing.T) {
	t.Parallel()

	monitor, fake, source, events := newTestMonitor(3 * time.Second)

	fake.Advance(3 * time.Second)
	require.Equal(t, StateConfirming, monitor.State())

	source.Touch()
	fake.Advance(time.Second)

	require.Equal(t, 1, countType(*events, EventActivityDetected))
	require.Equal(t, StateNormal, monitor.State())
}

// TestActivityReturnsFromAway verifies the same recent-input check applies to
// the away state.
func TestActivityReturnsFromAway(t *testing.T) {
	t.Parallel()

	monitor, fake, source, events := newTestMonitor(3 * time.Second)

	fake.Advance(3 * time.Second)
	monitor.UserConfirmedAway()
	require.Equal(t, StateAway, monitor.State())

	source.Touch()
	fake.Advance(time.Second)

	require.Equal(t, 1, countType(*events, EventActivityDetected))
	require.Equal(t, StateNormal, monitor.State())
}

// TestStaleIdleDoesNotCountAsReturn verifies that an away user with old
// input stays away: the return transition requires genuinely fresh input.
func TestStaleIdleDoesNotCountAsReturn(t *testing.T) {
	t.Parallel()

	monitor, fake, _, events := newTestMonitor(3 * time.Second)

	fake.Advance(3 * time.Second)
	monitor.UserConfirmedAway()

	fake.Advance(10 * time.Second)

	require.Equal(t, 0, countType(*events, EventActivityDetected))
	require.Equal(t, StateAway, monitor.State())
}

// TestThresholdChangeAppliesProspectively verifies that lowering the
// threshold mid-run takes effect on the next sample without reclassifying
// the current state.
func TestThresholdChangeAppliesProspectively(t *testing.T) {
	t.Parallel()

	monitor, fake, _, events := newTestMonitor(10 * time.Second)

	fake.Advance(5 * time.Second)
	require.Empty(t, *events)

	monitor.UpdateThreshold(3 * time.Second)
	require.Equal(t, StateNormal, monitor.State())

	fake.Advance(4 * time.Second)

	require.Equal(t, 1, countType(*events, EventCheckNeeded))
	require.Equal(t, StateConfirming, monitor.State())
}

// TestForcedStatesEmitNothing verifies that explicit confirmations mutate the
// state silently.
func TestForcedStatesEmitNothing(t *testing.T) {
	t.Parallel()

	monitor, _, _, events := newTestMonitor(3 * time.Second)

	monitor.UserConfirmedAway()
	require.Equal(t, StateAway, monitor.State())

	monitor.UserConfirmedPresent()
	require.Equal(t, StateNormal, monitor.State())

	require.Empty(t, *events)
}

// TestStopMonitoringHaltsSampling verifies that stopping cancels the cadence
// and is safe to repeat.
func TestStopMonitoringHaltsSampling(t *testing.T) {
	t.Parallel()

	monitor, fake, _, events := newTestMonitor(3 * time.Second)

	monitor.StopMonitoring()
	monitor.StopMonitoring()
	fake.Advance(10 * time.Second)

	require.Empty(t, *events)
}

type failingSource struct {
	err   error
	calls int
}

func (source *failingSource) IdleDuration() (time.Duration, error) {
	source.calls++
	return 0, source.err
}

// TestUnsupportedSourceDisablesSampling verifies that an unsupported source
// stops being polled after the first sample.
func TestUnsupportedSourceDisablesSampling(t *testing.T) {
	t.Parallel()

	fake := clock.NewFake(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	source := &failingSource{err: ErrUnsupported}
	monitor := NewMonitor(fake, source, Config{Threshold: 3 * time.Second})
	monitor.StartMonitoring()

	fake.Advance(5 * time.Second)

	require.Equal(t, 1, source.calls)
	require.Equal(t, StateNormal, monitor.State())
}

// TestTransientSourceErrorSkipsSample verifies that ordinary errors skip the
// sample without disabling the monitor.
func TestTransientSourceErrorSkipsSample(t *testing.T) {
	t.Parallel()

	fake := clock.NewFake(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	source := &failingSource{err: errors.New("flaky")}
	monitor := NewMonitor(fake, source, Config{Threshold: 3 * time.Second})
	monitor.StartMonitoring()

	fake.Advance(5 * time.Second)

	require.Equal(t, 5, source.calls)
	require.Equal(t, StateNormal, monitor.State())
}
