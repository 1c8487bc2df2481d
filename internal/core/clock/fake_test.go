package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func baseTime() time.Time {
	return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
}

// TestFakeAdvanceFiresInChronologicalOrder verifies that due entries fire in
// nondecreasing fire-time order regardless of scheduling order.
func TestFakeAdvanceFiresInChronologicalOrder(t *testing.T) {
	t.Parallel()

	fake := NewFake(baseTime())
	var order []string

	fake.After(3*time.Second, func() { order = append(order, "c") })
	fake.After(1*time.Second, func() { order = append(order, "a") })
	fake.After(2*time.Second, func() { order = append(order, "b") })

	fake.Advance(5 * time.Second)

	require.Equal(t, []string{"a", "b", "c"}, order)
	require.Equal(t, baseTime().Add(5*time.Second), fake.Now())
}

// TestFakeNowAtFireTime verifies that Now reflects each entry's own fire time
// while its callback runs.
func TestFakeNowAtFireTime(t *testing.T) {
	t.Parallel()

	fake := NewFake(baseTime())
	var observed []time.Time

	fake.Every(time.Second, func(now time.Time) {
		observed = append(observed, fake.Now())
		require.Equal(t, now, fake.Now())
	})

	fake.Advance(3 * time.Second)

	require.Equal(t, []time.Time{
		baseTime().Add(1 * time.Second),
		baseTime().Add(2 * time.Second),
		baseTime().Add(3 * time.Second),
	}, observed)
}

// TestFakeRecurringFiresOncePerPeriod verifies the 1:1 pairing of periods and
// callbacks across a single large advance.
func TestFakeRecurringFiresOncePerPeriod(t *testing.T) {
	t.Parallel()

	fake := NewFake(baseTime())
	fires := 0
	fake.Every(time.Second, func(time.Time) { fires++ })

	fake.Advance(10 * time.Second)

	require.Equal(t, 10, fires)
}

// TestFakeStopDuringOwnCallback verifies that a recurring entry cancelled
// from inside its own callback is not rescheduled, even mid-batch.
func TestFakeStopDuringOwnCallback(t *testing.T) {
	t.Parallel()

	fake := NewFake(baseTime())
	fires := 0
	var schedule Schedule
	schedule = fake.Every(time.Second, func(time.Time) {
		fires++
		if fires == 2 {
			schedule.Stop()
		}
	})

	fake.Advance(10 * time.Second)

	require.Equal(t, 2, fires)
}

// TestFakeStopIsIdempotent verifies repeated Stop calls are safe and prevent
// one-shot entries from firing.
func TestFakeStopIsIdempotent(t *testing.T) {
	t.Parallel()

	fake := NewFake(baseTime())
	fired := false
	schedule := fake.After(time.Second, func() { fired = true })
	schedule.Stop()
	schedule.Stop()

	fake.Advance(5 * time.Second)

	require.False(t, fired)
}

// TestFakeMidBatchScheduling verifies that an entry scheduled from inside a
// callback fires within the same advance window when it falls due.
func TestFakeMidBatchScheduling(t *testing.T) {
	t.Parallel()

	fake := NewFake(baseTime())
	var order []string

	fake.After(time.Second, func() {
		order = append(order, "first")
		fake.After(time.Second, func() {
			order = append(order, "nested")
		})
	})
	fake.After(3*time.Second, func() {
		order = append(order, "last")
	})

	fake.Advance(3 * time.Second)

	require.Equal(t, []string{"first", "nested", "last"}, order)
}

// TestFakeTieOrderIsFIFO verifies that entries due at the same instant fire
// in scheduling order.
func TestFakeTieOrderIsFIFO(t *testing.T) {
	t.Parallel()

	fake := NewFake(baseTime())
	var order []string
	fake.After(time.Second, func() { order = append(order, "first") })
	fake.After(time.Second, func() { order = append(order, "second") })

	fake.Advance(time.Second)

	require.Equal(t, []string{"first", "second"}, order)
}
