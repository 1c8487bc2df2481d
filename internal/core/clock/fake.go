package clock

import (
	"container/heap"
	"sync"
	"time"
)

// Fake is a manually advanced Clock for deterministic tests.
//
// Advance fires due entries in nondecreasing fire-time order (FIFO on ties),
// moving Now to each entry's fire time before its callback runs. Entries
// scheduled from inside a callback participate in the same advance window if
// they fall due within it, and a recurring entry stopped during its own
// callback is not rescheduled.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	nextSeq int
	entries entryQueue
}

// NewFake creates a Fake clock frozen at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the current fake time.
func (fake *Fake) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

// Every schedules a recurring callback on the fake timeline.
func (fake *Fake) Every(period time.Duration, callback func(now time.Time)) Schedule {
	if period <= 0 {
		period = time.Second
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()

	entry := &fakeEntry{
		clock:     fake,
		at:        fake.now.Add(period),
		period:    period,
		recurring: true,
		callback:  callback,
		seq:       fake.nextSeq,
	}
	fake.nextSeq++
	heap.Push(&fake.entries, entry)
	return entry
}

// After schedules a one-shot callback on the fake timeline.
func (fake *Fake) After(delay time.Duration, callback func()) Schedule {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	entry := &fakeEntry{
		clock:    fake,
		at:       fake.now.Add(delay),
		callback: func(time.Time) { callback() },
		seq:      fake.nextSeq,
	}
	fake.nextSeq++
	heap.Push(&fake.entries, entry)
	return entry
}

// Advance moves the fake time forward by delta, firing every due entry in
// chronological order. Callbacks run without the clock lock held, so they may
// schedule or stop entries freely.
func (fake *Fake) Advance(delta time.Duration) {
	fake.mu.Lock()
	deadline := fake.now.Add(delta)

	for fake.entries.Len() > 0 {
		next := fake.entries[0]
		if next.at.After(deadline) {
			break
		}
		heap.Pop(&fake.entries)
		if next.stopped {
			continue
		}

		fake.now = next.at
		fireTime := next.at
		fake.mu.Unlock()
		next.callback(fireTime)
		fake.mu.Lock()

		if next.recurring && !next.stopped {
			next.at = next.at.Add(next.period)
			next.seq = fake.nextSeq
			fake.nextSeq++
			heap.Push(&fake.entries, next)
		}
	}

	fake.now = deadline
	fake.mu.Unlock()
}

type fakeEntry struct {
	clock     *Fake
	at        time.Time
	period    time.Duration
	recurring bool
	callback  func(time.Time)
	seq       int
	stopped   bool
	index     int
}

// Stop cancels the entry. Safe to call repeatedly and from the entry's
// own callback.
func (entry *fakeEntry) Stop() {
	entry.clock.mu.Lock()
	entry.stopped = true
	entry.clock.mu.Unlock()
}

type entryQueue []*fakeEntry

func (queue entryQueue) Len() int { return len(queue) }

func (queue entryQueue) Less(i, j int) bool {
	if queue[i].at.Equal(queue[j].at) {
		return queue[i].seq < queue[j].seq
	}
	return queue[i].at.Before(queue[j].at)
}

func (queue entryQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].index = i
	queue[j].index = j
}

func (queue *entryQueue) Push(item any) {
	entry := item.(*fakeEntry)
	entry.index = len(*queue)
	*queue = append(*queue, entry)
}

func (queue *entryQueue) Pop() any {
	old := *queue
	last := len(old) - 1
	entry := old[last]
	old[last] = nil
	*queue = old[:last]
	return entry
}
