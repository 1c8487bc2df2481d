package clock

import (
	"sync"
	"time"
)

// Schedule is a cancel handle for pending clock work.
// Stop is idempotent and safe to call from the scheduled callback itself.
type Schedule interface {
	Stop()
}

// Clock supplies current time and cancel-able callback scheduling.
type Clock interface {
	Now() time.Time
	Every(period time.Duration, callback func(now time.Time)) Schedule
	After(delay time.Duration, callback func()) Schedule
}

// System is the wall-clock implementation of Clock.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Every(period time.Duration, callback func(now time.Time)) Schedule {
	if period <= 0 {
		period = time.Second
	}

	ticker := time.NewTicker(period)
	done := make(chan struct{})
	schedule := &systemSchedule{cancel: func() {
		ticker.Stop()
		close(done)
	}}

	go func() {
		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				callback(now)
			}
		}
	}()

	return schedule
}

func (systemClock) After(delay time.Duration, callback func()) Schedule {
	timer := time.AfterFunc(delay, callback)
	return &systemSchedule{cancel: func() {
		timer.Stop()
	}}
}

type systemSchedule struct {
	once   sync.Once
	cancel func()
}

func (schedule *systemSchedule) Stop() {
	schedule.once.Do(schedule.cancel)
}
