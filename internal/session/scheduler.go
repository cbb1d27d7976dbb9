package session

import (
	"sync"
	"time"
)

// Cancel stops a scheduled task. It is safe to call more than once.
type Cancel func()

// Scheduler runs session callbacks over time.
type Scheduler interface {
	// Every calls fn every d until cancelled.
	Every(d time.Duration, fn func()) Cancel
	// After calls fn once after d unless cancelled first.
	After(d time.Duration, fn func()) Cancel
}

// ClockScheduler schedules tasks against the wall clock.
type ClockScheduler struct{}

func (ClockScheduler) Every(d time.Duration, fn func()) Cancel {
	ticker := time.NewTicker(d)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

func (ClockScheduler) After(d time.Duration, fn func()) Cancel {
	t := time.AfterFunc(d, fn)

	return func() {
		t.Stop()
	}
}
