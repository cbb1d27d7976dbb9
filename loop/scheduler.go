package loop

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/midaytech/brainloop/internal/session"
)

// taskMsg carries a session callback into the Bubble Tea update loop so
// that session transitions happen on the program goroutine.
type taskMsg struct {
	run func()
}

// programScheduler turns session timers into Bubble Tea messages.
type programScheduler struct {
	clock    session.Scheduler
	tasks    chan taskMsg
	done     chan struct{}
	stopOnce sync.Once
}

func newProgramScheduler(clock session.Scheduler) *programScheduler {
	if clock == nil {
		clock = session.ClockScheduler{}
	}

	return &programScheduler{
		clock: clock,
		tasks: make(chan taskMsg, 8),
		done:  make(chan struct{}),
	}
}

func (s *programScheduler) deliver(fn func(), stopped *atomic.Bool) func() {
	return func() {
		msg := taskMsg{run: func() {
			if !stopped.Load() {
				fn()
			}
		}}

		select {
		case s.tasks <- msg:
		case <-s.done:
		}
	}
}

func (s *programScheduler) Every(d time.Duration, fn func()) session.Cancel {
	var stopped atomic.Bool

	cancel := s.clock.Every(d, s.deliver(fn, &stopped))

	return func() {
		stopped.Store(true)
		cancel()
	}
}

func (s *programScheduler) After(d time.Duration, fn func()) session.Cancel {
	var stopped atomic.Bool

	cancel := s.clock.After(d, s.deliver(fn, &stopped))

	return func() {
		stopped.Store(true)
		cancel()
	}
}

// next waits for the next scheduled task.
func (s *programScheduler) next() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-s.tasks:
			return msg
		case <-s.done:
			return nil
		}
	}
}

// stop releases goroutines blocked on delivery.
func (s *programScheduler) stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}
