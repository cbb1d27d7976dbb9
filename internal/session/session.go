// Package session implements the loop session: a timed walk through a
// batch of due problems where a time is logged against each one.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/midaytech/brainloop/internal/models"
)

// DefaultAutoCloseDelay is how long a completed session stays on screen
// before it finishes itself.
const DefaultAutoCloseDelay = 3 * time.Second

var (
	ErrEmptyBatch = errors.New("cannot start a loop with an empty batch")
	ErrClosed     = errors.New("loop session is already closed")
)

// State is the lifecycle state of a session.
type State int

const (
	Active State = iota
	Completed
	Closed
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Completed:
		return "completed"
	case Closed:
		return "closed"
	}

	return "unknown"
}

// Direction moves the active index.
type Direction int

const (
	Previous Direction = iota
	Next
)

// Entry is one batch item in a finished session.
type Entry struct {
	ProblemID models.ID
	Title     string
	Minutes   models.Minutes
	Logged    bool
}

// Result is what a session produces when it finishes.
type Result struct {
	StartedAt time.Time
	EndedAt   time.Time
	// Logs holds the recorded minutes keyed by problem.
	Logs map[models.ID]models.Minutes
	ID   string
	// Entries lists every batch item in batch order.
	Entries []Entry
	Elapsed int
	// Auto is set when the session closed itself after completion.
	Auto bool
}

// Empty reports whether no time was logged.
func (r *Result) Empty() bool {
	return len(r.Logs) == 0
}

// Record converts the result and the outcome of its emission into a
// local loop record. Entries whose write failed are not marked logged.
func (r *Result) Record(emitErr error) models.LoopRecord {
	rec := models.LoopRecord{
		StartTime:      r.StartedAt,
		EndTime:        r.EndedAt,
		ID:             r.ID,
		Outcome:        Outcome(r, emitErr),
		ElapsedSeconds: r.Elapsed,
	}

	failed := make(map[models.ID]bool)

	var e *EmitError
	if errors.As(emitErr, &e) {
		rec.FailedWrites = e.Failed

		for _, id := range e.FailedIDs {
			failed[id] = true
		}
	}

	for _, entry := range r.Entries {
		rec.Entries = append(rec.Entries, models.LoopEntry{
			ProblemID: entry.ProblemID,
			Title:     entry.Title,
			Minutes:   entry.Minutes,
			Logged:    entry.Logged && !failed[entry.ProblemID],
		})
	}

	return rec
}

// Snapshot is a read-only copy of the session state for rendering.
type Snapshot struct {
	Logs     map[int]models.Minutes
	Batch    []models.Problem
	Active   int
	Entering int
	Elapsed  int
	State    State
}

// Logged reports whether a time was recorded for the batch index.
func (s *Snapshot) Logged(i int) bool {
	_, ok := s.Logs[i]
	return ok
}

// Session is a loop session. All methods are safe for concurrent use.
type Session struct {
	startedAt     time.Time
	sched         Scheduler
	now           func() time.Time
	onFinish      func(Result)
	stopTick      Cancel
	stopAutoClose Cancel
	logs          map[int]models.Minutes
	id            string
	batch         []models.Problem
	delay         time.Duration
	active        int
	entering      int
	elapsed       int
	state         State
	mu            sync.Mutex
}

// Option configures a session.
type Option func(*Session)

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(s Scheduler) Option {
	return func(sess *Session) {
		sess.sched = s
	}
}

// WithAutoCloseDelay sets the grace period between completion and the
// automatic finish. Non-positive values keep the default.
func WithAutoCloseDelay(d time.Duration) Option {
	return func(sess *Session) {
		if d > 0 {
			sess.delay = d
		}
	}
}

// WithClock sets the source of start and end timestamps.
func WithClock(now func() time.Time) Option {
	return func(sess *Session) {
		sess.now = now
	}
}

// OnFinish registers a hook that receives the result exactly once, for
// both manual and automatic finishes. It runs without the session lock.
func OnFinish(fn func(Result)) Option {
	return func(sess *Session) {
		sess.onFinish = fn
	}
}

// Start begins a session over batch and starts the per-second tick.
func Start(batch []models.Problem, opts ...Option) (*Session, error) {
	if len(batch) == 0 {
		return nil, ErrEmptyBatch
	}

	s := &Session{
		id:       uuid.NewString(),
		batch:    append([]models.Problem(nil), batch...),
		logs:     make(map[int]models.Minutes),
		entering: -1,
		delay:    DefaultAutoCloseDelay,
		sched:    ClockScheduler{},
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.startedAt = s.now()
	s.stopTick = s.sched.Every(time.Second, s.tick)

	return s, nil
}

// ID returns the unique session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := make(map[int]models.Minutes, len(s.logs))
	for k, v := range s.logs {
		logs[k] = v
	}

	return Snapshot{
		Batch:    append([]models.Problem(nil), s.batch...),
		Logs:     logs,
		Active:   s.active,
		Entering: s.entering,
		Elapsed:  s.elapsed,
		State:    s.state,
	}
}

func (s *Session) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Closed {
		return
	}

	s.elapsed++
}

// Navigate moves the active index without wrapping. It has no effect
// outside the Active state.
func (s *Session) Navigate(dir Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Active {
		return
	}

	switch dir {
	case Previous:
		if s.active > 0 {
			s.active--
		}
	case Next:
		if s.active < len(s.batch)-1 {
			s.active++
		}
	}
}

// BeginLogging puts the batch index into time entry mode. Any other index
// leaves entry mode. It reports whether entry mode was entered.
func (s *Session) BeginLogging(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Active || index < 0 || index >= len(s.batch) {
		return false
	}

	if _, ok := s.logs[index]; ok {
		return false
	}

	s.entering = index

	return true
}

// CancelLogging leaves time entry mode.
func (s *Session) CancelLogging() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entering = -1
}

// ConfirmTime records value as the minutes spent on the batch index.
// Empty or non-numeric values are ignored. Logging the last missing index
// completes the session and schedules the automatic finish. It reports
// whether the time was recorded.
func (s *Session) ConfirmTime(index int, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Active || index < 0 || index >= len(s.batch) {
		return false
	}

	if _, ok := s.logs[index]; ok {
		return false
	}

	minutes, err := models.ParseMinutes(value)
	if err != nil {
		return false
	}

	s.logs[index] = minutes

	if s.entering == index {
		s.entering = -1
	}

	if len(s.logs) == len(s.batch) {
		s.state = Completed
		s.stopAutoClose = s.sched.After(s.delay, s.autoClose)
	}

	return true
}

func (s *Session) autoClose() {
	s.mu.Lock()

	if s.state != Completed {
		s.mu.Unlock()
		return
	}

	res := s.closeLocked()
	res.Auto = true
	hook := s.onFinish

	s.mu.Unlock()

	if hook != nil {
		hook(res)
	}
}

// Finish ends the session from any state but Closed and returns the
// logged times. A partially logged batch is allowed.
func (s *Session) Finish() (Result, error) {
	s.mu.Lock()

	if s.state == Closed {
		s.mu.Unlock()
		return Result{}, ErrClosed
	}

	res := s.closeLocked()
	hook := s.onFinish

	s.mu.Unlock()

	if hook != nil {
		hook(res)
	}

	return res, nil
}

// Abort tears the session down without producing a result.
func (s *Session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Closed {
		return
	}

	s.stopTimers()
	s.state = Closed
	s.entering = -1
}

func (s *Session) stopTimers() {
	if s.stopTick != nil {
		s.stopTick()
		s.stopTick = nil
	}

	if s.stopAutoClose != nil {
		s.stopAutoClose()
		s.stopAutoClose = nil
	}
}

func (s *Session) closeLocked() Result {
	s.stopTimers()

	s.state = Closed
	s.entering = -1

	res := Result{
		ID:        s.id,
		StartedAt: s.startedAt,
		EndedAt:   s.now(),
		Elapsed:   s.elapsed,
		Logs:      make(map[models.ID]models.Minutes, len(s.logs)),
		Entries:   make([]Entry, len(s.batch)),
	}

	for i := range s.batch {
		p := &s.batch[i]
		m, ok := s.logs[i]

		res.Entries[i] = Entry{
			ProblemID: p.ID,
			Title:     p.Title,
			Minutes:   m,
			Logged:    ok,
		}

		if ok {
			res.Logs[p.ID] = m
		}
	}

	return res
}
