package loop

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/midaytech/brainloop/internal/models"
	"github.com/midaytech/brainloop/internal/session"
)

// fakeClock records scheduled callbacks and never cancels them, so stale
// deliveries reach the model.
type fakeClock struct {
	every []func()
	after []func()
}

func (f *fakeClock) Every(_ time.Duration, fn func()) session.Cancel {
	f.every = append(f.every, fn)
	return func() {}
}

func (f *fakeClock) After(_ time.Duration, fn func()) session.Cancel {
	f.after = append(f.after, fn)
	return func() {}
}

type fakeBackend struct {
	logged  map[models.ID]models.Minutes
	fetches int
	mu      sync.Mutex
}

func (b *fakeBackend) LogRevision(
	_ context.Context,
	id models.ID,
	minutes models.Minutes,
) (models.Revision, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.logged == nil {
		b.logged = make(map[models.ID]models.Minutes)
	}

	b.logged[id] = minutes

	return models.Revision{QuestionID: id, TimeTaken: minutes}, nil
}

func (b *fakeBackend) FetchProblems(_ context.Context) ([]models.Problem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.fetches++

	return []models.Problem{{ID: "1"}, {ID: "2"}}, nil
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	rightKey = tea.KeyMsg{Type: tea.KeyRight}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlC    = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (*Model, *fakeClock, *fakeBackend) {
	t.Helper()

	clock := &fakeClock{}
	backend := &fakeBackend{}

	batch := []models.Problem{
		{ID: "1", Title: "Two Sum", Difficulty: models.Easy},
		{ID: "2", Title: "LRU Cache", Difficulty: models.Medium},
	}

	m, err := New(context.Background(), batch, Options{
		Backend:   backend,
		Scheduler: clock,
		Today:     time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(m.sched.stop)

	return m, clock, backend
}

func press(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	for _, k := range keys {
		_, cmd = m.Update(k)
	}

	return cmd
}

// deliver runs the next queued scheduler task through the model.
func deliver(m *Model) tea.Cmd {
	msg := m.sched.next()()
	_, cmd := m.Update(msg)

	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}

	_, ok := cmd().(tea.QuitMsg)

	return ok
}

// settle runs the save command and feeds its result back to the model.
func settle(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()

	if cmd == nil {
		t.Fatal("expected a save command")
	}

	msg := cmd()
	if _, ok := msg.(savedMsg); !ok {
		t.Fatalf("expected savedMsg, got %T", msg)
	}

	_, cmd = m.Update(msg)
	if !isQuit(cmd) {
		t.Fatal("expected the program to quit after saving")
	}
}

func TestNewEmptyBatch(t *testing.T) {
	_, err := New(context.Background(), nil, Options{Scheduler: &fakeClock{}})
	if !errors.Is(err, session.ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestTickAdvancesElapsed(t *testing.T) {
	m, clock, _ := newTestModel(t)

	for range 2 {
		clock.every[0]()

		if cmd := deliver(m); cmd == nil {
			t.Fatal("expected the model to keep listening for ticks")
		}
	}

	if got := m.Session().Snapshot().Elapsed; got != 2 {
		t.Fatalf("expected 2 elapsed seconds, got %d", got)
	}
}

func TestLogTimesAndAutoClose(t *testing.T) {
	m, clock, backend := newTestModel(t)

	press(m, enterKey)

	if got := m.Session().Snapshot().Entering; got != 0 {
		t.Fatalf("expected entry mode on index 0, got %d", got)
	}

	press(m, runes("15"), enterKey)

	snap := m.Session().Snapshot()
	if !snap.Logged(0) || snap.Active != 1 {
		t.Fatalf("expected index 0 logged and index 1 active, got %+v", snap)
	}

	press(m, enterKey, runes("abc"), enterKey)

	if !m.invalid || m.Session().Snapshot().Logged(1) {
		t.Fatal("non-numeric input must not be recorded")
	}

	press(m, escKey)

	if got := m.Session().Snapshot().Entering; got != -1 {
		t.Fatalf("expected entry mode to be cancelled, got %d", got)
	}

	press(m, enterKey, runes("30"), enterKey)

	if m.Session().State() != session.Completed {
		t.Fatalf("expected completed session, got %s", m.Session().State())
	}

	if len(clock.after) != 1 {
		t.Fatalf("expected one auto-close task, got %d", len(clock.after))
	}

	clock.after[0]()

	settle(t, m, deliver(m))

	out := m.Outcome()
	if !out.Finished || !out.Result.Auto || out.Err != nil {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	want := map[models.ID]models.Minutes{"1": 15, "2": 30}

	if diff := cmp.Diff(want, backend.logged); diff != "" {
		t.Fatalf("logged revisions mismatch (-want +got):\n%s", diff)
	}

	if backend.fetches != 1 || len(out.Problems) != 2 {
		t.Fatalf("expected one refresh, got %d", backend.fetches)
	}
}

func TestFinishPartialLoop(t *testing.T) {
	m, _, backend := newTestModel(t)

	press(m, rightKey, enterKey, runes("12.5"), enterKey)

	settle(t, m, press(m, runes("f")))

	want := map[models.ID]models.Minutes{"2": 12.5}

	if diff := cmp.Diff(want, backend.logged); diff != "" {
		t.Fatalf("logged revisions mismatch (-want +got):\n%s", diff)
	}

	if m.Outcome().Result.Auto {
		t.Fatal("manual finish must not be reported as automatic")
	}
}

func TestFinishWithoutLogs(t *testing.T) {
	m, _, backend := newTestModel(t)

	settle(t, m, press(m, runes("f")))

	if len(backend.logged) != 0 || backend.fetches != 0 {
		t.Fatalf("empty loop must not call the backend, got %d fetches", backend.fetches)
	}

	if !m.Outcome().Result.Empty() {
		t.Fatal("expected an empty result")
	}
}

func TestManualFinishIgnoresStaleAutoClose(t *testing.T) {
	m, clock, _ := newTestModel(t)

	press(m, enterKey, runes("10"), enterKey)
	press(m, enterKey, runes("20"), enterKey)

	if cmd := press(m, runes("f")); cmd == nil {
		t.Fatal("expected a save command")
	}

	clock.after[0]()

	if cmd := deliver(m); cmd != nil {
		t.Fatal("stale auto-close must not trigger a second save")
	}

	if m.result.Auto {
		t.Fatal("result must come from the manual finish")
	}
}

func TestQuitAfterCompletionSaves(t *testing.T) {
	for name, quit := range map[string]tea.KeyMsg{"q": runes("q"), "ctrl+c": ctrlC} {
		t.Run(name, func(t *testing.T) {
			m, _, backend := newTestModel(t)

			press(m, enterKey, runes("10"), enterKey)
			press(m, enterKey, runes("20"), enterKey)

			if m.Session().State() != session.Completed {
				t.Fatalf("expected completed session, got %s", m.Session().State())
			}

			settle(t, m, press(m, quit))

			want := map[models.ID]models.Minutes{"1": 10, "2": 20}

			if diff := cmp.Diff(want, backend.logged); diff != "" {
				t.Fatalf("logged revisions mismatch (-want +got):\n%s", diff)
			}

			if !m.Outcome().Finished {
				t.Fatal("a completed loop must be saved, not discarded")
			}
		})
	}
}

func TestAbort(t *testing.T) {
	m, _, backend := newTestModel(t)

	press(m, enterKey, runes("10"), enterKey)

	if !isQuit(press(m, ctrlC)) {
		t.Fatal("expected ctrl+c to quit")
	}

	if m.Session().State() != session.Closed {
		t.Fatal("expected aborted session to be closed")
	}

	if m.Outcome().Finished || len(backend.logged) != 0 {
		t.Fatal("aborted loop must not write any times")
	}
}

func TestView(t *testing.T) {
	m, _, _ := newTestModel(t)

	v := m.View()

	for _, s := range []string{"Two Sum", "LRU Cache", "1/2", "00:00"} {
		if !strings.Contains(v, s) {
			t.Errorf("expected view to contain %q", s)
		}
	}
}

func TestNotificationText(t *testing.T) {
	cases := []struct {
		rec   models.LoopRecord
		title string
		msg   string
	}{
		{
			rec:   models.LoopRecord{Outcome: models.LoopAbandoned},
			title: "Loop finished",
			msg:   "No time was logged",
		},
		{
			rec: models.LoopRecord{
				Outcome:        models.LoopSaved,
				ElapsedSeconds: 125,
				Entries: []models.LoopEntry{
					{ProblemID: "1", Logged: true},
					{ProblemID: "2"},
				},
			},
			title: "Loop finished",
			msg:   "Logged 1 of 2 problems in 02:05",
		},
		{
			rec: models.LoopRecord{
				Outcome:      models.LoopPartial,
				FailedWrites: 1,
				Entries: []models.LoopEntry{
					{ProblemID: "1", Logged: true},
					{ProblemID: "2"},
				},
			},
			title: "Loop partially saved",
			msg:   "1 saved, 1 failed",
		},
		{
			rec:   models.LoopRecord{Outcome: models.LoopFailed, FailedWrites: 3},
			title: "Loop not saved",
			msg:   "None of the 3 logged times could be saved",
		},
	}

	for _, tc := range cases {
		title, msg := notificationText(&tc.rec)
		if title != tc.title || msg != tc.msg {
			t.Errorf("got (%q, %q), want (%q, %q)", title, msg, tc.title, tc.msg)
		}
	}
}

func TestRunLoopCmd(t *testing.T) {
	ctx := context.Background()

	if err := runLoopCmd(ctx, ""); err != nil {
		t.Fatalf("empty command: %v", err)
	}

	if err := runLoopCmd(ctx, `echo "unterminated`); err == nil {
		t.Fatal("expected a parse error")
	}

	if runtime.GOOS == "windows" {
		return
	}

	if err := runLoopCmd(ctx, "true"); err != nil {
		t.Fatalf("running true: %v", err)
	}

	if err := runLoopCmd(ctx, "false"); err == nil {
		t.Fatal("expected an exit error")
	}
}
