// Package loop runs a loop session as an interactive terminal program and
// handles what happens once it ends
package loop

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/midaytech/brainloop/internal/models"
	"github.com/midaytech/brainloop/internal/session"
)

// Options configures a loop program.
type Options struct {
	Backend session.Backend
	// Scheduler drives the per-second tick and the auto-close delay.
	// Defaults to the wall clock.
	Scheduler      session.Scheduler
	Today          time.Time
	Cmd            string
	AutoCloseDelay time.Duration
	Notify         bool
	Bell           bool
	TwentyFourHour bool
	DarkTheme      bool
}

// Outcome is what a loop program leaves behind.
type Outcome struct {
	Err      error
	Result   session.Result
	Problems []models.Problem
	// Finished is false when the loop was aborted.
	Finished bool
}

type savedMsg struct {
	err      error
	problems []models.Problem
}

// Model is the Bubble Tea model of a running loop.
type Model struct {
	ctx      context.Context
	opts     Options
	sess     *session.Session
	sched    *programScheduler
	result   *session.Result
	style    Style
	outcome  Outcome
	input    textinput.Model
	progress progress.Model
	help     help.Model
	spinner  spinner.Model
	invalid  bool
	saving   bool
}

// New starts a session over batch and wraps it in a model.
func New(ctx context.Context, batch []models.Problem, opts Options) (*Model, error) {
	m := &Model{
		ctx:   ctx,
		opts:  opts,
		sched: newProgramScheduler(opts.Scheduler),
		style: newStyle(opts.DarkTheme),
		help:  help.New(),
	}

	if m.opts.Today.IsZero() {
		m.opts.Today = time.Now()
	}

	sess, err := session.Start(
		batch,
		session.WithScheduler(m.sched),
		session.WithAutoCloseDelay(opts.AutoCloseDelay),
		session.OnFinish(func(res session.Result) {
			m.result = &res
		}),
	)
	if err != nil {
		return nil, err
	}

	m.sess = sess

	m.input = textinput.New()
	m.input.Placeholder = "minutes"
	m.input.CharLimit = 8
	m.input.Width = 10

	m.progress = progress.New(progress.WithDefaultGradient())
	m.progress.ShowPercentage = false

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))

	return m, nil
}

// Session returns the underlying loop session.
func (m *Model) Session() *session.Session {
	return m.sess
}

// Outcome reports how the loop ended.
func (m *Model) Outcome() Outcome {
	return m.outcome
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.sched.next(), m.spinner.Tick)
}

// save writes the finished session's times through the backend.
func (m *Model) save() tea.Cmd {
	m.saving = true
	res := *m.result

	return func() tea.Msg {
		problems, err := session.Emit(m.ctx, m.opts.Backend, res)
		return savedMsg{problems: problems, err: err}
	}
}

// Run shows the loop until it is finished or aborted.
func Run(ctx context.Context, batch []models.Problem, opts Options) (Outcome, error) {
	m, err := New(ctx, batch, opts)
	if err != nil {
		return Outcome{}, err
	}

	defer m.sched.stop()

	p := tea.NewProgram(m, tea.WithContext(ctx))

	if _, err = p.Run(); err != nil {
		m.sess.Abort()
		return Outcome{}, err
	}

	return m.Outcome(), nil
}
