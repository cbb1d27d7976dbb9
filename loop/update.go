package loop

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/midaytech/brainloop/internal/session"
)

// handleTask runs a session callback and starts saving once the session
// has finished itself.
func (m *Model) handleTask(msg taskMsg) (tea.Model, tea.Cmd) {
	msg.run()

	if m.result != nil && !m.saving {
		return m, m.save()
	}

	if m.sess.State() == session.Closed {
		return m, nil
	}

	return m, m.sched.next()
}

func (m *Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.outcome = Outcome{
		Result:   *m.result,
		Problems: msg.problems,
		Err:      msg.err,
		Finished: true,
	}

	m.sched.stop()

	return m, tea.Quit
}

// handleEntryKey processes keys while a time is being typed in.
func (m *Model) handleEntryKey(msg tea.KeyMsg, index int) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.confirm):
		if !m.sess.ConfirmTime(index, m.input.Value()) {
			m.invalid = true
			return m, nil
		}

		m.invalid = false
		m.input.Reset()
		m.input.Blur()

		if m.sess.State() == session.Active {
			m.sess.Navigate(session.Next)
		}

		return m, nil

	case key.Matches(msg, defaultKeymap.esc):
		m.sess.CancelLogging()
		m.invalid = false
		m.input.Reset()
		m.input.Blur()

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	snap := m.sess.Snapshot()

	// every item is logged: leaving now saves instead of discarding
	if snap.State == session.Completed {
		if msg.Type == tea.KeyCtrlC ||
			key.Matches(msg, defaultKeymap.abort, defaultKeymap.finish) {
			return m.finish()
		}

		return m, nil
	}

	if msg.Type == tea.KeyCtrlC {
		return m.abort()
	}

	if snap.Entering >= 0 {
		return m.handleEntryKey(msg, snap.Entering)
	}

	switch {
	case key.Matches(msg, defaultKeymap.prev):
		m.sess.Navigate(session.Previous)

	case key.Matches(msg, defaultKeymap.next):
		m.sess.Navigate(session.Next)

	case key.Matches(msg, defaultKeymap.enter):
		if m.sess.BeginLogging(snap.Active) {
			return m, m.input.Focus()
		}

	case key.Matches(msg, defaultKeymap.finish):
		return m.finish()

	case key.Matches(msg, defaultKeymap.abort):
		return m.abort()
	}

	return m, nil
}

func (m *Model) finish() (tea.Model, tea.Cmd) {
	if _, err := m.sess.Finish(); err != nil {
		return m, nil
	}

	return m, m.save()
}

func (m *Model) abort() (tea.Model, tea.Cmd) {
	m.sess.Abort()
	m.sched.stop()

	return m, tea.Quit
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskMsg:
		return m.handleTask(msg)

	case savedMsg:
		return m.handleSaved(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - padding*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	slog.Debug("unhandled loop message", slog.String("msg", spew.Sdump(msg)))

	return m, nil
}
