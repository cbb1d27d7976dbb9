package loop

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/midaytech/brainloop/internal/due"
	"github.com/midaytech/brainloop/internal/models"
	"github.com/midaytech/brainloop/internal/session"
	"github.com/midaytech/brainloop/internal/timeutil"
)

func (m *Model) headerView(snap *session.Snapshot) string {
	var s strings.Builder

	s.WriteString(m.style.Header.Render("LOOP"))
	s.WriteString(m.style.Secondary.Render(
		fmt.Sprintf("%d/%d", snap.Active+1, len(snap.Batch)),
	))
	s.WriteString(m.style.Hint.Render(
		"  " + timeutil.Clock(snap.Elapsed) + " elapsed",
	))

	return s.String()
}

func (m *Model) problemView(p *models.Problem) string {
	var s strings.Builder

	s.WriteString(m.style.Main.Render(p.Title))
	s.WriteString(m.style.Secondary.Render(
		fmt.Sprintf("  [%s] %s", p.Difficulty, due.Describe(p.NextRevisionDate, m.opts.Today).Text),
	))

	if len(p.Tags) > 0 {
		s.WriteString("\n" + m.style.Hint.Render(strings.Join(p.TagNames(), " · ")))
	}

	if stmt := strings.TrimSpace(p.Problem); stmt != "" {
		s.WriteString("\n\n" + stmt)
	}

	return s.String()
}

func (m *Model) batchView(snap *session.Snapshot) string {
	var s strings.Builder

	for i := range snap.Batch {
		p := &snap.Batch[i]

		marker := "  "
		if i == snap.Active {
			marker = "> "
		}

		line := fmt.Sprintf("%s%d. %s", marker, i+1, p.Title)

		switch {
		case snap.Logged(i):
			line = m.style.Logged.Render(
				fmt.Sprintf("%s  ✓ %s min", line, snap.Logs[i]),
			)
		case i == snap.Active:
			line = m.style.Active.Render(line)
		}

		s.WriteString(line + "\n")
	}

	return s.String()
}

func (m *Model) entryView(snap *session.Snapshot) string {
	if snap.Entering < 0 {
		return ""
	}

	var s strings.Builder

	s.WriteString("\n" + m.style.Secondary.Render(
		"Time spent on "+snap.Batch[snap.Entering].Title+": ",
	))
	s.WriteString(m.input.View())

	if m.invalid {
		s.WriteString("\n" + m.style.Invalid.Render(
			"enter a positive number of minutes",
		))
	}

	return s.String() + "\n"
}

func (m *Model) helpView(snap *session.Snapshot) string {
	bindings := []key.Binding{
		defaultKeymap.prev,
		defaultKeymap.next,
		defaultKeymap.enter,
		defaultKeymap.finish,
		defaultKeymap.abort,
	}

	switch {
	case snap.Entering >= 0:
		bindings = []key.Binding{defaultKeymap.confirm, defaultKeymap.esc}
	case snap.State == session.Completed:
		bindings = []key.Binding{defaultKeymap.finish}
	}

	return "\n\n" + m.help.ShortHelpView(bindings)
}

func (m *Model) View() string {
	if m.outcome.Finished {
		return ""
	}

	if m.saving {
		return m.style.Base.Render(
			m.spinner.View() + " " + m.style.Secondary.Render("Saving loop times..."),
		)
	}

	snap := m.sess.Snapshot()
	if snap.State == session.Closed {
		return ""
	}

	var s strings.Builder

	s.WriteString(m.headerView(&snap))
	s.WriteString("\n\n")
	s.WriteString(m.problemView(&snap.Batch[snap.Active]))
	s.WriteString("\n\n")
	s.WriteString(m.batchView(&snap))
	s.WriteString(m.entryView(&snap))

	if snap.State == session.Completed {
		s.WriteString("\n" + m.style.Logged.Render("All times logged. Finishing the loop..."))
	}

	s.WriteString("\n")
	s.WriteString(m.progress.ViewAs(float64(len(snap.Logs)) / float64(len(snap.Batch))))
	s.WriteString(m.helpView(&snap))

	return m.style.Base.Render(s.String())
}
