package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/midaytech/brainloop/internal/due"
	"github.com/midaytech/brainloop/internal/models"
	"github.com/midaytech/brainloop/internal/timeutil"
	"github.com/midaytech/brainloop/internal/ui"
)

const (
	noProblemsMsg = "No problems match the current filters"
	noLoopsMsg    = "No loops found for the specified time range"
	dateFormat    = "Jan 02, 2006"
)

func timeFormat(twentyFourHour bool) string {
	if twentyFourHour {
		return "Jan 02, 2006 15:04"
	}

	return "Jan 02, 2006 03:04 PM"
}

func minutesText(m models.Minutes) string {
	if m <= 0 {
		return "-"
	}

	return m.String() + " min"
}

// problemRows builds the table body for a list of problems.
func problemRows(problems []models.Problem, today time.Time) [][]string {
	rows := [][]string{
		{"#", "ID", "TITLE", "DIFFICULTY", "STATUS", "TIME", "NEXT REVISION", "TAGS"},
	}

	for i := range problems {
		p := &problems[i]

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			p.ID.String(),
			p.Title,
			ui.Difficulty(p.Difficulty),
			ui.Status(p.Status),
			minutesText(p.TimeTaken),
			ui.DueLabel(due.Describe(p.NextRevisionDate, today)),
			strings.Join(p.TagNames(), " · "),
		})
	}

	return rows
}

func printProblemsTable(w io.Writer, problems []models.Problem, today time.Time) {
	ui.PrintTable(problemRows(problems, today), w)
}

// revisionRows builds the table body for the revision history of a problem.
func revisionRows(revs []models.Revision, twentyFourHour bool) [][]string {
	rows := [][]string{{"#", "DATE", "TIME TAKEN"}}

	for i := range revs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			revs[i].CreatedAt.Local().Format(timeFormat(twentyFourHour)),
			minutesText(revs[i].TimeTaken),
		})
	}

	return rows
}

// loopRows builds the table body for finished loops.
func loopRows(loops []models.LoopRecord, twentyFourHour bool) [][]string {
	rows := [][]string{{"#", "STARTED", "DURATION", "PROBLEMS", "LOGGED", "OUTCOME"}}

	for i := range loops {
		rec := &loops[i]

		titles := make([]string, len(rec.Entries))
		for j, e := range rec.Entries {
			titles[j] = e.Title
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			rec.StartTime.Local().Format(timeFormat(twentyFourHour)),
			timeutil.Clock(rec.ElapsedSeconds),
			strings.Join(titles, " · "),
			fmt.Sprintf("%d/%d", rec.Logged(), len(rec.Entries)),
			ui.Outcome(rec.Outcome),
		})
	}

	return rows
}

// printProblem writes the details of a single problem.
func printProblem(w io.Writer, p *models.Problem, today time.Time) {
	fmt.Fprintf(w, "%s %s\n\n", ui.Highlight(p.Title), ui.Dim("#"+p.ID.String()))

	fmt.Fprintf(w, "%s  %s  %s\n",
		ui.Difficulty(p.Difficulty),
		ui.Status(p.Status),
		ui.DueLabel(due.Describe(p.NextRevisionDate, today)),
	)

	if p.Timed() {
		fmt.Fprintf(w, "First solved in %s\n", minutesText(p.TimeTaken))
	}

	if next, ok := p.Scheduled(); ok {
		fmt.Fprintf(w, "Next revision on %s\n", next.Format(dateFormat))
	}

	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", ui.Cyan(strings.Join(p.TagNames(), ", ")))
	}

	sections := []struct {
		name string
		body string
	}{
		{"PROBLEM", p.Problem},
		{"EXAMPLES", p.Examples},
		{"NOTES", p.Notes},
	}

	for _, s := range sections {
		if strings.TrimSpace(s.body) == "" {
			continue
		}

		fmt.Fprintf(w, "\n%s\n%s\n", ui.Yellow(s.name), strings.TrimSpace(s.body))
	}
}
