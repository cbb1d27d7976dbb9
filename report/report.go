// Package report prints the outcome of commands to the terminal
package report

import (
	"github.com/pterm/pterm"

	"github.com/midaytech/brainloop/internal/models"
	"github.com/midaytech/brainloop/internal/osutil"
)

func NothingDue() {
	pterm.Info.Println("No problems are due for revision today")
}

func ProblemSaved(p *models.Problem) {
	pterm.Success.Printfln("saved %q", p.Title)
}

func ProblemDeleted(id models.ID) {
	pterm.Success.Printfln("problem %s deleted", id)
}

func RevisionLogged(p *models.Problem, m models.Minutes) {
	pterm.Success.Printfln("logged %s min against %q", m, p.Title)
}

// LoopFinished summarises a finished loop.
func LoopFinished(rec *models.LoopRecord) {
	total := len(rec.Entries)

	switch rec.Outcome {
	case models.LoopAbandoned:
		pterm.Info.Println("loop closed without logging any time")
	case models.LoopSaved:
		pterm.Success.Printfln(
			"loop saved: %d of %d problems logged", rec.Logged(), total,
		)
	default:
		pterm.Warning.Printfln(
			"loop %s: %d of %d problems logged, %d failed",
			rec.Outcome, rec.Logged(), total, rec.FailedWrites,
		)
	}
}

func LoopAborted() {
	pterm.Info.Println("loop aborted: no times were saved")
}

func Error(err error) {
	pterm.Error.Println(err)
}

func Quit(err error) {
	pterm.Error.Println(err)
	osutil.Exit(osutil.ExitError)
}
