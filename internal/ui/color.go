// Package ui holds the terminal colours and tables shared by the
// brainloop commands
package ui

import (
	"github.com/pterm/pterm"

	"github.com/midaytech/brainloop/internal/due"
	"github.com/midaytech/brainloop/internal/models"
)

var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Cyan(a any) string {
	if DarkTheme {
		return pterm.LightCyan(a)
	}

	return pterm.Cyan(a)
}

func Magenta(a any) string {
	if DarkTheme {
		return pterm.LightMagenta(a)
	}

	return pterm.Magenta(a)
}

func Blue(a any) string {
	if DarkTheme {
		return pterm.LightBlue(a)
	}

	return pterm.Blue(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

func Yellow(a any) string {
	if DarkTheme {
		return pterm.LightYellow(a)
	}

	return pterm.Yellow(a)
}

func Highlight(a any) string {
	if DarkTheme {
		return pterm.LightWhite(a)
	}

	return pterm.Black(a)
}

func Dim(a any) string {
	return pterm.Gray(a)
}

// DueLabel colours a due label by its urgency.
func DueLabel(l due.Label) string {
	switch l.Urgency {
	case due.Overdue:
		return Red(l.Text)
	case due.Soon:
		return Yellow(l.Text)
	case due.Upcoming:
		return Green(l.Text)
	default:
		return Dim(l.Text)
	}
}

func Difficulty(d models.Difficulty) string {
	switch d {
	case models.Easy:
		return Green(d)
	case models.Medium:
		return Yellow(d)
	case models.Hard:
		return Red(d)
	}

	return string(d)
}

func Status(s models.Status) string {
	switch s {
	case models.Done:
		return Green(s)
	case models.InProgress:
		return Blue(s)
	case models.ToDo:
		return Magenta(s)
	}

	return string(s)
}

func Outcome(o models.LoopOutcome) string {
	switch o {
	case models.LoopSaved:
		return Green(o)
	case models.LoopPartial:
		return Yellow(o)
	case models.LoopFailed:
		return Red(o)
	}

	return Dim(o)
}
