// Package view derives the dashboard list from the problem collection and
// the current filter and sort settings.
package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/maruel/natural"

	"github.com/midaytech/brainloop/internal/due"
	"github.com/midaytech/brainloop/internal/models"
)

// SortKey names the field the list is ordered by.
type SortKey string

const (
	SortNone       SortKey = ""
	SortTitle      SortKey = "Title"
	SortNextDate   SortKey = "NextRevisionDate"
	SortStatus     SortKey = "Status"
	SortDifficulty SortKey = "Difficulty"
	SortTimeTaken  SortKey = "TimeTaken"
)

var SortKeys = []SortKey{
	SortTitle,
	SortNextDate,
	SortStatus,
	SortDifficulty,
	SortTimeTaken,
}

// Direction is the sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Options are the inputs of the derivation. Zero values disable the
// corresponding filter; the zero sort keeps the input order.
type Options struct {
	Today      time.Time
	Search     string
	Status     models.Status
	Difficulty models.Difficulty
	SortKey    SortKey
	Direction  Direction
	OnlyDue    bool
}

// ParseSortKey accepts a sort key name in any letter case. Short aliases
// "next", "due" and "time" are also recognised. An empty name or "none"
// leaves the list unsorted.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "title":
		return SortTitle, nil
	case "next", "due", "nextrevisiondate":
		return SortNextDate, nil
	case "status":
		return SortStatus, nil
	case "difficulty":
		return SortDifficulty, nil
	case "time", "timetaken":
		return SortTimeTaken, nil
	}

	return "", fmt.Errorf("unknown sort key %q", s)
}

// ParseDirection accepts "asc" or "desc".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}

	return "", fmt.Errorf("unknown sort direction %q", s)
}

// sortValue is the string form of the field compared by the sort. Missing
// values are empty.
func sortValue(p *models.Problem, key SortKey) string {
	switch key {
	case SortNextDate:
		if d, ok := p.Scheduled(); ok {
			return d.String()
		}

		return ""
	case SortStatus:
		return string(p.Status)
	case SortDifficulty:
		return string(p.Difficulty)
	case SortTimeTaken:
		if p.Timed() {
			return p.TimeTaken.String()
		}

		return ""
	default:
		return p.Title
	}
}

func (o *Options) match(p *models.Problem) bool {
	if o.Search != "" &&
		!strings.Contains(strings.ToLower(p.Title), strings.ToLower(o.Search)) {
		return false
	}

	if o.Status != "" && p.Status != o.Status {
		return false
	}

	if o.Difficulty != "" && p.Difficulty != o.Difficulty {
		return false
	}

	if o.OnlyDue && !due.IsDue(p, o.Today) {
		return false
	}

	return true
}

// Apply filters and sorts problems. The input is not modified and items
// with equal sort values keep their input order.
func Apply(problems []models.Problem, opts Options) []models.Problem {
	out := make([]models.Problem, 0, len(problems))

	for i := range problems {
		if opts.match(&problems[i]) {
			out = append(out, problems[i])
		}
	}

	key := opts.SortKey
	if key == SortNone {
		return out
	}

	slices.SortStableFunc(out, func(a, b models.Problem) int {
		c := cmp.Compare(sortValue(&a, key), sortValue(&b, key))
		if opts.Direction == Descending {
			return -c
		}

		return c
	})

	return out
}

// TagNames returns the distinct tag names used by problems in natural
// order ("graph2" before "graph10").
func TagNames(problems []models.Problem) []string {
	seen := make(map[string]bool)

	var names []string

	for i := range problems {
		for _, name := range problems[i].TagNames() {
			if name == "" || seen[name] {
				continue
			}

			seen[name] = true
			names = append(names, name)
		}
	}

	slices.SortFunc(names, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}

		return 0
	})

	return names
}
