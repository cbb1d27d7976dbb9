// Package due decides which problems are due for revision and draws the
// batch that seeds a loop session.
package due

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/midaytech/brainloop/internal/models"
	"github.com/midaytech/brainloop/internal/timeutil"
)

// DefaultBatchSize is the number of problems drawn into a loop when no
// size is configured.
const DefaultBatchSize = 3

// ErrNothingDue reports that no problem is scheduled on or before today.
// It is informational and not a fetch failure.
var ErrNothingDue = errors.New("no problems are due for revision")

// IsDue reports whether p is scheduled on or before today. Only calendar
// dates are compared: the scheduled date is read in its own zone and
// today in its location.
func IsDue(p *models.Problem, today time.Time) bool {
	next, ok := p.Scheduled()
	if !ok {
		return false
	}

	return !next.Day(today.Location()).After(timeutil.RoundToStart(today))
}

// SelectDue returns the problems that are due as of today in their input
// order.
func SelectDue(problems []models.Problem, today time.Time) []models.Problem {
	var due []models.Problem

	for i := range problems {
		if IsDue(&problems[i], today) {
			due = append(due, problems[i])
		}
	}

	return due
}

// SampleBatch draws min(size, len(due)) distinct problems uniformly at
// random without replacement. The input slice is not modified.
func SampleBatch(
	due []models.Problem,
	size int,
	rng *rand.Rand,
) []models.Problem {
	if size <= 0 {
		size = DefaultBatchSize
	}

	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	pool := make([]models.Problem, len(due))
	copy(pool, due)

	n := min(size, len(pool))

	// partial Fisher-Yates: the first n slots hold the sample
	for i := range n {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:n]
}

// PickBatch selects the due problems and samples a batch from them.
func PickBatch(
	problems []models.Problem,
	today time.Time,
	size int,
	rng *rand.Rand,
) ([]models.Problem, error) {
	due := SelectDue(problems, today)
	if len(due) == 0 {
		return nil, ErrNothingDue
	}

	return SampleBatch(due, size, rng), nil
}

// Urgency classifies a due label for colouring.
type Urgency int

const (
	Unscheduled Urgency = iota
	Upcoming
	Soon
	Overdue
)

// Label is the relative description of a next revision date.
type Label struct {
	Text    string
	Urgency Urgency
	Days    int
}

// Describe renders next relative to today, e.g. "Due 3d ago",
// "Due Today", "Due Tomorrow" or "In 5 days".
func Describe(next *models.Date, today time.Time) Label {
	if next == nil || next.IsZero() {
		return Label{Text: "Not Scheduled", Urgency: Unscheduled}
	}

	days := timeutil.DaysBetween(today, next.Day(today.Location()))

	switch {
	case days < 0:
		return Label{
			Text:    fmt.Sprintf("Due %dd ago", -days),
			Urgency: Overdue,
			Days:    days,
		}
	case days == 0:
		return Label{Text: "Due Today", Urgency: Overdue}
	case days == 1:
		return Label{Text: "Due Tomorrow", Urgency: Soon, Days: days}
	default:
		return Label{
			Text:    fmt.Sprintf("In %d days", days),
			Urgency: Upcoming,
			Days:    days,
		}
	}
}
