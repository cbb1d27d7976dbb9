// Package models defines the records exchanged with the BrainLoop API and
// stored locally
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Difficulty is the perceived difficulty of a problem.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Status is the progress state of a problem.
type Status string

const (
	ToDo       Status = "To Do"
	InProgress Status = "In Progress"
	Done       Status = "Done"
)

var (
	Difficulties = []Difficulty{Easy, Medium, Hard}
	Statuses     = []Status{ToDo, InProgress, Done}
)

// ID is an opaque identifier assigned by the API. It may arrive as a JSON
// number or string and is marshaled back in the form it arrived in.
// Numeric text that arrived as a string keeps its quotes.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		if isNumeric(s) {
			*id = ID(`"` + s + `"`)
			return nil
		}

		*id = ID(s)

		return nil
	}

	*id = ID(b)

	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.quoted() || isNumeric(string(id)) {
		return []byte(id), nil
	}

	return json.Marshal(string(id))
}

func (id ID) String() string {
	if id.quoted() {
		return string(id[1 : len(id)-1])
	}

	return string(id)
}

func (id ID) quoted() bool {
	return len(id) >= 2 && id[0] == '"' && id[len(id)-1] == '"'
}

// isNumeric reports whether s is an unsigned integer written the way JSON
// writes numbers, without leading zeros.
func isNumeric(s string) bool {
	n, err := strconv.ParseUint(s, 10, 64)

	return err == nil && strconv.FormatUint(n, 10) == s
}

// Tag labels a problem.
type Tag struct {
	ID   ID     `json:"ID"`
	Name string `json:"Name"`
}

// Problem is a tracked study item with its scheduling metadata.
type Problem struct {
	NextRevisionDate *Date      `json:"NextRevisionDate,omitempty"`
	ID               ID         `json:"ID"`
	Title            string     `json:"Title"`
	Problem          string     `json:"Problem"`
	Examples         string     `json:"Examples"`
	Notes            string     `json:"Notes"`
	Difficulty       Difficulty `json:"Difficulty"`
	Status           Status     `json:"Status"`
	Tags             []Tag      `json:"Tags"`
	TimeTaken        Minutes    `json:"TimeTaken,omitempty"`
}

// Timed reports whether an initial solve time has been recorded.
func (p *Problem) Timed() bool {
	return p.TimeTaken > 0
}

// TagNames returns the names of the problem's tags.
func (p *Problem) TagNames() []string {
	names := make([]string, len(p.Tags))
	for i := range p.Tags {
		names[i] = p.Tags[i].Name
	}

	return names
}

// ProblemInput is the payload for creating or replacing a problem.
type ProblemInput struct {
	Title      string     `json:"title"`
	Problem    string     `json:"problem"`
	Examples   string     `json:"examples"`
	Difficulty Difficulty `json:"difficulty"`
	Status     Status     `json:"status"`
	Notes      string     `json:"notes"`
	Tags       []Tag      `json:"Tags"`
}

// ProblemPatch carries a partial update. Nil fields are left untouched.
type ProblemPatch struct {
	TimeTaken  *Minutes    `json:"TimeTaken,omitempty"`
	Status     *Status     `json:"Status,omitempty"`
	Notes      *string     `json:"Notes,omitempty"`
	Difficulty *Difficulty `json:"Difficulty,omitempty"`
}

// Revision is an append-only record of one study attempt.
type Revision struct {
	CreatedAt  time.Time `json:"CreatedAt"`
	ID         ID        `json:"ID"`
	QuestionID ID        `json:"QuestionID"`
	TimeTaken  Minutes   `json:"TimeTaken"`
}

// NewRevision is the payload for logging a revision.
type NewRevision struct {
	QuestionID ID      `json:"questionID"`
	TimeTaken  Minutes `json:"timeTaken"`
}

// ParseDifficulty accepts a difficulty name in any letter case.
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, d := range Difficulties {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, true
		}
	}

	return "", false
}

// ParseStatus accepts a status name in any letter case, with spaces,
// hyphens or underscores between words ("in-progress", "todo").
func ParseStatus(s string) (Status, bool) {
	norm := func(v string) string {
		v = strings.ToLower(strings.TrimSpace(v))
		return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(v)
	}

	for _, st := range Statuses {
		if norm(string(st)) == norm(s) {
			return st, true
		}
	}

	return "", false
}

// Scheduled returns the next revision date if one is set.
func (p *Problem) Scheduled() (Date, bool) {
	if p.NextRevisionDate == nil || p.NextRevisionDate.IsZero() {
		return Date{}, false
	}

	return *p.NextRevisionDate, true
}
