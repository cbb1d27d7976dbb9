package models

import "time"

// LoopOutcome summarises how a loop ended.
type LoopOutcome string

const (
	LoopSaved     LoopOutcome = "saved"
	LoopPartial   LoopOutcome = "partial"
	LoopFailed    LoopOutcome = "failed"
	LoopAbandoned LoopOutcome = "abandoned"
)

// LoopEntry is one batch item of a finished loop.
type LoopEntry struct {
	ProblemID ID      `json:"problem_id"`
	Title     string  `json:"title"`
	Minutes   Minutes `json:"minutes"`
	Logged    bool    `json:"logged"`
}

// LoopRecord is the local record of a finished loop session.
type LoopRecord struct {
	StartTime      time.Time   `json:"start_time"`
	EndTime        time.Time   `json:"end_time"`
	ID             string      `json:"id"`
	Outcome        LoopOutcome `json:"outcome"`
	Entries        []LoopEntry `json:"entries"`
	ElapsedSeconds int         `json:"elapsed_seconds"`
	FailedWrites   int         `json:"failed_writes"`
}

// Logged returns the number of entries with a recorded time.
func (r *LoopRecord) Logged() int {
	var n int

	for i := range r.Entries {
		if r.Entries[i].Logged {
			n++
		}
	}

	return n
}

// User holds the identity claims carried by an API token.
type User struct {
	ExpiresAt time.Time `json:"expires_at"`
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
}

// DisplayName prefers the username and falls back to the email.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}

	return u.Email
}
