package store

import (
	"time"

	"github.com/midaytech/brainloop/internal/models"
)

// DB is the local storage interface.
type DB interface {
	// SaveToken stores the API token of the logged in user
	SaveToken(token string) error
	// Token returns the stored API token
	Token() (string, error)
	// DeleteToken forgets the stored API token
	DeleteToken() error
	// CacheProblems replaces the local copy of the problem collection
	CacheProblems(problems []models.Problem, fetchedAt time.Time) error
	// CachedProblems returns the local copy of the problem collection and
	// when it was fetched
	CachedProblems() ([]models.Problem, time.Time, error)
	// SaveLoop stores a finished loop session. A record with the same start
	// time is overwritten.
	SaveLoop(rec *models.LoopRecord) error
	// GetLoops returns the loops started within the time bounds, oldest
	// first
	GetLoops(startTime, endTime time.Time) ([]models.LoopRecord, error)
	// DeleteLoops deletes one or more loop records
	DeleteLoops(recs []models.LoopRecord) error
	// Close ends the database connection
	Close() error
}
