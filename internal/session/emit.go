package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/multierr"

	"github.com/midaytech/brainloop/internal/models"
)

var (
	ErrLogWrite = errors.New("revision log write failed")
	ErrRefresh  = errors.New("problem refresh failed")
)

// Backend is the remote store a finished session is written to.
type Backend interface {
	LogRevision(
		ctx context.Context,
		id models.ID,
		minutes models.Minutes,
	) (models.Revision, error)
	FetchProblems(ctx context.Context) ([]models.Problem, error)
}

// EmitError aggregates the failures of an emission. Writes that
// succeeded are not rolled back.
type EmitError struct {
	Writes    error
	Refresh   error
	FailedIDs []models.ID
	Failed    int
	Total     int
}

func (e *EmitError) Error() string {
	var parts []string

	if e.Failed > 0 {
		parts = append(
			parts,
			fmt.Sprintf("%d of %d revision logs failed: %v", e.Failed, e.Total, e.Writes),
		)
	}

	if e.Refresh != nil {
		parts = append(parts, fmt.Sprintf("refreshing problems: %v", e.Refresh))
	}

	return strings.Join(parts, "; ")
}

func (e *EmitError) Is(target error) bool {
	switch target {
	case ErrLogWrite:
		return e.Failed > 0
	case ErrRefresh:
		return e.Refresh != nil
	}

	return false
}

func (e *EmitError) Unwrap() []error {
	var errs []error

	if e.Writes != nil {
		errs = append(errs, e.Writes)
	}

	if e.Refresh != nil {
		errs = append(errs, e.Refresh)
	}

	return errs
}

// Emit writes one revision log per logged entry concurrently, waits for
// all of them to settle, then refreshes the problem collection once.
// An empty result makes no calls.
func Emit(ctx context.Context, b Backend, res Result) ([]models.Problem, error) {
	if res.Empty() {
		return nil, nil
	}

	var logged []Entry

	for _, e := range res.Entries {
		if e.Logged {
			logged = append(logged, e)
		}
	}

	errs := make([]error, len(logged))

	p := pool.New().WithContext(ctx)

	for i, e := range logged {
		p.Go(func(ctx context.Context) error {
			_, err := b.LogRevision(ctx, e.ProblemID, e.Minutes)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", e.Title, err)
			}

			return errs[i]
		})
	}

	// per-entry errors are collected in errs
	_ = p.Wait()

	emitErr := &EmitError{Total: len(logged)}

	for i, err := range errs {
		if err != nil {
			emitErr.Failed++
			emitErr.FailedIDs = append(emitErr.FailedIDs, logged[i].ProblemID)
		}
	}

	emitErr.Writes = multierr.Combine(errs...)

	problems, err := b.FetchProblems(ctx)
	if err != nil {
		emitErr.Refresh = err
	}

	if emitErr.Failed > 0 || emitErr.Refresh != nil {
		return problems, emitErr
	}

	return problems, nil
}

// Outcome classifies how an emitted session ended.
func Outcome(res *Result, err error) models.LoopOutcome {
	if res.Empty() {
		return models.LoopAbandoned
	}

	var emitErr *EmitError
	if !errors.As(err, &emitErr) || emitErr.Failed == 0 {
		return models.LoopSaved
	}

	if emitErr.Failed == emitErr.Total {
		return models.LoopFailed
	}

	return models.LoopPartial
}
