package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sourcegraph/conc"
	"go.uber.org/multierr"

	"github.com/midaytech/brainloop/internal/models"
)

func problemPath(id models.ID, suffix string) string {
	return "/questions/" + url.PathEscape(id.String()) + suffix
}

// FetchProblems retrieves the full problem collection.
func (c *Client) FetchProblems(ctx context.Context) ([]models.Problem, error) {
	var problems []models.Problem

	err := c.do(ctx, http.MethodGet, "/questions", true, nil, &problems)

	return problems, err
}

// GetProblem retrieves a single problem.
func (c *Client) GetProblem(ctx context.Context, id models.ID) (models.Problem, error) {
	var p models.Problem

	err := c.do(ctx, http.MethodGet, problemPath(id, ""), true, nil, &p)

	return p, err
}

// CreateProblem adds a problem and returns it as stored by the API.
func (c *Client) CreateProblem(
	ctx context.Context,
	in *models.ProblemInput,
) (models.Problem, error) {
	var p models.Problem

	err := c.do(ctx, http.MethodPost, "/questions", true, in, &p)

	return p, err
}

// ReplaceProblem overwrites the editable fields of a problem.
func (c *Client) ReplaceProblem(
	ctx context.Context,
	id models.ID,
	in *models.ProblemInput,
) (models.Problem, error) {
	var p models.Problem

	err := c.do(ctx, http.MethodPut, problemPath(id, ""), true, in, &p)

	return p, err
}

// UpdateProblem sends a partial update.
func (c *Client) UpdateProblem(
	ctx context.Context,
	id models.ID,
	patch *models.ProblemPatch,
) (models.Problem, error) {
	var p models.Problem

	err := c.do(ctx, http.MethodPut, problemPath(id, ""), true, patch, &p)

	return p, err
}

// DeleteProblem removes a problem.
func (c *Client) DeleteProblem(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, problemPath(id, ""), true, nil, nil)
}

// LogRevision appends a revision log entry for a problem.
func (c *Client) LogRevision(
	ctx context.Context,
	id models.ID,
	minutes models.Minutes,
) (models.Revision, error) {
	var rev models.Revision

	err := c.do(ctx, http.MethodPost, "/revisions", true, models.NewRevision{
		QuestionID: id,
		TimeTaken:  minutes,
	}, &rev)

	return rev, err
}

// RevisionHistory lists the revisions of a problem.
func (c *Client) RevisionHistory(
	ctx context.Context,
	id models.ID,
) ([]models.Revision, error) {
	var revs []models.Revision

	err := c.do(ctx, http.MethodGet, problemPath(id, "/revisions"), true, nil, &revs)

	return revs, err
}

// Tags lists every tag known to the API.
func (c *Client) Tags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag

	err := c.do(ctx, http.MethodGet, "/tags", true, nil, &tags)

	return tags, err
}

// RecordFirstSolve stores the initial solve time of a problem and logs it
// as its first revision. Both calls run concurrently.
func (c *Client) RecordFirstSolve(
	ctx context.Context,
	id models.ID,
	minutes models.Minutes,
) error {
	var (
		wg                conc.WaitGroup
		updateErr, logErr error
	)

	wg.Go(func() {
		_, updateErr = c.UpdateProblem(ctx, id, &models.ProblemPatch{
			TimeTaken: &minutes,
		})
	})

	wg.Go(func() {
		_, logErr = c.LogRevision(ctx, id, minutes)
	})

	wg.Wait()

	if updateErr != nil {
		updateErr = fmt.Errorf("saving solve time: %w", updateErr)
	}

	if logErr != nil {
		logErr = fmt.Errorf("logging revision: %w", logErr)
	}

	return multierr.Combine(updateErr, logErr)
}
