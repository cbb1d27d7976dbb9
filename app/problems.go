package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/midaytech/brainloop/internal/apperr"
	"github.com/midaytech/brainloop/internal/due"
	"github.com/midaytech/brainloop/internal/models"
	"github.com/midaytech/brainloop/internal/search"
	"github.com/midaytech/brainloop/internal/ui"
	"github.com/midaytech/brainloop/internal/view"
	"github.com/midaytech/brainloop/report"
)

var (
	errMissingID = &apperr.Error{
		Message: "please provide the ID of a problem",
	}

	errInvalidStatus = &apperr.Error{
		Message: "unknown status %q (must be todo, in-progress or done)",
	}

	errInvalidDifficulty = &apperr.Error{
		Message: "unknown difficulty %q (must be easy, medium or hard)",
	}

	errInvalidMinutes = &apperr.Error{
		Message: "%q is not a positive number of minutes",
	}

	errMissingQuery = &apperr.Error{
		Message: "please provide something to search for",
	}
)

// dashboard holds the last derived list so repeated renders with the same
// collection and flags reuse it.
var dashboard view.Memo

// listArgs are the raw dashboard flags.
type listArgs struct {
	Search     string
	Status     string
	Difficulty string
	Sort       string
	Order      string
	OnlyDue    bool
}

func newListArgs(ctx *cli.Context) listArgs {
	return listArgs{
		Search:     ctx.String("search"),
		Status:     ctx.String("status"),
		Difficulty: ctx.String("difficulty"),
		Sort:       ctx.String("sort"),
		Order:      ctx.String("order"),
		OnlyDue:    ctx.Bool("due"),
	}
}

// options validates the flags and converts them to view options.
func (a listArgs) options(today time.Time) (view.Options, error) {
	opts := view.Options{
		Today:   today,
		Search:  a.Search,
		OnlyDue: a.OnlyDue,
	}

	if a.Status != "" {
		s, ok := models.ParseStatus(a.Status)
		if !ok {
			return opts, errInvalidStatus.Fmt(a.Status)
		}

		opts.Status = s
	}

	if a.Difficulty != "" {
		d, ok := models.ParseDifficulty(a.Difficulty)
		if !ok {
			return opts, errInvalidDifficulty.Fmt(a.Difficulty)
		}

		opts.Difficulty = d
	}

	var err error

	opts.SortKey, err = view.ParseSortKey(a.Sort)
	if err != nil {
		return opts, err
	}

	opts.Direction, err = view.ParseDirection(a.Order)

	return opts, err
}

func problemID(ctx *cli.Context) (models.ID, error) {
	id := strings.TrimSpace(ctx.Args().First())
	if id == "" {
		return "", errMissingID
	}

	return models.ID(id), nil
}

// listAction prints the dashboard: the problem collection after the
// search, filter and sort flags are applied.
func listAction(ctx *cli.Context) error {
	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	today := e.cfg.Today()

	opts, err := newListArgs(ctx).options(today)
	if err != nil {
		return err
	}

	problems, err := e.loadProblems(ctx)
	if err != nil {
		return err
	}

	problems = dashboard.Apply(problems, opts)

	if ctx.Bool("json") {
		return ui.PrintJSON(problems, os.Stdout)
	}

	if len(problems) == 0 {
		pterm.Info.Println(noProblemsMsg)
		return nil
	}

	printProblemsTable(os.Stdout, problems, today)

	dueCount := len(due.SelectDue(problems, today))
	if dueCount > 0 {
		pterm.Info.Printfln("%d problem(s) due for revision: run 'brainloop loop' to start", dueCount)
	}

	return nil
}

// dueAction prints the problems that are due as of today.
func dueAction(ctx *cli.Context) error {
	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	today := e.cfg.Today()

	problems, err := e.loadProblems(ctx)
	if err != nil {
		return err
	}

	dueSet := due.SelectDue(problems, today)

	if ctx.Bool("json") {
		return ui.PrintJSON(dueSet, os.Stdout)
	}

	if len(dueSet) == 0 {
		report.NothingDue()
		return nil
	}

	printProblemsTable(os.Stdout, dueSet, today)

	return nil
}

func showAction(ctx *cli.Context) error {
	id, err := problemID(ctx)
	if err != nil {
		return err
	}

	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.client.GetProblem(ctx.Context, id)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		return ui.PrintJSON(p, os.Stdout)
	}

	printProblem(os.Stdout, &p, e.cfg.Today())

	return nil
}

// saveProblem shows the problem form and creates or replaces the problem.
// A problem saved as done without a solve time prompts for one.
func saveProblem(ctx *cli.Context, e *env, existing *models.Problem) error {
	known, err := e.client.Tags(ctx.Context)
	if err != nil {
		slog.WarnContext(ctx.Context, "fetching tags failed", slog.Any("error", err))
	}

	f := newProblemForm(existing)

	title := "Add a new problem"
	if existing != nil {
		title = "Edit problem"
	}

	if err = f.form(title).Run(); err != nil {
		return err
	}

	in := f.input(known)

	var saved models.Problem

	if existing == nil {
		saved, err = e.client.CreateProblem(ctx.Context, in)
	} else {
		saved, err = e.client.ReplaceProblem(ctx.Context, existing.ID, in)
	}

	if err != nil {
		return err
	}

	report.ProblemSaved(&saved)

	if !needsFirstSolve(&saved) {
		return nil
	}

	minutes, err := promptMinutes("How many minutes did it take to solve " + saved.Title + "?")
	if err != nil {
		return err
	}

	if err := e.client.RecordFirstSolve(ctx.Context, saved.ID, minutes); err != nil {
		return err
	}

	report.RevisionLogged(&saved, minutes)

	return nil
}

func addAction(ctx *cli.Context) error {
	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	return saveProblem(ctx, e, nil)
}

func editAction(ctx *cli.Context) error {
	id, err := problemID(ctx)
	if err != nil {
		return err
	}

	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.client.GetProblem(ctx.Context, id)
	if err != nil {
		return err
	}

	return saveProblem(ctx, e, &p)
}

func deleteAction(ctx *cli.Context) error {
	id, err := problemID(ctx)
	if err != nil {
		return err
	}

	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.client.GetProblem(ctx.Context, id)
	if err != nil {
		return err
	}

	if !ctx.Bool("yes") {
		printProblemsTable(os.Stdout, []models.Problem{p}, e.cfg.Today())

		ok, err := confirm("The problem above and its revision history will be deleted permanently. Continue?")
		if err != nil || !ok {
			return err
		}
	}

	if err := e.client.DeleteProblem(ctx.Context, id); err != nil {
		return err
	}

	report.ProblemDeleted(id)

	return nil
}

// logAction appends a revision to a problem. The time comes from the
// second argument or an interactive prompt.
func logAction(ctx *cli.Context) error {
	id, err := problemID(ctx)
	if err != nil {
		return err
	}

	var minutes models.Minutes

	if arg := ctx.Args().Get(1); arg != "" {
		minutes, err = models.ParseMinutes(arg)
		if err != nil {
			return errInvalidMinutes.Fmt(arg)
		}
	}

	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.client.GetProblem(ctx.Context, id)
	if err != nil {
		return err
	}

	if minutes == 0 {
		minutes, err = promptMinutes("How many minutes did you spend on " + p.Title + "?")
		if err != nil {
			return err
		}
	}

	if _, err := e.client.LogRevision(ctx.Context, id, minutes); err != nil {
		return err
	}

	report.RevisionLogged(&p, minutes)

	return nil
}

func historyAction(ctx *cli.Context) error {
	id, err := problemID(ctx)
	if err != nil {
		return err
	}

	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	revs, err := e.client.RevisionHistory(ctx.Context, id)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		return ui.PrintJSON(revs, os.Stdout)
	}

	if len(revs) == 0 {
		pterm.Info.Printfln("No revisions logged for problem %s yet", id)
		return nil
	}

	ui.PrintTable(revisionRows(revs, e.cfg.Display.TwentyFourHour), os.Stdout)

	return nil
}

// tagRows counts the problems carrying each tag, in natural tag order.
func tagRows(problems []models.Problem) [][]string {
	counts := make(map[string]int)

	for i := range problems {
		for _, name := range problems[i].TagNames() {
			counts[name]++
		}
	}

	rows := [][]string{{"TAG", "PROBLEMS"}}

	for _, name := range view.TagNames(problems) {
		rows = append(rows, []string{name, fmt.Sprintf("%d", counts[name])})
	}

	return rows
}

func tagsAction(ctx *cli.Context) error {
	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	problems, err := e.loadProblems(ctx)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		return ui.PrintJSON(view.TagNames(problems), os.Stdout)
	}

	rows := tagRows(problems)
	if len(rows) == 1 {
		pterm.Info.Println("No tags yet")
		return nil
	}

	ui.PrintTable(rows, os.Stdout)

	return nil
}

// searchAction runs a full-text query over the problem collection.
func searchAction(ctx *cli.Context) error {
	query := strings.TrimSpace(strings.Join(ctx.Args().Slice(), " "))
	if query == "" {
		return errMissingQuery
	}

	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	problems, err := e.loadProblems(ctx)
	if err != nil {
		return err
	}

	idx, err := search.New(problems)
	if err != nil {
		return err
	}

	defer func() {
		_ = idx.Close()
	}()

	hits, err := idx.Search(query, ctx.String("tag"), ctx.Int("limit"))
	if err != nil {
		return err
	}

	matched := make([]models.Problem, len(hits))
	for i := range hits {
		matched[i] = hits[i].Problem
	}

	if ctx.Bool("json") {
		return ui.PrintJSON(matched, os.Stdout)
	}

	if len(matched) == 0 {
		pterm.Info.Printfln("Nothing matches %q", query)
		return nil
	}

	printProblemsTable(os.Stdout, matched, e.cfg.Today())

	return nil
}
