package app

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/midaytech/brainloop/internal/config"
	"github.com/midaytech/brainloop/internal/due"
	"github.com/midaytech/brainloop/internal/session"
	"github.com/midaytech/brainloop/internal/ui"
	"github.com/midaytech/brainloop/loop"
	"github.com/midaytech/brainloop/report"
	"github.com/midaytech/brainloop/store"
)

// batchRand returns the source for batch sampling. A nil source is
// seeded randomly.
func batchRand(ctx *cli.Context) *rand.Rand {
	if !ctx.IsSet("seed") {
		return nil
	}

	seed := ctx.Uint64("seed")

	return rand.New(rand.NewPCG(seed, seed))
}

func loopOptions(cfg *config.Config, backend session.Backend) loop.Options {
	return loop.Options{
		Backend:        backend,
		Today:          cfg.Today(),
		Cmd:            cfg.Loop.Cmd,
		AutoCloseDelay: cfg.Loop.AutoCloseDelay,
		Notify:         cfg.Notifications.Enabled,
		Bell:           cfg.Loop.Bell,
		TwentyFourHour: cfg.Display.TwentyFourHour,
		DarkTheme:      cfg.Display.DarkTheme,
	}
}

// loopAction samples a batch of due problems and runs a loop over it.
// Logged times are written to the API once the loop finishes and the loop
// is recorded locally.
func loopAction(ctx *cli.Context) error {
	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	problems, err := e.loadProblems(ctx)
	if err != nil {
		return err
	}

	batch, err := due.PickBatch(problems, e.cfg.Today(), e.cfg.Loop.BatchSize, batchRand(ctx))
	if errors.Is(err, due.ErrNothingDue) {
		report.NothingDue()
		return nil
	}

	if err != nil {
		return err
	}

	opts := loopOptions(e.cfg, e.client)

	// release the database so other commands can run during the loop
	if err = e.db.Close(); err != nil {
		return err
	}

	e.db = nil

	out, err := loop.Run(ctx.Context, batch, opts)
	if err != nil {
		return err
	}

	if !out.Finished {
		report.LoopAborted()
		return nil
	}

	rec := out.Result.Record(out.Err)

	slog.InfoContext(ctx.Context, "loop finished",
		slog.String("id", rec.ID),
		slog.String("outcome", string(rec.Outcome)),
		slog.Int("logged", rec.Logged()),
		slog.Int("failed_writes", rec.FailedWrites),
		slog.Int("elapsed_seconds", rec.ElapsedSeconds),
	)

	db, err := store.NewClient(e.cfg.System.DBPath)
	if err != nil {
		return err
	}

	e.db = db

	if err = e.db.SaveLoop(&rec); err != nil {
		report.Error(err)
	}

	if out.Problems != nil {
		if err = e.db.CacheProblems(out.Problems, rec.EndTime); err != nil {
			slog.WarnContext(ctx.Context, "caching problems failed", slog.Any("error", err))
		}
	}

	report.LoopFinished(&rec)

	hookErr := loop.AfterLoop(ctx.Context, opts, &rec)

	if errors.Is(out.Err, session.ErrLogWrite) {
		return multierr.Append(out.Err, hookErr)
	}

	if out.Err != nil {
		pterm.Warning.Println(out.Err)
	}

	return hookErr
}

// loopsAction lists or deletes the loops recorded in a time period.
func loopsAction(ctx *cli.Context) error {
	filter, err := config.Filter(ctx)
	if err != nil {
		return err
	}

	e, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer e.Close()

	loops, err := e.db.GetLoops(filter.StartTime, filter.EndTime)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		return ui.PrintJSON(loops, os.Stdout)
	}

	if len(loops) == 0 {
		pterm.Info.Println(noLoopsMsg)
		return nil
	}

	ui.PrintTable(loopRows(loops, e.cfg.Display.TwentyFourHour), os.Stdout)

	if !ctx.Bool("delete") {
		return nil
	}

	if !ctx.Bool("yes") {
		ok, err := confirm("The loops above will be deleted permanently. Continue?")
		if err != nil || !ok {
			return err
		}
	}

	if err := e.db.DeleteLoops(loops); err != nil {
		return err
	}

	pterm.Success.Printfln("%d loop record(s) deleted", len(loops))

	return nil
}
