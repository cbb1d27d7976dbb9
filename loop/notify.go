package loop

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"

	"github.com/midaytech/brainloop/internal/models"
	"github.com/midaytech/brainloop/internal/pathutil"
	"github.com/midaytech/brainloop/internal/timeutil"
)

// notificationText describes a finished loop for the desktop notification.
func notificationText(rec *models.LoopRecord) (title, msg string) {
	title = "Loop finished"

	switch rec.Outcome {
	case models.LoopAbandoned:
		return title, "No time was logged"
	case models.LoopFailed:
		return "Loop not saved", fmt.Sprintf(
			"None of the %d logged times could be saved", rec.FailedWrites,
		)
	case models.LoopPartial:
		return "Loop partially saved", fmt.Sprintf(
			"%d saved, %d failed", rec.Logged(), rec.FailedWrites,
		)
	}

	return title, fmt.Sprintf(
		"Logged %d of %d problems in %s",
		rec.Logged(), len(rec.Entries), timeutil.Clock(rec.ElapsedSeconds),
	)
}

// notify sends a desktop notification for a finished loop.
func notify(rec *models.LoopRecord) error {
	title, msg := notificationText(rec)

	// pathToIcon will be an empty string if file is not found
	pathToIcon, _ := xdg.SearchDataFile(
		filepath.Join(pathutil.Dir(), "icon.png"),
	)

	return beeep.Notify(title, msg, pathToIcon)
}

// runLoopCmd executes the configured post-loop command.
func runLoopCmd(ctx context.Context, loopCmd string) error {
	if loopCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(loopCmd)
	if err != nil {
		return fmt.Errorf("unable to parse loop.cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, cmdSlice[0], cmdSlice[1:]...)

	return cmd.Run()
}

// AfterLoop notifies the user that a loop has finished, rings the bell and
// runs the post-loop command. Notification and sound failures are reported
// but not returned.
func AfterLoop(ctx context.Context, opts Options, rec *models.LoopRecord) error {
	if opts.Notify {
		if err := notify(rec); err != nil {
			slog.WarnContext(ctx, "desktop notification failed", slog.Any("error", err))
			pterm.Error.Printfln("unable to display notification: %v", err)
		}
	}

	if opts.Bell && rec.Outcome != models.LoopAbandoned {
		if err := ringBell(); err != nil {
			slog.WarnContext(ctx, "completion bell failed", slog.Any("error", err))
		}
	}

	return runLoopCmd(ctx, opts.Cmd)
}
