package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/midaytech/brainloop/internal/api"
	"github.com/midaytech/brainloop/internal/apperr"
	"github.com/midaytech/brainloop/internal/config"
	"github.com/midaytech/brainloop/internal/models"
	"github.com/midaytech/brainloop/internal/osutil"
	"github.com/midaytech/brainloop/internal/pathutil"
	"github.com/midaytech/brainloop/internal/ui"
	"github.com/midaytech/brainloop/store"
)

const (
	envNoColor          = "NO_COLOR"
	envBrainloopNoColor = "BRAINLOOP_NO_COLOR"
)

var errSessionExpired = &apperr.Error{
	Message: "your session expired on %s: run 'brainloop login' again",
}

// env holds what an action needs to talk to the API and the local store.
type env struct {
	cfg    *config.Config
	db     store.DB
	client *api.Client
	log    io.Closer
}

func (e *env) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}

	if e.log != nil {
		_ = e.log.Close()
	}
}

// loadConfig builds the configuration from the env file, the config file
// (prompting on first run) and the command-line flags.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	if err := pathutil.Initialize(); err != nil {
		return nil, err
	}

	return config.New(
		config.WithPaths(
			pathutil.ConfigFilePath(),
			pathutil.EnvFilePath(),
			pathutil.DBFilePath(),
			pathutil.LogFilePath(),
		),
		config.WithEnvFile(pathutil.EnvFilePath()),
		config.WithPromptConfig(pathutil.ConfigFilePath()),
		config.WithViperConfig(pathutil.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	)
}

// setup loads the configuration, opens the local store and creates an API
// client. When authRequired is set the stored token must exist and be
// unexpired.
func setup(ctx *cli.Context, authRequired bool) (*env, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg: cfg,
		log: setupLogging(cfg.System.LogPath, cfg.Log.Level),
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	db, err := store.NewClient(cfg.System.DBPath)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.db = db

	token, err := db.Token()
	if err != nil && (authRequired || !errors.Is(err, store.ErrNotLoggedIn)) {
		e.Close()
		return nil, err
	}

	if authRequired {
		if err := checkToken(token, time.Now()); err != nil {
			e.Close()
			return nil, err
		}
	}

	e.client = api.New(
		cfg.API.BaseURL,
		api.WithToken(token),
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(slog.Default()),
	)

	name := ctx.App.Name
	if ctx.Command != nil && ctx.Command.Name != "" {
		name = ctx.Command.FullName()
	}

	slog.DebugContext(ctx.Context, "command started",
		slog.String("command", name),
		slog.String("base_url", cfg.API.BaseURL),
	)

	return e, nil
}

// checkToken rejects tokens that have visibly expired. Tokens that cannot
// be decoded are left for the API to judge.
func checkToken(token string, now time.Time) error {
	u, err := api.ParseToken(token)
	if err != nil {
		return nil
	}

	if api.Expired(&u, now) {
		return errSessionExpired.Fmt(u.ExpiresAt.Format(time.RFC1123))
	}

	return nil
}

// loadProblems fetches the problem collection and refreshes the local
// cache. When the API cannot be reached the cached copy is used instead.
func (e *env) loadProblems(ctx *cli.Context) ([]models.Problem, error) {
	if ctx.Bool("offline") {
		problems, _, err := e.db.CachedProblems()
		return problems, err
	}

	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start("Fetching problems...")

	problems, err := e.client.FetchProblems(ctx.Context)

	_ = spinner.Stop()

	if err == nil {
		if cerr := e.db.CacheProblems(problems, time.Now()); cerr != nil {
			slog.WarnContext(ctx.Context, "caching problems failed", slog.Any("error", cerr))
		}

		return problems, nil
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return nil, err
	}

	cached, fetchedAt, cerr := e.db.CachedProblems()
	if cerr != nil {
		return nil, err
	}

	slog.WarnContext(ctx.Context, "using cached problems", slog.Any("error", err))
	pterm.Warning.Printfln(
		"could not reach the API, showing problems cached on %s",
		fetchedAt.Format("Jan 02, 2006 03:04 PM"),
	)

	return cached, nil
}

// editConfigAction handles the edit-config command which opens the
// brainloop config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	if err := pathutil.Initialize(); err != nil {
		return err
	}

	cmd := exec.Command(osutil.Editor(), pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Fprintf(c.App.Writer, "https://github.com/midaytech/brainloop/releases/%s\n", c.App.Version)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envBrainloopNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.DebugContext(ctx.Context, "exiting brainloop")

	return nil
}
