package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/midaytech/brainloop/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

func problemCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:    "list",
			Aliases: []string{"ls"},
			Usage:   "List problems with optional search, filters and sorting",
			Flags:   listFlags(),
			Action:  listAction,
		},
		{
			Name:   "due",
			Usage:  "List the problems that are due for revision",
			Flags:  []cli.Flag{jsonFlag, offlineFlag},
			Action: dueAction,
		},
		{
			Name:      "show",
			Usage:     "Show the details of a problem",
			ArgsUsage: "<id>",
			Flags:     []cli.Flag{jsonFlag},
			Action:    showAction,
		},
		{
			Name:   "add",
			Usage:  "Add a new problem",
			Action: addAction,
		},
		{
			Name:      "edit",
			Usage:     "Edit a problem",
			ArgsUsage: "<id>",
			Action:    editAction,
		},
		{
			Name:      "delete",
			Usage:     "Delete a problem and its revision history",
			ArgsUsage: "<id>",
			Flags:     []cli.Flag{yesFlag},
			Action:    deleteAction,
		},
		{
			Name:      "log",
			Usage:     "Log the minutes spent revising a problem",
			ArgsUsage: "<id> [minutes]",
			Action:    logAction,
		},
		{
			Name:      "history",
			Usage:     "Show the revision history of a problem",
			ArgsUsage: "<id>",
			Flags:     []cli.Flag{jsonFlag},
			Action:    historyAction,
		},
		{
			Name:   "tags",
			Usage:  "List tags and how many problems carry each one",
			Flags:  []cli.Flag{jsonFlag, offlineFlag},
			Action: tagsAction,
		},
		{
			Name:      "search",
			Usage:     "Search problem titles, statements, examples and notes",
			ArgsUsage: "<query>",
			Flags:     []cli.Flag{tagFlag, limitFlag, jsonFlag, offlineFlag},
			Action:    searchAction,
		},
	}
}

func loopCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "loop",
			Usage:  "Start a timed loop over a random batch of due problems",
			Flags:  []cli.Flag{seedFlag},
			Action: loopAction,
		},
		{
			Name:   "loops",
			Usage:  "List finished loops. Defaults to all loops",
			Flags:  append(filterFlags(), jsonFlag, deleteFlag, yesFlag),
			Action: loopsAction,
		},
	}
}

func accountCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "login",
			Usage:  "Log in to your BrainLoop account",
			Flags:  []cli.Flag{emailFlag, passwordFlag},
			Action: loginAction,
		},
		{
			Name:   "register",
			Usage:  "Create a BrainLoop account",
			Flags:  []cli.Flag{usernameFlag, emailFlag, passwordFlag},
			Action: registerAction,
		},
		{
			Name:   "logout",
			Usage:  "Forget the stored session",
			Action: logoutAction,
		},
		{
			Name:   "whoami",
			Usage:  "Show the logged in account",
			Flags:  []cli.Flag{jsonFlag},
			Action: whoamiAction,
		},
		{
			Name:   "forgot-password",
			Usage:  "Request a password reset email",
			Flags:  []cli.Flag{emailFlag},
			Action: forgotPasswordAction,
		},
		{
			Name:   "reset-password",
			Usage:  "Set a new password using the token from the reset email",
			Flags:  []cli.Flag{tokenFlag, passwordFlag},
			Action: resetPasswordAction,
		},
		{
			Name:      "verify-email",
			Usage:     "Verify your email address using the token from the verification email",
			ArgsUsage: "<token>",
			Action:    verifyEmailAction,
		},
		{
			Name:   "resend-verification",
			Usage:  "Send a new verification email",
			Flags:  []cli.Flag{emailFlag},
			Action: resendVerificationAction,
		},
	}
}

// Get retrieves the brainloop app instance.
func Get() *cli.App {
	var commands []*cli.Command

	commands = append(commands, problemCommands()...)
	commands = append(commands, loopCommands()...)
	commands = append(commands, accountCommands()...)
	commands = append(commands, &cli.Command{
		Name:   "edit-config",
		Usage:  "Edit the configuration file",
		Action: editConfigAction,
	})

	return &cli.App{
		Name: "brainloop",
		Usage: `
		BrainLoop is a spaced-repetition companion for practising coding problems.
		It keeps track of which problems are due for revision and runs timed
		loops over a random batch of them.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands:             commands,
		Flags: []cli.Flag{
			baseURLFlag,
			todayFlag,
			batchSizeFlag,
			loopCmdFlag,
			disableNotificationFlag,
			noBellFlag,
			noColorFlag,
			debugFlag,
		},
		Action: listAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
