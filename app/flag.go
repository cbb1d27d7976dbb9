package app

import "github.com/urfave/cli/v2"

var (
	baseURLFlag = &cli.StringFlag{
		Name:    "base-url",
		Usage:   "Override the BrainLoop API base URL",
		EnvVars: []string{"BRAINLOOP_BASE_URL"},
	}

	todayFlag = &cli.StringFlag{
		Name:  "today",
		Usage: "Treat this date as today when deciding what is due (e.g. 'tomorrow', '2024-06-01')",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Write debug messages to the log file",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a loop is finished",
	}

	noBellFlag = &cli.BoolFlag{
		Name:  "no-bell",
		Usage: "Do not ring the completion bell",
	}

	loopCmdFlag = &cli.StringFlag{
		Name:    "loop-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each loop",
	}

	batchSizeFlag = &cli.UintFlag{
		Name:    "batch-size",
		Aliases: []string{"n"},
		Usage:   "Maximum number of problems in a loop (default: 3)",
	}

	seedFlag = &cli.Uint64Flag{
		Name:   "seed",
		Usage:  "Seed the random batch selection",
		Hidden: true,
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	offlineFlag = &cli.BoolFlag{
		Name:  "offline",
		Usage: "Use the problems cached by the last successful fetch",
	}

	searchFlag = &cli.StringFlag{
		Name:    "search",
		Aliases: []string{"s"},
		Usage:   "Only show problems whose title contains this text",
	}

	statusFlag = &cli.StringFlag{
		Name:  "status",
		Usage: "Only show problems with this status: todo, in-progress or done",
	}

	difficultyFlag = &cli.StringFlag{
		Name:  "difficulty",
		Usage: "Only show problems of this difficulty: easy, medium or hard",
	}

	dueFlag = &cli.BoolFlag{
		Name:  "due",
		Usage: "Only show problems that are due for revision",
	}

	sortFlag = &cli.StringFlag{
		Name:  "sort",
		Usage: "Sort by title, next, status, difficulty or time (default: API order)",
	}

	orderFlag = &cli.StringFlag{
		Name:  "order",
		Usage: "Sort order: asc or desc",
		Value: "asc",
	}

	tagFlag = &cli.StringFlag{
		Name:    "tag",
		Aliases: []string{"t"},
		Usage:   "Only match problems with this tag",
	}

	limitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "Maximum number of results",
		Value: 10,
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Loops started in this period: 'today', 'yesterday', '7days', '14days', '30days', '90days', '365days' or 'all-time'",
	}

	startFlag = &cli.StringFlag{
		Name:  "start",
		Usage: "Loops started on or after this date (e.g. '2 weeks ago')",
	}

	endFlag = &cli.StringFlag{
		Name:  "end",
		Usage: "Loops started on or before this date",
	}

	deleteFlag = &cli.BoolFlag{
		Name:  "delete",
		Usage: "Delete the matching loop records",
	}

	emailFlag = &cli.StringFlag{
		Name:    "email",
		Aliases: []string{"e"},
		Usage:   "Account email address",
	}

	usernameFlag = &cli.StringFlag{
		Name:    "username",
		Aliases: []string{"u"},
		Usage:   "Account username",
	}

	passwordFlag = &cli.StringFlag{
		Name:    "password",
		Usage:   "Account password (prompted for when omitted)",
		EnvVars: []string{"BRAINLOOP_PASSWORD"},
	}

	tokenFlag = &cli.StringFlag{
		Name:     "token",
		Usage:    "Token from the email you received",
		Required: true,
	}
)

func listFlags() []cli.Flag {
	return []cli.Flag{
		searchFlag,
		statusFlag,
		difficultyFlag,
		dueFlag,
		sortFlag,
		orderFlag,
		jsonFlag,
		offlineFlag,
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		periodFlag,
		startFlag,
		endFlag,
	}
}
