package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/midaytech/brainloop/internal/api"
)

const asciiLogo = `
██████╗ ██████╗  █████╗ ██╗███╗   ██╗██╗      ██████╗  ██████╗ ██████╗
██╔══██╗██╔══██╗██╔══██╗██║████╗  ██║██║     ██╔═══██╗██╔═══██╗██╔══██╗
██████╔╝██████╔╝███████║██║██╔██╗ ██║██║     ██║   ██║██║   ██║██████╔╝
██╔══██╗██╔══██╗██╔══██║██║██║╚██╗██║██║     ██║   ██║██║   ██║██╔═══╝
██████╔╝██║  ██║██║  ██║██║██║ ╚████║███████╗╚██████╔╝╚██████╔╝██║
╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝╚═╝  ╚═══╝╚══════╝ ╚═════╝  ╚═════╝ ╚═╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	BaseURL   string
	BatchSize int
}

// WithPromptConfig returns an Option that configures settings via
// interactive prompts. It only runs when the config file does not exist.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		return applyPromptOptions(c, opts)
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		BaseURL: api.DefaultBaseURL,
	}

	// Display welcome message
	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure brainloop for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'brainloop edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("BrainLoop API URL").
				Value(&opts.BaseURL).
				Validate(func(s string) error {
					return validateBaseURL(strings.TrimSpace(s))
				}),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Problems per loop").
				Options(
					huh.NewOption("3 problems", 3).Selected(true),
					huh.NewOption("5 problems", 5),
					huh.NewOption("8 problems", 8),
					huh.NewOption("10 problems", 10),
				).
				Value(&opts.BatchSize),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) error {
	c.API.BaseURL = strings.TrimSpace(opts.BaseURL)
	c.Loop.BatchSize = opts.BatchSize

	return nil
}
