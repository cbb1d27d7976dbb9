package app

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/midaytech/brainloop/internal/api"
	"github.com/midaytech/brainloop/internal/ui"
)

var errRequired = errors.New("this field is required")

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errRequired
	}

	return nil
}

// credentials holds account details collected from flags and prompts.
type credentials struct {
	Username string
	Email    string
	Password string
}

func newCredentials(ctx *cli.Context) *credentials {
	return &credentials{
		Username: ctx.String("username"),
		Email:    ctx.String("email"),
		Password: ctx.String("password"),
	}
}

// prompt asks for the fields that were not given as flags.
func (c *credentials) prompt(withUsername, withPassword bool) error {
	var fields []huh.Field

	if withUsername && c.Username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&c.Username).
			Validate(required))
	}

	if c.Email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(&c.Email).
			Validate(required))
	}

	if withPassword && c.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&c.Password).
			Validate(required))
	}

	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

// loginAction exchanges credentials for a token and stores it. An
// unverified account is offered a new verification email.
func loginAction(ctx *cli.Context) error {
	e, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer e.Close()

	creds := newCredentials(ctx)
	if err := creds.prompt(false, true); err != nil {
		return err
	}

	token, err := e.client.Login(ctx.Context, strings.TrimSpace(creds.Email), creds.Password)
	if api.NeedsVerification(err) {
		pterm.Warning.Println(err)

		ok, cerr := confirm("Send a new verification email to " + creds.Email + "?")
		if cerr != nil || !ok {
			return cerr
		}

		if err := e.client.ResendVerification(ctx.Context, creds.Email); err != nil {
			return err
		}

		pterm.Success.Println("verification email sent: check your inbox")

		return nil
	}

	if err != nil {
		return err
	}

	if err := e.db.SaveToken(token); err != nil {
		return err
	}

	u, err := api.ParseToken(token)
	if err != nil || u.DisplayName() == "" {
		pterm.Success.Println("logged in")
		return nil
	}

	pterm.Success.Printfln("logged in as %s", u.DisplayName())

	return nil
}

func registerAction(ctx *cli.Context) error {
	e, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer e.Close()

	creds := newCredentials(ctx)
	if err := creds.prompt(true, true); err != nil {
		return err
	}

	err = e.client.Register(ctx.Context, strings.TrimSpace(creds.Username), strings.TrimSpace(creds.Email), creds.Password)
	if err != nil {
		return err
	}

	pterm.Success.Println("account created: check your inbox to verify your email, then run 'brainloop login'")

	return nil
}

func logoutAction(ctx *cli.Context) error {
	e, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.db.DeleteToken(); err != nil {
		return err
	}

	pterm.Success.Println("logged out")

	return nil
}

func whoamiAction(ctx *cli.Context) error {
	e, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer e.Close()

	token, err := e.db.Token()
	if err != nil {
		return err
	}

	u, err := api.ParseToken(token)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		return ui.PrintJSON(u, os.Stdout)
	}

	pterm.Printfln("%s %s", ui.Highlight(u.DisplayName()), ui.Dim(u.Email))

	if !u.ExpiresAt.IsZero() {
		status := "session valid until "
		if api.Expired(&u, time.Now()) {
			status = "session expired on "
		}

		pterm.Println(ui.Dim(status + u.ExpiresAt.Local().Format(timeFormat(e.cfg.Display.TwentyFourHour))))
	}

	return nil
}

func forgotPasswordAction(ctx *cli.Context) error {
	e, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer e.Close()

	creds := newCredentials(ctx)
	if err := creds.prompt(false, false); err != nil {
		return err
	}

	if err := e.client.ForgotPassword(ctx.Context, strings.TrimSpace(creds.Email)); err != nil {
		return err
	}

	pterm.Success.Println("if an account exists for that email, a reset link is on its way")

	return nil
}

func resetPasswordAction(ctx *cli.Context) error {
	e, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer e.Close()

	creds := &credentials{Password: ctx.String("password")}
	if creds.Password == "" {
		err = huh.NewInput().
			Title("New password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.Password).
			Validate(required).
			Run()
		if err != nil {
			return err
		}
	}

	if err := e.client.ResetPassword(ctx.Context, ctx.String("token"), creds.Password); err != nil {
		return err
	}

	// a password change invalidates the stored session
	if err := e.db.DeleteToken(); err != nil {
		return err
	}

	pterm.Success.Println("password updated: run 'brainloop login' with your new password")

	return nil
}

func verifyEmailAction(ctx *cli.Context) error {
	token := strings.TrimSpace(ctx.Args().First())
	if token == "" {
		token = ctx.String("token")
	}

	if token == "" {
		return errRequired
	}

	e, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.client.VerifyEmail(ctx.Context, token); err != nil {
		return err
	}

	pterm.Success.Println("email verified: you can now log in")

	return nil
}

func resendVerificationAction(ctx *cli.Context) error {
	e, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer e.Close()

	creds := newCredentials(ctx)
	if err := creds.prompt(false, false); err != nil {
		return err
	}

	if err := e.client.ResendVerification(ctx.Context, strings.TrimSpace(creds.Email)); err != nil {
		return err
	}

	pterm.Success.Println("verification email sent: check your inbox")

	return nil
}
