package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/daleeli/internal/domain"
	"github.com/mekedron/daleeli/internal/service/output"
	"github.com/mekedron/daleeli/internal/service/profile"
)

func newAuthCommand(deps Dependencies) *cobra.Command {
	auth := &cobra.Command{
		Use:   "auth",
		Short: "Manage local accounts and the signed-in user.",
	}
	auth.AddCommand(newAuthSignUpCommand(deps))
	auth.AddCommand(newAuthLogInCommand(deps))
	auth.AddCommand(newAuthLogOutCommand(deps))
	auth.AddCommand(newAuthStatusCommand(deps))
	return auth
}

func newAuthSignUpCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var in profile.SignUpInput

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a local account and sign in.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newRunContext(cmd, flags)
			if err != nil {
				return err
			}
			if deps.Accounts == nil {
				return rc.emitError(codeAccount, "Account store is not available.")
			}
			user, err := deps.Accounts.SignUp(rc.ctx(), in)
			if err != nil {
				return rc.emitAccountError(err)
			}
			return renderProfile(rc, "Signed up", user)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password")
	cmd.Flags().StringVar(&in.ConfirmPassword, "confirm-password", "", "Password again")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("confirm-password")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newAuthLogInCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to a local account.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newRunContext(cmd, flags)
			if err != nil {
				return err
			}
			if deps.Accounts == nil {
				return rc.emitError(codeAccount, "Account store is not available.")
			}
			user, err := deps.Accounts.LogIn(rc.ctx(), email, password)
			if err != nil {
				return rc.emitAccountError(err)
			}
			return renderProfile(rc, "Logged in", user)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newAuthLogOutCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out. Accounts are kept.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newRunContext(cmd, flags)
			if err != nil {
				return err
			}
			if deps.Accounts == nil {
				return rc.emitError(codeAccount, "Account store is not available.")
			}
			if err := deps.Accounts.LogOut(rc.ctx()); err != nil {
				return rc.emitAccountError(err)
			}
			return rc.render(func() string { return "Logged out." }, map[string]any{"logged_in": false}, nil)
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newAuthStatusCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the signed-in user and saved location.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newRunContext(cmd, flags)
			if err != nil {
				return err
			}
			session := rc.loadSession(deps)
			data := map[string]any{
				"logged_in":     session.LoggedIn && session.CurrentUser != nil,
				"email":         "",
				"country_code":  session.CountryCode,
				"last_location": session.LastLocation,
				"accounts":      len(session.Accounts),
			}
			if session.CurrentUser != nil && session.LoggedIn {
				data["email"] = session.CurrentUser.Email
			}
			if deps.Sessions != nil {
				data["session_path"] = deps.Sessions.Path()
			}
			return rc.render(func() string { return buildAuthStatusTable(data) }, data, nil)
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

func buildAuthStatusTable(data map[string]any) string {
	loggedIn, _ := data["logged_in"].(bool)
	email, _ := data["email"].(string)
	country, _ := data["country_code"].(string)
	location := "-"
	if loc, ok := data["last_location"].(*domain.Location); ok && loc != nil {
		location = loc.String()
	}
	rows := [][]string{
		{"Logged in", yesNo(loggedIn)},
		{"Email", fallback(email, "-")},
		{"Country", fallback(strings.TrimSpace(domain.FlagEmoji(country)+" "+country), "-")},
		{"Last location", location},
	}
	if path, ok := data["session_path"].(string); ok && path != "" {
		rows = append(rows, []string{"Session file", path})
	}
	return output.RenderTable("Auth status", []string{"Field", "Value"}, rows)
}

func (rc *runContext) emitAccountError(err error) error {
	switch {
	case errors.Is(err, profile.ErrDuplicateEmail),
		errors.Is(err, profile.ErrPasswordMismatch),
		errors.Is(err, profile.ErrInvalidCredentials),
		errors.Is(err, profile.ErrNotLoggedIn),
		errors.Is(err, profile.ErrInvalidInput):
		return rc.emitError(codeAccount, err.Error())
	default:
		return rc.emitError(codeSession, err.Error())
	}
}

func fallback(value string, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
