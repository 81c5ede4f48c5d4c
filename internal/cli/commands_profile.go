package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/daleeli/internal/domain"
	"github.com/mekedron/daleeli/internal/service/output"
	"github.com/mekedron/daleeli/internal/service/profile"
)

func newProfileCommand(deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the signed-in user's profile.",
	}
	cmd.AddCommand(newProfileShowCommand(deps))
	cmd.AddCommand(newProfileUpdateCommand(deps))
	return cmd
}

func newProfileShowCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the signed-in profile.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newRunContext(cmd, flags)
			if err != nil {
				return err
			}
			if deps.Accounts == nil {
				return rc.emitError(codeAccount, "Account store is not available.")
			}
			user, err := deps.Accounts.Current(rc.ctx())
			if err != nil {
				return rc.emitAccountError(err)
			}
			return renderProfile(rc, "Profile", user)
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newProfileUpdateCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var name string
	var avatar string
	var preferences []string
	var clearPreferences bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the signed-in profile.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newRunContext(cmd, flags)
			if err != nil {
				return err
			}
			if deps.Accounts == nil {
				return rc.emitError(codeAccount, "Account store is not available.")
			}

			var update profile.Update
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("avatar") {
				update.Avatar = &avatar
			}
			if cmd.Flags().Changed("preference") {
				update.Preferences = preferences
			}
			if clearPreferences {
				update.Preferences = []string{}
			}
			if update.Name == nil && update.Avatar == nil && update.Preferences == nil {
				return rc.emitError(codeInvalidArgument, "Nothing to update. Use --name, --avatar, --preference or --clear-preferences.")
			}

			user, err := deps.Accounts.UpdateCurrent(rc.ctx(), update)
			if err != nil {
				return rc.emitAccountError(err)
			}
			return renderProfile(rc, "Profile updated", user)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar image URL (empty clears it)")
	cmd.Flags().StringArrayVar(&preferences, "preference", nil, "Preferred category or interest (repeatable, replaces the list)")
	cmd.Flags().BoolVar(&clearPreferences, "clear-preferences", false, "Remove all preferences")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func renderProfile(rc *runContext, title string, user domain.UserProfile) error {
	return rc.render(func() string {
		avatar := "-"
		if user.Avatar != nil {
			avatar = *user.Avatar
		}
		rows := [][]string{
			{"Name", user.Name},
			{"Email", user.Email},
			{"Avatar", avatar},
			{"Preferences", fallback(strings.Join(user.Preferences, ", "), "-")},
		}
		return output.RenderTable(title, []string{"Field", "Value"}, rows)
	}, user, nil)
}
