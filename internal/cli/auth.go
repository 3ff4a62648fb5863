package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hrmstack/leavectl/internal/intake"
)

func newLoginCommand(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				var err error
				email, err = prompt(cmd, "Email: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				var err error
				password, err = promptSecret(cmd, "Password: ")
				if err != nil {
					return err
				}
			}

			resp, err := app.api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := app.session.Save(resp.Token); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", resp.User.Name, resp.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.api.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> role=%s\n", user.Name, user.Email, user.Role)
			return nil
		},
	}
}

func newPasswdCommand(app *App) *cobra.Command {
	var current, newPassword, confirm string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			res := intake.ValidatePasswordChange(current, newPassword, confirm)
			if !res.Valid {
				printFieldErrors(cmd, res.Errors)
				return fmt.Errorf("password change rejected")
			}

			if err := app.api.ChangePassword(cmd.Context(), current, newPassword); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "current password")
	cmd.Flags().StringVar(&newPassword, "new", "", "new password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "new password, again")
	return cmd
}

func prompt(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads a credential without echoing it when stdin is a
// terminal, falling back to a plain line read for pipes and redirects.
func promptSecret(cmd *cobra.Command, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(cmd, label)
	}

	fmt.Fprint(cmd.OutOrStdout(), label)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func printFieldErrors(cmd *cobra.Command, errs map[string]string) {
	for field, msg := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", field, msg)
	}
}
