package cli

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/pyprac/profilesvg/pkg/profile"
	"github.com/pyprac/profilesvg/pkg/session"
)

// whoamiCommand creates the whoami command, which shows the signed-in
// student.
func (c *CLI) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in student",
		Long: `Show the signed-in student's display name, session id and derived
fields.

Without a stored record, or with one that cannot be parsed, whoami points
at the login page and exits with an error. A corrupt record is removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := session.Load(ctx, st, loggerFromContext(ctx))
			switch {
			case stderrors.Is(err, session.ErrNoSession), stderrors.Is(err, session.ErrCorrupt):
				printWarning(w, "Not signed in")
				printDetail(w, "Login page: %s", cfg.LoginURL)
				printNextStep(w, "Sign in", "profilesvg store import profile.json")
				return err
			case err != nil:
				return err
			}

			d := profile.Derive(rec)
			printKeyValue(w, "Name", session.DisplayName(rec))
			if id, err := session.ID(ctx, st); err == nil {
				printKeyValue(w, "Session", id)
			}
			printKeyValue(w, "Full name", d.FullName)
			printKeyValue(w, "Section", d.ClassSec)
			printKeyValue(w, "Roll", d.ClassRoll)
			printKeyValue(w, "Email", d.StuEmail)
			return nil
		},
	}
}

// logoutCommand creates the logout command.
func (c *CLI) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign the current student out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := session.Logout(ctx, st); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printSuccess(w, "Signed out")
			printDetail(w, "Login page: %s", cfg.LoginURL)
			return nil
		},
	}
}
