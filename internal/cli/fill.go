package cli

import (
	"github.com/spf13/cobra"

	"github.com/pyprac/profilesvg/pkg/apply"
	"github.com/pyprac/profilesvg/pkg/profile"
	"github.com/pyprac/profilesvg/pkg/session"
)

// fillCommand creates the fill command, which copies the signed-in
// student's fields into a page and its embedded SVG documents.
func (c *CLI) fillCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fill DOC",
		Short: "Fill a page with the stored student's fields",
		Long: `Write every mapped profile field into the elements named by the id map,
in the page and in each embedded SVG document, then store the derived
fullName, classSec, classRoll and stuEmail keys and show them in the page.

The id map comes from the [id_map] table of the config file.`,
		Example: `  profilesvg fill profile.html
  profilesvg fill card.svg -o filled.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFill(cmd, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: rewrite DOC; - for stdout)")
	return cmd
}

func (c *CLI) runFill(cmd *cobra.Command, page, output string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	watch := startStopwatch(logger)
	w := cmd.OutOrStdout()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	doc, err := c.openDocument(ctx, page)
	if err != nil {
		return err
	}
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	a := apply.New(doc, st, apply.WithLogger(logger), apply.WithIDMap(cfg.IDMap))
	rec, err := a.Fill(ctx)
	if err != nil {
		return err
	}
	if rec.IsAbsent() {
		printWarning(w, "No student signed in; nothing to fill")
		printNextStep(w, "Sign in", "profilesvg store import profile.json")
		printDetail(w, "Login page: %s", cfg.LoginURL)
		return nil
	}
	loadEmbeds(ctx, doc, page)

	ids := make([]string, 0, len(cfg.IDMap))
	for _, id := range cfg.IDMap {
		ids = append(ids, id)
	}
	if err := saveDocument(cmd, doc, page, output, embedsWith(doc, ids...)); err != nil {
		return err
	}
	if output != "-" {
		printSuccess(w, "Filled %s for %s", page, StyleHighlight.Render(session.DisplayName(rec)))
		printDetail(w, "Stored %s, %s, %s, %s", profile.KeyFullName, profile.KeyClassSec, profile.KeyClassRoll, profile.KeyStuEmail)
	}
	watch.done("filled", "page", page, "embeds", len(doc.Embeds()))
	return nil
}
