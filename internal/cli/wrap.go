package cli

import (
	"github.com/spf13/cobra"

	"github.com/pyprac/profilesvg/pkg/dom"
	"github.com/pyprac/profilesvg/pkg/errors"
	"github.com/pyprac/profilesvg/pkg/wrap"
)

// wrapOpts holds the command-line flags for the wrap command.
type wrapOpts struct {
	id     string
	width  float64
	gap    float64
	output string
}

// wrapCommand creates the wrap command, which breaks the text of an SVG
// <text> element into rows no wider than a given width.
func (c *CLI) wrapCommand() *cobra.Command {
	opts := wrapOpts{}

	cmd := &cobra.Command{
		Use:   "wrap DOC",
		Short: "Wrap SVG text into width-limited rows",
		Long: `Break the text of an SVG <text> element into <tspan> rows no wider than
--width px, measured with the configured font. Rows after the first are
offset by the font size times 1.12 plus --gap. Wrapping again with the same
text gives the same rows.`,
		Example: `  profilesvg wrap card.svg --id college --width 180
  profilesvg wrap profile.html --id motto --width 240 --gap 6 -o out.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("gap") {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				opts.gap = cfg.Wrap.LineGap
			}
			return c.runWrap(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.id, "id", "", "id of the text element (or an element inside it)")
	cmd.Flags().Float64VarP(&opts.width, "width", "w", 0, "maximum row width in px")
	cmd.Flags().Float64Var(&opts.gap, "gap", wrap.DefaultLineGap, "extra space between rows in px")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: rewrite DOC; - for stdout)")
	_ = cmd.RegisterFlagCompletionFunc("id", c.completeElementIDs)
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("width")

	return cmd
}

func (c *CLI) runWrap(cmd *cobra.Command, page string, opts wrapOpts) error {
	ctx := cmd.Context()
	watch := startStopwatch(loggerFromContext(ctx))
	if opts.width <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--width must be positive, got %g", opts.width)
	}

	doc, err := c.openDocument(ctx, page)
	if err != nil {
		return err
	}

	var embeds []*dom.Embed
	target := doc
	if doc.ElementByID(opts.id) == nil {
		loadEmbeds(ctx, doc, page)
		embeds = embedsWith(doc, opts.id)
		if len(embeds) == 0 {
			return errors.New(errors.ErrCodeTargetNotFound, "no element %q in %s or its embedded documents", opts.id, page)
		}
		embeds = embeds[:1]
		target, _ = embeds[0].Document()
	}

	res, err := wrap.WrapByID(target, opts.id, opts.width, wrap.WithLineGap(opts.gap))
	if err != nil {
		return err
	}
	if err := saveDocument(cmd, doc, page, opts.output, embeds); err != nil {
		return err
	}
	if opts.output != "-" {
		w := cmd.OutOrStdout()
		printSuccess(w, "Wrapped #%s into %d rows (line height %.2fpx)", opts.id, len(res.Lines), res.LineHeight)
		printLines(w, res.Texts())
	}
	watch.done("wrapped", "id", opts.id, "rows", len(res.Lines))
	return nil
}
