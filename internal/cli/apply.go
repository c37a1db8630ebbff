package cli

import (
	"github.com/spf13/cobra"

	"github.com/pyprac/profilesvg/pkg/apply"
	"github.com/pyprac/profilesvg/pkg/errors"
	"github.com/pyprac/profilesvg/pkg/profile"
	"github.com/pyprac/profilesvg/pkg/store"
	"github.com/pyprac/profilesvg/pkg/wrap"
)

// applyOpts holds the command-line flags for the apply command.
type applyOpts struct {
	target   string  // element id to write into
	template string  // placeholder template
	data     string  // record file; empty reads the store
	width    float64 // wrap width in px; 0 disables wrapping
	gap      float64 // extra space between wrapped rows
	output   string  // output path; empty rewrites in place, - prints
}

// applyCommand creates the apply command, which writes a rendered template
// into an element of a page or one of its embedded SVG documents.
func (c *CLI) applyCommand() *cobra.Command {
	opts := applyOpts{}

	cmd := &cobra.Command{
		Use:   "apply DOC",
		Short: "Write a rendered template into a page or SVG",
		Long: `Render a template and write it as the text of an element.

The page itself is searched first. If the element is not there, the write
is armed on every embedded SVG document (<object data="*.svg">,
<embed src="*.svg">) and lands when that document loads. Embedded
documents are loaded from the page's directory; remote sources are never
fetched.`,
		Example: `  profilesvg apply card.svg --target name --template '${firstName} ${lastName}'
  profilesvg apply profile.html --target college --template '${college}' --wrap 180 -o out.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("gap") {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				opts.gap = cfg.Wrap.LineGap
			}
			return c.runApply(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "id of the element to write")
	cmd.Flags().StringVar(&opts.template, "template", "", "template to render")
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "record file (JSON, YAML or TOML); defaults to the stored studentUser")
	cmd.Flags().Float64Var(&opts.width, "wrap", 0, "wrap the written text to this width in px")
	cmd.Flags().Float64Var(&opts.gap, "gap", wrap.DefaultLineGap, "extra space between wrapped rows in px")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: rewrite DOC; - for stdout)")
	_ = cmd.RegisterFlagCompletionFunc("target", c.completeElementIDs)
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func (c *CLI) runApply(cmd *cobra.Command, page string, opts applyOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	watch := startStopwatch(logger)

	doc, err := c.openDocument(ctx, page)
	if err != nil {
		return err
	}

	data := profile.Absent()
	var st store.Store
	if opts.data != "" {
		if data, err = readRecord(cmd.InOrStdin(), opts.data); err != nil {
			return err
		}
	} else {
		if st, err = c.openStore(ctx); err != nil {
			return err
		}
		defer st.Close()
	}

	aopts := []apply.Option{apply.WithLogger(logger)}
	if opts.width > 0 {
		aopts = append(aopts, apply.WithWrap(opts.width, wrap.WithLineGap(opts.gap)))
	}
	a := apply.New(doc, st, aopts...)

	applied := a.ApplyTemplate(ctx, opts.target, opts.template, data)
	loadEmbeds(ctx, doc, page)

	embeds := embedsWith(doc, opts.target)
	if !applied && len(embeds) == 0 {
		return errors.New(errors.ErrCodeTargetNotFound, "no element %q in %s or its embedded documents", opts.target, page)
	}
	if applied && doc.ElementByID(opts.target) != nil {
		embeds = nil
	}
	if err := saveDocument(cmd, doc, page, opts.output, embeds); err != nil {
		return err
	}
	if opts.output != "-" {
		watch.done("applied", "target", opts.target)
	}
	return nil
}
