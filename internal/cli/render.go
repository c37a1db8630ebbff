package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyprac/profilesvg/pkg/template"
)

// renderCommand creates the render command, which prints a template
// rendered against a record.
func (c *CLI) renderCommand() *cobra.Command {
	var dataPath string

	cmd := &cobra.Command{
		Use:   "render TEMPLATE",
		Short: "Render a placeholder template",
		Long: `Render a placeholder template against a profile record and print the result.

Placeholders are ${path}, ${path|transform|...} and ${add(a, b)}. Paths walk
the record one dotted segment at a time; missing values render empty.
Transforms: ` + fmt.Sprint(template.Builtins()) + `.`,
		Example: `  profilesvg render 'Hi ${firstName|upper}!'
  profilesvg render 'Total: ${add(marks.BEE, marks.AC)}' --data ann.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.recordFor(cmd.Context(), cmd.InOrStdin(), dataPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), template.Render(args[0], data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "record file (JSON, YAML or TOML, - for stdin); defaults to the stored studentUser")
	return cmd
}
