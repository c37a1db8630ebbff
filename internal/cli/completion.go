package cli

import (
	"context"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pyprac/profilesvg/pkg/store"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for profilesvg.

Besides commands and flags, the scripts complete stored keys for
"store get" and "store rm", and element ids for --target and --id from the
document named on the command line and its embedded SVG files.

  bash        source <(profilesvg completion bash)
  zsh         profilesvg completion zsh > "${fpath[1]}/_profilesvg"
  fish        profilesvg completion fish | source
  powershell  profilesvg completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}
}

// completeStoreKeys completes stored keys not already named in args.
func (c *CLI) completeStoreKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := c.openStore(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer st.Close()

	keys, listed, err := store.Keys(ctx, st)
	if err != nil || !listed {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	slices.Sort(keys)
	return matching(keys, args, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeElementIDs completes element ids of the document in args[0] and
// of its local embedded SVG documents.
func (c *CLI) completeElementIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	doc, err := c.openDocument(ctx, args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	loadEmbeds(ctx, doc, args[0])

	ids := doc.IDs()
	for _, e := range doc.Embeds() {
		if sub, err := e.Document(); err == nil {
			ids = append(ids, sub.IDs()...)
		}
	}
	slices.Sort(ids)
	return matching(slices.Compact(ids), nil, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// matching returns the candidates starting with prefix that are not in used.
func matching(candidates, used []string, prefix string) []string {
	var out []string
	for _, s := range candidates {
		if strings.HasPrefix(s, prefix) && !slices.Contains(used, s) {
			out = append(out, s)
		}
	}
	return out
}
