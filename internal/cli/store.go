package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pyprac/profilesvg/pkg/apply"
	"github.com/pyprac/profilesvg/pkg/errors"
	"github.com/pyprac/profilesvg/pkg/profile"
	"github.com/pyprac/profilesvg/pkg/session"
	"github.com/pyprac/profilesvg/pkg/store"
)

// storeCommand creates the store management command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the profile store",
		Long: `Read and write the profile store: the studentUser record and the derived
fullName, classSec, classRoll and stuEmail keys.

The backend (file, sqlite, redis, mongo or memory) is chosen in the [store]
table of the config file.`,
	}

	cmd.AddCommand(c.storeGetCommand())
	cmd.AddCommand(c.storeSetCommand())
	cmd.AddCommand(c.storeRemoveCommand())
	cmd.AddCommand(c.storeImportCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeBrowseCommand())
	cmd.AddCommand(c.storePathCommand())

	return cmd
}

// storeGetCommand creates the "store get" subcommand.
func (c *CLI) storeGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print a stored value",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return c.completeStoreKeys(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			v, ok, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "no value for %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

// storeSetCommand creates the "store set" subcommand.
func (c *CLI) storeSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a value as is",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Set(ctx, args[0], args[1]); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Set %s", args[0])
			return nil
		},
	}
}

// storeRemoveCommand creates the "store rm" subcommand.
func (c *CLI) storeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "rm KEY...",
		Aliases:           []string{"remove"},
		Short:             "Remove stored values",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeStoreKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			for _, key := range args {
				if err := st.Remove(ctx, key); err != nil {
					return err
				}
			}
			printSuccess(cmd.OutOrStdout(), "Removed %d keys", len(args))
			return nil
		},
	}
}

// storeImportCommand creates the "store import" subcommand, which signs a
// student in from a record file.
func (c *CLI) storeImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Sign a student in from a JSON, YAML or TOML record",
		Long: `Store a profile record as studentUser and write the derived keys.

The file format follows its extension (.json, .yaml, .yml, .toml); other
files, and - for stdin, are parsed as JSON, accepting single-quoted and
unquoted keys. The record is stored as canonical JSON.`,
		Example: `  profilesvg store import ann.yaml
  echo "{firstName: 'Ann', section: 'B'}" | profilesvg store import -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			rec, err := readRecord(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			text, err := encodeRecord(rec)
			if err != nil {
				return err
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if _, err := session.Login(ctx, st, text); err != nil {
				return err
			}
			d, err := apply.StoreDerived(ctx, st, rec)
			if err != nil {
				return err
			}

			printSuccess(w, "Signed in as %s", StyleHighlight.Render(session.DisplayName(rec)))
			printKeyValue(w, profile.KeyFullName, d.FullName)
			printKeyValue(w, profile.KeyClassSec, d.ClassSec)
			printKeyValue(w, profile.KeyClassRoll, d.ClassRoll)
			printKeyValue(w, profile.KeyStuEmail, d.StuEmail)
			return nil
		},
	}
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored keys and values",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := c.storeEntries(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(entries) == 0 {
				printInfo(w, "Store is empty")
				return nil
			}

			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{e.Key, preview(e.Value, 48), fmt.Sprint(len(e.Value))}
			}
			t := newTable([]string{"Key", "Value", "Bytes"}, rows, func(row, col int) lipgloss.Style {
				if col == 0 {
					return StyleHighlight
				}
				return lipgloss.NewStyle()
			})
			fmt.Fprintln(w, t.Render())
			return nil
		},
	}
}

// storeBrowseCommand creates the "store browse" subcommand, an interactive
// key picker that prints the selected value.
func (c *CLI) storeBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Pick a stored key interactively and print its value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := c.storeEntries(cmd)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo(cmd.OutOrStdout(), "Store is empty")
				return nil
			}

			p := tea.NewProgram(NewKeyListModel(entries), tea.WithContext(cmd.Context()), tea.WithOutput(cmd.ErrOrStderr()))
			final, err := p.Run()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "run key browser")
			}
			if m, ok := final.(KeyListModel); ok && m.Selected != nil {
				fmt.Fprintln(cmd.OutOrStdout(), m.Selected.Value)
			}
			return nil
		},
	}
}

// storePathCommand creates the "store path" subcommand.
func (c *CLI) storePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the store keeps its data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch backend := strings.ToLower(cfg.Store.Backend); backend {
			case store.BackendRedis:
				fmt.Fprintf(w, "redis://%s/%d\n", cfg.Store.Redis.Addr, cfg.Store.Redis.DB)
			case store.BackendMongo:
				fmt.Fprintln(w, cfg.Store.Mongo.URI)
			case store.BackendMemory:
				fmt.Fprintln(w, "(memory)")
			default:
				fmt.Fprintln(w, cfg.Store.Path)
			}
			return nil
		},
	}
}

// storeEntries reads every key and value, sorted by key.
func (c *CLI) storeEntries(cmd *cobra.Command) ([]profile.KeyValue, error) {
	ctx := cmd.Context()
	st, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	keys, listed, err := store.Keys(ctx, st)
	if err != nil {
		return nil, err
	}
	if !listed {
		return nil, errors.New(errors.ErrCodeUnsupported, "this store backend cannot list keys")
	}
	slices.Sort(keys)
	entries := make([]profile.KeyValue, 0, len(keys))
	for _, k := range keys {
		v, ok, err := st.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, profile.KeyValue{Key: k, Value: v})
		}
	}
	return entries, nil
}

// preview shortens s to at most n runes on one line.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
