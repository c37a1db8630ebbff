// Package cli implements the profilesvg command-line interface.
//
// The commands render profile templates, fill pages and SVG cards from the
// profile store, wrap SVG text, and manage the store and session.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context; under --verbose the observability hooks
// log every store access, template write and embed load.
package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pyprac/profilesvg/pkg/buildinfo"
	"github.com/pyprac/profilesvg/pkg/config"
	"github.com/pyprac/profilesvg/pkg/dom"
	"github.com/pyprac/profilesvg/pkg/errors"
	"github.com/pyprac/profilesvg/pkg/fonts"
	"github.com/pyprac/profilesvg/pkg/observability"
	"github.com/pyprac/profilesvg/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "profilesvg"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config

	// meas is built on first use; ownFont is set when it is not the shared
	// default and must be closed.
	meas    dom.Measurer
	ownFont *dom.FontMeasurer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Profilesvg renders student profiles into pages and SVG cards",
		Long:          `Profilesvg fills HTML pages and SVG documents with a student's stored profile: placeholder templates, field maps, derived keys and width-limited text wrapping.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if c.Logger.GetLevel() <= log.DebugLevel {
				hooks := newLogHooks(c.Logger)
				observability.SetRenderHooks(hooks)
				observability.SetEmbedHooks(hooks)
				observability.SetStoreHooks(hooks)
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/profilesvg/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.fillCommand())
	root.AddCommand(c.wrapCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.whoamiCommand())
	root.AddCommand(c.logoutCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// ExitCode maps a command error to a process exit status: 130 after an
// interrupt, 2 for invalid input, 3 when a record, key or element is
// missing, and 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return 130
	case errors.Is(err, errors.ErrCodeInvalidInput):
		return 2
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeTargetNotFound):
		return 3
	}
	return 1
}

// =============================================================================
// Shared Resources
// =============================================================================

// resolvedConfigPath returns --config or the default location.
func (c *CLI) resolvedConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.Path()
}

// loadConfig loads the configuration once per process.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfgPath, err := c.resolvedConfigPath()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, err
	}
	c.cfg = &cfg
	return cfg, nil
}

// openStore opens the configured profile store. Remote backends show a
// spinner while connecting.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	backend := strings.ToLower(cfg.Store.Backend)
	if backend != store.BackendRedis && backend != store.BackendMongo {
		return store.Open(ctx, cfg.Store)
	}

	spinner := newSpinnerWithContext(ctx, os.Stderr, "Connecting to "+backend+"...")
	spinner.Start()
	s, err := store.Open(ctx, cfg.Store)
	if err != nil {
		spinner.StopWithError("Could not connect to " + backend)
		return nil, err
	}
	spinner.StopWithSuccess("Connected to " + backend)
	return s, nil
}

// measurer returns the configured text measurer, falling back to the
// built-in default when the font cannot be loaded. It is built once per CLI.
func (c *CLI) measurer(ctx context.Context) dom.Measurer {
	if c.meas != nil {
		return c.meas
	}
	c.meas = dom.DefaultMeasurer()
	cfg, err := c.loadConfig()
	if err != nil || strings.EqualFold(cfg.Font, fonts.Default) || cfg.Font == "" {
		return c.meas
	}
	m, err := dom.NewNamedFontMeasurer(cfg.Font)
	if err != nil {
		loggerFromContext(ctx).Warn("font unavailable, using default measurer", "font", cfg.Font, "err", err)
		return c.meas
	}
	c.meas, c.ownFont = m, m
	return m
}

// Close releases resources held across commands.
func (c *CLI) Close() error {
	if c.ownFont == nil {
		return nil
	}
	err := c.ownFont.Close()
	c.meas, c.ownFont = nil, nil
	return err
}

// openDocument parses an HTML page or SVG file.
func (c *CLI) openDocument(ctx context.Context, page string) (*dom.Document, error) {
	return dom.ParseFile(page, dom.WithMeasurer(c.measurer(ctx)))
}

// loadEmbeds loads the SVG documents doc references, relative to the
// directory of page. Failures are logged; the affected embeds stay
// unresolved and their deferred writes never run.
func loadEmbeds(ctx context.Context, doc *dom.Document, page string) {
	if len(doc.Embeds()) == 0 {
		return
	}
	fsys := os.DirFS(filepath.Dir(page))
	if err := doc.LoadEmbeds(ctx, fsys); err != nil {
		loggerFromContext(ctx).Warn("some embedded documents did not load", "err", err)
	}
}

// embedsWith returns the loaded embeds whose documents contain any of ids.
func embedsWith(doc *dom.Document, ids ...string) []*dom.Embed {
	var out []*dom.Embed
	for _, e := range doc.Embeds() {
		sub, err := e.Document()
		if err != nil {
			continue
		}
		for _, id := range ids {
			if id != "" && sub.ElementByID(id) != nil {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// saveDocument writes doc to out, back over src when out is empty, or to
// stdout when out is "-". Each of embeds is written next to the saved page
// under its referenced path, so the page keeps resolving it.
func saveDocument(cmd *cobra.Command, doc *dom.Document, src, out string, embeds []*dom.Embed) error {
	w := cmd.OutOrStdout()
	if out == "-" {
		if len(embeds) > 0 {
			loggerFromContext(cmd.Context()).Warn("embedded documents changed but not written when printing to stdout", "count", len(embeds))
		}
		return doc.Render(w)
	}
	if out == "" {
		out = src
	}
	if err := doc.Save(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save %s", out)
	}
	printFile(w, out)

	dir := filepath.Dir(out)
	for _, e := range embeds {
		sub, err := e.Document()
		if err != nil {
			continue
		}
		rel, err := e.Path()
		if err != nil {
			return err
		}
		name := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create %s", filepath.Dir(name))
		}
		if err := sub.Save(name); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "save %s", name)
		}
		printFile(w, name)
	}
	return nil
}
