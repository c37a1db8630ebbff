// Package config loads the profilesvg configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/profilesvg/config.toml
// (~/.config/profilesvg/config.toml when XDG_CONFIG_HOME is unset). Every
// setting is optional; missing keys keep the values from [Default].
//
//	login_url = "/PyPrac/login.html"
//	font = "go-regular"
//
//	[store]
//	backend = "sqlite"
//	path = "/var/lib/profilesvg/profile.db"
//
//	[wrap]
//	line_gap = 4.0
//
//	[id_map]
//	stuEmail = "email"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"

	"github.com/pyprac/profilesvg/pkg/errors"
	"github.com/pyprac/profilesvg/pkg/fonts"
	"github.com/pyprac/profilesvg/pkg/profile"
	"github.com/pyprac/profilesvg/pkg/session"
	"github.com/pyprac/profilesvg/pkg/store"
	"github.com/pyprac/profilesvg/pkg/wrap"
)

// AppName names the configuration and data directories.
const AppName = "profilesvg"

// FileName is the configuration file name inside the config directory.
const FileName = "config.toml"

// Config is the full configuration.
type Config struct {
	// LoginURL is where signed-out users are sent.
	LoginURL string `toml:"login_url"`

	// Font names the measuring font; see fonts.Names.
	Font string `toml:"font"`

	Store store.Config `toml:"store"`
	Wrap  WrapConfig   `toml:"wrap"`

	// IDMap maps field names to the element ids Fill writes them into.
	IDMap map[string]string `toml:"id_map"`
}

// WrapConfig holds wrap defaults.
type WrapConfig struct {
	// LineGap is the extra space between rows, in px.
	LineGap float64 `toml:"line_gap"`
}

// Default returns the built-in configuration. Store paths are left empty
// and filled in by Load.
func Default() Config {
	return Config{
		LoginURL: session.DefaultLoginURL,
		Font:     fonts.Default,
		Store:    store.Config{Backend: store.BackendFile},
		Wrap:     WrapConfig{LineGap: wrap.DefaultLineGap},
		IDMap:    profile.DefaultIDMap(),
	}
}

// Path returns the default configuration file path.
func Path() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// DataDir returns the directory holding the default file and sqlite stores.
func DataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "locate home directory")
	}
	return filepath.Join(home, fallback, AppName), nil
}

// Load reads the file at path over Default. A missing file is not an
// error. Unknown keys are rejected so that typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		switch {
		case os.IsNotExist(err):
			cfg = Default()
		case err != nil:
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
		default:
			if undecoded := meta.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				sort.Strings(keys)
				return Config{}, errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys %s", path, strings.Join(keys, ", "))
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if err := cfg.fillStorePath(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late.
func (c Config) Validate() error {
	if c.Wrap.LineGap < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "wrap.line_gap must not be negative, got %g", c.Wrap.LineGap)
	}
	if _, err := fonts.TTF(c.Font); err != nil {
		return err
	}
	return nil
}

func (c *Config) fillStorePath() error {
	if c.Store.Path != "" {
		return nil
	}
	var name string
	switch strings.ToLower(c.Store.Backend) {
	case "", store.BackendFile:
		name = "store"
	case store.BackendSQLite:
		name = "profile.db"
	default:
		return nil
	}
	dir, err := DataDir()
	if err != nil {
		return err
	}
	c.Store.Path = filepath.Join(dir, name)
	return nil
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}

// Init writes the default configuration to path. An existing file is kept
// unless force is set.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s already exists", path)
		}
	}
	data, err := Default().Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create config directory")
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
