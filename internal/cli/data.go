package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/pyprac/profilesvg/pkg/errors"
	"github.com/pyprac/profilesvg/pkg/profile"
)

// readRecord reads a profile record from path, or from stdin when path is
// "-". The format follows the file extension: .yaml and .yml are YAML,
// .toml is TOML, anything else is tolerantly parsed JSON.
func readRecord(stdin io.Reader, path string) (profile.Value, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return profile.Absent(), errors.Wrap(errors.ErrCodeNotFound, err, "read %s", path)
		}
		return profile.Absent(), errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return decodeRecord(path, data)
}

// decodeRecord decodes data according to the extension of name.
func decodeRecord(name string, data []byte) (profile.Value, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var x any
		if err := yaml.Unmarshal(data, &x); err != nil {
			return profile.Absent(), errors.Wrap(errors.ErrCodeMalformedRecord, err, "decode yaml %s", name)
		}
		return profile.FromAny(x), nil
	case ".toml":
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return profile.Absent(), errors.Wrap(errors.ErrCodeMalformedRecord, err, "decode toml %s", name)
		}
		return profile.FromAny(m), nil
	}
	return profile.Parse(string(data))
}

// encodeRecord renders rec as the canonical JSON text kept in the store.
func encodeRecord(rec profile.Value) (string, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode record")
	}
	return string(b), nil
}

// recordFor returns the record in the file at path, or the stored
// studentUser record when path is empty. A missing or unreadable stored
// record yields Absent.
func (c *CLI) recordFor(ctx context.Context, stdin io.Reader, path string) (profile.Value, error) {
	if path != "" {
		return readRecord(stdin, path)
	}
	st, err := c.openStore(ctx)
	if err != nil {
		return profile.Absent(), err
	}
	defer st.Close()

	raw, ok, err := st.Get(ctx, profile.KeyStudentUser)
	if err != nil || !ok {
		return profile.Absent(), err
	}
	rec, err := profile.Parse(raw)
	if err != nil {
		loggerFromContext(ctx).Warn("studentUser parse failed", "err", err)
		return profile.Absent(), nil
	}
	return rec, nil
}
