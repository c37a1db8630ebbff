// Package fonts provides the TrueType fonts used to measure SVG text.
//
// The fonts come from the Go font family in golang.org/x/image/font/gofont,
// compiled into the binary so measurement works without any system fonts.
package fonts

import (
	"slices"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/pyprac/profilesvg/pkg/errors"
)

// Default is the font used when none is configured.
const Default = "go-regular"

var registry = map[string][]byte{
	"go-regular": goregular.TTF,
	"go-bold":    gobold.TTF,
	"go-mono":    gomono.TTF,
}

// TTF returns the TrueType data of the named font. Names are
// case-insensitive; "" selects Default.
func TTF(name string) ([]byte, error) {
	if name == "" {
		name = Default
	}
	data, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown font %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names returns the available font names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FallbackFontFamily is a CSS font-family list whose metrics are close to
// the Go fonts.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`
