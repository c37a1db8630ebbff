package dom

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// DefaultFontSize is the font size of an element with no sized ancestor.
const DefaultFontSize = 16.0

// fontSize resolves the font size of n from its own and its ancestors'
// font-size attributes and inline style declarations. The style declaration
// wins over the attribute on the same element. Relative units resolve
// against the parent.
func fontSize(n *html.Node) float64 {
	if n == nil || n.Type != html.ElementNode {
		return DefaultFontSize
	}
	decl, ok := styleProperty(attr(n, "style"), "font-size")
	if !ok {
		decl = attr(n, "font-size")
	}
	if decl == "" {
		return fontSize(n.Parent)
	}
	if px, ok := parseLength(decl, func() float64 { return fontSize(n.Parent) }); ok {
		return px
	}
	return fontSize(n.Parent)
}

// styleProperty returns the value of prop in an inline style attribute.
func styleProperty(style, prop string) (string, bool) {
	var (
		val   string
		found bool
	)
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), prop) {
			continue
		}
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important"))
		if value != "" {
			val, found = value, true
		}
	}
	return val, found
}

// absoluteUnits holds pixels-per-unit as a ratio.
var absoluteUnits = map[string]struct{ mul, div float64 }{
	"":   {1, 1},
	"px": {1, 1},
	"pt": {96, 72},
	"pc": {16, 1},
	"in": {96, 1},
	"cm": {96, 2.54},
	"mm": {96, 25.4},
}

// parseLength converts a CSS font-size to pixels. parent is consulted only
// for relative units.
func parseLength(s string, parent func() float64) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	i := len(s)
	for i > 0 && (s[i-1] < '0' || s[i-1] > '9') && s[i-1] != '.' {
		i--
	}
	num, unit := s[:i], s[i:]
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v < 0 {
		return 0, false
	}

	if k, ok := absoluteUnits[unit]; ok {
		return v * k.mul / k.div, true
	}
	switch unit {
	case "em":
		return v * parent(), true
	case "%":
		return v / 100 * parent(), true
	case "rem":
		return v * DefaultFontSize, true
	}
	return 0, false
}
