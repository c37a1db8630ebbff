package template

import (
	"slices"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pyprac/profilesvg/pkg/profile"
)

// Transform is a pure function applied to a placeholder value through the
// pipe syntax.
type Transform func(profile.Value) profile.Value

// builtins is the default registry. It is never modified after init.
var builtins = map[string]Transform{
	"upper":   upper,
	"lower":   lower,
	"len":     length,
	"reverse": reverse,
}

// Builtins returns the names of the built-in transforms in sorted order.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Casers carry state, so each call builds its own.
func upper(v profile.Value) profile.Value {
	return profile.String(cases.Upper(language.Und).String(v.String()))
}

func lower(v profile.Value) profile.Value {
	return profile.String(cases.Lower(language.Und).String(v.String()))
}

func length(v profile.Value) profile.Value {
	return profile.Number(float64(utf8.RuneCountInString(v.String())))
}

func reverse(v profile.Value) profile.Value {
	rs := []rune(v.String())
	slices.Reverse(rs)
	return profile.String(string(rs))
}
