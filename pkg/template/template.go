// Package template renders ${...} placeholders against a profile record.
//
// A placeholder holds either a dotted path followed by optional pipe
// transforms, or the numeric function add:
//
//	Name: ${firstName | upper} ${lastName}
//	Marks: ${marks.BEE}
//	Total: ${add(marks.BEE, marks.AC)}
//
// Paths that resolve to nothing render as the empty string. Unknown
// transforms pass the value through. add coerces both operands to numbers and
// returns their sum plus one; numeric literals are accepted as operands and
// non-numeric operands produce NaN. Text that is
// not a well-formed placeholder is copied verbatim, and rendering never
// fails.
package template

import (
	"math"
	"regexp"
	"strings"

	"github.com/pyprac/profilesvg/pkg/profile"
)

// placeholder matches ${...} spans. Braces cannot nest inside one span.
var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// addOffset is added to every add(a, b) result.
const addOffset = 1

// Engine renders templates with a fixed transform registry. An Engine is
// immutable and safe for concurrent use.
type Engine struct {
	transforms map[string]Transform
}

// Option configures an Engine.
type Option func(*Engine)

// WithTransform registers an extra transform, replacing a built-in of the
// same name for this engine only.
func WithTransform(name string, fn Transform) Option {
	return func(e *Engine) {
		if fn != nil {
			e.transforms[name] = fn
		}
	}
}

// New returns an Engine with the built-in transforms plus any registered
// through opts.
func New(opts ...Option) *Engine {
	e := &Engine{transforms: make(map[string]Transform, len(builtins)+len(opts))}
	for name, fn := range builtins {
		e.transforms[name] = fn
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var std = New()

// Render renders tmpl against data using the built-in transforms.
func Render(tmpl string, data profile.Value) string {
	return std.Render(tmpl, data)
}

// Render replaces every placeholder in tmpl. Each span is evaluated
// independently and the output is not rescanned.
func (e *Engine) Render(tmpl string, data profile.Value) string {
	matches := placeholder.FindAllStringSubmatchIndex(tmpl, -1)
	if len(matches) == 0 {
		return tmpl
	}

	var b strings.Builder
	b.Grow(len(tmpl))
	last := 0
	for _, m := range matches {
		b.WriteString(tmpl[last:m[0]])
		b.WriteString(e.Eval(tmpl[m[2]:m[3]], data).String())
		last = m[1]
	}
	b.WriteString(tmpl[last:])
	return b.String()
}

// Eval evaluates the content of one placeholder, without the ${ } wrapper.
func (e *Engine) Eval(expr string, data profile.Value) profile.Value {
	expr = strings.TrimSpace(expr)

	if inner, ok := cutCall(expr, "add"); ok {
		left, right := splitArgs(inner)
		l := profile.ParseNumber(e.operand(left, data))
		r := profile.ParseNumber(e.operand(right, data))
		return profile.Number(l + r + addOffset)
	}

	parts := strings.Split(expr, "|")
	v := data.Lookup(strings.TrimSpace(parts[0]))
	if v.IsAbsent() {
		v = profile.String("")
	}
	for _, name := range parts[1:] {
		if fn, ok := e.transforms[strings.TrimSpace(name)]; ok {
			v = fn(v)
		}
	}
	return v
}

// operand evaluates one add argument. An argument that resolves to nothing
// but is itself a numeric literal stands for that number.
func (e *Engine) operand(expr string, data profile.Value) string {
	s := e.Eval(expr, data).String()
	if s == "" && expr != "" && !math.IsNaN(profile.ParseNumber(expr)) {
		return expr
	}
	return s
}

// cutCall reports whether expr has the form name(...) and returns the text
// between the parentheses.
func cutCall(expr, name string) (string, bool) {
	if !strings.HasPrefix(expr, name+"(") || !strings.HasSuffix(expr, ")") {
		return "", false
	}
	return expr[len(name)+1 : len(expr)-1], true
}

// splitArgs splits s on its first comma outside parentheses. A missing
// second argument is returned as "".
func splitArgs(s string) (string, string) {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
			}
		}
	}
	return strings.TrimSpace(s), ""
}
