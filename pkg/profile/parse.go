package profile

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pyprac/profilesvg/pkg/errors"
)

// ParseStrict decodes raw as a single JSON document.
func ParseStrict(raw string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var x any
	if err := dec.Decode(&x); err != nil {
		return Absent(), fmt.Errorf("decode: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return Absent(), fmt.Errorf("decode: trailing data after document")
	}
	return FromAny(x), nil
}

// Parse decodes a stored record, falling back to Normalize when the text is
// not strict JSON. It never panics; on failure it returns Absent and a
// MALFORMED_RECORD error.
func Parse(raw string) (Value, error) {
	v, err := ParseStrict(raw)
	if err == nil {
		return v, nil
	}
	v, err = ParseStrict(Normalize(raw))
	if err == nil {
		return v, nil
	}
	return Absent(), errors.Wrap(errors.ErrCodeMalformedRecord, err, "parse profile record")
}

var (
	// bareKey matches an unquoted mapping key: letters, digits, spaces,
	// underscores and hyphens.
	bareKey = regexp.MustCompile(`^[A-Za-z0-9 _\-]+`)

	// ident matches a bare word in value position.
	ident = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
)

var pythonLiterals = map[string]string{
	"True":  "true",
	"False": "false",
	"None":  "null",
}

// Normalize rewrites loosely-quoted record text into JSON:
//
//   - bare keys after '{' or ',' are double-quoted ({name: 1} becomes {"name": 1})
//   - single-quoted strings, keys or values, become double-quoted
//   - True, False and None in value position become true, false and null
//
// Text inside string literals is copied through untouched, so a value such
// as '12:30' is never mistaken for a key. Normalize does not validate its
// output; pass the result to ParseStrict.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw) + 16)

	expectKey := false
	var prev byte // last significant byte written
	for i := 0; i < len(raw); {
		c := raw[i]
		switch {
		case c == '"':
			n := scanDoubleQuoted(raw[i:])
			b.WriteString(raw[i : i+n])
			i += n
			prev, expectKey = '"', false

		case c == '\'':
			s, n := convertSingleQuoted(raw[i:])
			b.WriteString(s)
			i += n
			prev, expectKey = '"', false

		case c == '{' || c == ',':
			b.WriteByte(c)
			i++
			prev, expectKey = c, true

		case expectKey && bareKey.MatchString(raw[i:]) && followedByColon(raw[i:]):
			m := bareKey.FindString(raw[i:])
			name := strings.TrimLeft(m, " ")
			key, _ := json.Marshal(strings.TrimRight(name, " "))
			b.WriteString(m[:len(m)-len(name)])
			b.Write(key)
			i += len(m)
			prev, expectKey = '"', false

		case prev == ':' || prev == '[' || prev == ',':
			word := ident.FindString(raw[i:])
			if lit, ok := pythonLiterals[word]; ok {
				b.WriteString(lit)
				i += len(word)
				prev, expectKey = 'l', false
				continue
			}
			fallthrough

		default:
			b.WriteByte(c)
			i++
			if !isSpace(c) {
				prev, expectKey = c, false
			}
		}
	}
	return b.String()
}

// followedByColon reports whether the bare key at the start of s is followed
// by optional whitespace and a colon.
func followedByColon(s string) bool {
	rest := strings.TrimLeft(s[len(bareKey.FindString(s)):], " \t\r\n")
	return strings.HasPrefix(rest, ":")
}

// scanDoubleQuoted returns the length of the double-quoted literal at the
// start of s, including both quotes. An unterminated literal spans the rest
// of s.
func scanDoubleQuoted(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(s)
}

// convertSingleQuoted re-quotes the single-quoted literal at the start of s
// with double quotes and returns it with the number of bytes consumed.
func convertSingleQuoted(s string) (string, int) {
	var b strings.Builder
	b.WriteByte('"')
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			if i+1 < len(s) {
				if s[i+1] == '\'' {
					b.WriteByte('\'')
				} else {
					b.WriteByte('\\')
					b.WriteByte(s[i+1])
				}
				i++
				continue
			}
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\'':
			b.WriteByte('"')
			return b.String(), i + 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), len(s)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
