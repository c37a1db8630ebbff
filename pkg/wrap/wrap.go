// Package wrap reflows the text of an SVG <text> element into rows of
// <tspan> elements that each fit a pixel width.
//
// Wrapping is greedy: words are added to the current row while the measured
// width stays within the budget, and a word that does not fit starts the
// next row. A single word wider than the budget gets a row of its own; words
// are never broken.
//
// Rows share the text element's x anchor. The first row is placed at the
// element's y; every later row is shifted down by
//
//	lineHeight = fontSize*1.12 + gap
//
// where gap defaults to 4 pixels.
package wrap

import (
	"math"
	"strconv"
	"strings"


	"github.com/pyprac/profilesvg/pkg/dom"
	"github.com/pyprac/profilesvg/pkg/errors"
)

const (
	// DefaultLineGap is the extra space between rows, in pixels.
	DefaultLineGap = 4.0

	// lineHeightFactor approximates the line box height of common fonts.
	lineHeightFactor = 1.12

	// SourceAttr records the unwrapped text on the <text> element so a
	// wrapped element can be wrapped again from its original words.
	SourceAttr = "data-wrap-source"
)

var (
	// ErrNoTextElement is returned when neither the element nor any of its
	// ancestors is a <text> element.
	ErrNoTextElement = errors.New(errors.ErrCodeNoTextElement, "no enclosing <text> element")

	// ErrEmptyText is returned when the source text is empty after trimming.
	ErrEmptyText = errors.New(errors.ErrCodeEmptyText, "nothing to wrap")
)

// Line is one committed row.
type Line struct {
	Text  string
	First bool
}

// Result describes a completed wrap.
type Result struct {
	Lines      []Line
	LineHeight float64
}

// Texts returns the text of each row.
func (r Result) Texts() []string {
	out := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		out[i] = l.Text
	}
	return out
}

type options struct {
	lineGap float64
}

// Option configures Wrap.
type Option func(*options)

// WithLineGap sets the extra space between rows in pixels.
func WithLineGap(px float64) Option {
	return func(o *options) { o.lineGap = px }
}

// Wrap reflows the text under el into rows no wider than maxWidthPx. el is
// either the <text> element or one of its descendants; its text content is
// the source. On error the tree is left untouched.
func Wrap(el *dom.Element, maxWidthPx float64, opts ...Option) (Result, error) {
	o := options{lineGap: DefaultLineGap}
	for _, opt := range opts {
		opt(&o)
	}

	if el == nil {
		return Result{}, ErrNoTextElement
	}
	text := el.Closest("text")
	if text == nil {
		return Result{}, ErrNoTextElement
	}

	source := sourceText(el, text)
	words := strings.Fields(source)
	if len(words) == 0 {
		return Result{}, ErrEmptyText
	}

	x, _ := text.Attr("x")
	if x == "" {
		x = "0"
	}
	y, _ := text.Attr("y")
	if y == "" {
		y = "0"
	}
	lineHeight := text.FontSize()*lineHeightFactor + o.lineGap

	text.RemoveChildren()
	measure := text.AppendElement("tspan")
	measure.SetAttr("x", x)
	measure.SetAttr("y", y)

	var rows []string
	line := ""
	for _, w := range words {
		candidate := w
		if line != "" {
			candidate = line + " " + w
		}
		measure.SetTextContent(candidate)
		if measure.ComputedTextLength() <= maxWidthPx || line == "" {
			line = candidate
			continue
		}
		rows = append(rows, line)
		line = w
	}
	rows = append(rows, line)
	measure.Remove()

	res := Result{LineHeight: lineHeight, Lines: make([]Line, len(rows))}
	dy := formatPx(lineHeight)
	for i, row := range rows {
		span := text.AppendElement("tspan")
		span.SetAttr("x", x)
		if i == 0 {
			span.SetAttr("y", y)
		} else {
			span.SetAttr("dy", dy)
		}
		span.SetTextContent(row)
		res.Lines[i] = Line{Text: row, First: i == 0}
	}
	text.SetAttr(SourceAttr, strings.Join(words, " "))
	return res, nil
}

// WrapByID wraps the element with the given id in doc.
func WrapByID(doc *dom.Document, id string, maxWidthPx float64, opts ...Option) (Result, error) {
	el := doc.ElementByID(id)
	if el == nil {
		return Result{}, errors.New(errors.ErrCodeTargetNotFound, "no element with id %q", id)
	}
	return Wrap(el, maxWidthPx, opts...)
}

// sourceText returns the words to wrap. A previously wrapped element
// carries its source in SourceAttr; it is used as long as the current text
// still spells the same words, so rewrapping does not glue rows together.
func sourceText(el, text *dom.Element) string {
	current := strings.TrimSpace(el.TextContent())
	recorded, ok := text.Attr(SourceAttr)
	if !ok {
		return current
	}
	if stripSpace(recorded) == stripSpace(current) {
		return recorded
	}
	return current
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// formatPx formats v rounded to thousandths of a pixel.
func formatPx(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
