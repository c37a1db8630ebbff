package wrap

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pyprac/profilesvg/pkg/dom"
	"github.com/pyprac/profilesvg/pkg/errors"
)

// tenPerByte measures every byte as 10px regardless of font size.
var tenPerByte = dom.MeasureFunc(func(s string, _ float64) float64 {
	return float64(len(s)) * 10
})

func parse(t *testing.T, src string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseSVG(strings.NewReader(src), dom.WithMeasurer(tenPerByte))
	if err != nil {
		t.Fatalf("ParseSVG() error = %v", err)
	}
	return doc
}

type row struct {
	Text string
	X    string
	Y    string
	DY   string
}

func rows(text *dom.Element) []row {
	var out []row
	for _, span := range text.Children() {
		r := row{Text: span.TextContent()}
		r.X, _ = span.Attr("x")
		r.Y, _ = span.Attr("y")
		r.DY, _ = span.Attr("dy")
		out = append(out, r)
	}
	return out
}

func TestWrap(t *testing.T) {
	doc := parse(t, `<svg font-size="16"><text id="t" x="12" y="30">alpha beta gamma</text></svg>`)
	text := doc.ElementByID("t")

	res, err := Wrap(text, 100)
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}

	fontSize, gap := 16.0, 4.0
	wantHeight := fontSize*1.12 + gap
	if res.LineHeight != wantHeight {
		t.Errorf("LineHeight = %v, want %v", res.LineHeight, wantHeight)
	}

	wantLines := []Line{{Text: "alpha beta", First: true}, {Text: "gamma"}}
	if diff := cmp.Diff(wantLines, res.Lines); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}

	wantRows := []row{
		{Text: "alpha beta", X: "12", Y: "30"},
		{Text: "gamma", X: "12", DY: formatPx(wantHeight)},
	}
	if diff := cmp.Diff(wantRows, rows(text)); diff != "" {
		t.Errorf("tspans mismatch (-want +got):\n%s", diff)
	}

	if n := strings.Count(doc.String(), "<tspan"); n != len(wantRows) {
		t.Errorf("%d tspans in the tree, want %d:\n%s", n, len(wantRows), doc.String())
	}
}

func TestWrapIdempotent(t *testing.T) {
	doc := parse(t, `<svg><text id="t" x="0" y="20">one two three four five six</text></svg>`)
	text := doc.ElementByID("t")

	first, err := Wrap(text, 90)
	if err != nil {
		t.Fatalf("first Wrap() error = %v", err)
	}
	before := doc.String()

	second, err := Wrap(text, 90)
	if err != nil {
		t.Fatalf("second Wrap() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("rewrap changed the result (-first +second):\n%s", diff)
	}
	if after := doc.String(); after != before {
		t.Errorf("rewrap changed the tree:\nbefore: %s\nafter:  %s", before, after)
	}

	// A narrower budget rewraps from the original words.
	third, err := Wrap(text, 50)
	if err != nil {
		t.Fatalf("third Wrap() error = %v", err)
	}
	want := []string{"one", "two", "three", "four", "five", "six"}
	if diff := cmp.Diff(want, third.Texts()); diff != "" {
		t.Errorf("narrow rewrap mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapNewTextReplacesSource(t *testing.T) {
	doc := parse(t, `<svg><text id="t">alpha beta gamma</text></svg>`)
	text := doc.ElementByID("t")

	if _, err := Wrap(text, 100); err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}
	text.SetTextContent("delta epsilon")

	res, err := Wrap(text, 1000)
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}
	if diff := cmp.Diff([]string{"delta epsilon"}, res.Texts()); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if src, _ := text.Attr(SourceAttr); src != "delta epsilon" {
		t.Errorf("%s = %q, want %q", SourceAttr, src, "delta epsilon")
	}
}

func TestWrapEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{
			name:  "everything fits",
			text:  "alpha beta gamma",
			width: 1000,
			want:  []string{"alpha beta gamma"},
		},
		{
			name:  "whitespace runs collapse",
			text:  "  alpha \t beta\n\n gamma  ",
			width: 100,
			want:  []string{"alpha beta", "gamma"},
		},
		{
			name:  "overlong word gets its own row",
			text:  "a supercalifragilistic b",
			width: 50,
			want:  []string{"a", "supercalifragilistic", "b"},
		},
		{
			name:  "overlong first word",
			text:  "enormousword tiny",
			width: 30,
			want:  []string{"enormousword", "tiny"},
		},
		{
			name:  "single word",
			text:  "solo",
			width: 10,
			want:  []string{"solo"},
		},
		{
			name:  "exact fit",
			text:  "abcde fghij",
			width: 110,
			want:  []string{"abcde fghij"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, `<svg><text id="t"></text></svg>`)
			text := doc.ElementByID("t")
			text.SetTextContent(tt.text)

			res, err := Wrap(text, tt.width)
			if err != nil {
				t.Fatalf("Wrap() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, res.Texts()); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
			if got := strings.Join(res.Texts(), " "); got != strings.Join(strings.Fields(tt.text), " ") {
				t.Errorf("rows joined = %q, want the normalized source", got)
			}
			for i, l := range res.Lines {
				if l.First != (i == 0) {
					t.Errorf("Lines[%d].First = %v", i, l.First)
				}
				if l.Text == "" {
					t.Errorf("Lines[%d] is empty", i)
				}
			}
		})
	}
}

func TestWrapDefaultsAndGap(t *testing.T) {
	doc := parse(t, `<svg><text id="t">alpha beta</text></svg>`)
	text := doc.ElementByID("t")

	res, err := Wrap(text, 50, WithLineGap(0))
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}
	size := float64(dom.DefaultFontSize)
	wantHeight := size * 1.12
	if res.LineHeight != wantHeight {
		t.Errorf("LineHeight = %v, want %v", res.LineHeight, wantHeight)
	}
	want := []row{
		{Text: "alpha", X: "0", Y: "0"},
		{Text: "beta", X: "0", DY: formatPx(wantHeight)},
	}
	if diff := cmp.Diff(want, rows(text)); diff != "" {
		t.Errorf("tspans mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapFromDescendant(t *testing.T) {
	doc := parse(t, `<svg><text id="t" x="5" y="9"><tspan id="inner">alpha beta gamma</tspan></text></svg>`)

	res, err := WrapByID(doc, "inner", 100)
	if err != nil {
		t.Fatalf("WrapByID() error = %v", err)
	}
	if diff := cmp.Diff([]string{"alpha beta", "gamma"}, res.Texts()); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if doc.ElementByID("inner") != nil {
		t.Error("original children should be replaced")
	}
	if got := len(doc.ElementByID("t").Children()); got != 2 {
		t.Errorf("text has %d children, want 2", got)
	}
}

func TestWrapFailuresLeaveTreeUntouched(t *testing.T) {
	const src = `<svg><g id="group"><rect id="box"></rect></g><text id="blank" x="1" y="2"><tspan>   </tspan></text></svg>`

	tests := []struct {
		id   string
		want error
	}{
		{"blank", ErrEmptyText},
		{"box", ErrNoTextElement},
		{"group", ErrNoTextElement},
	}
	for _, tt := range tests {
		doc := parse(t, src)
		before := doc.String()

		_, err := WrapByID(doc, tt.id, 100)
		if !stderrors.Is(err, tt.want) {
			t.Errorf("WrapByID(%s) error = %v, want %v", tt.id, err, tt.want)
		}
		if after := doc.String(); after != before {
			t.Errorf("WrapByID(%s) mutated the tree:\nbefore: %s\nafter:  %s", tt.id, before, after)
		}
	}

	if _, err := Wrap(nil, 100); !stderrors.Is(err, ErrNoTextElement) {
		t.Errorf("Wrap(nil) error = %v, want ErrNoTextElement", err)
	}

	doc := parse(t, src)
	if _, err := WrapByID(doc, "missing", 100); !errors.Is(err, errors.ErrCodeTargetNotFound) {
		t.Errorf("WrapByID(missing) error = %v, want TARGET_NOT_FOUND", err)
	}
}
