package dom

import (
	"math"
	"testing"

	"github.com/pyprac/profilesvg/pkg/errors"
)

func TestCharWidthMeasurer(t *testing.T) {
	tests := []struct {
		m    CharWidthMeasurer
		s    string
		size float64
		want float64
	}{
		{CharWidthMeasurer{Ratio: 0.5}, "abcd", 10, 20},
		{CharWidthMeasurer{Ratio: 0.5}, "héllo", 10, 25},
		{CharWidthMeasurer{}, "ab", 10, 11},
		{CharWidthMeasurer{Ratio: 1}, "", 10, 0},
	}
	for _, tt := range tests {
		if got := tt.m.Measure(tt.s, tt.size); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%+v.Measure(%q, %v) = %v, want %v", tt.m, tt.s, tt.size, got, tt.want)
		}
	}
}

func TestFontMeasurer(t *testing.T) {
	m, err := NewNamedFontMeasurer("go-regular")
	if err != nil {
		t.Fatalf("NewNamedFontMeasurer() error = %v", err)
	}
	defer m.Close()

	if got := m.Measure("", 16); got != 0 {
		t.Errorf("Measure(\"\") = %v, want 0", got)
	}
	if got := m.Measure("abc", 0); got != 0 {
		t.Errorf("Measure at size 0 = %v, want 0", got)
	}

	short := m.Measure("alpha", 16)
	long := m.Measure("alpha beta", 16)
	if short <= 0 || long <= short {
		t.Errorf("widths not increasing: alpha=%v, alpha beta=%v", short, long)
	}

	// Glyph advances scale with the font size.
	double := m.Measure("alpha", 32)
	if math.Abs(double-2*short) > 1 {
		t.Errorf("Measure at 32px = %v, want about %v", double, 2*short)
	}

	if again := m.Measure("alpha", 16); again != short {
		t.Errorf("cached face measured %v, first measure %v", again, short)
	}
}

func TestFontMeasurerMonospace(t *testing.T) {
	m, err := NewNamedFontMeasurer("GO-MONO")
	if err != nil {
		t.Fatalf("NewNamedFontMeasurer() error = %v", err)
	}
	if a, b := m.Measure("iiii", 20), m.Measure("WWWW", 20); a != b {
		t.Errorf("monospace widths differ: iiii=%v WWWW=%v", a, b)
	}
}

func TestNewFontMeasurerErrors(t *testing.T) {
	if _, err := NewNamedFontMeasurer("comic-sans"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown font error = %v, want INVALID_INPUT", err)
	}
	if _, err := NewFontMeasurer([]byte("not a font")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("garbage font error = %v, want INVALID_INPUT", err)
	}
}

func TestMeasureFunc(t *testing.T) {
	var m Measurer = MeasureFunc(func(s string, size float64) float64 { return float64(len(s)) * size })
	if got := m.Measure("abc", 2); got != 6 {
		t.Errorf("Measure() = %v, want 6", got)
	}
	if DefaultMeasurer() == nil {
		t.Error("DefaultMeasurer() = nil")
	}
}
