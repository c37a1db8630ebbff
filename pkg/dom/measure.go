package dom

import (
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/pyprac/profilesvg/pkg/errors"
	"github.com/pyprac/profilesvg/pkg/fonts"
)

// Measurer reports the rendered width of text.
type Measurer interface {
	// Measure returns the advance width in pixels of s set at sizePx.
	Measure(s string, sizePx float64) float64
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(s string, sizePx float64) float64

// Measure calls f.
func (f MeasureFunc) Measure(s string, sizePx float64) float64 { return f(s, sizePx) }

// CharWidthMeasurer approximates every rune as Ratio times the font size.
type CharWidthMeasurer struct {
	Ratio float64
}

// DefaultCharWidth is the average advance of a proportional sans-serif
// glyph relative to its font size.
const DefaultCharWidth = 0.55

// Measure implements Measurer.
func (m CharWidthMeasurer) Measure(s string, sizePx float64) float64 {
	ratio := m.Ratio
	if ratio <= 0 {
		ratio = DefaultCharWidth
	}
	return float64(utf8.RuneCountInString(s)) * sizePx * ratio
}

// FontMeasurer measures text with glyph advances from a TrueType font.
// Faces are created per size on first use. It is safe for concurrent use.
type FontMeasurer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFontMeasurer parses TrueType or OpenType data.
func NewFontMeasurer(ttf []byte) (*FontMeasurer, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse font")
	}
	return &FontMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

// NewNamedFontMeasurer builds a FontMeasurer for one of the fonts in
// package fonts.
func NewNamedFontMeasurer(name string) (*FontMeasurer, error) {
	ttf, err := fonts.TTF(name)
	if err != nil {
		return nil, err
	}
	return NewFontMeasurer(ttf)
}

// Measure implements Measurer. Sizes that cannot produce a face measure as
// zero width.
func (m *FontMeasurer) Measure(s string, sizePx float64) float64 {
	if s == "" || sizePx <= 0 {
		return 0
	}
	face, err := m.face(sizePx)
	if err != nil {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	adv := font.MeasureString(face, s)
	return float64(adv) / 64
}

func (m *FontMeasurer) face(sizePx float64) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.faces[sizePx]; ok {
		return f, nil
	}
	// At 72 DPI one point is one pixel.
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[sizePx] = f
	return f, nil
}

// Close releases the cached faces.
func (m *FontMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for size, f := range m.faces {
		_ = f.Close()
		delete(m.faces, size)
	}
	return nil
}

var (
	defaultMeasurer     Measurer
	defaultMeasurerOnce sync.Once
)

// DefaultMeasurer returns a shared FontMeasurer for [fonts.Default], or a
// CharWidthMeasurer if the font cannot be loaded.
func DefaultMeasurer() Measurer {
	defaultMeasurerOnce.Do(func() {
		m, err := NewNamedFontMeasurer(fonts.Default)
		if err != nil {
			defaultMeasurer = CharWidthMeasurer{Ratio: DefaultCharWidth}
			return
		}
		defaultMeasurer = m
	})
	return defaultMeasurer
}
