// Package dom is a small document tree for HTML pages and SVG files.
//
// It is the surface the renderer and wrapper write into: element lookup by
// id, attribute and text access, child manipulation, the effective font size
// of an element and the rendered width of text. Parsing and serialization are
// done with golang.org/x/net/html, so inline <svg> inside HTML pages and
// standalone .svg files share one node model.
//
// # Embedded documents
//
// A page can reference SVG files through <object data="*.svg"> or
// <embed src="*.svg">. Each reference is an [Embed]: a one-shot future that
// resolves to the embedded [Document] once it is loaded. Until then
// [Embed.Document] returns [ErrNotReady]; continuations armed with
// [Embed.OnLoad] run exactly once, on load.
//
// # Measurement
//
// Text width is computed by a [Measurer]. [FontMeasurer] uses real glyph
// advances from a TrueType font; [CharWidthMeasurer] approximates every
// rune as a fixed fraction of the font size. Tests inject their own.
package dom
