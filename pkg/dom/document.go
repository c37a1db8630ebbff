package dom

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pyprac/profilesvg/pkg/errors"
)

// Kind distinguishes full HTML pages from standalone SVG files.
type Kind int

const (
	KindHTML Kind = iota
	KindSVG
)

// Document is a parsed page or SVG file. It is not safe for concurrent
// mutation.
type Document struct {
	root     *html.Node
	kind     Kind
	prolog   string
	measurer Measurer
	embeds   []*Embed
}

// Option configures a Document.
type Option func(*Document)

// WithMeasurer sets the text measurer. The default is [DefaultMeasurer].
func WithMeasurer(m Measurer) Option {
	return func(d *Document) {
		if m != nil {
			d.measurer = m
		}
	}
}

func newDocument(root *html.Node, kind Kind, opts []Option) *Document {
	d := &Document{root: root, kind: kind}
	for _, opt := range opts {
		opt(d)
	}
	if d.measurer == nil {
		d.measurer = DefaultMeasurer()
	}
	d.embeds = d.discoverEmbeds()
	return d
}

// Parse parses an HTML page.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse html")
	}
	return newDocument(root, KindHTML, opts), nil
}

var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// ParseSVG parses a standalone SVG file. A leading XML declaration is kept
// and written back by Render.
func ParseSVG(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read svg")
	}

	src := string(data)
	var prolog string
	if trimmed := strings.TrimLeft(src, " \t\r\n\uFEFF"); strings.HasPrefix(trimmed, "<?xml") {
		if end := strings.Index(trimmed, "?>"); end >= 0 {
			prolog = trimmed[:end+2]
			src = trimmed[end+2:]
		}
	}

	nodes, err := html.ParseFragment(strings.NewReader(src), bodyContext)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse svg")
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	d := newDocument(root, KindSVG, opts)
	d.prolog = prolog
	return d, nil
}

// ParseFile parses the file at path, as SVG when its extension is .svg and
// as HTML otherwise.
func ParseFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return ParseSVG(f, opts...)
	}
	return Parse(f, opts...)
}

// Kind reports whether d is an HTML page or an SVG file.
func (d *Document) Kind() Kind { return d.kind }

// Measurer returns the measurer used for text widths.
func (d *Document) Measurer() Measurer { return d.measurer }

// Root returns the outermost element: <html> for pages, the first top-level
// element for SVG files.
func (d *Document) Root() *Element {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return d.wrap(c)
		}
	}
	return nil
}

// ElementByID returns the first element, in document order, whose id
// attribute equals id, or nil.
func (d *Document) ElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return d.wrap(found)
}

// IDs returns the distinct id attributes of d's elements in document order.
func (d *Document) IDs() []string {
	var ids []string
	seen := make(map[string]bool)
	walk(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if id := attr(n, "id"); id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
		return true
	})
	return ids
}

// ElementsByTag returns all elements with the given tag name in document
// order.
func (d *Document) ElementsByTag(tag string) []*Element {
	var out []*Element
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, d.wrap(n))
		}
		return true
	})
	return out
}

// Render writes d back out as markup.
func (d *Document) Render(w io.Writer) error {
	if d.prolog != "" {
		if _, err := io.WriteString(w, d.prolog+"\n"); err != nil {
			return err
		}
	}
	if d.kind == KindHTML {
		return html.Render(w, d.root)
	}
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

// String renders d, returning "" if rendering fails.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Save renders d and atomically replaces the file at path.
func (d *Document) Save(path string) error {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (d *Document) wrap(n *html.Node) *Element {
	return &Element{n: n, doc: d}
}

// walk visits n and its descendants in document order until fn returns
// false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
