package dom

import (
	"bytes"
	"context"
	stderrors "errors"
	"io/fs"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/pyprac/profilesvg/pkg/errors"
	"github.com/pyprac/profilesvg/pkg/observability"
)

// ErrNotReady is returned by [Embed.Document] before the embedded document
// has loaded.
var ErrNotReady = errors.New(errors.ErrCodeNotReady, "embedded document not loaded")

// Embed is a load-gated handle to an SVG document referenced from a page.
// It resolves at most once; continuations armed with OnLoad run exactly once
// after it resolves.
type Embed struct {
	el  *Element
	src string

	mu      sync.Mutex
	doc     *Document
	err     error
	pending []func(*Document)
	done    chan struct{}
	once    sync.Once
}

func newEmbed(el *Element, src string) *Embed {
	return &Embed{el: el, src: src, done: make(chan struct{})}
}

// Element returns the <object> or <embed> element that references the
// document.
func (e *Embed) Element() *Element { return e.el }

// Source returns the referenced location as written in the page.
func (e *Embed) Source() string { return e.src }

// Path returns the slash-separated file path the source refers to,
// relative to the page's directory, with URL escapes decoded. It fails for
// remote sources and for paths that leave the page's directory.
func (e *Embed) Path() (string, error) { return localPath(e.src) }

// Document returns the loaded document, or ErrNotReady.
func (e *Embed) Document() (*Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return nil, ErrNotReady
	}
	return e.doc, nil
}

// Err returns the error of the last failed Load, or nil.
func (e *Embed) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// OnLoad arms fn to run once the document loads. If it has already loaded,
// fn runs immediately on the calling goroutine. fn never runs more than
// once and never runs if the document never loads.
func (e *Embed) OnLoad(fn func(*Document)) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	if e.doc == nil {
		e.pending = append(e.pending, fn)
		e.mu.Unlock()
		return
	}
	doc := e.doc
	e.mu.Unlock()
	fn(doc)
}

// Wait blocks until the document loads or ctx ends. A context error is
// reported as a TIMEOUT error wrapping ctx.Err().
func (e *Embed) Wait(ctx context.Context) (*Document, error) {
	select {
	case <-e.done:
		return e.Document()
	case <-ctx.Done():
		return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "wait for %s", e.src)
	}
}

// Resolve marks the embed as loaded with doc and runs the armed
// continuations in the order they were registered. Only the first call has
// any effect; it reports whether this call resolved the embed.
func (e *Embed) Resolve(doc *Document) bool {
	if doc == nil {
		return false
	}
	resolved := false
	e.once.Do(func() {
		e.mu.Lock()
		e.doc = doc
		e.err = nil
		pending := e.pending
		e.pending = nil
		e.mu.Unlock()

		close(e.done)
		for _, fn := range pending {
			fn(doc)
		}
		resolved = true
	})
	return resolved
}

// Load reads and parses the referenced file from fsys and resolves the
// embed. Remote sources and paths escaping fsys are ACCESS_DENIED and leave
// the embed unresolved, as do missing or unparsable files. Loading an
// already loaded embed is a no-op.
func (e *Embed) Load(ctx context.Context, fsys fs.FS, opts ...Option) error {
	if _, err := e.Document(); err == nil {
		return nil
	}
	start := time.Now()
	doc, err := e.load(fsys, opts)
	observability.Embed().OnEmbedLoad(ctx, e.src, time.Since(start), err)
	if err != nil {
		e.mu.Lock()
		e.err = err
		e.mu.Unlock()
		return err
	}
	e.Resolve(doc)
	return nil
}

func (e *Embed) load(fsys fs.FS, opts []Option) (*Document, error) {
	name, err := e.Path()
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read embedded document %s", e.src)
	}
	if len(opts) == 0 {
		opts = []Option{WithMeasurer(e.el.doc.measurer)}
	}
	return ParseSVG(bytes.NewReader(data), opts...)
}

// localPath maps an embed source to an fs.FS path.
func localPath(src string) (string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "embed source %q", src)
	}
	if u.Scheme != "" || u.Host != "" {
		return "", errors.New(errors.ErrCodeAccessDenied, "embed source %q is not a local file", src)
	}
	name := path.Clean(strings.TrimPrefix(u.Path, "./"))
	if !fs.ValidPath(name) {
		return "", errors.New(errors.ErrCodeAccessDenied, "embed source %q escapes the document directory", src)
	}
	return name, nil
}

// Embeds returns the SVG documents referenced by d, in document order.
func (d *Document) Embeds() []*Embed { return d.embeds }

// LoadEmbeds loads every embed from fsys. Embeds that fail stay unresolved;
// their errors are joined into the result.
func (d *Document) LoadEmbeds(ctx context.Context, fsys fs.FS) error {
	var errs []error
	for _, e := range d.embeds {
		if err := e.Load(ctx, fsys); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// discoverEmbeds finds <object data="*.svg"> and <embed src="*.svg">
// elements.
func (d *Document) discoverEmbeds() []*Embed {
	var out []*Embed
	walk(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		var src string
		switch n.Data {
		case "object":
			src = attr(n, "data")
		case "embed":
			src = attr(n, "src")
		default:
			return true
		}
		if strings.HasSuffix(src, ".svg") {
			out = append(out, newEmbed(d.wrap(n), src))
		}
		return true
	})
	return out
}
