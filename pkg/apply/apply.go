// Package apply writes rendered profile text into a page and the SVG
// documents it embeds.
//
// An [Applicator] ties together a parsed [dom.Document], the profile
// [store.Store] holding the signed-in student, and a [template.Engine].
// Writes go to the main tree first. When the target is not there, every
// embedded SVG document is tried; documents that have not loaded yet get the
// write armed as a one-shot continuation that runs when they do.
//
// # Usage
//
//	doc, _ := dom.ParseFile("profile.html")
//	a := apply.New(doc, st, apply.WithLogger(logger))
//	a.ApplyTemplate(ctx, "title", "Name: ${firstName} ${lastName}", profile.Absent())
//	_ = doc.LoadEmbeds(ctx, os.DirFS("."))
package apply

import (
	"context"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pyprac/profilesvg/pkg/dom"
	"github.com/pyprac/profilesvg/pkg/observability"
	"github.com/pyprac/profilesvg/pkg/profile"
	"github.com/pyprac/profilesvg/pkg/store"
	"github.com/pyprac/profilesvg/pkg/template"
	"github.com/pyprac/profilesvg/pkg/wrap"
)

// Applicator writes rendered text into a document and its embeds.
type Applicator struct {
	doc    *dom.Document
	store  store.Store
	engine *template.Engine
	logger *log.Logger
	idMap  map[string]string

	wrapWidth float64
	wrapOpts  []wrap.Option
}

// Option configures an Applicator.
type Option func(*Applicator)

// WithLogger sets the logger. A nil logger means log.Default().
func WithLogger(l *log.Logger) Option {
	return func(a *Applicator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithEngine renders templates with e instead of the default engine.
func WithEngine(e *template.Engine) Option {
	return func(a *Applicator) {
		if e != nil {
			a.engine = e
		}
	}
}

// WithIDMap replaces the field to element id map used by Fill.
func WithIDMap(m map[string]string) Option {
	return func(a *Applicator) {
		if m != nil {
			a.idMap = m
		}
	}
}

// WithWrap wraps every element written by ApplyTemplate into rows no wider
// than maxWidthPx. A width of zero or less disables wrapping.
func WithWrap(maxWidthPx float64, opts ...wrap.Option) Option {
	return func(a *Applicator) {
		a.wrapWidth = maxWidthPx
		a.wrapOpts = opts
	}
}

// New returns an Applicator for doc. s may be nil, in which case callers
// must pass data explicitly.
func New(doc *dom.Document, s store.Store, opts ...Option) *Applicator {
	a := &Applicator{
		doc:    doc,
		store:  s,
		engine: template.New(),
		logger: log.Default(),
		idMap:  profile.DefaultIDMap(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Document returns the main document.
func (a *Applicator) Document() *dom.Document { return a.doc }

// Record reads and parses the studentUser record. A missing or malformed
// record yields Absent; malformed records are logged.
func (a *Applicator) Record(ctx context.Context) profile.Value {
	if a.store == nil {
		return profile.Absent()
	}
	raw, ok, err := a.store.Get(ctx, profile.KeyStudentUser)
	if err != nil {
		a.logger.Warn("read studentUser failed", "err", err)
		return profile.Absent()
	}
	if !ok {
		return profile.Absent()
	}
	rec, err := profile.Parse(raw)
	if err != nil {
		a.logger.Warn("studentUser parse failed", "err", err)
		return profile.Absent()
	}
	return rec
}

// ApplyTemplate renders tmpl against data and writes the result as the text
// of the element with id targetID. An absent data reads the stored
// studentUser record instead; with neither, placeholders render empty.
//
// The main tree is searched first. Otherwise each embedded SVG document
// that has loaded is written immediately, and each that has not gets the
// write armed for when it loads. ApplyTemplate reports whether a write
// happened before it returned.
func (a *Applicator) ApplyTemplate(ctx context.Context, targetID, tmpl string, data profile.Value) bool {
	start := time.Now()
	if data.IsAbsent() {
		data = a.Record(ctx)
	}
	rendered := a.engine.Render(tmpl, data)

	if a.setText(ctx, a.doc, targetID, rendered) {
		observability.Render().OnApply(ctx, targetID, true, time.Since(start))
		return true
	}

	embeds := a.doc.Embeds()
	if len(embeds) == 0 {
		a.logger.Warn("target not found inline and no svg embed present", "target", targetID)
		observability.Render().OnApply(ctx, targetID, false, time.Since(start))
		return false
	}

	applied, deferred := false, 0
	for _, e := range embeds {
		sub, err := e.Document()
		if err != nil {
			a.deferWrite(ctx, e, func(d *dom.Document) bool {
				return a.setText(ctx, d, targetID, rendered)
			}, targetID)
			deferred++
			continue
		}
		if a.setText(ctx, sub, targetID, rendered) {
			applied = true
		}
	}
	if !applied && deferred == 0 {
		a.logger.Warn("target not found in any document", "target", targetID)
	}
	observability.Render().OnApply(ctx, targetID, applied, time.Since(start))
	return applied
}

// deferWrite arms write to run once e loads.
func (a *Applicator) deferWrite(ctx context.Context, e *dom.Embed, write func(*dom.Document) bool, target string) {
	a.logger.Debug("embedded document not ready, deferring write", "target", target, "source", e.Source())
	observability.Render().OnDeferred(ctx, target, e.Source())
	e.OnLoad(func(d *dom.Document) {
		start := time.Now()
		ok := write(d)
		observability.Render().OnApply(ctx, target, ok, time.Since(start))
	})
}

// setText writes text into the element with id in doc, wrapping it when
// configured. It reports whether the element exists.
func (a *Applicator) setText(ctx context.Context, doc *dom.Document, id, text string) bool {
	el := doc.ElementByID(id)
	if el == nil {
		return false
	}
	el.SetTextContent(text)
	if a.wrapWidth > 0 {
		start := time.Now()
		res, err := wrap.Wrap(el, a.wrapWidth, a.wrapOpts...)
		observability.Render().OnWrap(ctx, id, len(res.Lines), time.Since(start), err)
		if err != nil {
			a.logger.Debug("wrap skipped", "target", id, "err", err)
		}
	}
	return true
}

// ApplyFields writes each field into the element idMap names for it, in the
// main tree and in every embedded SVG document. Fields missing from fields
// are written as empty text; an empty id skips the field. Writes into
// embeds that have not loaded are deferred. It returns the number of
// elements written before it returned.
func (a *Applicator) ApplyFields(ctx context.Context, fields profile.Fields, idMap map[string]string) int {
	if fields == nil {
		return 0
	}
	if idMap == nil {
		idMap = a.idMap
	}
	names := make([]string, 0, len(idMap))
	for name, id := range idMap {
		if id != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	writeAll := func(d *dom.Document) int {
		n := 0
		for _, name := range names {
			if el := d.ElementByID(idMap[name]); el != nil {
				el.SetTextContent(fields[name])
				n++
			}
		}
		return n
	}

	written := writeAll(a.doc)
	for _, e := range a.doc.Embeds() {
		if sub, err := e.Document(); err == nil {
			written += writeAll(sub)
			continue
		}
		a.deferWrite(ctx, e, func(d *dom.Document) bool { return writeAll(d) > 0 }, "fields")
	}
	return written
}

// PublishDerived stores the convenience keys computed from rec and shows
// them in the main tree's fullName, classSec, classRoll and email elements.
// Missing elements are skipped.
func (a *Applicator) PublishDerived(ctx context.Context, rec profile.Value) (profile.Derived, error) {
	var d profile.Derived
	if a.store != nil {
		var err error
		if d, err = StoreDerived(ctx, a.store, rec); err != nil {
			return d, err
		}
	} else {
		d = profile.Derive(rec)
	}
	ids := profile.ElementIDs()
	for _, kv := range d.Pairs() {
		if el := a.doc.ElementByID(ids[kv.Key]); el != nil {
			el.SetTextContent(kv.Value)
		} else {
			a.logger.Debug("no element for derived key", "key", kv.Key, "id", ids[kv.Key])
		}
	}
	a.logger.Debug("stored derived keys", "fullName", d.FullName, "classSec", d.ClassSec,
		"classRoll", d.ClassRoll, "stuEmail", d.StuEmail)
	return d, nil
}

// StoreDerived writes the convenience keys computed from rec into s.
func StoreDerived(ctx context.Context, s store.Store, rec profile.Value) (profile.Derived, error) {
	d := profile.Derive(rec)
	for _, kv := range d.Pairs() {
		if err := s.Set(ctx, kv.Key, kv.Value); err != nil {
			return d, err
		}
	}
	return d, nil
}

// Fill applies the stored record to the page: every mapped field, then the
// derived keys. It returns Absent without touching anything when no
// readable record is stored.
func (a *Applicator) Fill(ctx context.Context) (profile.Value, error) {
	rec := a.Record(ctx)
	if !rec.Truthy() {
		a.logger.Info("studentUser not in store; nothing applied")
		return profile.Absent(), nil
	}
	n := a.ApplyFields(ctx, profile.BuildFields(rec), nil)
	a.logger.Debug("applied studentUser fields", "elements", n)
	if _, err := a.PublishDerived(ctx, rec); err != nil {
		return rec, err
	}
	return rec, nil
}
