// Package pkg provides the libraries behind profilesvg, which fills HTML
// pages and SVG cards with a signed-in student's stored profile.
//
// # Overview
//
// A profile is a JSON record kept under the studentUser key of a key-value
// store. The libraries read it, render placeholder templates against it and
// write the results into document elements by id:
//
//	store (studentUser)
//	     ↓
//	[profile] (tolerant parse, field flattening, derived keys)
//	     ↓
//	[template] (${path|transform} and ${add(a, b)} placeholders)
//	     ↓
//	[apply] (inline elements first, embedded SVG documents once loaded)
//	     ↓
//	[dom] + [wrap] (HTML/SVG tree, text measurement, row wrapping)
//
// # Quick Start
//
// Fill a page from the stored profile:
//
//	import (
//	    "context"
//	    "github.com/pyprac/profilesvg/pkg/apply"
//	    "github.com/pyprac/profilesvg/pkg/dom"
//	    "github.com/pyprac/profilesvg/pkg/store"
//	)
//
//	st, _ := store.Open(ctx, store.Config{Backend: store.BackendFile, Path: dir})
//	doc, _ := dom.ParseFile("profile.html")
//	a := apply.New(doc, st)
//	rec, _ := a.Fill(ctx)
//	_ = doc.LoadEmbeds(ctx, os.DirFS("."))
//	_ = doc.Save("profile.html")
//
// Render a single template:
//
//	rec, _ := profile.Parse(`{firstName: 'Ann', marks: {BEE: 88, AC: 91}}`)
//	template.Render("${firstName|upper}: ${add(marks.BEE, marks.AC)}", rec)
//	// ANN: 180
//
// # Main Packages
//
// [profile] - The dynamic record value, the tolerant JSON parser, field
// flattening with alias spellings, and the derived fullName, classSec,
// classRoll and stuEmail keys.
//
// [template] - Placeholder rendering with dotted paths, transform chains and
// the add function. Missing values render empty.
//
// [dom] - HTML and SVG documents on golang.org/x/net/html, elements by id,
// font-size resolution, text measurement and embedded SVG documents with
// their load lifecycle.
//
// [wrap] - Greedy word wrapping of SVG <text> into <tspan> rows.
//
// [apply] - Writing rendered templates and profile fields into a document
// and its embeds, deferring writes until an embed loads.
//
// [session] - Login, logout and loading of the studentUser record.
//
// [store] - Key-value backends: memory, sharded files, SQLite, Redis and
// MongoDB.
//
// [fonts] - Bundled fonts used for text measurement.
//
// [config] - The TOML configuration file.
//
// [observability] - Hooks for apply, embed and store events.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
// Run tests:
//
//	go test ./...                         # All tests
//	go test ./pkg/wrap/...                # Specific package
//	go test -run Example ./pkg/...        # Examples only
//	go test -tags cgo_sqlite ./pkg/store  # SQLite through mattn/go-sqlite3
//
// [profile]: https://pkg.go.dev/github.com/pyprac/profilesvg/pkg/profile
// [template]: https://pkg.go.dev/github.com/pyprac/profilesvg/pkg/template
// [dom]: https://pkg.go.dev/github.com/pyprac/profilesvg/pkg/dom
// [wrap]: https://pkg.go.dev/github.com/pyprac/profilesvg/pkg/wrap
// [apply]: https://pkg.go.dev/github.com/pyprac/profilesvg/pkg/apply
// [session]: https://pkg.go.dev/github.com/pyprac/profilesvg/pkg/session
// [store]: https://pkg.go.dev/github.com/pyprac/profilesvg/pkg/store
// [fonts]: https://pkg.go.dev/github.com/pyprac/profilesvg/pkg/fonts
// [config]: https://pkg.go.dev/github.com/pyprac/profilesvg/pkg/config
// [observability]: https://pkg.go.dev/github.com/pyprac/profilesvg/pkg/observability
// [errors]: https://pkg.go.dev/github.com/pyprac/profilesvg/pkg/errors
package pkg
