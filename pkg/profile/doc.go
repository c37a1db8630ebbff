// Package profile models a student's profile record as read from the profile
// store.
//
// Records are untyped key/value documents. Rather than exposing
// map[string]any, the package decodes them into [Value], a tagged value whose
// kind is one of Absent, Null, Bool, Number, String, List or Map. Walking a
// dotted path never fails: any missing segment yields [Absent].
//
// # Parsing
//
// Stored records are not always strict JSON. [Parse] runs a two-stage
// pipeline:
//
//  1. [ParseStrict] decodes the text as JSON.
//  2. On failure, [Normalize] rewrites loosely-quoted text (bare or
//     single-quoted keys, single-quoted values, Python literals) and
//     [ParseStrict] runs again.
//
// If both stages fail, Parse returns [Absent] and a MALFORMED_RECORD error.
// Callers log the error and carry on with an empty record.
//
//	rec, err := profile.Parse(`{firstName: 'Ann', age: 20}`)
//	rec.Lookup("firstName").String() // "Ann"
//	rec.Lookup("age").String()       // "20"
//
// # Fields
//
// [BuildFields] and [Derive] flatten a record into the scalar values written
// into documents and back into the store, resolving the alias spellings that
// different login pages produce ("First Name" vs firstName, rollNum vs
// rollNumber, and so on).
package profile
