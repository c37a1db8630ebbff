package profile

import "strings"

// Store keys read and written by the glue around the renderer.
const (
	KeyStudentUser = "studentUser"
	KeyFullName    = "fullName"
	KeyClassSec    = "classSec"
	KeyClassRoll   = "classRoll"
	KeyStuEmail    = "stuEmail"
	KeySessionID   = "sessionId"
)

// Field names produced by BuildFields.
const (
	FieldFirstName   = "firstName"
	FieldMiddleName  = "middleName"
	FieldLastName    = "lastName"
	FieldFullName    = "fullName"
	FieldClassSec    = "classSec"
	FieldClassRoll   = "classRoll"
	FieldStuEmail    = "stuEmail"
	FieldCollegeName = "collegeName"
	FieldAge         = "age"
	FieldSpace       = "space"
	FieldMarksBEE    = "marks_bee"
)

// Fields holds the flattened display values of one record, keyed by field
// name.
type Fields map[string]string

// DefaultIDMap maps field names to the element ids they are written into.
func DefaultIDMap() map[string]string {
	return map[string]string{
		FieldFirstName:  "firstName",
		FieldMiddleName: "middleName",
		FieldLastName:   "lastName",
		FieldFullName:   "fullName",
		FieldClassSec:   "classSec",
		FieldClassRoll:  "classRoll",
		FieldStuEmail:   "email",
		FieldAge:        "age",
	}
}

// firstOf returns the first truthy value among paths, or Absent.
func firstOf(rec Value, paths ...string) Value {
	for _, p := range paths {
		if v := rec.Lookup(p); v.Truthy() {
			return v
		}
	}
	return Absent()
}

// joinTruthy joins the display text of the truthy values with single spaces.
func joinTruthy(vs ...Value) string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		if v.Truthy() {
			parts = append(parts, v.String())
		}
	}
	return strings.Join(parts, " ")
}

// BuildFields flattens rec into display values, trying each alias spelling
// in turn. Falsy values fall through to the next alias. An absent record
// yields nil.
func BuildFields(rec Value) Fields {
	if !rec.Truthy() {
		return nil
	}
	first := firstOf(rec, "First Name", "firstName")
	middle := firstOf(rec, "Middle Name", "middleName")
	last := firstOf(rec, "Last Name", "lastName")

	full := joinTruthy(first, middle, last)
	if full == "" {
		full = firstOf(rec, "fullName").String()
	}

	return Fields{
		FieldFirstName:   first.String(),
		FieldMiddleName:  middle.String(),
		FieldLastName:    last.String(),
		FieldFullName:    full,
		FieldClassSec:    firstOf(rec, "section", "classSec").String(),
		FieldClassRoll:   firstOf(rec, "rollNum", "roll", "rollNumber").String(),
		FieldStuEmail:    firstOf(rec, "email", "Email", "stuEmail").String(),
		FieldCollegeName: firstOf(rec, "Collage Name", "college").String(),
		FieldAge:         firstOf(rec, "Age", "age").String(),
		FieldSpace:       " ",
		FieldMarksBEE:    firstOf(rec, "Marks.BEE", "marks.BEE").String(),
	}
}

// Derived holds the convenience values copied into their own store keys
// after login.
type Derived struct {
	FullName  string
	ClassSec  string
	ClassRoll string
	StuEmail  string
}

// Derive computes the convenience values from rec.
func Derive(rec Value) Derived {
	return Derived{
		FullName:  joinTruthy(rec.Lookup("firstName"), rec.Lookup("middleName"), rec.Lookup("lastName")),
		ClassSec:  firstOf(rec, "section").String(),
		ClassRoll: firstOf(rec, "rollNumber", "rollNum").String(),
		StuEmail:  firstOf(rec, "email").String(),
	}
}

// KeyValue is one store entry.
type KeyValue struct {
	Key   string
	Value string
}

// Pairs returns the derived values in the order they are written to the
// store.
func (d Derived) Pairs() []KeyValue {
	return []KeyValue{
		{KeyFullName, d.FullName},
		{KeyClassSec, d.ClassSec},
		{KeyClassRoll, d.ClassRoll},
		{KeyStuEmail, d.StuEmail},
	}
}

// ElementIDs maps each derived store key to the element id that displays it.
func ElementIDs() map[string]string {
	return map[string]string{
		KeyFullName:  "fullName",
		KeyClassSec:  "classSec",
		KeyClassRoll: "classRoll",
		KeyStuEmail:  "email",
	}
}
