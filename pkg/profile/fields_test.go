package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, raw string) Value {
	t.Helper()
	rec, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", raw, err)
	}
	return rec
}

func TestBuildFields(t *testing.T) {
	rec := mustParse(t, `{
		"First Name": "Ann",
		"middleName": "",
		"lastName": "Lee",
		"section": "B",
		"rollNum": 0,
		"rollNumber": "2021-17",
		"Email": "ann@example.com",
		"Collage Name": "City College",
		"age": 20,
		"marks": {"BEE": 88}
	}`)

	want := Fields{
		FieldFirstName:   "Ann",
		FieldMiddleName:  "",
		FieldLastName:    "Lee",
		FieldFullName:    "Ann Lee",
		FieldClassSec:    "B",
		FieldClassRoll:   "2021-17",
		FieldStuEmail:    "ann@example.com",
		FieldCollegeName: "City College",
		FieldAge:         "20",
		FieldSpace:       " ",
		FieldMarksBEE:    "88",
	}

	if diff := cmp.Diff(want, BuildFields(rec)); diff != "" {
		t.Errorf("BuildFields() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFieldsFullNameFallback(t *testing.T) {
	rec := mustParse(t, `{"fullName": "Ann Lee", "Marks": {"BEE": "A+"}}`)
	got := BuildFields(rec)
	if got[FieldFullName] != "Ann Lee" {
		t.Errorf("fullName = %q, want %q", got[FieldFullName], "Ann Lee")
	}
	if got[FieldMarksBEE] != "A+" {
		t.Errorf("marks_bee = %q, want %q", got[FieldMarksBEE], "A+")
	}
}

func TestBuildFieldsAbsent(t *testing.T) {
	if got := BuildFields(Absent()); got != nil {
		t.Errorf("BuildFields(Absent()) = %v, want nil", got)
	}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Derived
	}{
		{
			name: "all fields",
			raw:  `{"firstName":"Ann","middleName":"M","lastName":"Lee","section":"B","rollNumber":17,"email":"a@x.io"}`,
			want: Derived{FullName: "Ann M Lee", ClassSec: "B", ClassRoll: "17", StuEmail: "a@x.io"},
		},
		{
			name: "roll falls back to rollNum",
			raw:  `{"firstName":"Ann","rollNum":"R9"}`,
			want: Derived{FullName: "Ann", ClassRoll: "R9"},
		},
		{
			name: "aliases with spaces are ignored",
			raw:  `{"First Name":"Ann"}`,
			want: Derived{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Derive(mustParse(t, tt.raw))); diff != "" {
				t.Errorf("Derive() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDerivedPairs(t *testing.T) {
	d := Derived{FullName: "Ann Lee", ClassSec: "B", ClassRoll: "17", StuEmail: "a@x.io"}
	want := []KeyValue{
		{KeyFullName, "Ann Lee"},
		{KeyClassSec, "B"},
		{KeyClassRoll, "17"},
		{KeyStuEmail, "a@x.io"},
	}
	if diff := cmp.Diff(want, d.Pairs()); diff != "" {
		t.Errorf("Pairs() mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultIDMap(t *testing.T) {
	ids := DefaultIDMap()
	if ids[FieldStuEmail] != "email" {
		t.Errorf("stuEmail id = %q, want email", ids[FieldStuEmail])
	}
	ids[FieldAge] = "changed"
	if DefaultIDMap()[FieldAge] != "age" {
		t.Error("DefaultIDMap should return a fresh map")
	}
}
