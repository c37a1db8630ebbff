package profile

import (
	"math"
	"testing"
)

func sampleRecord() Value {
	return Map(map[string]Value{
		"firstName": String("Ann"),
		"age":       Number(20),
		"active":    Bool(true),
		"nickname":  Null(),
		"marks": Map(map[string]Value{
			"BEE": Number(88),
			"AC":  String("91"),
		}),
		"tags": List(String("a"), String("b")),
	})
}

func TestLookup(t *testing.T) {
	rec := sampleRecord()

	tests := []struct {
		path     string
		wantKind Kind
		want     string
	}{
		{"firstName", KindString, "Ann"},
		{"age", KindNumber, "20"},
		{"active", KindBool, "true"},
		{"marks.BEE", KindNumber, "88"},
		{"marks.AC", KindString, "91"},
		{"tags.1", KindString, "b"},
		{"tags.7", KindAbsent, ""},
		{"nickname", KindAbsent, ""},
		{"nickname.first", KindAbsent, ""},
		{"missing", KindAbsent, ""},
		{"missing.deeper.still", KindAbsent, ""},
		{"firstName.length", KindAbsent, ""},
		{"", KindAbsent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := rec.Lookup(tt.path)
			if got.Kind() != tt.wantKind {
				t.Errorf("Lookup(%q).Kind() = %v, want %v", tt.path, got.Kind(), tt.wantKind)
			}
			if got.String() != tt.want {
				t.Errorf("Lookup(%q).String() = %q, want %q", tt.path, got.String(), tt.want)
			}
		})
	}
}

func TestLookupOnAbsent(t *testing.T) {
	if got := Absent().Lookup("a.b"); !got.IsAbsent() {
		t.Errorf("Absent().Lookup() = %v, want absent", got.Kind())
	}
	if got := String("x").Lookup("a"); !got.IsAbsent() {
		t.Errorf("String().Lookup() = %v, want absent", got.Kind())
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"absent", Absent(), false},
		{"null", Null(), false},
		{"empty string", String(""), false},
		{"string", String("x"), true},
		{"zero", Number(0), false},
		{"nan", Number(math.NaN()), false},
		{"number", Number(3), true},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"empty map", Map(nil), true},
		{"empty list", List(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueStringComposite(t *testing.T) {
	rec := Map(map[string]Value{
		"b": Number(2),
		"a": String("x"),
		"c": List(Number(1), Null()),
	})
	want := `{"a":"x","b":2,"c":[1,null]}`
	if got := rec.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want float64
	}{
		{"number", Number(2.5), 2.5},
		{"numeric string", String(" 12 "), 12},
		{"empty string", String(""), 0},
		{"true", Bool(true), 1},
		{"null", Null(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Float(); got != tt.want {
				t.Errorf("Float() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := Absent().Float(); !math.IsNaN(got) {
		t.Errorf("Absent().Float() = %v, want NaN", got)
	}
	if got := String("abc").Float(); !math.IsNaN(got) {
		t.Errorf("String(abc).Float() = %v, want NaN", got)
	}
}

func TestKindString(t *testing.T) {
	if KindMap.String() != "map" {
		t.Errorf("KindMap.String() = %q", KindMap.String())
	}
	if Kind(42).String() != "kind(42)" {
		t.Errorf("Kind(42).String() = %q", Kind(42).String())
	}
}
