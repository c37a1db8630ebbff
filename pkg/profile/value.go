package profile

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

var kindNames = [...]string{"absent", "null", "bool", "number", "string", "list", "map"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a read-only tagged value. The zero Value is Absent.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
	m    map[string]Value
}

// Absent returns the value of a missing key or path.
func Absent() Value { return Value{} }

// Null returns an explicit null.
func Null() Value { return Value{kind: KindNull} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List returns a list value holding vs.
func List(vs ...Value) Value { return Value{kind: KindList, list: vs} }

// Map returns a mapping value. The map is not copied; callers must not
// modify it afterwards.
func Map(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{kind: KindMap, m: m}
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the Absent variant.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Len returns the number of entries of a map or list, or 0.
func (v Value) Len() int {
	switch v.kind {
	case KindMap:
		return len(v.m)
	case KindList:
		return len(v.list)
	}
	return 0
}

// Get returns the child named key. Lists accept decimal indexes.
// Anything else yields Absent.
func (v Value) Get(key string) Value {
	switch v.kind {
	case KindMap:
		if c, ok := v.m[key]; ok {
			return c
		}
	case KindList:
		i, err := strconv.Atoi(key)
		if err == nil && i >= 0 && i < len(v.list) {
			return v.list[i]
		}
	}
	return Absent()
}

// Lookup walks a dotted path one segment at a time. A missing or null
// intermediate yields Absent, as does a null leaf.
func (v Value) Lookup(path string) Value {
	cur := v
	for _, seg := range strings.Split(path, ".") {
		if cur.kind == KindAbsent || cur.kind == KindNull {
			return Absent()
		}
		cur = cur.Get(seg)
	}
	if cur.kind == KindNull {
		return Absent()
	}
	return cur
}

// Truthy reports whether v counts as set when choosing between alias keys:
// absent, null, false, 0, NaN and "" are not.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindString:
		return v.str != ""
	case KindList, KindMap:
		return true
	}
	return false
}

// String renders v as display text. Absent and null render as "".
// Maps and lists render as compact JSON.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return FormatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList, KindMap:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
	return ""
}

// Float coerces v to a number. Strings go through ParseNumber; booleans
// become 0 or 1; null is 0; everything else is NaN.
func (v Value) Float() float64 {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString:
		return ParseNumber(v.str)
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindNull:
		return 0
	}
	return math.NaN()
}

// MarshalJSON encodes v. Absent, NaN and infinities encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return []byte(FormatNumber(v.num)), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindMap:
		return json.Marshal(v.m)
	}
	return []byte("null"), nil
}

// FromAny converts the output of a JSON, YAML or TOML decoder into a Value.
// Unknown types become Absent.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return Number(math.NaN())
		}
		return Number(f)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case []any:
		vs := make([]Value, len(t))
		for i, e := range t {
			vs[i] = FromAny(e)
		}
		return List(vs...)
	case []map[string]any:
		vs := make([]Value, len(t))
		for i, e := range t {
			vs[i] = FromAny(e)
		}
		return List(vs...)
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			m[k] = FromAny(e)
		}
		return Map(m)
	}
	return Absent()
}
