// Package value implements the typed scalars that flow through a sweep:
// every raw parameter value is inferred once into a Bool, Int, Float or
// String and every later stage switches on that kind.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	String Kind = iota
	Bool
	Int
	Float
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "string"
	}
}

// Value is a tagged scalar. The zero Value is the empty String.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	// raw is the source text for values produced by Parse or decoded from
	// YAML. Empty for values built with the Of constructors.
	raw  string
}

func OfBool(b bool) Value { return Value{kind: Bool, b: b} }
func OfInt(i int64) Value { return Value{kind: Int, i: i} }
func OfFloat(f float64) Value { return Value{kind: Float, f: f} }
func OfString(s string) Value { return Value{kind: String, s: s} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) IsBool() bool { return v.kind == Bool }
func (v Value) IsNumeric() bool { return v.kind == Int || v.kind == Float }

// Parse infers a typed value from raw text: "true"/"false" in any case
// become Bool, then base-10 integers, then floats; anything else stays a
// String. Parse never fails.
func Parse(raw string) Value {
	v := infer(raw)
	v.raw = raw
	return v
}

func infer(raw string) Value {
	switch strings.ToLower(raw) {
	case "true":
		return OfBool(true)
	case "false":
		return OfBool(false)
	}
	trimmed := strings.TrimSpace(raw)
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return OfInt(i)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return OfFloat(f)
	}
	return OfString(raw)
}

// Of converts a native Go scalar into a Value. Typed inputs pass through
// unchanged, strings go through Parse.
func Of(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		return t, nil
	case string:
		return Parse(t), nil
	case bool:
		return OfBool(t), nil
	case int:
		return OfInt(int64(t)), nil
	case int8:
		return OfInt(int64(t)), nil
	case int16:
		return OfInt(int64(t)), nil
	case int32:
		return OfInt(int64(t)), nil
	case int64:
		return OfInt(t), nil
	case uint:
		return OfInt(int64(t)), nil
	case uint8:
		return OfInt(int64(t)), nil
	case uint16:
		return OfInt(int64(t)), nil
	case uint32:
		return OfInt(int64(t)), nil
	case uint64:
		if t > math.MaxInt64 {
			return Value{}, fmt.Errorf("integer %d overflows int64", t)
		}
		return OfInt(int64(t)), nil
	case float32:
		return OfFloat(float64(t)), nil
	case float64:
		return OfFloat(t), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", x)
	}
}

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == Bool }
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == Int }
func (v Value) AsString() (string, bool) { return v.s, v.kind == String }

// AsFloat returns the numeric value of an Int or Float.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case Float:
		return v.f, true
	case Int:
		return float64(v.i), true
	}
	return 0, false
}

// String renders the value in its typed textual form. Integral floats keep
// a trailing ".0" so the rendering parses back to a Float.
func (v Value) String() string {
	switch v.kind {
	case Bool:
		return strconv.FormatBool(v.b)
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return formatFloat(v.f)
	default:
		return v.s
	}
}

// Text returns the text the value was parsed from, falling back to String
// for constructed values. File names and lookup keys use Text so that "0100"
// stays "0100".
func (v Value) Text() string {
	if v.raw != "" {
		return v.raw
	}
	return v.String()
}

// Equal compares kind and typed content. Source text is ignored.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Bool:
		return v.b == o.b
	case Int:
		return v.i == o.i
	case Float:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	default:
		return v.s == o.s
	}
}

func (v Value) GoString() string {
	return fmt.Sprintf("value.%s(%s)", v.kind, v.String())
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e16 {
		return strconv.FormatFloat(f, 'f', -1, 64) + ".0"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
