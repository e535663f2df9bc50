package layered

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ValueType is the set of scalar kinds an option accepts.
// The four scalar kinds are single bits so a declared type can be a union of them.
type ValueType uint8

const (
	TypeInteger ValueType = 1 << iota
	TypeFloat
	TypeBool
	TypeString
	// TypePositional marks a spec that describes a positional placeholder
	// rather than an option. It is never matched against tokens.
	TypePositional

	// TypeAny accepts every scalar kind
	TypeAny = TypeInteger | TypeFloat | TypeBool | TypeString
)

// Accepts reports whether a value of kind actual type-checks against t.
// Float options also accept Integer values, which are widened on conform:
// "-ratio 3" is a valid float even though "3" coerces to Integer. This is a
// deliberate compatibility rule, not a type mismatch.
func (t ValueType) Accepts(actual ValueType) bool {
	if t&TypeFloat != 0 && actual == TypeInteger {
		return true
	}
	return t&TypeAny&actual != 0
}

// Numeric reports whether t accepts only numbers.
// Options of these types may consume marker-prefixed values such as "-5".
func (t ValueType) Numeric() bool {
	return t != 0 && t&^(TypeInteger|TypeFloat) == 0
}

func (t ValueType) valid() bool {
	return t == TypePositional || (t != 0 && t&^TypeAny == 0)
}

// String returns the lower-case name of the type
func (t ValueType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeAny:
		return "any"
	case TypePositional:
		return "positional"
	}
	if t.valid() {
		parts := make([]string, 0, 4)
		for _, k := range []ValueType{TypeInteger, TypeFloat, TypeBool, TypeString} {
			if t&k != 0 {
				parts = append(parts, k.String())
			}
		}
		return strings.Join(parts, "|")
	}
	return fmt.Sprintf("ValueType(%d)", uint8(t))
}

// ParseValueType converts a type name ("integer", "int", "float", "bool",
// "string", "any", "positional") into a ValueType.
func ParseValueType(name string) (ValueType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "integer", "int":
		return TypeInteger, nil
	case "float", "float64", "number":
		return TypeFloat, nil
	case "bool", "boolean":
		return TypeBool, nil
	case "string", "str":
		return TypeString, nil
	case "any":
		return TypeAny, nil
	case "positional", "reminder":
		return TypePositional, nil
	}
	return 0, fmt.Errorf("unknown value type %q", name)
}

// Value is a single typed scalar. Exactly one variant is active and the
// kind is fixed at construction.
type Value struct {
	kind ValueType
	i    int64
	f    float64
	b    bool
	s    string
}

// IntValue returns an Integer value
func IntValue(v int64) Value { return Value{kind: TypeInteger, i: v} }

// FloatValue returns a Float value
func FloatValue(v float64) Value { return Value{kind: TypeFloat, f: v} }

// BoolValue returns a Bool value
func BoolValue(v bool) Value { return Value{kind: TypeBool, b: v} }

// StringValue returns a String value
func StringValue(v string) Value { return Value{kind: TypeString, s: v} }

// Kind returns the active variant.
func (v Value) Kind() ValueType { return v.kind }

// Int returns the integer payload and whether the value is an Integer.
func (v Value) Int() (int64, bool) { return v.i, v.kind == TypeInteger }

// Float returns the float payload and whether the value is a Float.
func (v Value) Float() (float64, bool) { return v.f, v.kind == TypeFloat }

// Bool returns the bool payload and whether the value is a Bool.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == TypeBool }

// Str returns the string payload and whether the value is a String.
func (v Value) Str() (string, bool) { return v.s, v.kind == TypeString }

// String formats the payload the way it would be typed on a command line.
func (v Value) String() string {
	switch v.kind {
	case TypeInteger:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeBool:
		return strconv.FormatBool(v.b)
	case TypeString:
		return v.s
	}
	return ""
}

// Coerce infers the type of a single raw token.
// Precedence is fixed: whole-token base-10 integer, then whole-token float,
// then the exact words "true"/"false", then the raw string. Integers that
// overflow int64 fall through to Float, and floats out of float64 range
// become ±Inf.
func Coerce(token string) Value {
	if i, err := strconv.ParseInt(token, 10, 64); err == nil {
		return IntValue(i)
	}
	// ParseFloat also takes words such as "inf" and "NaN"; a float literal
	// here must contain at least one digit.
	if strings.ContainsAny(token, "0123456789") {
		f, err := strconv.ParseFloat(token, 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return FloatValue(f)
		}
	}
	switch token {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}
	return StringValue(token)
}

// conform checks v against t, widening an Integer to Float when t takes
// floats but not integers.
func conform(t ValueType, v Value) (Value, bool) {
	if !t.Accepts(v.kind) {
		return v, false
	}
	if v.kind == TypeInteger && t&TypeInteger == 0 {
		return FloatValue(float64(v.i)), true
	}
	return v, true
}

// defaultValue is synthesized for an option that recorded no values.
func defaultValue(t ValueType) Value {
	switch t {
	case TypeInteger:
		return IntValue(0)
	case TypeFloat:
		return FloatValue(0)
	case TypeString:
		return StringValue("")
	default:
		// Bool and any union of kinds read as "present"
		return BoolValue(true)
	}
}
