package parser

import (
	"strconv"
	"strings"
)

// ValueKind discriminates the argument value variants the invocation syntax
// can express.
type ValueKind int

const (
	// ValueString covers quoted strings and bare identifiers
	ValueString ValueKind = iota

	// ValueNumber covers integer and float literals
	ValueNumber

	// ValueBool covers true/false literals (case-insensitive in source)
	ValueBool

	// ValueArray covers bracketed lists [a, b, c]
	ValueArray
)

// String returns the string representation of ValueKind
func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValueBool:
		return "boolean"
	case ValueArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is one parsed argument value.
type Value struct {
	Kind  ValueKind
	Str   string  // ValueString
	Num   float64 // ValueNumber
	Bool  bool    // ValueBool
	Elems []Value // ValueArray
}

// Text returns the canonical string form of the value: quoted strings
// verbatim, numbers without trailing zeros, booleans lowercase, arrays
// comma-joined. Canonical forms feed valueMap lookups and {value}
// substitution, so they must be deterministic.
func (v Value) Text() string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValueArray:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = e.Text()
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// StringValue builds a ValueString.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// NumberValue builds a ValueNumber.
func NumberValue(n float64) Value { return Value{Kind: ValueNumber, Num: n} }

// BoolValue builds a ValueBool.
func BoolValue(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

// ArrayValue builds a ValueArray.
func ArrayValue(elems ...Value) Value { return Value{Kind: ValueArray, Elems: elems} }
