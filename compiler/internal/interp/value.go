package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a runtime value. Arrays are held behind a pointer so index
// assignment and push are visible through every binding of the same array.
type Value interface {
	String() string
}

type IntVal int64

func (v IntVal) String() string { return strconv.FormatInt(int64(v), 10) }

type BoolVal bool

func (v BoolVal) String() string {
	if v {
		return "true"
	}
	return "false"
}

type CharVal rune

func (v CharVal) String() string { return string(rune(v)) }

type StrVal string

func (v StrVal) String() string { return string(v) }

type ArrayVal struct {
	Elems []Value
}

func (v *ArrayVal) String() string {
	parts := make([]string, len(v.Elems))
	for i, el := range v.Elems {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type StructVal struct {
	Name   string
	Fields map[string]Value
}

func (v *StructVal) String() string {
	parts := make([]string, 0, len(v.Fields))
	for name, f := range v.Fields {
		parts = append(parts, name+": "+f.String())
	}
	return v.Name + " { " + strings.Join(parts, ", ") + " }"
}

type EnumVal struct {
	Enum    string
	Variant string
	Payload Value // nil for unit variants
}

func (v *EnumVal) String() string {
	if v.Payload == nil {
		return v.Enum + "::" + v.Variant
	}
	return fmt.Sprintf("%s::%s(%s)", v.Enum, v.Variant, v.Payload)
}

// RangeVal is a half-open integer range, the value of `lo..hi`.
type RangeVal struct {
	Lo, Hi int64
}

func (v RangeVal) String() string {
	return fmt.Sprintf("%d..%d", v.Lo, v.Hi)
}

type UnitVal struct{}

func (UnitVal) String() string { return "()" }

// equal compares two values for == / != and match patterns.
func equal(a, b Value) bool {
	switch x := a.(type) {
	case IntVal:
		y, ok := b.(IntVal)
		return ok && x == y
	case BoolVal:
		y, ok := b.(BoolVal)
		return ok && x == y
	case CharVal:
		y, ok := b.(CharVal)
		return ok && x == y
	case StrVal:
		y, ok := b.(StrVal)
		return ok && x == y
	case *EnumVal:
		y, ok := b.(*EnumVal)
		if !ok || x.Enum != y.Enum || x.Variant != y.Variant {
			return false
		}
		if x.Payload == nil || y.Payload == nil {
			return x.Payload == nil && y.Payload == nil
		}
		return equal(x.Payload, y.Payload)
	case UnitVal:
		_, ok := b.(UnitVal)
		return ok
	}
	return false
}
