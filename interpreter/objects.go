package interpreter

import (
	"strconv"
	"strings"
)

// loxObject is the tagged runtime value: nil, boolean, number, string,
// callable, or instance.
type loxObject interface {
	// String is the representation used by `print` and string concatenation
	// (Glossary: "Stringification").
	String() string
	typeName() string
}

// loxNil is the single nil value.
type loxNil struct{}

func (loxNil) String() string  { return "nil" }
func (loxNil) typeName() string { return "nil" }

var theNil = loxNil{}

type loxBool bool

func (b loxBool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (loxBool) typeName() string { return "bool" }

// loxNumber is an IEEE-754 double. Stringification trims a trailing ".0" so
// that integral values round-trip without it.
type loxNumber float64

func (n loxNumber) String() string {
	s := strconv.FormatFloat(float64(n), 'f', -1, 64)
	return strings.TrimSuffix(s, ".0") // FormatFloat 'f' with -1 precision already prints integral values with no fraction; the trim is a guard
}
func (loxNumber) typeName() string { return "number" }

type loxString string

func (s loxString) String() string  { return string(s) }
func (loxString) typeName() string { return "string" }

// isTruthy implements the Glossary's Truthiness rule: only nil and the
// boolean false are falsy.
func isTruthy(v loxObject) bool {
	switch v := v.(type) {
	case loxNil:
		return false
	case loxBool:
		return bool(v)
	default:
		return true
	}
}

// equals implements value equality: nil equals only nil; scalars compare by
// kind and content; callables and instances compare by identity.
func equals(a, b loxObject) bool {
	switch a := a.(type) {
	case loxNil:
		_, ok := b.(loxNil)
		return ok
	case loxBool:
		bv, ok := b.(loxBool)
		return ok && a == bv
	case loxNumber:
		bv, ok := b.(loxNumber)
		return ok && a == bv
	case loxString:
		bv, ok := b.(loxString)
		return ok && a == bv
	case *loxInstance:
		bv, ok := b.(*loxInstance)
		return ok && a == bv
	case *LoxFunction:
		bv, ok := b.(*LoxFunction)
		return ok && a == bv
	case *LoxClass:
		bv, ok := b.(*LoxClass)
		return ok && a == bv
	case *nativeFunction:
		bv, ok := b.(*nativeFunction)
		return ok && a == bv
	default:
		return false
	}
}
