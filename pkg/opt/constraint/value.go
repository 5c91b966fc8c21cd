// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package constraint

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ValueKind is the type of a Value. Kinds are declared in their sort order:
// values of different kinds compare by kind first.
type ValueKind uint8

const (
	// MinKeyKind sorts before every other value.
	MinKeyKind ValueKind = iota
	NullKind
	NumberKind
	StringKind
	// ArrayKind only represents the empty array. It is the smallest array
	// value and is used as the lower bound of "any array" intervals.
	ArrayKind
	BoolKind
	// MaxKeyKind sorts after every other value.
	MaxKeyKind

	// PlaceholderKind is a bound whose value is not known at optimization
	// time, like a parameter. Placeholders are not comparable.
	PlaceholderKind
)

var kindNames = [...]string{
	MinKeyKind:      "minkey",
	NullKind:        "null",
	NumberKind:      "number",
	StringKind:      "string",
	ArrayKind:       "array",
	BoolKind:        "bool",
	MaxKeyKind:      "maxkey",
	PlaceholderKind: "placeholder",
}

func (k ValueKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ValueKind(%d)", k)
}

// Value is a constant (or placeholder) interval bound.
type Value struct {
	Kind ValueKind
	Num  float64
	// Str holds the string value, or the placeholder name.
	Str  string
	Bool bool
}

// MinKey returns the value that sorts before every other value.
func MinKey() Value { return Value{Kind: MinKeyKind} }

// MaxKey returns the value that sorts after every other value.
func MaxKey() Value { return Value{Kind: MaxKeyKind} }

// Null returns the null value.
func Null() Value { return Value{Kind: NullKind} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{Kind: NumberKind, Num: f} }

// String returns a string value.
func String(s string) Value { return Value{Kind: StringKind, Str: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: BoolKind, Bool: b} }

// EmptyArray returns the empty array value.
func EmptyArray() Value { return Value{Kind: ArrayKind} }

// Placeholder returns a non-constant value with the given name.
func Placeholder(name string) Value { return Value{Kind: PlaceholderKind, Str: name} }

// IsConstant returns false for placeholders.
func (v Value) IsConstant() bool {
	return v.Kind != PlaceholderKind
}

// Compare returns -1, 0 or 1 depending on whether v sorts before, equal to,
// or after other. It panics if either value is a placeholder.
func (v Value) Compare(other Value) int {
	if !v.IsConstant() || !other.IsConstant() {
		panic(errors.AssertionFailedf("cannot compare placeholder values %s and %s", v, other))
	}
	if v.Kind != other.Kind {
		if v.Kind < other.Kind {
			return -1
		}
		return 1
	}
	switch v.Kind {
	case NumberKind:
		switch {
		case v.Num < other.Num:
			return -1
		case v.Num > other.Num:
			return 1
		}
		return 0
	case StringKind:
		return strings.Compare(v.Str, other.Str)
	case BoolKind:
		switch {
		case v.Bool == other.Bool:
			return 0
		case !v.Bool:
			return -1
		}
		return 1
	}
	return 0
}

// Equal returns true if the two values are identical. Unlike Compare, it
// accepts placeholders, which are equal if they have the same name.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	if v.Kind == PlaceholderKind {
		return v.Str == other.Str
	}
	return v.Compare(other) == 0
}

// String formats the value the way ParseIntervalExpr accepts it.
func (v Value) String() string {
	switch v.Kind {
	case MinKeyKind:
		return "-inf"
	case MaxKeyKind:
		return "+inf"
	case NullKind:
		return "null"
	case NumberKind:
		if math.IsInf(v.Num, 0) || math.IsNaN(v.Num) {
			return fmt.Sprintf("%v", v.Num)
		}
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case StringKind:
		return "'" + strings.ReplaceAll(v.Str, "'", "''") + "'"
	case ArrayKind:
		return "[]"
	case BoolKind:
		return strconv.FormatBool(v.Bool)
	case PlaceholderKind:
		return "?" + v.Str
	}
	return fmt.Sprintf("<%s>", v.Kind)
}
