// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package constraint

import "strings"

// Bound is one end of an Interval.
type Bound struct {
	Value     Value
	Inclusive bool
}

// IncludeBound returns an inclusive bound on v.
func IncludeBound(v Value) Bound { return Bound{Value: v, Inclusive: true} }

// ExcludeBound returns an exclusive bound on v.
func ExcludeBound(v Value) Bound { return Bound{Value: v} }

// IsConstant returns false if the bound is a placeholder.
func (b Bound) IsConstant() bool {
	return b.Value.IsConstant()
}

// Equal returns true if the two bounds are identical.
func (b Bound) Equal(other Bound) bool {
	return b.Inclusive == other.Inclusive && b.Value.Equal(other.Value)
}

// Interval is a range of values with a low and a high bound. It is the atom
// of an IntervalExpr.
type Interval struct {
	Low  Bound
	High Bound
}

// MakeInterval constructs an interval from two bounds.
func MakeInterval(low, high Bound) Interval {
	return Interval{Low: low, High: high}
}

// MakePoint returns the interval [v, v].
func MakePoint(v Value) Interval {
	return Interval{Low: IncludeBound(v), High: IncludeBound(v)}
}

// FullyOpenInterval returns [-inf, +inf], which matches every value.
func FullyOpenInterval() Interval {
	return Interval{Low: IncludeBound(MinKey()), High: IncludeBound(MaxKey())}
}

// IsConstant returns true if neither bound is a placeholder.
func (i Interval) IsConstant() bool {
	return i.Low.IsConstant() && i.High.IsConstant()
}

// IsFullyOpen returns true if the interval is [-inf, +inf].
func (i Interval) IsFullyOpen() bool {
	return i.Low.Value.Kind == MinKeyKind && i.High.Value.Kind == MaxKeyKind
}

// IsEquality returns true if the interval matches exactly one constant value.
func (i Interval) IsEquality() bool {
	return i.IsConstant() && i.Low.Inclusive && i.High.Inclusive &&
		i.Low.Value.Compare(i.High.Value) == 0
}

// IsOpenRange returns true if exactly one of the bounds is -inf or +inf, as
// in x > 5.
func (i Interval) IsOpenRange() bool {
	lowOpen := i.Low.Value.Kind == MinKeyKind
	highOpen := i.High.Value.Kind == MaxKeyKind
	return lowOpen != highOpen
}

// Equal returns true if the two intervals are identical.
func (i Interval) Equal(other Interval) bool {
	return i.Low.Equal(other.Low) && i.High.Equal(other.High)
}

func (i Interval) String() string {
	var buf strings.Builder
	i.format(&buf)
	return buf.String()
}

func (i Interval) format(buf *strings.Builder) {
	if i.Low.Inclusive {
		buf.WriteByte('[')
	} else {
		buf.WriteByte('(')
	}
	buf.WriteString(i.Low.Value.String())
	buf.WriteString(", ")
	buf.WriteString(i.High.Value.String())
	if i.High.Inclusive {
		buf.WriteByte(']')
	} else {
		buf.WriteByte(')')
	}
}
