// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package constraint

import "strings"

// Conjunction is an AND of intervals on the same value.
type Conjunction struct {
	Atoms []Interval
}

// IntervalExpr is a boolean expression over intervals in disjunctive normal
// form: an OR of Conjunctions. The zero value has no disjuncts and matches
// nothing.
type IntervalExpr struct {
	Disjuncts []Conjunction
}

// SingleIntervalExpr returns an expression with a single disjunct containing
// a single interval.
func SingleIntervalExpr(i Interval) IntervalExpr {
	return IntervalExpr{Disjuncts: []Conjunction{{Atoms: []Interval{i}}}}
}

// arrayOnlyInterval covers every array value and nothing else: arrays sort
// after strings and before booleans, and the empty array is the smallest
// array.
var arrayOnlyInterval = MakeInterval(IncludeBound(EmptyArray()), ExcludeBound(Bool(false)))

// ArrayOnlyIntervalExpr returns the interval expression that a "value is an
// array" predicate converts to.
func ArrayOnlyIntervalExpr() IntervalExpr {
	return SingleIntervalExpr(arrayOnlyInterval)
}

// IsArrayOnly returns true if e is exactly the array-only interval
// expression.
func (e IntervalExpr) IsArrayOnly() bool {
	return len(e.Disjuncts) == 1 && len(e.Disjuncts[0].Atoms) == 1 &&
		e.Disjuncts[0].Atoms[0].Equal(arrayOnlyInterval)
}

// Equal returns true if the two expressions have the same structure and the
// same intervals in the same order.
func (e IntervalExpr) Equal(other IntervalExpr) bool {
	if len(e.Disjuncts) != len(other.Disjuncts) {
		return false
	}
	for i := range e.Disjuncts {
		a, b := e.Disjuncts[i].Atoms, other.Disjuncts[i].Atoms
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if !a[j].Equal(b[j]) {
				return false
			}
		}
	}
	return true
}

// IsConstant returns true if no interval in the expression has a
// placeholder bound.
func (e IntervalExpr) IsConstant() bool {
	for _, d := range e.Disjuncts {
		for _, a := range d.Atoms {
			if !a.IsConstant() {
				return false
			}
		}
	}
	return true
}

// String formats the expression the way ParseIntervalExpr accepts it, for
// example "[1, 5] ^ (2, +inf] U [10, 10]".
func (e IntervalExpr) String() string {
	if e.IsArrayOnly() {
		return arrayOnlyKeyword
	}
	var buf strings.Builder
	for i, d := range e.Disjuncts {
		if i > 0 {
			buf.WriteString(" U ")
		}
		for j, a := range d.Atoms {
			if j > 0 {
				buf.WriteString(" ^ ")
			}
			a.format(&buf)
		}
	}
	return buf.String()
}
