// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package props

import (
	"fmt"
	"math"
)

// Selectivity is the fraction of documents that survive a predicate. It is
// always in the range [0, 1].
type Selectivity struct {
	selectivity float64
}

var (
	// ZeroSelectivity is used in cases where selectivity is known to be zero.
	ZeroSelectivity = Selectivity{0}

	// OneSelectivity is used in cases where selectivity is known to be one.
	OneSelectivity = Selectivity{1}
)

// MakeSelectivity initializes and validates a float64 to ensure it is in a
// valid range. NaN is treated as one, since it carries no information.
func MakeSelectivity(sel float64) Selectivity {
	return Selectivity{selectivityInRange(sel)}
}

// MakeSelectivityFromFraction calculates selectivity as a fraction of a and b
// if a is less than b and returns OneSelectivity otherwise. A zero
// denominator also yields OneSelectivity.
func MakeSelectivityFromFraction(a, b float64) Selectivity {
	if a >= b || b == 0 {
		return OneSelectivity
	}
	return MakeSelectivity(a / b)
}

// AsFloat returns the private selectivity field, allowing it to be accessed
// outside of this package.
func (s Selectivity) AsFloat() float64 {
	return s.selectivity
}

// Multiply is a wrapper of Selectivity to multiply a selectivity with another
// selectivity.
func (s *Selectivity) Multiply(other Selectivity) {
	s.selectivity = selectivityInRange(s.selectivity * other.selectivity)
}

// Complement returns 1 - s.
func (s Selectivity) Complement() Selectivity {
	return Selectivity{selectivityInRange(1 - s.selectivity)}
}

// Pow returns s raised to the power exp.
func (s Selectivity) Pow(exp float64) Selectivity {
	return Selectivity{selectivityInRange(math.Pow(s.selectivity, exp))}
}

func (s Selectivity) String() string {
	return fmt.Sprintf("%.6g", s.selectivity)
}

// MaxSelectivity returns the larger value of two selectivities.
func MaxSelectivity(a, b Selectivity) Selectivity {
	if a.selectivity > b.selectivity {
		return a
	}
	return b
}

// selectivityInRange performs the range check, if the selectivity falls
// outside of the range, this method will return the appropriate min/max
// value.
func selectivityInRange(sel float64) float64 {
	switch {
	case math.IsNaN(sel):
		return 1
	case sel < 0:
		return 0
	case sel > 1:
		return 1
	default:
		return sel
	}
}
