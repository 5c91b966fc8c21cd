// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ce

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/docce/pkg/opt"
	"github.com/cockroachdb/docce/pkg/opt/constraint"
	"github.com/cockroachdb/docce/pkg/opt/props"
	"github.com/cockroachdb/errors"
)

// Combiner combines the selectivities of several predicates into one.
//
// Both operations require at least one input. A single input is returned
// unchanged, and the result does not depend on the order of the inputs. A
// conjunction is at most every input and at least their product. A
// disjunction is at least every input and at most one.
type Combiner interface {
	// Conjunction combines the selectivities of ANDed predicates.
	Conjunction(sels []props.Selectivity) props.Selectivity

	// Disjunction combines the selectivities of ORed predicates.
	Disjunction(sels []props.Selectivity) props.Selectivity

	fmt.Stringer
}

// ExponentialBackoff is a Combiner that assumes predicates are correlated.
// It sorts the selectivities from most to least selective and dampens each
// one by a halving exponent:
//
//	s0 * s1^(1/2) * s2^(1/4) * s3^(1/8)
//
// Only the first MaxElements selectivities are used. Disjunctions apply the
// same formula to the complements of the selectivities.
type ExponentialBackoff struct {
	MaxElements int
}

var _ Combiner = ExponentialBackoff{}

// DefaultCombiner returns the combiner used when none is configured.
func DefaultCombiner() Combiner {
	return ExponentialBackoff{MaxElements: opt.DefaultMaxBackoffElements}
}

// Conjunction is part of the Combiner interface.
func (b ExponentialBackoff) Conjunction(sels []props.Selectivity) props.Selectivity {
	sorted := sortedSelectivities(sels, false /* descending */)
	return b.backoff(sorted)
}

// Disjunction is part of the Combiner interface.
func (b ExponentialBackoff) Disjunction(sels []props.Selectivity) props.Selectivity {
	sorted := sortedSelectivities(sels, true /* descending */)
	if len(sorted) == 1 {
		return sorted[0]
	}
	largest := sorted[0]
	for i := range sorted {
		sorted[i] = sorted[i].Complement()
	}
	// Complementing twice can round below the largest input.
	return props.MaxSelectivity(b.backoff(sorted).Complement(), largest)
}

func (b ExponentialBackoff) backoff(sorted []props.Selectivity) props.Selectivity {
	n := len(sorted)
	if b.MaxElements > 0 && n > b.MaxElements {
		n = b.MaxElements
	}
	sel := sorted[0]
	exp := 1.0
	for i := 1; i < n; i++ {
		exp /= 2
		sel.Multiply(sorted[i].Pow(exp))
	}
	return sel
}

func (b ExponentialBackoff) String() string {
	return fmt.Sprintf("backoff(%d)", b.MaxElements)
}

// Independence is a Combiner that assumes predicates are independent: a
// conjunction is the product of the selectivities and a disjunction is one
// minus the product of their complements.
type Independence struct{}

var _ Combiner = Independence{}

// Conjunction is part of the Combiner interface.
func (Independence) Conjunction(sels []props.Selectivity) props.Selectivity {
	sel := props.OneSelectivity
	for _, s := range sortedSelectivities(sels, false /* descending */) {
		sel.Multiply(s)
	}
	return sel
}

// Disjunction is part of the Combiner interface.
func (Independence) Disjunction(sels []props.Selectivity) props.Selectivity {
	sorted := sortedSelectivities(sels, true /* descending */)
	if len(sorted) == 1 {
		return sorted[0]
	}
	notSel := props.OneSelectivity
	for _, s := range sorted {
		notSel.Multiply(s.Complement())
	}
	return props.MaxSelectivity(notSel.Complement(), sorted[0])
}

func (Independence) String() string {
	return "independence"
}

// CombinerByName returns the combiner with the given name: "backoff" or
// "independence". maxElements configures the backoff combiner.
func CombinerByName(name string, maxElements int) (Combiner, error) {
	switch name {
	case "backoff":
		if maxElements < 1 {
			return nil, errors.Newf("invalid number of backoff elements %d", maxElements)
		}
		return ExponentialBackoff{MaxElements: maxElements}, nil
	case "independence":
		return Independence{}, nil
	}
	return nil, errors.Newf("unknown combiner %q", name)
}

func requireSelectivities(sels []props.Selectivity) {
	if len(sels) == 0 {
		panic(errors.AssertionFailedf("cannot combine an empty set of selectivities"))
	}
}

// sortedSelectivities returns a sorted copy of sels. Combining in sorted
// order makes the floating point result independent of the input order.
func sortedSelectivities(sels []props.Selectivity, descending bool) []props.Selectivity {
	requireSelectivities(sels)
	sorted := make([]props.Selectivity, len(sels))
	copy(sorted, sels)
	sort.Slice(sorted, func(i, j int) bool {
		if descending {
			return sorted[i].AsFloat() > sorted[j].AsFloat()
		}
		return sorted[i].AsFloat() < sorted[j].AsFloat()
	})
	return sorted
}

// combineIntervalExpr combines the selectivities of the intervals of a DNF
// expression: the intervals of each conjunction with Conjunction and the
// conjunctions with Disjunction. It stops and returns ok=false as soon as
// estimate does.
func combineIntervalExpr(
	c Combiner,
	e constraint.IntervalExpr,
	estimate func(i constraint.Interval) (props.Selectivity, bool),
) (props.Selectivity, bool) {
	if len(e.Disjuncts) == 0 {
		// An empty disjunction matches nothing.
		return props.ZeroSelectivity, true
	}
	disjuncts := make([]props.Selectivity, 0, len(e.Disjuncts))
	for _, d := range e.Disjuncts {
		if len(d.Atoms) == 0 {
			disjuncts = append(disjuncts, props.OneSelectivity)
			continue
		}
		atoms := make([]props.Selectivity, 0, len(d.Atoms))
		for _, a := range d.Atoms {
			sel, ok := estimate(a)
			if !ok {
				return props.Selectivity{}, false
			}
			atoms = append(atoms, sel)
		}
		disjuncts = append(disjuncts, c.Conjunction(atoms))
	}
	return c.Disjunction(disjuncts), true
}
