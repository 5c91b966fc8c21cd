// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ce

import (
	"math"

	"github.com/cockroachdb/docce/pkg/opt/constraint"
	"github.com/cockroachdb/docce/pkg/opt/props"
)

// IntervalEstimator estimates how many documents have a value in an
// interval.
type IntervalEstimator interface {
	// EstimateInterval returns the estimated number of documents whose value
	// falls in the interval, out of scope documents. If includeScalar is
	// false, only arrays with an element in the interval are counted.
	//
	// It returns ok=false if it cannot estimate the interval. Otherwise the
	// result is in [0, scope].
	EstimateInterval(
		h *props.ArrayHistogram, i constraint.Interval, scope float64, includeScalar bool,
	) (card float64, ok bool)
}

// HistogramIntervalEstimator estimates intervals from the bucketed and
// per-type counts of an ArrayHistogram. Intervals with placeholder bounds
// cannot be estimated.
type HistogramIntervalEstimator struct{}

var _ IntervalEstimator = HistogramIntervalEstimator{}

// EstimateInterval is part of the IntervalEstimator interface.
func (HistogramIntervalEstimator) EstimateInterval(
	h *props.ArrayHistogram, i constraint.Interval, scope float64, includeScalar bool,
) (card float64, ok bool) {
	if !i.IsConstant() {
		return 0, false
	}
	if i.IsFullyOpen() {
		return scope, true
	}
	if i.IsEquality() {
		card = estimateEquality(h, i.Low.Value, includeScalar)
	} else {
		card = estimateRange(h, i, includeScalar)
	}
	switch {
	case card < 0:
		card = 0
	case card > scope:
		card = scope
	}
	return card, true
}

// estimateEquality counts the documents whose value is v, or whose array
// contains v.
func estimateEquality(h *props.ArrayHistogram, v constraint.Value, includeScalar bool) float64 {
	switch v.Kind {
	case constraint.MinKeyKind, constraint.MaxKeyKind:
		return 0
	case constraint.ArrayKind:
		return h.EmptyArrayCount()
	}
	card := math.Min(h.ArrayUnique().EqualCount(v), h.ArrayCount())
	if includeScalar {
		card += h.Scalar().EqualCount(v) + typeCount(h, v)
	}
	return card
}

// estimateRange counts the documents with a value in the interval. With
// includeScalar, an array counts if it has any element in the interval; this
// is estimated from the smallest and largest element of each array.
// Otherwise only array elements are counted, but each array at most once.
func estimateRange(h *props.ArrayHistogram, i constraint.Interval, includeScalar bool) float64 {
	if !includeScalar {
		card := h.ArrayUnique().RangeCount(i.Low, i.High)
		if card > h.ArrayCount() {
			card = h.ArrayCount()
		}
		return card
	}

	card := h.Scalar().RangeCount(i.Low, i.High)
	for _, v := range []constraint.Value{
		constraint.Null(), constraint.Bool(false), constraint.Bool(true),
	} {
		if contains(i, v) {
			card += typeCount(h, v)
		}
	}
	if !h.IsArray() {
		return card
	}

	// Arrays whose smallest element is at most the upper bound, minus those
	// whose largest element is below the lower bound.
	minKey := constraint.IncludeBound(constraint.MinKey())
	below := constraint.Bound{Value: i.Low.Value, Inclusive: !i.Low.Inclusive}
	arrays := h.ArrayMin().RangeCount(minKey, i.High) - h.ArrayMax().RangeCount(minKey, below)
	if nonEmpty := h.ArrayCount() - h.EmptyArrayCount(); arrays > nonEmpty {
		arrays = nonEmpty
	}
	if arrays > 0 {
		card += arrays
	}
	if contains(i, constraint.EmptyArray()) {
		card += h.EmptyArrayCount()
	}
	return card
}

// typeCount returns the number of documents with value v that are kept
// outside the bucketed histograms.
func typeCount(h *props.ArrayHistogram, v constraint.Value) float64 {
	types := h.TypeCounts()
	switch v.Kind {
	case constraint.NullKind:
		return types.Null
	case constraint.BoolKind:
		if v.Bool {
			return types.True
		}
		return types.False
	}
	return 0
}

// contains returns true if the constant interval contains v.
func contains(i constraint.Interval, v constraint.Value) bool {
	lo := i.Low.Value.Compare(v)
	if lo > 0 || (lo == 0 && !i.Low.Inclusive) {
		return false
	}
	hi := i.High.Value.Compare(v)
	return hi > 0 || (hi == 0 && i.High.Inclusive)
}
