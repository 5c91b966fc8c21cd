// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ce

import (
	"context"
	"math"

	"github.com/cockroachdb/docce/pkg/opt"
	"github.com/cockroachdb/docce/pkg/opt/constraint"
	"github.com/cockroachdb/docce/pkg/opt/memo"
	"github.com/cockroachdb/docce/pkg/opt/props"
	"github.com/cockroachdb/errors"
)

const (
	// Inputs with fewer documents than smallCardinality or
	// mediumCardinality get less selective range estimates, since ranges over
	// few values tend to cover a larger share of them.
	smallCardinality  = 20
	mediumCardinality = 100

	// This is the selectivity of a range bounded on both sides.
	smallClosedRangeSelectivity  = 0.5
	mediumClosedRangeSelectivity = 1.0 / 3.0
	largeClosedRangeSelectivity  = 0.2

	// This is the selectivity of a range bounded on one side only.
	smallOpenRangeSelectivity  = 0.7
	mediumOpenRangeSelectivity = 0.5
	largeOpenRangeSelectivity  = 1.0 / 3.0

	// arrayOnlySelectivity is used for the "value is an array" predicate.
	arrayOnlySelectivity = 0.5

	// unknownFilterSelectivity is used for filters that are not sargable.
	unknownFilterSelectivity = 0.1

	// groupByCardinalityRatio is the assumed ratio of groups to input
	// documents.
	groupByCardinalityRatio = 0.1

	// unwindCardinalityRatio is the assumed number of elements per unwound
	// array.
	unwindCardinalityRatio = 10
)

// HeuristicEstimator estimates cardinality from the shape of the plan
// alone, without histograms. It is the default fallback of the
// HistogramEstimator and is safe for concurrent use.
type HeuristicEstimator struct {
	combiner        Combiner
	scanCardinality float64
}

var _ CardinalityEstimator = &HeuristicEstimator{}

// NewHeuristicEstimator returns a heuristic estimator. Only the Combiner and
// FallbackScanCardinality options are used.
func NewHeuristicEstimator(opts Options) *HeuristicEstimator {
	return &HeuristicEstimator{combiner: opts.combiner(), scanCardinality: opts.scanCardinality()}
}

// DeriveCE is part of the CardinalityEstimator interface.
func (e *HeuristicEstimator) DeriveCE(
	ctx context.Context, md *opt.Metadata, mem *memo.Memo, logical *props.Logical, n memo.Node,
) (card float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = opt.CatchOptimizerError(r)
		}
	}()
	return e.derive(md, mem, n), nil
}

func (e *HeuristicEstimator) derive(md *opt.Metadata, mem *memo.Memo, n memo.Node) float64 {
	inputs := make([]float64, n.ChildCount())
	for i := range inputs {
		inputs[i] = e.derive(md, mem, n.Child(i))
	}

	switch t := n.(type) {
	case *memo.ScanNode:
		if def, ok := md.ScanDefinition(t.ScanDef); ok && def.Cardinality > 0 {
			return def.Cardinality
		}
		return e.scanCardinality

	case *memo.SargableNode:
		if inputs[0] == 0 {
			return 0
		}
		return inputs[0] * e.sargableSelectivity(&t.Reqs, inputs[0]).AsFloat()

	case *memo.FilterNode:
		return inputs[0] * unknownFilterSelectivity

	case *memo.EvaluationNode, *memo.CollationNode, *memo.RootNode:
		return inputs[0]

	case *memo.LimitSkipNode:
		card := math.Max(0, inputs[0]-float64(t.Skip))
		if t.Limit != memo.NoLimit {
			card = math.Min(card, float64(t.Limit))
		}
		return card

	case *memo.GroupByNode:
		card := inputs[0] * groupByCardinalityRatio
		if inputs[0] > 0 && card < 1 {
			card = 1
		}
		return card

	case *memo.UnionNode:
		var card float64
		for _, in := range inputs {
			card += in
		}
		return card

	case *memo.UnwindNode:
		return inputs[0] * unwindCardinalityRatio

	case *memo.DelegatorNode:
		g := mem.Group(t.Group)
		if l := g.Logical(); l.HasCardinality {
			return l.Cardinality
		}
		return e.derive(md, mem, g.Representative())

	case *memo.ReferencesNode, *memo.ExpressionBinderNode:
		return 0
	}
	panic(errors.AssertionFailedf("unhandled node kind %s", errors.Safe(n.Op().String())))
}

// sargableSelectivity estimates the selectivity of the requirements from the
// shape of their intervals.
func (e *HeuristicEstimator) sargableSelectivity(
	reqs *memo.Requirements, input float64,
) props.Selectivity {
	var topLevel []props.Selectivity
	reqs.ForEach(func(_ memo.ReqKey, req memo.Requirement) {
		if req.IsPerfOnly {
			return
		}
		if req.Intervals.IsArrayOnly() {
			topLevel = append(topLevel, props.MakeSelectivity(arrayOnlySelectivity))
			return
		}
		sel, _ := combineIntervalExpr(e.combiner, req.Intervals,
			func(i constraint.Interval) (props.Selectivity, bool) {
				return heuristicIntervalSelectivity(i, input), true
			},
		)
		topLevel = append(topLevel, sel)
	})
	if len(topLevel) == 0 {
		return props.OneSelectivity
	}
	return e.combiner.Conjunction(topLevel)
}

// heuristicIntervalSelectivity guesses the selectivity of an interval from
// its shape. Placeholder bounds are fine here.
func heuristicIntervalSelectivity(i constraint.Interval, input float64) props.Selectivity {
	lowOpen := i.Low.Value.Kind == constraint.MinKeyKind
	highOpen := i.High.Value.Kind == constraint.MaxKeyKind
	switch {
	case lowOpen && highOpen:
		return props.OneSelectivity

	case i.Low.Inclusive && i.High.Inclusive && i.Low.Value.Equal(i.High.Value):
		if input <= 1 {
			return props.OneSelectivity
		}
		return props.MakeSelectivity(1 / math.Sqrt(input))

	case lowOpen || highOpen:
		switch {
		case input < smallCardinality:
			return props.MakeSelectivity(smallOpenRangeSelectivity)
		case input < mediumCardinality:
			return props.MakeSelectivity(mediumOpenRangeSelectivity)
		}
		return props.MakeSelectivity(largeOpenRangeSelectivity)
	}

	switch {
	case input < smallCardinality:
		return props.MakeSelectivity(smallClosedRangeSelectivity)
	case input < mediumCardinality:
		return props.MakeSelectivity(mediumClosedRangeSelectivity)
	}
	return props.MakeSelectivity(largeClosedRangeSelectivity)
}
