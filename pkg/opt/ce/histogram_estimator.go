// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ce

import (
	"context"
	"math"
	"time"

	"github.com/cockroachdb/docce/pkg/opt"
	"github.com/cockroachdb/docce/pkg/opt/constraint"
	"github.com/cockroachdb/docce/pkg/opt/memo"
	"github.com/cockroachdb/docce/pkg/opt/props"
	"github.com/cockroachdb/docce/pkg/opt/stats"
	"github.com/cockroachdb/docce/pkg/util/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/google/btree"
)

// HistogramEstimator estimates cardinality from the histograms of a single
// collection. It holds only immutable state, so one estimator can serve
// concurrent DeriveCE calls.
type HistogramEstimator struct {
	stats     *stats.CollectionStatistics
	combiner  Combiner
	intervals IntervalEstimator
	fallback  CardinalityEstimator
	metrics   *Metrics

	// missingHistogram rate limits the warning about paths without
	// histograms.
	missingHistogram *log.EveryN
}

var _ CardinalityEstimator = &HistogramEstimator{}

// NewHistogramEstimator returns an estimator over the given statistics.
func NewHistogramEstimator(st *stats.CollectionStatistics, opts Options) *HistogramEstimator {
	return &HistogramEstimator{
		stats:            st,
		combiner:         opts.combiner(),
		intervals:        opts.intervalEstimator(),
		fallback:         opts.fallback(st.Cardinality()),
		metrics:          opts.Metrics,
		missingHistogram: log.Every(time.Minute),
	}
}

// DeriveCE is part of the CardinalityEstimator interface. It makes a single
// bottom-up pass over the plan rooted at n. A path that cannot be used as a
// histogram key results in an assertion error wrapping
// ErrUnsupportedPathShape.
func (e *HistogramEstimator) DeriveCE(
	ctx context.Context, md *opt.Metadata, mem *memo.Memo, logical *props.Logical, n memo.Node,
) (card float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = opt.CatchOptimizerError(r)
		}
	}()
	t := histogramTransport{
		ctx: logtags.AddTag(ctx, "histogram-ce", nil),
		e:   e,
		md:  md,
		mem: mem,
	}
	return t.derive(n, logical), nil
}

// histogramTransport computes the estimate of every node of one plan.
// Errors are raised as panics and recovered by DeriveCE.
type histogramTransport struct {
	ctx context.Context
	e   *HistogramEstimator
	md  *opt.Metadata
	mem *memo.Memo
}

func (t *histogramTransport) derive(n memo.Node, logical *props.Logical) float64 {
	inputs := make([]float64, n.ChildCount())
	for i := range inputs {
		inputs[i] = t.derive(n.Child(i), nil /* logical */)
	}

	switch n := n.(type) {
	case *memo.ScanNode:
		return t.e.stats.Cardinality()

	case *memo.RootNode:
		return inputs[0]

	case *memo.SargableNode:
		return t.sargable(n, logical, inputs[0])

	case *memo.DelegatorNode:
		g := t.mem.Group(n.Group)
		if l := g.Logical(); l.HasCardinality {
			return l.Cardinality
		}
		return t.derive(g.Representative(), g.Logical())
	}

	if opt.CanBeLogical(n.Op()) {
		return t.fallback(n, logical, inputs, reasonOtherKind)
	}
	return 0
}

// sargable scales the input cardinality by the combined selectivity of the
// node's requirements. If any requirement cannot be estimated from
// histograms, the whole node is estimated by the fallback instead.
func (t *histogramTransport) sargable(
	n *memo.SargableNode, logical *props.Logical, input float64,
) float64 {
	if input == 0 {
		t.e.metrics.zeroShortCircuit()
		return 0
	}

	conjuncts, missing, ok := groupRequirements(&n.Reqs, t.e.stats)
	if !ok {
		if t.e.missingHistogram.ShouldLog() {
			log.Warningf(t.ctx, "no histogram for path %q", missing)
		}
		return t.sargableFallback(n, logical, input, reasonMissingHistogram)
	}

	total := t.e.stats.Cardinality()
	var topLevel []props.Selectivity
	known := true
	conjuncts.Ascend(func(i btree.Item) bool {
		c := i.(*sargableConjunct)
		if len(c.intervals) == 0 && !c.includeScalar {
			sel := props.MakeSelectivityFromFraction(c.histogram.ArrayCount(), total)
			log.VEventf(t.ctx, 2, "path %q: array-only selectivity %s", c.path, sel)
			topLevel = append(topLevel, sel)
			return true
		}
		for _, e := range c.intervals {
			sel, ok := combineIntervalExpr(t.e.combiner, e,
				func(i constraint.Interval) (props.Selectivity, bool) {
					card, ok := t.e.intervals.EstimateInterval(c.histogram, i, input, c.includeScalar)
					if !ok {
						log.VEventf(t.ctx, 2, "path %q: cannot estimate %s", c.path, i)
						return props.Selectivity{}, false
					}
					log.VEventf(t.ctx, 2, "path %q: %s matches %.6g documents", c.path, i, card)
					return props.MakeSelectivityFromFraction(card, total), true
				},
			)
			if !ok {
				known = false
				return false
			}
			topLevel = append(topLevel, sel)
		}
		return true
	})
	if !known {
		return t.sargableFallback(n, logical, input, reasonUnknownInterval)
	}

	t.e.metrics.histogramNode()
	if len(topLevel) == 0 {
		return input
	}
	sel := t.e.combiner.Conjunction(topLevel)
	log.VEventf(t.ctx, 2, "sargable selectivity %s", sel)
	return input * sel.AsFloat()
}

// sargableFallback estimates a sargable node with the fallback. A filter
// never produces more documents than its input.
func (t *histogramTransport) sargableFallback(
	n *memo.SargableNode, logical *props.Logical, input float64, reason fallbackReason,
) float64 {
	return math.Min(t.fallback(n, logical, []float64{input}, reason), input)
}

// fallback estimates n with the fallback estimator. The fallback sees the
// children of n as delegators to the groups of a scratch memo, each carrying
// the estimate of that child from this pass.
func (t *histogramTransport) fallback(
	n memo.Node, logical *props.Logical, inputs []float64, reason fallbackReason,
) float64 {
	t.e.metrics.fallback(reason)
	mem := t.mem
	if len(inputs) > 0 {
		mem = &memo.Memo{}
		children := make([]memo.Node, len(inputs))
		for i, card := range inputs {
			id := mem.AddGroup(n.Child(i), props.Logical{}.WithCardinality(card))
			children[i] = &memo.DelegatorNode{Group: id}
		}
		n = memo.WithChildren(n, children)
	}
	card, err := t.e.fallback.DeriveCE(t.ctx, t.md, mem, logical, n)
	if err != nil {
		panic(errors.Wrapf(err, "fallback estimate of %s node", errors.Safe(n.Op().String())))
	}
	log.VEventf(t.ctx, 2, "%s node: fallback (%s) estimate %.6g", n.Op(), string(reason), card)
	return card
}
