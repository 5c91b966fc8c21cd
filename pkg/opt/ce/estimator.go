// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package ce estimates the number of documents produced by the nodes of a
// logical plan.
//
// The HistogramEstimator walks the plan bottom up. Scans produce the
// collection's document count and sargable nodes scale their input by the
// selectivity of their interval requirements, which is computed from
// per-path histograms. Whenever the histograms are not enough to estimate a
// node, the whole node is handed to a fallback estimator, by default the
// HeuristicEstimator. Histogram-derived and heuristic numbers are never mixed
// within one node.
package ce

import (
	"context"

	"github.com/cockroachdb/docce/pkg/opt"
	"github.com/cockroachdb/docce/pkg/opt/memo"
	"github.com/cockroachdb/docce/pkg/opt/props"
)

// CardinalityEstimator estimates the number of documents produced by a
// plan node.
type CardinalityEstimator interface {
	// DeriveCE returns the estimated cardinality of n. The metadata, memo and
	// logical properties describe the context of n and are not modified.
	// logical holds the properties of n itself and may be nil.
	DeriveCE(
		ctx context.Context, md *opt.Metadata, mem *memo.Memo, logical *props.Logical, n memo.Node,
	) (float64, error)
}

// Options configures the estimators.
type Options struct {
	// Combiner combines selectivities. Defaults to DefaultCombiner().
	Combiner Combiner

	// IntervalEstimator estimates single intervals from histograms. Defaults
	// to HistogramIntervalEstimator.
	IntervalEstimator IntervalEstimator

	// Fallback estimates nodes that can't be estimated from histograms.
	// Defaults to a HeuristicEstimator with the same combiner whose scans
	// hold as many documents as the collection statistics.
	Fallback CardinalityEstimator

	// FallbackScanCardinality is the number of documents a HeuristicEstimator
	// assumes for a scan of an unknown collection. The default fallback of a
	// HistogramEstimator only uses it when the statistics describe an empty
	// collection. Defaults to opt.DefaultScanCardinality.
	FallbackScanCardinality float64

	// Metrics is optional.
	Metrics *Metrics
}

func (o Options) combiner() Combiner {
	if o.Combiner == nil {
		return DefaultCombiner()
	}
	return o.Combiner
}

func (o Options) intervalEstimator() IntervalEstimator {
	if o.IntervalEstimator == nil {
		return HistogramIntervalEstimator{}
	}
	return o.IntervalEstimator
}

// fallback returns the configured fallback, or a HeuristicEstimator whose
// scans hold scanCard documents.
func (o Options) fallback(scanCard float64) CardinalityEstimator {
	if o.Fallback != nil {
		return o.Fallback
	}
	if scanCard > 0 {
		o.FallbackScanCardinality = scanCard
	}
	return NewHeuristicEstimator(o)
}

func (o Options) scanCardinality() float64 {
	if o.FallbackScanCardinality <= 0 {
		return opt.DefaultScanCardinality
	}
	return o.FallbackScanCardinality
}
