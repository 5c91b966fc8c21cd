// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ce

import (
	"context"
	"testing"

	"github.com/cockroachdb/docce/pkg/opt"
	"github.com/cockroachdb/docce/pkg/opt/constraint"
	"github.com/cockroachdb/docce/pkg/opt/memo"
	"github.com/cockroachdb/docce/pkg/opt/props"
	"github.com/cockroachdb/docce/pkg/opt/stats"
	"github.com/stretchr/testify/require"
)

func num(f float64) constraint.Value { return constraint.Number(f) }

// scalarHistogram has 1000 values: 100 equal to 10, 800 spread over 80
// distinct values in (10, 100) and 100 equal to 100. It also has 50 nulls,
// 20 trues and 30 falses.
func scalarHistogram() *props.ArrayHistogram {
	return props.NewArrayHistogram(
		props.MustNewHistogram([]props.HistogramBucket{
			{UpperBound: num(10), NumEq: 100},
			{UpperBound: num(100), NumEq: 100, NumRange: 800, DistinctRange: 80},
		}),
		props.TypeCounts{Null: 50, True: 20, False: 30},
		props.ArrayStats{},
	)
}

// arrayHistogram describes 100 arrays, 10 of them empty. Their elements
// are 1, 5 and values in between.
func arrayHistogram() *props.ArrayHistogram {
	return props.NewArrayHistogram(
		nil, /* scalar */
		props.TypeCounts{},
		props.ArrayStats{
			Count:      100,
			EmptyCount: 10,
			Unique: props.MustNewHistogram([]props.HistogramBucket{
				{UpperBound: num(1), NumEq: 50},
				{UpperBound: num(5), NumEq: 60, NumRange: 40, DistinctRange: 3},
			}),
			Min: props.MustNewHistogram([]props.HistogramBucket{
				{UpperBound: num(1), NumEq: 60},
				{UpperBound: num(5), NumEq: 30},
			}),
			Max: props.MustNewHistogram([]props.HistogramBucket{
				{UpperBound: num(1), NumEq: 20},
				{UpperBound: num(5), NumEq: 70},
			}),
		},
	)
}

// testStats describes a collection of 1000 documents with histograms on
// "a", "b" and "tags".
func testStats(t *testing.T) *stats.CollectionStatistics {
	return testStatsWithCardinality(t, 1000)
}

func testStatsWithCardinality(t *testing.T, card float64) *stats.CollectionStatistics {
	st, err := stats.Build(card, map[string]*props.ArrayHistogram{
		"a": scalarHistogram(),
		"b": props.NewArrayHistogram(
			props.MustNewHistogram([]props.HistogramBucket{
				{UpperBound: num(1), NumEq: 500},
				{UpperBound: num(2), NumEq: 500},
			}),
			props.TypeCounts{},
			props.ArrayStats{},
		),
		"tags": arrayHistogram(),
	})
	require.NoError(t, err)
	return st
}

// req is a requirement in text form.
type req struct {
	path     string
	interval string
	perf     bool
}

func makeReqs(t *testing.T, reqs ...req) memo.Requirements {
	var r memo.Requirements
	for _, rq := range reqs {
		require.NoError(t, r.Add(
			memo.ReqKey{Projection: "p0", Path: memo.MustParsePath(rq.path)},
			memo.Requirement{
				Intervals:  constraint.MustParseIntervalExpr(rq.interval),
				IsPerfOnly: rq.perf,
			},
		))
	}
	return r
}

func scan() memo.Node {
	return &memo.ScanNode{ScanDef: "c1", Projection: "p0"}
}

func sargable(t *testing.T, input memo.Node, reqs ...req) *memo.SargableNode {
	return &memo.SargableNode{Reqs: makeReqs(t, reqs...), Input: input}
}

// fixedEstimator is a fallback that returns a fixed estimate and records the
// calls it received. It is not safe for concurrent use.
type fixedEstimator struct {
	card float64
	err  error

	nodes    []memo.Node
	mems     []*memo.Memo
	logicals []*props.Logical
}

func (f *fixedEstimator) DeriveCE(
	_ context.Context, _ *opt.Metadata, mem *memo.Memo, logical *props.Logical, n memo.Node,
) (float64, error) {
	f.nodes = append(f.nodes, n)
	f.mems = append(f.mems, mem)
	f.logicals = append(f.logicals, logical)
	return f.card, f.err
}

// requireDelegatedInputs checks that n is a copy of orig whose children are
// delegators to groups of mem, each holding the original child and the given
// cardinality.
func requireDelegatedInputs(
	t *testing.T, mem *memo.Memo, n, orig memo.Node, cards ...float64,
) {
	t.Helper()
	require.Equal(t, orig.Op(), n.Op())
	require.Equal(t, len(cards), n.ChildCount())
	for i, card := range cards {
		d, ok := n.Child(i).(*memo.DelegatorNode)
		require.True(t, ok, "child %d is %s", i, n.Child(i).Op())
		g := mem.Group(d.Group)
		require.Same(t, orig.Child(i), g.Representative())
		require.True(t, g.Logical().HasCardinality)
		require.InDelta(t, card, g.Logical().Cardinality, 1e-9)
	}
}

// panickingCombiner fails the test if it is used.
type panickingCombiner struct{}

func (panickingCombiner) Conjunction([]props.Selectivity) props.Selectivity {
	panic("unexpected Conjunction call")
}

func (panickingCombiner) Disjunction([]props.Selectivity) props.Selectivity {
	panic("unexpected Disjunction call")
}

func (panickingCombiner) String() string { return "panicking" }

// panickingIntervalEstimator fails the test if it is used.
type panickingIntervalEstimator struct{}

func (panickingIntervalEstimator) EstimateInterval(
	*props.ArrayHistogram, constraint.Interval, float64, bool,
) (float64, bool) {
	panic("unexpected EstimateInterval call")
}
