// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ce

import (
	"github.com/cockroachdb/docce/pkg/opt/constraint"
	"github.com/cockroachdb/docce/pkg/opt/memo"
	"github.com/cockroachdb/docce/pkg/opt/props"
	"github.com/cockroachdb/docce/pkg/opt/stats"
	"github.com/google/btree"
)

// The degree of the conjunct btree. Nodes rarely have more than a handful of
// paths.
const conjunctBtreeDegree = 8

// sargableConjunct gathers the requirements of a sargable node that target
// the same serialized path.
type sargableConjunct struct {
	path string

	// includeScalar is false if the path is also required to hold an array.
	// Intervals then only match array elements.
	includeScalar bool

	histogram *props.ArrayHistogram
	intervals []constraint.IntervalExpr
}

// Less implements the btree.Item interface.
func (c *sargableConjunct) Less(than btree.Item) bool {
	return c.path < than.(*sargableConjunct).path
}

// groupRequirements groups the non-perf-only requirements by serialized path
// and returns them in a btree ordered by path. It returns ok=false if some
// path has no histogram, in which case the node can't be estimated from
// histograms at all. missing is set to that path.
//
// A requirement whose interval is the array-only interval is not counted on
// its own; it switches its path to element-match semantics instead. The
// result does not depend on the order of the requirements.
func groupRequirements(
	reqs *memo.Requirements, st *stats.CollectionStatistics,
) (conjuncts *btree.BTree, missing string, ok bool) {
	conjuncts = btree.New(conjunctBtreeDegree)
	var search sargableConjunct
	for i := 0; i < reqs.Len(); i++ {
		e := reqs.Entry(i)
		if e.Req.IsPerfOnly {
			continue
		}
		path := SerializePath(e.Key.Path)
		isArrayOnly := e.Req.Intervals.IsArrayOnly() && !pathEndsInTraverse(e.Key.Path)

		search.path = path
		if item := conjuncts.Get(&search); item != nil {
			c := item.(*sargableConjunct)
			if isArrayOnly {
				c.includeScalar = false
			} else {
				c.intervals = append(c.intervals, e.Req.Intervals)
			}
			continue
		}

		h, found := st.Histogram(path)
		if !found {
			return nil, path, false
		}
		c := &sargableConjunct{path: path, includeScalar: !isArrayOnly, histogram: h}
		if c.includeScalar {
			c.intervals = []constraint.IntervalExpr{e.Req.Intervals}
		}
		conjuncts.ReplaceOrInsert(c)
	}
	return conjuncts, "", true
}
