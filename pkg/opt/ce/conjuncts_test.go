// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ce

import (
	"testing"

	"github.com/google/btree"
	"github.com/stretchr/testify/require"
)

// conjunctSummary is a comparable view of a sargableConjunct.
type conjunctSummary struct {
	path          string
	includeScalar bool
	intervals     []string
}

func summarize(conjuncts *btree.BTree) []conjunctSummary {
	var res []conjunctSummary
	conjuncts.Ascend(func(i btree.Item) bool {
		c := i.(*sargableConjunct)
		s := conjunctSummary{path: c.path, includeScalar: c.includeScalar}
		for _, e := range c.intervals {
			s.intervals = append(s.intervals, e.String())
		}
		res = append(res, s)
		return true
	})
	return res
}

func TestGroupRequirements(t *testing.T) {
	st := testStats(t)

	testData := []struct {
		name     string
		reqs     []req
		expected []conjunctSummary
	}{
		{
			name: "ordered by path",
			reqs: []req{
				{path: "b", interval: "[1, 1]"},
				{path: "a", interval: "[10, 10]"},
			},
			expected: []conjunctSummary{
				{path: "a", includeScalar: true, intervals: []string{"[10, 10]"}},
				{path: "b", includeScalar: true, intervals: []string{"[1, 1]"}},
			},
		},
		{
			name: "same serialized path",
			reqs: []req{
				{path: "tags", interval: "[1, 1]"},
				{path: "tags/*", interval: "[5, 5]"},
			},
			expected: []conjunctSummary{
				{path: "tags", includeScalar: true, intervals: []string{"[1, 1]", "[5, 5]"}},
			},
		},
		{
			name: "array only first",
			reqs: []req{
				{path: "tags", interval: "$array"},
				{path: "tags/*", interval: "[1, 1]"},
			},
			expected: []conjunctSummary{
				{path: "tags", includeScalar: false, intervals: []string{"[1, 1]"}},
			},
		},
		{
			name: "array only last",
			reqs: []req{
				{path: "tags/*", interval: "[1, 1]"},
				{path: "tags", interval: "$array"},
			},
			expected: []conjunctSummary{
				{path: "tags", includeScalar: false, intervals: []string{"[1, 1]"}},
			},
		},
		{
			name: "array only alone",
			reqs: []req{
				{path: "tags", interval: "$array"},
			},
			expected: []conjunctSummary{
				{path: "tags", includeScalar: false},
			},
		},
		{
			// An array-only interval under a traversal matches nested arrays and
			// is an ordinary interval.
			name: "array only under traversal",
			reqs: []req{
				{path: "tags/*", interval: "$array"},
			},
			expected: []conjunctSummary{
				{path: "tags", includeScalar: true, intervals: []string{"$array"}},
			},
		},
		{
			name: "perf only skipped",
			reqs: []req{
				{path: "a", interval: "[10, 10]", perf: true},
				{path: "zzz", interval: "[1, 1]", perf: true},
			},
		},
	}
	for _, tc := range testData {
		t.Run(tc.name, func(t *testing.T) {
			reqs := makeReqs(t, tc.reqs...)
			conjuncts, missing, ok := groupRequirements(&reqs, st)
			require.True(t, ok)
			require.Equal(t, "", missing)
			require.Equal(t, tc.expected, summarize(conjuncts))
		})
	}
}

func TestGroupRequirementsMissingHistogram(t *testing.T) {
	reqs := makeReqs(t,
		req{path: "a", interval: "[10, 10]"},
		req{path: "x/*/y", interval: "[1, 1]"},
	)
	conjuncts, missing, ok := groupRequirements(&reqs, testStats(t))
	require.False(t, ok)
	require.Equal(t, "x.y", missing)
	require.Nil(t, conjuncts)
}
