// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cetester

import (
	"reflect"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

func TestFlags(t *testing.T) {
	testData := []struct {
		args     []datadriven.CmdArg
		expected Flags
		err      string
	}{
		{},
		{
			args: []datadriven.CmdArg{
				{Key: "combiner", Vals: []string{"backoff"}},
				{Key: "max-backoff", Vals: []string{"2"}},
				{Key: "scan-cardinality", Vals: []string{"250"}},
			},
			expected: Flags{Combiner: "backoff", MaxBackoffElements: 2, ScanCardinality: 250},
		},
		{
			args:     []datadriven.CmdArg{{Key: "heuristic"}, {Key: "path", Vals: []string{"a"}}},
			expected: Flags{Heuristic: true},
		},
		{
			args: []datadriven.CmdArg{{Key: "max-backoff", Vals: []string{"x"}}},
			err:  `max-backoff: strconv.Atoi: parsing "x": invalid syntax`,
		},
		{
			args: []datadriven.CmdArg{{Key: "combiner"}},
			err:  "combiner requires one value",
		},
		{
			args: []datadriven.CmdArg{{Key: "colour", Vals: []string{"red"}}},
			err:  "unknown argument: colour",
		},
	}
	for _, tc := range testData {
		var f Flags
		err := f.set(tc.args)
		if tc.err != "" {
			require.EqualError(t, err, tc.err)
			continue
		}
		require.NoError(t, err)
		if !reflect.DeepEqual(tc.expected, f) {
			t.Errorf("unexpected flags:\n%s", strings.Join(pretty.Diff(tc.expected, f), "\n"))
		}
	}
}

func TestEstimate(t *testing.T) {
	ct := New()
	ct.Flags.Heuristic = true
	out, err := ct.Estimate(`
scans:
  c1: {collection: users, cardinality: 50}
plan:
  limit-skip: {skip: 10, input: {scan: {def: c1, projection: p0}}}
`)
	require.NoError(t, err)
	require.Equal(t, "limit-skip skip=10 [card=40]\n└── scan c1 (p0) [card=50]\n", out)

	ct.Flags.Heuristic = false
	_, err = ct.Estimate("plan: {scan: {def: c1}}")
	require.EqualError(t, err, "no statistics loaded")

	_, err = ct.Estimate("plan: {bogus: {}}")
	require.Error(t, err)
}
