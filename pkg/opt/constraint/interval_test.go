// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package constraint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueCompare(t *testing.T) {
	// Values in increasing sort order.
	ordered := []Value{
		MinKey(),
		Null(),
		Number(-3.5),
		Number(0),
		Number(10),
		String(""),
		String("apple"),
		String("banana"),
		EmptyArray(),
		Bool(false),
		Bool(true),
		MaxKey(),
	}
	for i := range ordered {
		for j := range ordered {
			expected := 0
			if i < j {
				expected = -1
			} else if i > j {
				expected = 1
			}
			require.Equal(t, expected, ordered[i].Compare(ordered[j]),
				"%s vs %s", ordered[i], ordered[j])
		}
	}

	require.Panics(t, func() { Placeholder("p").Compare(Number(1)) })
	require.True(t, Placeholder("p").Equal(Placeholder("p")))
	require.False(t, Placeholder("p").Equal(Placeholder("q")))
	require.False(t, Placeholder("p").Equal(String("p")))
}

func TestIntervalPredicates(t *testing.T) {
	testData := []struct {
		interval   string
		constant   bool
		equality   bool
		fullyOpen  bool
		openRange  bool
		arrayOnly  bool
		formatting string
	}{
		{interval: "[5, 5]", constant: true, equality: true, formatting: "[5, 5]"},
		{interval: "[5, 5)", constant: true, formatting: "[5, 5)"},
		{interval: "['a', 'a']", constant: true, equality: true, formatting: "['a', 'a']"},
		{interval: "[1, 10]", constant: true, formatting: "[1, 10]"},
		{interval: "(3, +inf]", constant: true, openRange: true, formatting: "(3, +inf]"},
		{interval: "[-inf, 3)", constant: true, openRange: true, formatting: "[-inf, 3)"},
		{interval: "[-inf, +inf]", constant: true, fullyOpen: true, formatting: "[-inf, +inf]"},
		{interval: "[?p1, 10]", formatting: "[?p1, 10]"},
		{interval: "[?p1, ?p1]", formatting: "[?p1, ?p1]"},
		{interval: "$array", constant: true, arrayOnly: true, formatting: "$array"},
		{interval: "[[], false)", constant: true, arrayOnly: true, formatting: "$array"},
		{interval: "[null, null]", constant: true, equality: true, formatting: "[null, null]"},
		{interval: "['it''s', 'z']", constant: true, formatting: "['it''s', 'z']"},
	}

	for _, tc := range testData {
		t.Run(tc.interval, func(t *testing.T) {
			e, err := ParseIntervalExpr(tc.interval)
			require.NoError(t, err)
			require.Len(t, e.Disjuncts, 1)
			require.Len(t, e.Disjuncts[0].Atoms, 1)
			i := e.Disjuncts[0].Atoms[0]

			require.Equal(t, tc.constant, i.IsConstant())
			require.Equal(t, tc.constant, e.IsConstant())
			require.Equal(t, tc.equality, i.IsEquality())
			require.Equal(t, tc.fullyOpen, i.IsFullyOpen())
			require.Equal(t, tc.openRange, i.IsOpenRange())
			require.Equal(t, tc.arrayOnly, e.IsArrayOnly())
			require.Equal(t, tc.formatting, e.String())
		})
	}
}

func TestParseIntervalExprDNF(t *testing.T) {
	e := MustParseIntervalExpr("[1, 5] ^ (2, +inf] U ['a', 'b') U [?x, ?x]")
	require.Len(t, e.Disjuncts, 3)
	require.Len(t, e.Disjuncts[0].Atoms, 2)
	require.Len(t, e.Disjuncts[1].Atoms, 1)
	require.Len(t, e.Disjuncts[2].Atoms, 1)

	require.Equal(t, MakeInterval(IncludeBound(Number(1)), IncludeBound(Number(5))), e.Disjuncts[0].Atoms[0])
	require.Equal(t, MakeInterval(ExcludeBound(Number(2)), IncludeBound(MaxKey())), e.Disjuncts[0].Atoms[1])
	require.Equal(t, MakeInterval(IncludeBound(String("a")), ExcludeBound(String("b"))), e.Disjuncts[1].Atoms[0])
	require.False(t, e.IsConstant())

	// Round trip.
	require.Equal(t, "[1, 5] ^ (2, +inf] U ['a', 'b') U [?x, ?x]", e.String())
	again := MustParseIntervalExpr(e.String())
	require.True(t, e.Equal(again))
	require.False(t, e.Equal(SingleIntervalExpr(MakePoint(Number(1)))))
}

func TestParseIntervalExprErrors(t *testing.T) {
	for _, s := range []string{
		"",
		"[1, 2",
		"1, 2]",
		"[1 2]",
		"[abc, 2]",
		"['unterminated, 2]",
		"[1, 2] V [3, 4]",
		"$array U [1, 2]",
		"[?, 1]",
	} {
		_, err := ParseIntervalExpr(s)
		require.Error(t, err, "input %q", s)
	}
	require.Panics(t, func() { MustParseIntervalExpr("[") })
}

func TestArrayOnlyIntervalExpr(t *testing.T) {
	e := ArrayOnlyIntervalExpr()
	require.True(t, e.IsArrayOnly())
	require.True(t, e.Equal(ArrayOnlyIntervalExpr()))

	// A point on the empty array is not the array-only interval.
	require.False(t, SingleIntervalExpr(MakePoint(EmptyArray())).IsArrayOnly())

	// Neither is the array-only interval as one disjunct among others.
	two := IntervalExpr{Disjuncts: append(e.Disjuncts, e.Disjuncts...)}
	require.False(t, two.IsArrayOnly())
}
