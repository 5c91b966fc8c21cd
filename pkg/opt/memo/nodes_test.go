// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package memo

import (
	"testing"

	"github.com/cockroachdb/docce/pkg/opt"
	"github.com/stretchr/testify/require"
)

func TestWithChildren(t *testing.T) {
	scan := &ScanNode{ScanDef: "c1", Projection: "p0"}
	d1 := &DelegatorNode{Group: 1}
	d2 := &DelegatorNode{Group: 2}

	t.Run("single", func(t *testing.T) {
		filter := &FilterNode{Expr: "x", Input: scan}
		n := WithChildren(filter, []Node{d1})
		require.Equal(t, opt.FilterOp, n.Op())
		require.Same(t, d1, n.Child(0))
		require.Equal(t, "x", n.(*FilterNode).Expr)
		// The original node is untouched.
		require.Same(t, scan, filter.Input)
	})

	t.Run("union", func(t *testing.T) {
		children := []Node{d1, d2}
		union := &UnionNode{Inputs: []Node{scan, scan}}
		n := WithChildren(union, children)
		require.Equal(t, 2, n.ChildCount())
		require.Same(t, d1, n.Child(0))
		require.Same(t, d2, n.Child(1))
		children[0] = scan
		require.Same(t, d1, n.Child(0))
		require.Same(t, scan, union.Inputs[0])
	})

	t.Run("leaf", func(t *testing.T) {
		require.Same(t, scan, WithChildren(scan, nil).(*ScanNode))
	})

	t.Run("count mismatch", func(t *testing.T) {
		require.Panics(t, func() { WithChildren(&LimitSkipNode{Input: scan}, []Node{d1, d2}) })
	})
}
