// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package opt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOperatorTable(t *testing.T) {
	for op := UnknownOp + 1; op < NumOperators; op++ {
		name := op.String()
		require.NotEmpty(t, name, "operator %d has no name", op)

		found, ok := OperatorByName(name)
		require.True(t, ok, name)
		require.Equal(t, op, found)
	}

	_, ok := OperatorByName("no-such-op")
	require.False(t, ok)
	require.Equal(t, "operator(200)", Operator(200).String())
}

func TestCanBeLogical(t *testing.T) {
	require.True(t, CanBeLogical(ScanOp))
	require.True(t, CanBeLogical(SargableOp))
	require.True(t, CanBeLogical(FilterOp))
	require.True(t, CanBeLogical(RootOp))
	require.False(t, CanBeLogical(ReferencesOp))
	require.False(t, CanBeLogical(ExpressionBinderOp))
	require.False(t, CanBeLogical(UnknownOp))
	require.False(t, CanBeLogical(NumOperators))
}
