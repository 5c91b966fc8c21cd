// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ce

import (
	"github.com/cockroachdb/docce/pkg/opt/memo"
	"github.com/cockroachdb/errors"
)

// ErrUnsupportedPathShape is wrapped by the assertion error raised when a
// path that cannot be used as a histogram key reaches the estimator.
var ErrUnsupportedPathShape = errors.New("unsupported path shape")

// SerializePath renders a path of field accesses and traversals as the
// dotted string that histograms are keyed by. Traversals do not appear in
// the result, so "a/*/b" and "a/b" both serialize to "a.b".
//
// Any other kind of path step is a programming error. SerializePath panics
// with an assertion error wrapping ErrUnsupportedPathShape, which callers
// convert to an error with opt.CatchOptimizerError.
func SerializePath(p memo.PathExpr) string {
	switch t := p.(type) {
	case *memo.PathGet:
		child := SerializePath(t.Child)
		if child == "" {
			return t.Name
		}
		return t.Name + "." + child

	case *memo.PathTraverse:
		return SerializePath(t.Child)

	case *memo.PathIdentity:
		return ""
	}
	panic(errors.WithAssertionFailure(errors.Wrapf(
		ErrUnsupportedPathShape, "cannot serialize path %q (%T)", pathString(p), p,
	)))
}

func pathString(p memo.PathExpr) string {
	if p == nil {
		return "<nil>"
	}
	return p.String()
}

// pathEndsInTraverse returns true if the last step of the path before the
// identity is a traversal.
func pathEndsInTraverse(p memo.PathExpr) bool {
	endsInTraverse := false
	for {
		switch t := p.(type) {
		case *memo.PathGet:
			endsInTraverse = false
			p = t.Child
		case *memo.PathTraverse:
			endsInTraverse = true
			p = t.Child
		default:
			return endsInTraverse
		}
	}
}
