// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package memo

import (
	"github.com/cockroachdb/docce/pkg/opt"
	"github.com/cockroachdb/errors"
)

// Node is a node of a logical query plan. Plans are immutable once built and
// are owned by the caller; estimators only read them. The set of
// implementations is closed.
type Node interface {
	// Op returns the kind of the node.
	Op() opt.Operator

	// ChildCount returns the number of children of the node.
	ChildCount() int

	// Child returns the ith child of the node.
	Child(i int) Node

	planNode()
}

// NoLimit is the LimitSkipNode.Limit value of a node that only skips.
const NoLimit = -1

// ScanNode reads every document of a collection and binds it to a
// projection.
type ScanNode struct {
	// ScanDef names the scan definition in the metadata.
	ScanDef    string
	Projection string
}

// SargableNode filters its input by a conjunction of per-path interval
// requirements.
type SargableNode struct {
	Reqs  Requirements
	Input Node
}

// RootNode is the top of a plan.
type RootNode struct {
	Projections []string
	Input       Node
}

// FilterNode filters its input by an arbitrary expression that could not be
// turned into interval requirements.
type FilterNode struct {
	Expr  string
	Input Node
}

// EvaluationNode computes a new projection for every input document.
type EvaluationNode struct {
	Projection string
	Expr       string
	Input      Node
}

// LimitSkipNode skips the first Skip documents of its input and returns at
// most Limit of the rest. Limit is NoLimit if there is no limit.
type LimitSkipNode struct {
	Limit int64
	Skip  int64
	Input Node
}

// GroupByNode groups its input by the given projections.
type GroupByNode struct {
	Keys  []string
	Input Node
}

// UnionNode concatenates the documents of its inputs.
type UnionNode struct {
	Inputs []Node
}

// UnwindNode produces one document per element of the array bound to
// Projection.
type UnwindNode struct {
	Projection string
	Input      Node
}

// CollationNode sorts its input by the given projections.
type CollationNode struct {
	Spec  []string
	Input Node
}

// DelegatorNode stands in for the memo group Group.
type DelegatorNode struct {
	Group GroupID
}

// ReferencesNode lists the projections referenced by its parent. It does not
// produce documents.
type ReferencesNode struct {
	Projections []string
}

// ExpressionBinderNode binds expressions to projection names. It does not
// produce documents.
type ExpressionBinderNode struct {
	Names []string
	Exprs []string
}

func (*ScanNode) planNode()             {}
func (*SargableNode) planNode()         {}
func (*RootNode) planNode()             {}
func (*FilterNode) planNode()           {}
func (*EvaluationNode) planNode()       {}
func (*LimitSkipNode) planNode()        {}
func (*GroupByNode) planNode()          {}
func (*UnionNode) planNode()            {}
func (*UnwindNode) planNode()           {}
func (*CollationNode) planNode()        {}
func (*DelegatorNode) planNode()        {}
func (*ReferencesNode) planNode()       {}
func (*ExpressionBinderNode) planNode() {}

func (*ScanNode) Op() opt.Operator             { return opt.ScanOp }
func (*SargableNode) Op() opt.Operator         { return opt.SargableOp }
func (*RootNode) Op() opt.Operator             { return opt.RootOp }
func (*FilterNode) Op() opt.Operator           { return opt.FilterOp }
func (*EvaluationNode) Op() opt.Operator       { return opt.EvaluationOp }
func (*LimitSkipNode) Op() opt.Operator        { return opt.LimitSkipOp }
func (*GroupByNode) Op() opt.Operator          { return opt.GroupByOp }
func (*UnionNode) Op() opt.Operator            { return opt.UnionOp }
func (*UnwindNode) Op() opt.Operator           { return opt.UnwindOp }
func (*CollationNode) Op() opt.Operator        { return opt.CollationOp }
func (*DelegatorNode) Op() opt.Operator        { return opt.DelegatorOp }
func (*ReferencesNode) Op() opt.Operator       { return opt.ReferencesOp }
func (*ExpressionBinderNode) Op() opt.Operator { return opt.ExpressionBinderOp }

func (*ScanNode) ChildCount() int             { return 0 }
func (*SargableNode) ChildCount() int         { return 1 }
func (*RootNode) ChildCount() int             { return 1 }
func (*FilterNode) ChildCount() int           { return 1 }
func (*EvaluationNode) ChildCount() int       { return 1 }
func (*LimitSkipNode) ChildCount() int        { return 1 }
func (*GroupByNode) ChildCount() int          { return 1 }
func (n *UnionNode) ChildCount() int          { return len(n.Inputs) }
func (*UnwindNode) ChildCount() int           { return 1 }
func (*CollationNode) ChildCount() int        { return 1 }
func (*DelegatorNode) ChildCount() int        { return 0 }
func (*ReferencesNode) ChildCount() int       { return 0 }
func (*ExpressionBinderNode) ChildCount() int { return 0 }

func (*ScanNode) Child(i int) Node             { panic(childOutOfRange(opt.ScanOp, i)) }
func (n *SargableNode) Child(i int) Node       { return singleChild(opt.SargableOp, n.Input, i) }
func (n *RootNode) Child(i int) Node           { return singleChild(opt.RootOp, n.Input, i) }
func (n *FilterNode) Child(i int) Node         { return singleChild(opt.FilterOp, n.Input, i) }
func (n *EvaluationNode) Child(i int) Node     { return singleChild(opt.EvaluationOp, n.Input, i) }
func (n *LimitSkipNode) Child(i int) Node      { return singleChild(opt.LimitSkipOp, n.Input, i) }
func (n *GroupByNode) Child(i int) Node        { return singleChild(opt.GroupByOp, n.Input, i) }
func (n *UnwindNode) Child(i int) Node         { return singleChild(opt.UnwindOp, n.Input, i) }
func (n *CollationNode) Child(i int) Node      { return singleChild(opt.CollationOp, n.Input, i) }
func (*DelegatorNode) Child(i int) Node        { panic(childOutOfRange(opt.DelegatorOp, i)) }
func (*ReferencesNode) Child(i int) Node       { panic(childOutOfRange(opt.ReferencesOp, i)) }
func (*ExpressionBinderNode) Child(i int) Node { panic(childOutOfRange(opt.ExpressionBinderOp, i)) }

func (n *UnionNode) Child(i int) Node {
	if i < 0 || i >= len(n.Inputs) {
		panic(childOutOfRange(opt.UnionOp, i))
	}
	return n.Inputs[i]
}

func singleChild(op opt.Operator, input Node, i int) Node {
	if i != 0 {
		panic(childOutOfRange(op, i))
	}
	return input
}

// WithChildren returns a shallow copy of n whose children are replaced by the
// given nodes. The number of children must match n.ChildCount(). Nodes
// without children are returned unchanged.
func WithChildren(n Node, children []Node) Node {
	if len(children) != n.ChildCount() {
		panic(errors.AssertionFailedf("%s node has %d children, not %d",
			errors.Safe(n.Op().String()), errors.Safe(n.ChildCount()), errors.Safe(len(children))))
	}
	switch t := n.(type) {
	case *SargableNode:
		c := *t
		c.Input = children[0]
		return &c
	case *RootNode:
		c := *t
		c.Input = children[0]
		return &c
	case *FilterNode:
		c := *t
		c.Input = children[0]
		return &c
	case *EvaluationNode:
		c := *t
		c.Input = children[0]
		return &c
	case *LimitSkipNode:
		c := *t
		c.Input = children[0]
		return &c
	case *GroupByNode:
		c := *t
		c.Input = children[0]
		return &c
	case *UnwindNode:
		c := *t
		c.Input = children[0]
		return &c
	case *CollationNode:
		c := *t
		c.Input = children[0]
		return &c
	case *UnionNode:
		c := *t
		c.Inputs = append([]Node(nil), children...)
		return &c
	}
	return n
}
