// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package opt

import "fmt"

// Operator identifies the kind of a plan node.
type Operator uint8

const (
	UnknownOp Operator = iota

	// -- Logical operators --

	// ScanOp reads every document of a collection.
	ScanOp

	// SargableOp applies a conjunction of per-path interval requirements.
	SargableOp

	// FilterOp applies an arbitrary filter expression.
	FilterOp

	// EvaluationOp binds a new projection computed from its input.
	EvaluationOp

	// LimitSkipOp returns at most Limit documents after skipping Skip.
	LimitSkipOp

	// GroupByOp groups its input by a set of projections.
	GroupByOp

	// UnionOp concatenates the output of its children.
	UnionOp

	// UnwindOp produces one output document per array element.
	UnwindOp

	// CollationOp sorts its input.
	CollationOp

	// RootOp is the top of a plan. It never changes cardinality.
	RootOp

	// DelegatorOp stands in for a memo group.
	DelegatorOp

	// -- Structural operators --

	// ReferencesOp lists the projections referenced by its parent.
	ReferencesOp

	// ExpressionBinderOp binds scalar expressions to projection names.
	ExpressionBinderOp

	// This should be last.
	NumOperators
)

// operatorInfo stores static information about an operator.
type operatorInfo struct {
	// name of the operator, used when printing plans.
	name string

	// logical is true if a node of this kind produces a stream of documents
	// and can therefore be given a cardinality estimate.
	logical bool
}

// operatorTab stores static information about all operators.
var operatorTab = [NumOperators]operatorInfo{
	UnknownOp:          {name: "unknown"},
	ScanOp:             {name: "scan", logical: true},
	SargableOp:         {name: "sargable", logical: true},
	FilterOp:           {name: "filter", logical: true},
	EvaluationOp:       {name: "evaluation", logical: true},
	LimitSkipOp:        {name: "limit-skip", logical: true},
	GroupByOp:          {name: "group-by", logical: true},
	UnionOp:            {name: "union", logical: true},
	UnwindOp:           {name: "unwind", logical: true},
	CollationOp:        {name: "collation", logical: true},
	RootOp:             {name: "root", logical: true},
	DelegatorOp:        {name: "delegator", logical: true},
	ReferencesOp:       {name: "references"},
	ExpressionBinderOp: {name: "binder"},
}

func (op Operator) String() string {
	if op >= NumOperators {
		return fmt.Sprintf("operator(%d)", op)
	}
	return operatorTab[op].name
}

// CanBeLogical returns true if nodes of the given kind produce a document
// stream, as opposed to purely structural nodes that only hold expressions
// for their parent.
func CanBeLogical(op Operator) bool {
	if op >= NumOperators {
		return false
	}
	return operatorTab[op].logical
}

// OperatorByName returns the operator with the given name, as printed by
// Operator.String.
func OperatorByName(name string) (Operator, bool) {
	for op := UnknownOp + 1; op < NumOperators; op++ {
		if operatorTab[op].name == name {
			return op, true
		}
	}
	return UnknownOp, false
}
