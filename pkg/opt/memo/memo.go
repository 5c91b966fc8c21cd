// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package memo

import (
	"github.com/cockroachdb/docce/pkg/opt"
	"github.com/cockroachdb/docce/pkg/opt/props"
	"github.com/cockroachdb/errors"
)

// GroupID identifies a memo group. The first group has ID 1, so the zero
// value never names a group.
type GroupID int32

// Group is a set of logically equivalent plans. Only the representative
// plan and the group's logical properties are kept here; which alternatives
// are explored is decided elsewhere.
type Group struct {
	id      GroupID
	rep     Node
	logical props.Logical
}

// ID returns the group's identifier.
func (g *Group) ID() GroupID { return g.id }

// Representative returns a plan that produces the group's result.
func (g *Group) Representative() Node { return g.rep }

// Logical returns the logical properties of the group.
func (g *Group) Logical() *props.Logical { return &g.logical }

// Memo holds the groups that delegator nodes refer to. It is populated
// before estimation and read-only afterwards, so it can be shared by
// concurrent estimators.
type Memo struct {
	groups []Group
}

// AddGroup adds a group with the given representative and properties and
// returns its ID.
func (m *Memo) AddGroup(rep Node, logical props.Logical) GroupID {
	id := GroupID(len(m.groups) + 1)
	m.groups = append(m.groups, Group{id: id, rep: rep, logical: logical})
	return id
}

// GroupCount returns the number of groups in the memo.
func (m *Memo) GroupCount() int {
	if m == nil {
		return 0
	}
	return len(m.groups)
}

// Group returns the group with the given ID. It panics with an assertion
// error if there is no such group.
func (m *Memo) Group(id GroupID) *Group {
	if m == nil || id < 1 || int(id) > len(m.groups) {
		panic(errors.AssertionFailedf("memo has no group %d", errors.Safe(id)))
	}
	return &m.groups[id-1]
}

func childOutOfRange(op opt.Operator, i int) error {
	return errors.AssertionFailedf("%s node has no child %d", errors.Safe(op.String()), errors.Safe(i))
}
