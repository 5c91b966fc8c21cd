// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package memo

import (
	"fmt"

	"github.com/cockroachdb/docce/pkg/opt/constraint"
	"github.com/cockroachdb/errors"
)

// ReqKey identifies a requirement: a path applied to a projection.
type ReqKey struct {
	Projection string
	Path       PathExpr
}

// Equal returns true if the two keys name the same projection and path.
func (k ReqKey) Equal(other ReqKey) bool {
	return k.Projection == other.Projection && PathsEqual(k.Path, other.Path)
}

func (k ReqKey) String() string {
	if k.Projection == "" {
		return fmt.Sprintf("%q", k.Path.String())
	}
	return fmt.Sprintf("%s:%q", k.Projection, k.Path.String())
}

// Requirement restricts the values reached by a path to a set of intervals.
type Requirement struct {
	Intervals constraint.IntervalExpr

	// IsPerfOnly marks requirements that only serve as execution hints. They
	// do not filter documents.
	IsPerfOnly bool
}

// RequirementEntry is a single key and requirement pair.
type RequirementEntry struct {
	Key ReqKey
	Req Requirement
}

// Requirements is an ordered map from key to requirement. It is an implicit
// conjunction of its non-perf-only entries. Keys are unique.
type Requirements struct {
	entries []RequirementEntry
}

// Add appends a requirement. It returns an error if the key is already
// present.
func (r *Requirements) Add(key ReqKey, req Requirement) error {
	if key.Path == nil {
		return errors.AssertionFailedf("requirement key %q has no path", key.Projection)
	}
	for i := range r.entries {
		if r.entries[i].Key.Equal(key) {
			return errors.Newf("duplicate requirement key %s", key)
		}
	}
	r.entries = append(r.entries, RequirementEntry{Key: key, Req: req})
	return nil
}

// Len returns the number of requirements.
func (r *Requirements) Len() int {
	return len(r.entries)
}

// Entry returns the ith requirement in insertion order.
func (r *Requirements) Entry(i int) *RequirementEntry {
	return &r.entries[i]
}

// ForEach calls fn for every requirement, in insertion order.
func (r *Requirements) ForEach(fn func(key ReqKey, req Requirement)) {
	for i := range r.entries {
		fn(r.entries[i].Key, r.entries[i].Req)
	}
}
