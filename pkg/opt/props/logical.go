// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package props

import "fmt"

// Logical holds the logical properties of a memo group. Estimators read
// them but never modify them.
type Logical struct {
	// Cardinality is the estimated number of documents produced by the group.
	// It is only meaningful if HasCardinality is set.
	Cardinality float64

	// HasCardinality is true once a cardinality estimate was recorded for the
	// group.
	HasCardinality bool
}

// WithCardinality returns a copy of the properties with the given estimate
// recorded.
func (l Logical) WithCardinality(card float64) Logical {
	l.Cardinality = card
	l.HasCardinality = true
	return l
}

func (l *Logical) String() string {
	if l == nil || !l.HasCardinality {
		return "[card=unknown]"
	}
	return fmt.Sprintf("[card=%.6g]", l.Cardinality)
}
