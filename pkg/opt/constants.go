// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package opt

// DefaultMaxBackoffElements is the number of most selective predicates that
// take part in exponential backoff. Less selective predicates are ignored.
const DefaultMaxBackoffElements = 4

// DefaultScanCardinality is the row count assumed for a collection when
// neither statistics nor a scan definition supply one.
const DefaultScanCardinality = 1000
