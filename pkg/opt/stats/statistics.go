// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package stats

import (
	"math"
	"sort"

	"github.com/cockroachdb/docce/pkg/opt/props"
	"github.com/cockroachdb/errors"
)

// CollectionStatistics holds the statistics collected for a single
// collection: its document count and a histogram for each field path that
// was analyzed. It is immutable once built and safe for concurrent use.
type CollectionStatistics struct {
	cardinality float64
	histograms  map[string]*props.ArrayHistogram
}

// Build returns statistics for a collection with the given document count.
// Histograms are keyed by dotted field path ("a.b"). The map is copied.
func Build(
	cardinality float64, histograms map[string]*props.ArrayHistogram,
) (*CollectionStatistics, error) {
	if cardinality < 0 || math.IsNaN(cardinality) || math.IsInf(cardinality, 0) {
		return nil, errors.Newf("invalid collection cardinality %v", cardinality)
	}
	s := &CollectionStatistics{
		cardinality: cardinality,
		histograms:  make(map[string]*props.ArrayHistogram, len(histograms)),
	}
	for path, h := range histograms {
		if h == nil {
			return nil, errors.Newf("nil histogram for path %q", path)
		}
		s.histograms[path] = h
	}
	return s, nil
}

// Cardinality returns the number of documents in the collection.
func (s *CollectionStatistics) Cardinality() float64 {
	return s.cardinality
}

// Histogram returns the histogram for the given dotted path, if one was
// collected.
func (s *CollectionStatistics) Histogram(path string) (*props.ArrayHistogram, bool) {
	h, ok := s.histograms[path]
	return h, ok
}

// Paths returns the paths that have histograms, in sorted order.
func (s *CollectionStatistics) Paths() []string {
	paths := make([]string, 0, len(s.histograms))
	for p := range s.histograms {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
