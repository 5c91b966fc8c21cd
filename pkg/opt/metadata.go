// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package opt

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// ScanDefinition describes a collection that a scan can read.
type ScanDefinition struct {
	// Collection is the name of the underlying collection.
	Collection string

	// Cardinality is the number of documents in the collection, if known. It is
	// only consulted by estimators that have no statistics to go by. Zero means
	// unknown.
	Cardinality float64
}

// Metadata holds the scan definitions referenced by a plan. It is populated
// while the plan is built and is read-only afterwards.
type Metadata struct {
	scanDefs map[string]ScanDefinition
}

// AddScanDefinition registers a scan definition under the given name.
func (md *Metadata) AddScanDefinition(name string, def ScanDefinition) error {
	if md.scanDefs == nil {
		md.scanDefs = make(map[string]ScanDefinition)
	}
	if _, ok := md.scanDefs[name]; ok {
		return errors.Newf("scan definition %q already exists", name)
	}
	md.scanDefs[name] = def
	return nil
}

// ScanDefinition returns the scan definition registered under the given name.
func (md *Metadata) ScanDefinition(name string) (ScanDefinition, bool) {
	if md == nil {
		return ScanDefinition{}, false
	}
	def, ok := md.scanDefs[name]
	return def, ok
}

// ScanDefinitionNames returns the registered names in sorted order.
func (md *Metadata) ScanDefinitionNames() []string {
	if md == nil {
		return nil
	}
	names := make([]string, 0, len(md.scanDefs))
	for name := range md.scanDefs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
