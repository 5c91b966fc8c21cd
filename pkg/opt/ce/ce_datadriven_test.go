// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ce_test

import (
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/docce/pkg/opt/testutils/cetester"
)

// TestCardinalityEstimation runs the files in testdata. They can be run
// separately like this:
//
//	go test ./pkg/opt/ce -run TestCardinalityEstimation/histogram
func TestCardinalityEstimation(t *testing.T) {
	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		tester := cetester.New()
		datadriven.RunTest(t, path, tester.RunCommand)
	})
}
