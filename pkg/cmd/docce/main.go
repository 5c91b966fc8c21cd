// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// This is the entry point of the docce binary.
package main

import "github.com/cockroachdb/docce/pkg/cli"

func main() {
	cli.Main()
}
