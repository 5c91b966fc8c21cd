// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cli implements the docce command line.
package cli

import (
	"fmt"
	"os"

	"github.com/cockroachdb/docce/pkg/cli/clierror"
	"github.com/cockroachdb/docce/pkg/cli/exit"
	"github.com/cockroachdb/docce/pkg/util/log"
	"github.com/spf13/cobra"
)

// Main is the entry point of the docce binary.
func Main() {
	if err := Run(os.Args[1:]); err != nil {
		code := clierror.ExitCode(err)
		_ = clierror.CheckAndMaybeLog(err, log.Logf)
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		os.Exit(code.AsInt())
	}
}

// Proxy to allow overrides in tests.
var stderr = os.Stderr

var docceCmd = &cobra.Command{
	Use:   "docce [command] (flags)",
	Short: "document query cardinality estimation",
	Long: `
Estimates the number of documents produced by the nodes of a document
query plan, from the histograms of the scanned collection.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.EnableCommandSorting = false

	docceCmd.AddCommand(
		estimateCmd,
		statsCmd,
	)
	docceCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierror.NewError(err, exit.CommandLineFlagError())
	})
}

// Run runs the command line with the given arguments.
func Run(args []string) error {
	docceCmd.SetArgs(args)
	return docceCmd.Execute()
}
