// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"

	"github.com/cockroachdb/docce/pkg/cli/clierror"
	"github.com/cockroachdb/docce/pkg/cli/exit"
	"github.com/cockroachdb/docce/pkg/opt/stats"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats --stats <file>",
	Short: "print collection statistics",
	Long: `
Prints the cardinality of a collection and the histogram of each of its
paths, in the order of their histogram keys.
`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, _ []string) error {
	st, err := stats.LoadYAMLFile(estimateCtx.statsPath)
	if err != nil {
		return clierror.NewError(err, exit.InputLoadFailed())
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "cardinality: %s\n", humanize.CommafWithDigits(st.Cardinality(), 2))
	for _, path := range st.Paths() {
		h, _ := st.Histogram(path)
		fmt.Fprintf(out, "\npath %q:\n%s", path, h)
	}
	return nil
}
