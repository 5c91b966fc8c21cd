// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/docce/pkg/cli/clierror"
	"github.com/cockroachdb/docce/pkg/cli/cliflags"
	"github.com/cockroachdb/docce/pkg/cli/exit"
	"github.com/cockroachdb/docce/pkg/opt"
	"github.com/cockroachdb/docce/pkg/opt/ce"
	"github.com/cockroachdb/docce/pkg/opt/memo"
	"github.com/cockroachdb/docce/pkg/opt/props"
	"github.com/cockroachdb/docce/pkg/opt/stats"
	"github.com/cockroachdb/docce/pkg/util/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate --plan <file> [--stats <file>]",
	Short: "estimate the cardinality of a plan",
	Long: `
Prints a plan with the estimated number of documents produced by each of
its nodes. Sargable nodes are estimated from the histograms of the
statistics file. Without statistics, every node is estimated
heuristically.
`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	ctx := logtags.AddTag(context.Background(), "estimate", nil)
	log.SetVerbosity(int32(estimateCtx.verbosity))
	defer log.SetVerbosity(0)

	opts, err := estimateOptions()
	if err != nil {
		return clierror.NewError(err, exit.CommandLineFlagError())
	}
	plan, err := memo.ParsePlanFile(estimateCtx.planPath)
	if err != nil {
		return clierror.NewError(err, exit.InputLoadFailed())
	}
	var st *stats.CollectionStatistics
	if estimateCtx.statsPath != "" {
		if st, err = stats.LoadYAMLFile(estimateCtx.statsPath); err != nil {
			return clierror.NewError(err, exit.InputLoadFailed())
		}
	} else {
		log.Infof(ctx, "no statistics given, estimating %s heuristically", estimateCtx.planPath)
	}

	var reg *prometheus.Registry
	if estimateCtx.printMetrics {
		reg = prometheus.NewRegistry()
		opts.Metrics = ce.NewMetrics()
		if err := registerMetrics(reg, opts.Metrics); err != nil {
			return err
		}
	}

	card, err := newEstimator(st, opts).DeriveCE(ctx, plan.Metadata, plan.Memo, &props.Logical{}, plan.Root)
	if err != nil {
		return clierror.NewError(
			errors.Wrapf(err, "estimating %s", estimateCtx.planPath), exit.EstimationFailed())
	}

	// The nodes below the root are estimated again for display only, without
	// counting them in the metrics.
	opts.Metrics = nil
	annotator := newEstimator(st, opts)
	out := cmd.OutOrStdout()
	fmt.Fprint(out, memo.FormatNode(plan.Root, func(n memo.Node) string {
		if !opt.CanBeLogical(n.Op()) {
			return ""
		}
		c := card
		if n != plan.Root {
			if c, err = annotator.DeriveCE(ctx, plan.Metadata, plan.Memo, nil /* logical */, n); err != nil {
				return fmt.Sprintf("[error: %v]", err)
			}
		}
		logical := props.Logical{}.WithCardinality(c)
		return logical.String()
	}))
	fmt.Fprintf(out, "estimated documents: %s\n", humanize.CommafWithDigits(card, 2))

	if reg != nil {
		return printMetrics(out, reg)
	}
	return nil
}

// estimateOptions builds the estimator options from the flags.
func estimateOptions() (ce.Options, error) {
	c, err := ce.CombinerByName(estimateCtx.combiner, estimateCtx.maxBackoffElements)
	if err != nil {
		return ce.Options{}, err
	}
	if estimateCtx.fallbackScanCardinality <= 0 {
		return ce.Options{}, errors.Newf("--%s must be positive, got %g",
			cliflags.FallbackScanCardinality.Name, estimateCtx.fallbackScanCardinality)
	}
	return ce.Options{
		Combiner:                c,
		FallbackScanCardinality: estimateCtx.fallbackScanCardinality,
	}, nil
}

func registerMetrics(reg prometheus.Registerer, m *ce.Metrics) error {
	if err := m.Register(reg); err != nil {
		return clierror.NewError(errors.Wrap(err, "registering metrics"), exit.UnspecifiedError())
	}
	return nil
}

func newEstimator(st *stats.CollectionStatistics, opts ce.Options) ce.CardinalityEstimator {
	if st == nil {
		return ce.NewHeuristicEstimator(opts)
	}
	return ce.NewHistogramEstimator(st, opts)
}

// printMetrics writes the counters of reg, one per line, sorted by name
// and labels.
func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			if labels := m.GetLabel(); len(labels) > 0 {
				pairs := make([]string, len(labels))
				for i, l := range labels {
					pairs[i] = fmt.Sprintf("%s=%q", l.GetName(), l.GetValue())
				}
				name = fmt.Sprintf("%s{%s}", name, strings.Join(pairs, ","))
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	return nil
}
