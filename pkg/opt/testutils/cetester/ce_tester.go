// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cetester runs cardinality estimation data-driven tests. A test
// file loads collection statistics and then estimates plans against them:
//
//	stats
//	cardinality: 1000
//	histograms:
//	  a:
//	    scalar:
//	      - {bound: 10, eq: 100}
//	----
//	cardinality=1000 paths=a
//
//	estimate
//	plan:
//	  sargable:
//	    reqs: [{projection: p0, path: a, interval: "[10, 10]"}]
//	    input: {scan: {def: c1, projection: p0}}
//	----
//	sargable [card=100]
//	├── p0:"a" [10, 10]
//	└── scan c1 (p0) [card=1000]
package cetester

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/docce/pkg/opt"
	"github.com/cockroachdb/docce/pkg/opt/ce"
	"github.com/cockroachdb/docce/pkg/opt/constraint"
	"github.com/cockroachdb/docce/pkg/opt/memo"
	"github.com/cockroachdb/docce/pkg/opt/props"
	"github.com/cockroachdb/docce/pkg/opt/stats"
	"github.com/cockroachdb/errors"
)

// CETester holds the statistics loaded by a test file and the flags of the
// current command.
type CETester struct {
	Flags Flags

	stats *stats.CollectionStatistics
}

// Flags are the command arguments that control estimation.
type Flags struct {
	// Combiner is "backoff" or "independence".
	Combiner string

	// MaxBackoffElements configures the backoff combiner.
	MaxBackoffElements int

	// Heuristic estimates plans without histograms.
	Heuristic bool

	// ScanCardinality is the heuristic cardinality of unknown scans.
	ScanCardinality float64
}

// New returns a tester with no statistics loaded.
func New() *CETester {
	return &CETester{}
}

// RunCommand implements the commands used by cardinality estimation tests:
//
//   - stats
//
//     Loads YAML collection statistics and prints a summary of them.
//
//   - estimate [combiner=backoff|independence] [max-backoff=N] [heuristic]
//     [scan-cardinality=N]
//
//     Parses a YAML plan and prints it with the estimated cardinality of
//     every node that produces documents.
//
//   - interval path=<path> [element-match] [scope=N]
//
//     Estimates each interval of the input, one per line, against the
//     histogram of the path.
//
//   - serialize
//
//     Prints the histogram key of each path of the input, one per line.
func (ct *CETester) RunCommand(t *testing.T, d *datadriven.TestData) string {
	ct.Flags = Flags{}
	if err := ct.Flags.set(d.CmdArgs); err != nil {
		d.Fatalf(t, "%+v", err)
	}

	switch d.Cmd {
	case "stats":
		st, err := stats.LoadYAML(strings.NewReader(d.Input))
		if err != nil {
			return fmt.Sprintf("error: %v\n", err)
		}
		ct.stats = st
		return fmt.Sprintf("cardinality=%g paths=%s\n", st.Cardinality(), strings.Join(st.Paths(), ","))

	case "estimate":
		out, err := ct.Estimate(d.Input)
		if err != nil {
			return fmt.Sprintf("error: %v\n", err)
		}
		return out

	case "interval":
		if ct.stats == nil {
			d.Fatalf(t, "no statistics loaded")
		}
		var path string
		d.ScanArgs(t, "path", &path)
		scope := ct.stats.Cardinality()
		if d.HasArg("scope") {
			var n int
			d.ScanArgs(t, "scope", &n)
			scope = float64(n)
		}
		return ct.estimateIntervals(t, d, path, scope, !d.HasArg("element-match"))

	case "serialize":
		var buf bytes.Buffer
		for _, line := range strings.Split(strings.TrimSpace(d.Input), "\n") {
			key, err := serialize(line)
			if err != nil {
				fmt.Fprintf(&buf, "%s: error: %v\n", line, err)
				continue
			}
			fmt.Fprintf(&buf, "%s: %q\n", line, key)
		}
		return buf.String()

	default:
		d.Fatalf(t, "unsupported command: %s", d.Cmd)
		return ""
	}
}

// Estimate parses a YAML plan and formats it with the cardinality of each
// node.
func (ct *CETester) Estimate(input string) (string, error) {
	plan, err := memo.ParsePlan([]byte(input))
	if err != nil {
		return "", err
	}
	est, err := ct.estimator()
	if err != nil {
		return "", err
	}

	ctx := context.Background()
	// Check the whole plan first, so that errors are reported once.
	if _, err := est.DeriveCE(ctx, plan.Metadata, plan.Memo, &props.Logical{}, plan.Root); err != nil {
		return "", err
	}
	return memo.FormatNode(plan.Root, func(n memo.Node) string {
		if !opt.CanBeLogical(n.Op()) {
			return ""
		}
		card, err := est.DeriveCE(ctx, plan.Metadata, plan.Memo, nil /* logical */, n)
		if err != nil {
			return fmt.Sprintf("[error: %v]", err)
		}
		logical := props.Logical{}.WithCardinality(card)
		return logical.String()
	}), nil
}

func (ct *CETester) estimator() (ce.CardinalityEstimator, error) {
	opts := ce.Options{FallbackScanCardinality: ct.Flags.ScanCardinality}
	if ct.Flags.Combiner != "" {
		maxElements := ct.Flags.MaxBackoffElements
		if maxElements == 0 {
			maxElements = opt.DefaultMaxBackoffElements
		}
		c, err := ce.CombinerByName(ct.Flags.Combiner, maxElements)
		if err != nil {
			return nil, err
		}
		opts.Combiner = c
	}
	if ct.Flags.Heuristic {
		return ce.NewHeuristicEstimator(opts), nil
	}
	if ct.stats == nil {
		return nil, errors.New("no statistics loaded")
	}
	return ce.NewHistogramEstimator(ct.stats, opts), nil
}

func (ct *CETester) estimateIntervals(
	t *testing.T, d *datadriven.TestData, path string, scope float64, includeScalar bool,
) string {
	h, ok := ct.stats.Histogram(path)
	if !ok {
		d.Fatalf(t, "no histogram for path %q", path)
	}
	var est ce.HistogramIntervalEstimator
	var buf bytes.Buffer
	for _, line := range strings.Split(strings.TrimSpace(d.Input), "\n") {
		e, err := constraint.ParseIntervalExpr(line)
		if err != nil {
			d.Fatalf(t, "%v", err)
		}
		if len(e.Disjuncts) != 1 || len(e.Disjuncts[0].Atoms) != 1 {
			d.Fatalf(t, "expected a single interval: %s", line)
		}
		card, ok := est.EstimateInterval(h, e.Disjuncts[0].Atoms[0], scope, includeScalar)
		if !ok {
			fmt.Fprintf(&buf, "%s: unknown\n", line)
			continue
		}
		fmt.Fprintf(&buf, "%s: %g\n", line, card)
	}
	return buf.String()
}

// serialize returns the histogram key of a path in text form.
func serialize(s string) (key string, err error) {
	p, err := memo.ParsePath(s)
	if err != nil {
		return "", err
	}
	defer func() {
		if r := recover(); r != nil {
			err = opt.CatchOptimizerError(r)
		}
	}()
	return ce.SerializePath(p), nil
}

// set parses the command arguments into the flags.
func (f *Flags) set(args []datadriven.CmdArg) error {
	for _, arg := range args {
		switch arg.Key {
		case "combiner":
			if len(arg.Vals) != 1 {
				return errors.Newf("combiner requires one value")
			}
			f.Combiner = arg.Vals[0]

		case "max-backoff":
			if len(arg.Vals) != 1 {
				return errors.Newf("max-backoff requires one value")
			}
			n, err := strconv.Atoi(arg.Vals[0])
			if err != nil {
				return errors.Wrap(err, "max-backoff")
			}
			f.MaxBackoffElements = n

		case "heuristic":
			f.Heuristic = true

		case "scan-cardinality":
			if len(arg.Vals) != 1 {
				return errors.Newf("scan-cardinality requires one value")
			}
			n, err := strconv.ParseFloat(arg.Vals[0], 64)
			if err != nil {
				return errors.Wrap(err, "scan-cardinality")
			}
			f.ScanCardinality = n

		case "path", "scope", "element-match":
			// Used by the interval command.

		default:
			return errors.Newf("unknown argument: %s", arg.Key)
		}
	}
	return nil
}
