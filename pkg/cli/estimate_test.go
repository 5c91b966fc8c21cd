// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/docce/pkg/cli/clierror"
	"github.com/cockroachdb/docce/pkg/cli/exit"
	"github.com/cockroachdb/docce/pkg/opt/ce"
	"github.com/cockroachdb/docce/pkg/util/log"
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const testStats = `
cardinality: 1000
histograms:
  a:
    scalar:
      - {bound: 10, eq: 100}
      - {bound: 100, eq: 100, range: 800, ndv: 80}
  b:
    scalar:
      - {bound: 1, eq: 500}
      - {bound: 2, eq: 500}
`

const testPlan = `
plan:
  root:
    projections: [p0]
    input:
      sargable:
        reqs:
          - {projection: p0, path: a, interval: "[10, 10]"}
        input: {scan: {def: c1, projection: p0}}
`

func writeFile(t *testing.T, dir, name, contents string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

// runCLI runs the command line from a clean state and returns its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	setEstimateContextDefaults()
	for _, c := range []*cobra.Command{estimateCmd, statsCmd} {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
	var out bytes.Buffer
	docceCmd.SetOut(&out)
	defer docceCmd.SetOut(nil)
	err := Run(args)
	return out.String(), err
}

func TestEstimate(t *testing.T) {
	dir := t.TempDir()
	statsPath := writeFile(t, dir, "stats.yaml", testStats)
	planPath := writeFile(t, dir, "plan.yaml", testPlan)

	out, err := runCLI(t, "estimate", "--stats", statsPath, "--plan", planPath)
	require.NoError(t, err)
	require.Equal(t, `root p0 [card=100]
└── sargable [card=100]
    ├── p0:"a" [10, 10]
    └── scan c1 (p0) [card=1000]
estimated documents: 100
`, out)

	out, err = runCLI(t, "estimate", "-s", statsPath, "-p", planPath, "--print-metrics")
	require.NoError(t, err)
	require.Contains(t, out, "estimated documents: 100\n"+
		"docce_ce_histogram_nodes_total 1\n"+
		"docce_ce_zero_short_circuit_total 0\n")
}

func TestEstimateCombiner(t *testing.T) {
	dir := t.TempDir()
	statsPath := writeFile(t, dir, "stats.yaml", testStats)
	planPath := writeFile(t, dir, "plan.yaml", `
plan:
  sargable:
    reqs:
      - {projection: p0, path: a, interval: "[10, 10]"}
      - {projection: p0, path: b, interval: "[1, 1]"}
    input: {scan: {def: c1, projection: p0}}
`)

	out, err := runCLI(t, "estimate", "--stats", statsPath, "--plan", planPath)
	require.NoError(t, err)
	require.Contains(t, out, "sargable [card=70.7107]\n")
	require.Contains(t, out, "estimated documents: 70.71\n")

	out, err = runCLI(t, "estimate", "--stats", statsPath, "--plan", planPath, "--combiner", "independence")
	require.NoError(t, err)
	require.Contains(t, out, "estimated documents: 50\n")

	// A single backoff element only keeps the most selective conjunct.
	out, err = runCLI(t, "estimate", "--stats", statsPath, "--plan", planPath, "--max-backoff-elements", "1")
	require.NoError(t, err)
	require.Contains(t, out, "estimated documents: 100\n")
}

func TestEstimateHeuristic(t *testing.T) {
	var logBuf bytes.Buffer
	defer log.SetOutput(&logBuf)()

	dir := t.TempDir()
	planPath := writeFile(t, dir, "plan.yaml", `
scans:
  c1: {collection: users, cardinality: 50}
plan:
  limit-skip: {skip: 10, input: {scan: {def: c1, projection: p0}}}
`)
	out, err := runCLI(t, "estimate", "--plan", planPath)
	require.NoError(t, err)
	require.Equal(t, `limit-skip skip=10 [card=40]
└── scan c1 (p0) [card=50]
estimated documents: 40
`, out)
	require.Contains(t, logBuf.String(), "[estimate] no statistics given, estimating")

	planPath = writeFile(t, dir, "unknown.yaml", "plan: {scan: {def: c2, projection: p0}}")
	out, err = runCLI(t, "estimate", "--plan", planPath, "--fallback-scan-cardinality", "1234")
	require.NoError(t, err)
	require.Contains(t, out, "estimated documents: 1,234\n")
}

func TestEstimateErrors(t *testing.T) {
	dir := t.TempDir()
	statsPath := writeFile(t, dir, "stats.yaml", testStats)
	planPath := writeFile(t, dir, "plan.yaml", testPlan)
	badPath := writeFile(t, dir, "bad.yaml", `
plan:
  sargable:
    reqs: [{projection: p0, path: "a/$arr", interval: "[1, 1]"}]
    input: {scan: {def: c1, projection: p0}}
`)

	testData := []struct {
		name     string
		args     []string
		exitCode exit.Code
		err      string
	}{
		{
			name:     "missing plan flag",
			args:     []string{"estimate", "--stats", statsPath},
			exitCode: exit.UnspecifiedError(),
			err:      `required flag(s) "plan" not set`,
		},
		{
			name:     "unknown flag",
			args:     []string{"estimate", "--plan", planPath, "--colour"},
			exitCode: exit.CommandLineFlagError(),
			err:      "unknown flag: --colour",
		},
		{
			name:     "unknown combiner",
			args:     []string{"estimate", "--plan", planPath, "--combiner", "bogus"},
			exitCode: exit.CommandLineFlagError(),
			err:      `unknown combiner "bogus"`,
		},
		{
			name:     "no backoff elements",
			args:     []string{"estimate", "--plan", planPath, "--max-backoff-elements", "0"},
			exitCode: exit.CommandLineFlagError(),
			err:      "invalid number of backoff elements 0",
		},
		{
			name:     "negative scan cardinality",
			args:     []string{"estimate", "--plan", planPath, "--fallback-scan-cardinality", "-1"},
			exitCode: exit.CommandLineFlagError(),
			err:      "--fallback-scan-cardinality must be positive, got -1",
		},
		{
			name:     "missing plan file",
			args:     []string{"estimate", "--plan", filepath.Join(dir, "nope.yaml")},
			exitCode: exit.InputLoadFailed(),
			err:      "reading plan file",
		},
		{
			name:     "missing stats file",
			args:     []string{"estimate", "--plan", planPath, "--stats", filepath.Join(dir, "nope.yaml")},
			exitCode: exit.InputLoadFailed(),
			err:      "opening statistics file",
		},
		{
			name:     "unsupported path",
			args:     []string{"estimate", "--plan", badPath, "--stats", statsPath},
			exitCode: exit.EstimationFailed(),
			err:      "estimating " + badPath,
		},
	}
	for _, tc := range testData {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runCLI(t, tc.args...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.err)
			require.Equal(t, tc.exitCode, clierror.ExitCode(err))
		})
	}

	_, err := runCLI(t, "estimate", "--plan", badPath, "--stats", statsPath)
	require.True(t, errors.Is(err, ce.ErrUnsupportedPathShape))
}

func TestStats(t *testing.T) {
	statsPath := writeFile(t, t.TempDir(), "stats.yaml", testStats)
	out, err := runCLI(t, "stats", "--stats", statsPath)
	require.NoError(t, err)
	require.Contains(t, out, "cardinality: 1,000\n")
	require.Contains(t, out, "\npath \"a\":\nscalar:\n")
	require.Contains(t, out, "\npath \"b\":\nscalar:\n")

	_, err = runCLI(t, "stats")
	require.EqualError(t, err, `required flag(s) "stats" not set`)
}

func TestRegisterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := ce.NewMetrics()
	require.NoError(t, registerMetrics(reg, m))

	err := registerMetrics(reg, m)
	require.Error(t, err)
	var cliErr *clierror.Error
	require.True(t, errors.As(err, &cliErr))
	require.Equal(t, exit.UnspecifiedError(), cliErr.GetExitCode())
	require.Contains(t, err.Error(), "registering metrics")
}
