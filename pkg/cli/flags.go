// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"os"

	"github.com/cockroachdb/docce/pkg/cli/cliflags"
	"github.com/cockroachdb/docce/pkg/opt"
	"github.com/spf13/pflag"
)

func setFlagFromEnv(f *pflag.FlagSet, flagInfo cliflags.FlagInfo) {
	if flagInfo.EnvVar != "" {
		if value, set := os.LookupEnv(flagInfo.EnvVar); set {
			if err := f.Set(flagInfo.Name, value); err != nil {
				panic(err)
			}
		}
	}
}

// StringFlag creates a string flag and registers it with the FlagSet.
func StringFlag(f *pflag.FlagSet, valPtr *string, flagInfo cliflags.FlagInfo, defaultVal string) {
	f.StringVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// IntFlag creates an int flag and registers it with the FlagSet.
func IntFlag(f *pflag.FlagSet, valPtr *int, flagInfo cliflags.FlagInfo, defaultVal int) {
	f.IntVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// Float64Flag creates a float64 flag and registers it with the FlagSet.
func Float64Flag(f *pflag.FlagSet, valPtr *float64, flagInfo cliflags.FlagInfo, defaultVal float64) {
	f.Float64VarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// BoolFlag creates a bool flag and registers it with the FlagSet.
func BoolFlag(f *pflag.FlagSet, valPtr *bool, flagInfo cliflags.FlagInfo, defaultVal bool) {
	f.BoolVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// estimateCtx captures the command-line parameters of the estimate and
// stats commands.
var estimateCtx struct {
	statsPath               string
	planPath                string
	combiner                string
	maxBackoffElements      int
	fallbackScanCardinality float64
	verbosity               int
	printMetrics            bool
}

// setEstimateContextDefaults resets the parameters. Used by tests.
func setEstimateContextDefaults() {
	estimateCtx.statsPath = ""
	estimateCtx.planPath = ""
	estimateCtx.combiner = "backoff"
	estimateCtx.maxBackoffElements = opt.DefaultMaxBackoffElements
	estimateCtx.fallbackScanCardinality = opt.DefaultScanCardinality
	estimateCtx.verbosity = 0
	estimateCtx.printMetrics = false
}

func init() {
	setEstimateContextDefaults()

	{
		f := estimateCmd.Flags()
		StringFlag(f, &estimateCtx.statsPath, cliflags.Stats, estimateCtx.statsPath)
		StringFlag(f, &estimateCtx.planPath, cliflags.Plan, estimateCtx.planPath)
		StringFlag(f, &estimateCtx.combiner, cliflags.Combiner, estimateCtx.combiner)
		IntFlag(f, &estimateCtx.maxBackoffElements, cliflags.MaxBackoffElements, estimateCtx.maxBackoffElements)
		Float64Flag(f, &estimateCtx.fallbackScanCardinality, cliflags.FallbackScanCardinality,
			estimateCtx.fallbackScanCardinality)
		IntFlag(f, &estimateCtx.verbosity, cliflags.VModuleLevel, estimateCtx.verbosity)
		BoolFlag(f, &estimateCtx.printMetrics, cliflags.PrintMetrics, estimateCtx.printMetrics)
		_ = estimateCmd.MarkFlagRequired(cliflags.Plan.Name)
	}

	{
		f := statsCmd.Flags()
		StringFlag(f, &estimateCtx.statsPath, cliflags.Stats, estimateCtx.statsPath)
		_ = statsCmd.MarkFlagRequired(cliflags.Stats.Name)
	}
}
