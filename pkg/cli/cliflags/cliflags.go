// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cliflags holds the names and descriptions of the command-line
// flags.
package cliflags

import (
	"fmt"
	"strings"
)

// FlagInfo describes a command-line flag.
type FlagInfo struct {
	// Name of the flag as used on the command line.
	Name string

	// Shorthand is the short form of the flag (optional).
	Shorthand string

	// EnvVar is the name of the environment variable through which the flag
	// value can be controlled (optional).
	EnvVar string

	// Description of the flag.
	Description string
}

// Usage returns the usage string of the flag, wrapped to fit a terminal.
func (f FlagInfo) Usage() string {
	s := "\n" + wrapDescription(f.Description)
	if f.EnvVar != "" {
		s = fmt.Sprintf("%s\nEnvironment variable: %s", s, f.EnvVar)
	}
	// pflag appends the default value to the usage string.
	return s + "\n"
}

const wrapWidth = 79 - 15

func wrapDescription(s string) string {
	var result, line strings.Builder
	for _, word := range strings.Fields(s) {
		if line.Len() > 0 && line.Len()+len(word)+1 > wrapWidth {
			result.WriteString(line.String())
			result.WriteByte('\n')
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	result.WriteString(line.String())
	return result.String()
}

// Flags of the estimate and stats commands.
var (
	Stats = FlagInfo{
		Name:        "stats",
		Shorthand:   "s",
		EnvVar:      "DOCCE_STATS",
		Description: `YAML file holding the statistics of the scanned collection.`,
	}

	Plan = FlagInfo{
		Name:        "plan",
		Shorthand:   "p",
		Description: `YAML file holding the plan to estimate.`,
	}

	Combiner = FlagInfo{
		Name:   "combiner",
		EnvVar: "DOCCE_COMBINER",
		Description: `How the selectivities of conjuncts and disjuncts are combined:
"backoff" or "independence".`,
	}

	MaxBackoffElements = FlagInfo{
		Name: "max-backoff-elements",
		Description: `Number of most selective conjuncts the backoff combiner
considers. Less selective conjuncts are ignored.`,
	}

	FallbackScanCardinality = FlagInfo{
		Name: "fallback-scan-cardinality",
		Description: `Number of documents assumed for scans of collections without
a known cardinality, when estimating without statistics. With statistics,
scans hold as many documents as the statistics describe.`,
	}

	VModuleLevel = FlagInfo{
		Name:   "vmodule-level",
		EnvVar: "DOCCE_VMODULE_LEVEL",
		Description: `Verbosity of the estimation log. At 2 and above, the estimate of
every interval and every fallback is logged to stderr.`,
	}

	PrintMetrics = FlagInfo{
		Name:        "print-metrics",
		Description: `Print the estimation counters after the plan.`,
	}
)
