// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package exit defines the exit codes of the docce command.
package exit

// Code is a process exit code.
type Code struct {
	code int
}

// AsInt returns the code as an integer, for os.Exit.
func (c Code) AsInt() int { return c.code }

// Success (0) represents a normal process termination.
func Success() Code { return Code{0} }

// UnspecifiedError (1) indicates the process has terminated with an
// error condition. The specific cause of the error can be found in
// the logging output.
func UnspecifiedError() Code { return Code{1} }

// UnspecifiedGoPanic (2) indicates the process has terminated due to
// an uncaught Go panic or some other error in the Go runtime.
//
// The reporting of this exit code likely indicates a programming
// error inside the estimator.
func UnspecifiedGoPanic() Code { return Code{2} }

// CommandLineFlagError (4) indicates there was an error in the
// command-line parameters.
func CommandLineFlagError() Code { return Code{4} }

// Codes that are specific to commands follow. Command-specific exit codes
// are allocated down from 125.

// InputLoadFailed indicates that a statistics or plan file could not be
// read or parsed.
func InputLoadFailed() Code { return Code{125} }

// EstimationFailed indicates that a plan could not be estimated, for
// example because it holds a path that can't be matched to histograms.
func EstimationFailed() Code { return Code{124} }
