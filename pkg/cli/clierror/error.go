// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package clierror attaches exit codes and log severities to the errors
// returned by commands.
package clierror

import (
	"context"
	"fmt"

	"github.com/cockroachdb/docce/pkg/cli/exit"
	"github.com/cockroachdb/docce/pkg/util/log"
	"github.com/cockroachdb/errors"
)

// Error wraps an error with the exit code the process should terminate
// with, and the severity it is logged at.
type Error struct {
	exitCode exit.Code
	severity log.Severity
	cause    error
}

// NewError instantiates a new Error logged at the ERROR severity.
func NewError(cause error, exitCode exit.Code) error {
	return NewErrorWithSeverity(cause, exitCode, log.ErrorLog)
}

// NewErrorWithSeverity instantiates a new Error with the given severity.
func NewErrorWithSeverity(cause error, exitCode exit.Code, severity log.Severity) error {
	return &Error{
		exitCode: exitCode,
		severity: severity,
		cause:    cause,
	}
}

// GetExitCode returns the exit code of the process.
func (e *Error) GetExitCode() exit.Code { return e.exitCode }

// Error implements the error interface.
func (e *Error) Error() string { return fmt.Sprintf("%v", e) }

// Cause implements causer.
func (e *Error) Cause() error { return e.cause }

// Unwrap implements the Go 1.13 wrapper interface.
func (e *Error) Unwrap() error { return e.cause }

// Format implements fmt.Formatter.
func (e *Error) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

// FormatError implements errors.Formatter.
func (e *Error) FormatError(p errors.Printer) error {
	if p.Detail() {
		p.Printf("error with exit code: %d", e.exitCode.AsInt())
	}
	return e.cause
}

// ExitCode returns the exit code carried by err, or exit.UnspecifiedError()
// if it carries none.
func ExitCode(err error) exit.Code {
	var cliErr *Error
	if errors.As(err, &cliErr) {
		return cliErr.GetExitCode()
	}
	return exit.UnspecifiedError()
}

// LoggerFn is the function used by CheckAndMaybeLog to report errors.
type LoggerFn = func(ctx context.Context, sev log.Severity, msg string, args ...interface{})

// CheckAndMaybeLog reports the error, if non-nil, to the given logger, and
// returns it unchanged. The severity is that of the outermost *Error in
// the chain, ERROR if there is none, and the cause is logged without that
// *Error layer.
func CheckAndMaybeLog(err error, logger LoggerFn) error {
	if err == nil {
		return nil
	}
	severity := log.ErrorLog
	cause := err
	var cliErr *Error
	if errors.As(err, &cliErr) {
		severity = cliErr.severity
		cause = cliErr.cause
	}
	logger(context.Background(), severity, "%v", cause)
	return err
}
