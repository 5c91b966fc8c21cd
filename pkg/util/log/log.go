// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log implements a small leveled logger. Every entry point takes a
// context.Context so that the logtags attached to it are rendered with the
// message, and arguments are formatted through redact so that values which
// are not marked safe can be stripped or kept with markers.
package log

import "context"

// Infof logs to the INFO severity.
func Infof(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, InfoLog, 1, format, args)
}

// Warningf logs to the WARNING severity.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, WarningLog, 1, format, args)
}

// Errorf logs to the ERROR severity.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, ErrorLog, 1, format, args)
}

// Fatalf logs to the FATAL severity and exits the process, or calls the
// function installed with SetExitFunc.
func Fatalf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, FatalLog, 1, format, args)
}

// VEventf logs to the INFO severity if the verbosity is at least level.
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if V(level) {
		addStructured(ctx, InfoLog, 1, format, args)
	}
}

// Logf logs to the given severity. A FATAL severity exits like Fatalf.
func Logf(ctx context.Context, sev Severity, format string, args ...interface{}) {
	addStructured(ctx, sev, 1, format, args)
}
