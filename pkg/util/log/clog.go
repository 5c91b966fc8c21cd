// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Severity identifies the sort of log: info, warning etc.
type Severity int32

// These constants identify the log levels in order of increasing Severity.
const (
	InfoLog Severity = iota
	WarningLog
	ErrorLog
	FatalLog
	NumSeverity = 4
)

const severityChar = "IWEF"

// severityName provides a mapping from Severity level to a string.
var severityName = []string{
	InfoLog:     "INFO",
	WarningLog:  "WARNING",
	ErrorLog:    "ERROR",
	FatalLog:    "FATAL",
	NumSeverity: "NONE",
}

func (s Severity) String() string {
	if s < 0 || s > NumSeverity {
		return fmt.Sprintf("Severity(%d)", int32(s))
	}
	return severityName[s]
}

// loggingT collects all the global state of the logging setup.
type loggingT struct {
	// verbosity is the V() level. Messages logged with VEventf at a level
	// greater than verbosity are dropped.
	verbosity atomic.Int32

	// redactable, if set, keeps the redaction markers in the output.
	redactable atomic.Bool

	mu struct {
		sync.Mutex
		out          io.Writer
		exitOverride struct {
			f         func(int)
			hideStack bool
		}
	}
}

var logging = func() *loggingT {
	l := &loggingT{}
	l.mu.out = os.Stderr
	return l
}()

// logEntry is a single formatted log line, before it reaches the output.
type logEntry struct {
	sev  Severity
	time time.Time
	file string
	line int
	tags string
	msg  string
}

// SetOutput redirects the log output to w and returns a function that
// restores the previous writer. Used by tests and by the CLI.
func SetOutput(w io.Writer) (restore func()) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	prev := logging.mu.out
	logging.mu.out = w
	return func() {
		logging.mu.Lock()
		defer logging.mu.Unlock()
		logging.mu.out = prev
	}
}

// SetVerbosity sets the global V() level.
func SetVerbosity(level int32) {
	logging.verbosity.Store(level)
}

// SetRedactable controls whether redaction markers are kept in the output.
func SetRedactable(redactable bool) {
	logging.redactable.Store(redactable)
}

// V returns true if the logging verbosity is set to the specified level or
// higher.
func V(level int32) bool {
	return logging.verbosity.Load() >= level
}

// callerInfo returns the file and line of the caller depth frames above
// its own caller.
func callerInfo(depth int) (file string, line int) {
	_, file, line, ok := runtime.Caller(depth + 1)
	if !ok {
		return "???", 1
	}
	return filepath.Base(file), line
}

// outputLogEntry formats the entry and writes it out. Fatal entries exit the
// process afterwards unless an exit override is installed.
func (l *loggingT) outputLogEntry(e logEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// I260116 15:04:05.000000 file.go:12  [tags] msg
	fmt.Fprintf(l.mu.out, "%c%s %s:%d ",
		severityChar[e.sev], e.time.Format("060102 15:04:05.000000"), e.file, e.line)
	if e.tags != "" {
		fmt.Fprintf(l.mu.out, " [%s]", e.tags)
	}
	fmt.Fprintf(l.mu.out, " %s\n", e.msg)

	if e.sev == FatalLog {
		if f := l.mu.exitOverride.f; f != nil {
			f(255)
			return
		}
		if !l.mu.exitOverride.hideStack {
			buf := make([]byte, 64<<10)
			n := runtime.Stack(buf, false /* all */)
			_, _ = l.mu.out.Write(buf[:n])
		}
		os.Exit(255)
	}
}
