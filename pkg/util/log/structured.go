// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
)

// FormatWithContextTags formats the string and prepends the context
// tags.
//
// Redaction markers are *not* inserted. The resulting
// string is generally unsafe for reporting.
func FormatWithContextTags(ctx context.Context, format string, args ...interface{}) string {
	var buf strings.Builder
	if tags := formatTags(ctx); tags != "" {
		buf.WriteByte('[')
		buf.WriteString(tags)
		buf.WriteString("] ")
	}
	buf.WriteString(redact.Sprintf(format, args...).StripMarkers())
	return buf.String()
}

// formatTags renders the logtags attached to ctx as k=v pairs, or the empty
// string if there are none.
func formatTags(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	tags := logtags.FromContext(ctx)
	if tags == nil {
		return ""
	}
	return tags.String()
}

// addStructured creates a structured log entry to be written to the
// specified facility of the logger.
func addStructured(
	ctx context.Context, sev Severity, depth int, format string, args []interface{},
) {
	if ctx == nil {
		panic("nil context")
	}
	file, line := callerInfo(depth + 1)
	msg := redact.Sprintf(format, args...)
	var text string
	if logging.redactable.Load() {
		text = string(msg)
	} else {
		text = msg.StripMarkers()
	}
	logging.outputLogEntry(logEntry{
		sev:  sev,
		time: time.Now(),
		file: file,
		line: line,
		tags: formatTags(ctx),
		msg:  text,
	})
}
