// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"io"
	"regexp"
	"strings"
)

const (
	// Redaction replaces every redacted value.
	Redaction = "***"

	// MessageSeparator ends a "field=value" pair inside a log message.
	MessageSeparator = ";"

	messagePrefix = `"message":"`
)

// DefaultPIIFields lists the keys whose values never reach the log stream.
var DefaultPIIFields = []string{
	"name",
	"email",
	"phone",
	"ssn",
	"password",
	"hashed_password",
	"reset_token",
	"session_id",
}

// FilterDatum returns message with the value of every "field=value<separator>"
// pair for the given fields replaced by redaction.
func FilterDatum(fields []string, redaction, message, separator string) string {
	return filterDatum(compileDatumPatterns(fields, redaction, separator), message)
}

type datumPattern struct {
	re          *regexp.Regexp
	replacement string
}

func compileDatumPatterns(fields []string, redaction, separator string) []datumPattern {
	patterns := make([]datumPattern, 0, len(fields))
	for _, field := range fields {
		if field == "" {
			continue
		}
		patterns = append(patterns, datumPattern{
			re:          regexp.MustCompile(regexp.QuoteMeta(field) + "=.*?" + regexp.QuoteMeta(separator)),
			replacement: field + "=" + redaction + separator,
		})
	}
	return patterns
}

func filterDatum(patterns []datumPattern, message string) string {
	for _, p := range patterns {
		message = p.re.ReplaceAllLiteralString(message, p.replacement)
	}
	return message
}

// RedactingWriter rewrites zerolog JSON lines before handing them to the
// underlying writer. String values of PII keys become [Redaction] and the
// "message" field is passed through [FilterDatum].
type RedactingWriter struct {
	out     io.Writer
	datum   []datumPattern
	keys    *regexp.Regexp
	message *regexp.Regexp
}

// NewRedactingWriter returns a RedactingWriter writing to out and redacting
// fields.
func NewRedactingWriter(out io.Writer, fields []string) *RedactingWriter {
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			quoted = append(quoted, regexp.QuoteMeta(f))
		}
	}

	w := &RedactingWriter{
		out:     out,
		datum:   compileDatumPatterns(fields, Redaction, MessageSeparator),
		message: regexp.MustCompile(messagePrefix + `(?:[^"\\]|\\.)*"`),
	}
	if len(quoted) > 0 {
		w.keys = regexp.MustCompile(`"(` + strings.Join(quoted, "|") + `)":"(?:[^"\\]|\\.)*"`)
	}
	return w
}

// Write implements io.Writer. It reports len(p) on success even though the
// bytes written downstream differ from p.
func (w *RedactingWriter) Write(p []byte) (int, error) {
	line := string(p)

	if w.keys != nil {
		line = w.keys.ReplaceAllString(line, `"$1":"`+Redaction+`"`)
	}

	line = w.message.ReplaceAllStringFunc(line, func(m string) string {
		body := m[len(messagePrefix) : len(m)-1]
		return messagePrefix + filterDatum(w.datum, body) + `"`
	})

	if _, err := io.WriteString(w.out, line); err != nil {
		return 0, err
	}
	return len(p), nil
}
