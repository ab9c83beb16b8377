// Package logger wraps zerolog for go-session-auth.
//
// Every entry is JSON with a "role" field, a timestamp and the calling
// function under "func". [NewLogger] writes to stdout through a
// [RedactingWriter], so user PII and credentials are masked before they hit
// the log stream. Request-scoped loggers travel in the context and are read
// back with [FromContext] or [FromRequest].
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger, so Debug, Info, Err and the rest are called
// on it directly.
type Logger struct {
	zerolog.Logger
}

var globalsOnce sync.Once

// setupGlobals applies the process-wide zerolog settings once.
func setupGlobals() {
	globalsOnce.Do(func() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		zerolog.CallerFieldName = "func"
		zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
			return runtime.FuncForPC(pc).Name()
		}
	})
}

// NewLogger returns the production logger for role ("server", "worker").
// PII listed in [DefaultPIIFields] is redacted.
func NewLogger(role string) *Logger {
	return New(role, NewRedactingWriter(os.Stdout, DefaultPIIFields))
}

// New is like [NewLogger] but writes to w unchanged.
func New(role string, w io.Writer) *Logger {
	setupGlobals()

	return &Logger{
		zerolog.New(w).With().
			Str("role", role).
			Timestamp().
			Caller().
			Logger(),
	}
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy of l that can be enriched (e.g. with a
// trace id) without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx with zerolog's
// WithContext. Without one, zerolog's default logger is returned, so the
// result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
