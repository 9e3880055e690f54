package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/prettify/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered SVG (2 milliseconds)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, elapsedString(time.Since(p.start)))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Debug Hooks
// =============================================================================

// logHooks reports pipeline, cache and server events at debug level.
type logHooks struct {
	logger *log.Logger
}

func installLogHooks(l *log.Logger) {
	h := logHooks{logger: l.WithPrefix("hooks")}
	observability.SetFormatHooks(h)
	observability.SetCacheHooks(h)
	observability.SetServerHooks(h)
}

func (h logHooks) OnParseStart(_ context.Context, lang string, size int) {
	h.logger.Debug("parse", "lang", lang, "bytes", size)
}

func (h logHooks) OnParseComplete(_ context.Context, lang string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "lang", lang, "duration", d, "err", err)
		return
	}
	h.logger.Debug("parsed", "lang", lang, "duration", d)
}

func (h logHooks) OnPrintStart(_ context.Context, lang string) {
	h.logger.Debug("print", "lang", lang)
}

func (h logHooks) OnPrintComplete(_ context.Context, lang string, size int, d time.Duration) {
	h.logger.Debug("printed", "lang", lang, "bytes", size, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, lang string) {
	h.logger.Debug("cache hit", "lang", lang)
}

func (h logHooks) OnCacheMiss(_ context.Context, lang string) {
	h.logger.Debug("cache miss", "lang", lang)
}

func (h logHooks) OnCacheSet(_ context.Context, lang string, size int) {
	h.logger.Debug("cache set", "lang", lang, "bytes", size)
}

func (h logHooks) OnCacheError(_ context.Context, op string, err error) {
	h.logger.Debug("cache error", "op", op, "err", err)
}

func (h logHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h logHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "duration", d)
}
