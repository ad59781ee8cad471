package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/numview/numview/pkg/observability"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Instrumentation
// =============================================================================

// logHooks reports dispatch, transport and chart events at debug level.
type logHooks struct {
	logger *log.Logger
}

// installLogHooks routes every observability hook to l.
func installLogHooks(l *log.Logger) {
	h := logHooks{logger: l.WithPrefix("hooks")}
	observability.SetDispatchHooks(h)
	observability.SetHTTPHooks(h)
	observability.SetChartHooks(h)
}

func (h logHooks) OnDispatchStart(_ context.Context, method, requestID string) {
	h.logger.Debug("dispatch", "method", method, "request_id", requestID)
}

func (h logHooks) OnDispatchComplete(_ context.Context, method, requestID string, rows int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("dispatch failed", "method", method, "request_id", requestID, "error", err)
		return
	}
	h.logger.Debug("dispatch done", "method", method, "request_id", requestID, "rows", rows, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnSuperseded(_ context.Context, method, requestID string) {
	h.logger.Debug("stale completion", "method", method, "request_id", requestID)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "http_method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "http_method", method, "host", host, "path", path,
		"status", status, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "http_method", method, "host", host, "path", path, "error", err)
}

func (h logHooks) OnChartPresent(_ context.Context, slot, handleID string, series, points int) {
	h.logger.Debug("chart presented", "slot", slot, "handle", handleID, "series", series, "points", points)
}

func (h logHooks) OnChartRelease(_ context.Context, slot, handleID string) {
	h.logger.Debug("chart released", "slot", slot, "handle", handleID)
}
