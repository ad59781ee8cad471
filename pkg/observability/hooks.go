// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional: every hook category has a no-op default, and
// main registers real implementations at startup. Libraries never import an
// observability backend directly.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDispatchHooks(&myDispatchHooks{})
//	    observability.SetChartHooks(&myChartHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Dispatch().OnDispatchStart(ctx, "euler", requestID)
//	// ... request, decode, visualize ...
//	observability.Dispatch().OnDispatchComplete(ctx, "euler", requestID, rows, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Dispatch Hooks
// =============================================================================

// DispatchHooks receives events from the calculation dispatcher.
type DispatchHooks interface {
	// OnDispatchStart records a calculation request about to be sent.
	OnDispatchStart(ctx context.Context, method, requestID string)

	// OnDispatchComplete records the outcome of a calculation. rows is the
	// number of table rows presented (0 on failure).
	OnDispatchComplete(ctx context.Context, method, requestID string, rows int, duration time.Duration, err error)

	// OnSuperseded records a completion that finished after a newer call for
	// the same method had already started.
	OnSuperseded(ctx context.Context, method, requestID string)
}

// =============================================================================
// Chart Hooks
// =============================================================================

// ChartHooks receives events from the chart lifecycle manager.
type ChartHooks interface {
	// OnChartPresent records a new live chart bound to slot.
	OnChartPresent(ctx context.Context, slot, handleID string, series, points int)

	// OnChartRelease records the release of a chart's engine resources.
	OnChartRelease(ctx context.Context, slot, handleID string)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDispatchHooks is a no-op implementation of DispatchHooks.
type NoopDispatchHooks struct{}

func (NoopDispatchHooks) OnDispatchStart(context.Context, string, string) {}
func (NoopDispatchHooks) OnDispatchComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopDispatchHooks) OnSuperseded(context.Context, string, string) {}

// NoopChartHooks is a no-op implementation of ChartHooks.
type NoopChartHooks struct{}

func (NoopChartHooks) OnChartPresent(context.Context, string, string, int, int) {}
func (NoopChartHooks) OnChartRelease(context.Context, string, string)           {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	dispatchHooks DispatchHooks = NoopDispatchHooks{}
	chartHooks    ChartHooks    = NoopChartHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetDispatchHooks registers custom dispatch hooks.
func SetDispatchHooks(h DispatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dispatchHooks = h
	}
}

// SetChartHooks registers custom chart hooks.
func SetChartHooks(h ChartHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		chartHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Dispatch returns the registered dispatch hooks.
func Dispatch() DispatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dispatchHooks
}

// Chart returns the registered chart hooks.
func Chart() ChartHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return chartHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	dispatchHooks = NoopDispatchHooks{}
	chartHooks = NoopChartHooks{}
	httpHooks = NoopHTTPHooks{}
}
