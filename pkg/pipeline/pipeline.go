// Package pipeline is the calculation dispatcher of numview.
//
// One dispatch turns raw form inputs into something on screen:
//
//  1. Begin: build the request body for the method, mark its submit
//     control busy, assign a request id
//  2. Do: the single network call (the only step that blocks)
//  3. Finish: decode, visualize, present the chart, replace the results
//     container, clear the busy state
//
// Any failure along the way ends in the error presenter, writing into the
// same container a success would have used. The busy state is cleared on
// every path.
//
// # Usage
//
//	runner := pipeline.NewRunner(client, charts, surf, logger)
//	out := runner.Dispatch(ctx, method.Euler, pipeline.Inputs{
//	    result.InputFunction: "x+y",
//	    result.InputX0:       "0",
//	    result.InputY0:       "1",
//	    result.InputXF:       "1",
//	    result.InputH:        "0.5",
//	})
//
// Interactive front ends run the steps separately so that only Do leaves
// the UI goroutine:
//
//	call, err := runner.Begin(ctx, m, inputs)
//	go func() { call.Do(ctx); events <- call }()
//	// ... later, on the UI goroutine:
//	out := runner.Finish(ctx, <-events)
//
// There is no de-duplication and no cancellation of in-flight calls: when
// the same method is submitted twice, whichever response completes last is
// what stays on screen.
package pipeline

import (
	"time"

	"github.com/numview/numview/pkg/chart"
	"github.com/numview/numview/pkg/method"
	"github.com/numview/numview/pkg/result"
	"github.com/numview/numview/pkg/view"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultTolerance is the Newton-Raphson stopping tolerance.
	DefaultTolerance = "0.0001"

	// DefaultMaxIterations is the Newton-Raphson iteration cap.
	DefaultMaxIterations = "100"
)

// Inputs maps input field names (see the result.Input* constants) to raw
// form values.
type Inputs map[string]string

// WithDefaults returns a copy of in with the method defaults filled in for
// empty Newton-Raphson fields.
func (in Inputs) WithDefaults(m method.Method) Inputs {
	out := make(Inputs, len(in)+2)
	for k, v := range in {
		out[k] = v
	}
	if m == method.Newton {
		if out[result.InputTolerance] == "" {
			out[result.InputTolerance] = DefaultTolerance
		}
		if out[result.InputMaxIterations] == "" {
			out[result.InputMaxIterations] = DefaultMaxIterations
		}
	}
	return out
}

// Outcome is the result of one dispatch.
type Outcome struct {
	Method    method.Method
	RequestID string

	Report *view.Report  // nil on failure
	Chart  *chart.Handle // nil on failure
	Err    error         // nil on success

	// Superseded is set when a newer call for the same method started
	// before this one completed.
	Superseded bool

	Duration time.Duration
}

// OK reports whether the dispatch presented a result.
func (o Outcome) OK() bool { return o.Err == nil }

// Rows returns the number of table rows presented.
func (o Outcome) Rows() int {
	if o.Report == nil {
		return 0
	}
	return len(o.Report.Table.Rows)
}
