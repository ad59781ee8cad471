// Package pkg provides the core libraries of numview.
//
// # Overview
//
// numview posts one calculation request to a numerical-methods server
// (improved Euler, Runge-Kutta 4, Newton-Raphson) and presents the returned
// iterations as a summary, an iteration table and a chart. The pkg
// directory is organized into four areas:
//
//  1. [method], [result] - The method catalogue, request bodies and typed
//     result sets
//  2. [normalize], [visualize], [view] - Per-method view models built from
//     raw records
//  3. [chart], [render], [theme] - Chart lifecycle and swappable renderers
//  4. [pipeline], [backend], [surface] - Orchestration: request, decode,
//     visualize, present
//
// # Architecture
//
// The data flow of one dispatch:
//
//	form inputs
//	     ↓
//	[pipeline] Begin (request body, busy state, request id)
//	     ↓
//	[backend] Calculate (one POST, no retries)
//	     ↓
//	[result] Decode (typed set, or MALFORMED_PAYLOAD)
//	     ↓
//	[visualize] Render (summary, table, chart spec)
//	     ↓
//	[chart] Present (one live chart per slot)
//	     ↓
//	[surface] Replace (report or error in the results container)
//
// # Quick Start
//
//	client, _ := backend.NewClient(backend.DefaultServer, 0)
//	charts := chart.NewManager(chart.NewEngine(theme.Default()))
//	defer charts.Close()
//	surf := surface.NewMemory()
//
//	runner := pipeline.NewRunner(client, charts, surf, nil)
//	out := runner.Dispatch(ctx, method.Euler, pipeline.Inputs{
//	    result.InputFunction: "x+y",
//	    result.InputX0:       "0",
//	    result.InputY0:       "1",
//	    result.InputXF:       "1",
//	    result.InputH:        "0.5",
//	})
//	if out.Err != nil {
//	    // already presented in "eulerResults"
//	}
//
// # Error Handling
//
// Errors carry a [errors.Code]; [errors.UserMessage] is the text shown in a
// results container.
//
// # Observability
//
// The [observability] package exposes dispatch, chart and HTTP hooks with
// no-op defaults.
package pkg
