// Package method defines the closed set of numerical methods numview can
// present, together with the endpoint and surface identifiers bound to each.
//
// A [Method] is a small string tag. Everything that differs per method at
// the transport or surface level (request path, results container, submit
// control, chart slot, display title) hangs off it, so callers never build
// identifiers by hand.
//
//	m, err := method.Parse("newton")
//	m.Endpoint()         // "/api/newton-raphson"
//	m.ResultsContainer() // "newtonResults"
//	m.ChartSlot()        // "newtonChart"
package method

import (
	"strings"

	"github.com/numview/numview/pkg/errors"
)

// Method identifies one of the supported numerical methods.
type Method string

// Supported methods.
const (
	Euler  Method = "euler"  // improved Euler (Heun)
	Runge  Method = "runge"  // 4th-order Runge-Kutta
	Newton Method = "newton" // Newton-Raphson root finding
)

// All lists the supported methods in display order.
var All = []Method{Euler, Runge, Newton}

var aliases = map[string]Method{
	"euler":          Euler,
	"heun":           Euler,
	"runge":          Runge,
	"runge-kutta":    Runge,
	"rk4":            Runge,
	"newton":         Newton,
	"newton-raphson": Newton,
}

// Parse resolves a method name or one of its aliases (case-insensitive).
func Parse(s string) (Method, error) {
	if m, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMethod, "unknown method %q (must be one of: euler, runge, newton)", s)
}

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	return m == Euler || m == Runge || m == Newton
}

// String returns the method tag.
func (m Method) String() string { return string(m) }

// Endpoint returns the calculation server path for m.
func (m Method) Endpoint() string {
	switch m {
	case Euler:
		return "/api/euler"
	case Runge:
		return "/api/runge-kutta"
	case Newton:
		return "/api/newton-raphson"
	}
	return ""
}

// Title returns the human-readable method name.
func (m Method) Title() string {
	switch m {
	case Euler:
		return "Improved Euler (Heun)"
	case Runge:
		return "Runge-Kutta RK4"
	case Newton:
		return "Newton-Raphson"
	}
	return string(m)
}

// Subtitle returns a one-line description of m.
func (m Method) Subtitle() string {
	switch m {
	case Euler:
		return "Heun's method for ordinary differential equations"
	case Runge:
		return "4th-order method for ODEs, high accuracy"
	case Newton:
		return "Iterative search for roots of functions"
	}
	return ""
}

// ResultsContainer returns the id of the container that receives m's
// results or error notice.
func (m Method) ResultsContainer() string { return string(m) + "Results" }

// SubmitControl returns the id of the control whose busy state tracks m's
// in-flight request.
func (m Method) SubmitControl() string { return string(m) + "Btn" }

// ChartSlot returns the id of m's chart slot.
func (m Method) ChartSlot() string { return string(m) + "Chart" }

// FromChartSlot returns the method owning slot, if any.
func FromChartSlot(slot string) (Method, bool) {
	for _, m := range All {
		if m.ChartSlot() == slot {
			return m, true
		}
	}
	return "", false
}
