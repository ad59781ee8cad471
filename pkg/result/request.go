package result

import (
	"math"
	"strconv"
	"strings"

	"github.com/numview/numview/pkg/errors"
	"github.com/numview/numview/pkg/method"
)

// Input field names shared by every input surface (CLI flags, TUI fields,
// web form values).
const (
	InputFunction      = "function"
	InputDerivative    = "derivative"
	InputX0            = "x0"
	InputY0            = "y0"
	InputXF            = "xf"
	InputH             = "h"
	InputTolerance     = "tolerance"
	InputMaxIterations = "maxIterations"
)

// InputFields returns the input names m reads, in form order.
func InputFields(m method.Method) []string {
	switch m {
	case method.Euler, method.Runge:
		return []string{InputFunction, InputX0, InputY0, InputXF, InputH}
	case method.Newton:
		return []string{InputFunction, InputDerivative, InputX0, InputTolerance, InputMaxIterations}
	}
	return nil
}

// InputLabel returns the form label of input name for m.
func InputLabel(m method.Method, name string) string {
	switch name {
	case InputFunction:
		if m == method.Newton {
			return "f(x)"
		}
		return "f(x, y)"
	case InputDerivative:
		return "f'(x) (optional)"
	case InputX0:
		return "x₀"
	case InputY0:
		return "y₀"
	case InputXF:
		return "x final"
	case InputH:
		return "Step h"
	case InputTolerance:
		return "Tolerance"
	case InputMaxIterations:
		return "Max iterations"
	}
	return name
}

// Request is a calculation request body. The set of implementations is
// closed: [ODERequest] and [NewtonRequest].
type Request interface {
	Method() method.Method
	FunctionText() string
	isRequest()
}

// ODERequest is the body shared by the Euler and Runge-Kutta endpoints.
// Numeric fields that could not be parsed are sent as null.
type ODERequest struct {
	Function string   `json:"funcion"`
	X0       *float64 `json:"x0"`
	Y0       *float64 `json:"y0"`
	XF       *float64 `json:"xf"`
	H        *float64 `json:"h"`

	method method.Method
}

// Method returns the method the request targets.
func (r *ODERequest) Method() method.Method { return r.method }

// FunctionText returns f(x,y) as entered.
func (r *ODERequest) FunctionText() string { return r.Function }

func (*ODERequest) isRequest() {}

// NewtonRequest is the Newton-Raphson request body.
type NewtonRequest struct {
	Function      string   `json:"funcion"`
	Derivative    string   `json:"derivada"`
	X0            *float64 `json:"x0"`
	Tolerance     *float64 `json:"tolerancia"`
	MaxIterations *float64 `json:"maxIteraciones"`
}

// Method returns [method.Newton].
func (*NewtonRequest) Method() method.Method { return method.Newton }

// FunctionText returns f(x) as entered.
func (r *NewtonRequest) FunctionText() string { return r.Function }

func (*NewtonRequest) isRequest() {}

// NewRequest builds the request body for m from raw form inputs.
// Only an unknown method is an error; bad numbers become null and are left
// for the server to reject.
func NewRequest(m method.Method, inputs map[string]string) (Request, error) {
	switch m {
	case method.Euler, method.Runge:
		return &ODERequest{
			Function: inputs[InputFunction],
			X0:       ParseNumber(inputs[InputX0]),
			Y0:       ParseNumber(inputs[InputY0]),
			XF:       ParseNumber(inputs[InputXF]),
			H:        ParseNumber(inputs[InputH]),
			method:   m,
		}, nil
	case method.Newton:
		return &NewtonRequest{
			Function:      inputs[InputFunction],
			Derivative:    inputs[InputDerivative],
			X0:            ParseNumber(inputs[InputX0]),
			Tolerance:     ParseNumber(inputs[InputTolerance]),
			MaxIterations: ParseNumber(inputs[InputMaxIterations]),
		}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidMethod, "unknown method %q", m)
}

// ParseNumber parses a numeric form value. It returns nil for empty,
// malformed or non-finite input.
func ParseNumber(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
