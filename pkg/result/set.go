// Package result holds the wire schema of the calculation server: request
// bodies, iteration records and the three result-set variants.
//
// A result set is a sealed sum type. Code that needs per-method behaviour
// implements [Visitor]; because the interface names every variant, adding a
// method without handling it everywhere fails to compile.
//
//	set, err := result.Decode(req, body)
//	if err != nil {
//	    // malformed payload: never visualized
//	}
//	set.Accept(myVisitor)
package result

import "github.com/numview/numview/pkg/method"

// Meta is the method-specific display context of a result set.
type Meta struct {
	Function   string // f(x,y) or f(x) as submitted
	Derivative string // f'(x) as submitted; empty means numerical derivative
	Converged  bool   // Newton only
}

// HasDerivative reports whether an explicit derivative was supplied.
func (m Meta) HasDerivative() bool { return m.Derivative != "" }

// Set is a decoded, non-empty result set.
type Set interface {
	Method() method.Method
	Len() int
	Metadata() Meta
	Accept(v Visitor)
}

// Visitor handles every result-set variant.
type Visitor interface {
	VisitEuler(s *EulerSet)
	VisitRunge(s *RungeSet)
	VisitNewton(s *NewtonSet)
}

// EulerSet is an improved Euler result.
type EulerSet struct {
	Records []EulerRecord
	Meta    Meta
}

func (s *EulerSet) Method() method.Method { return method.Euler }
func (s *EulerSet) Len() int              { return len(s.Records) }
func (s *EulerSet) Metadata() Meta        { return s.Meta }
func (s *EulerSet) Accept(v Visitor)      { v.VisitEuler(s) }

// Last returns the final record.
func (s *EulerSet) Last() EulerRecord { return s.Records[len(s.Records)-1] }

// RungeSet is a Runge-Kutta result.
type RungeSet struct {
	Records []RungeRecord
	Meta    Meta
}

func (s *RungeSet) Method() method.Method { return method.Runge }
func (s *RungeSet) Len() int              { return len(s.Records) }
func (s *RungeSet) Metadata() Meta        { return s.Meta }
func (s *RungeSet) Accept(v Visitor)      { v.VisitRunge(s) }

// Last returns the final record.
func (s *RungeSet) Last() RungeRecord { return s.Records[len(s.Records)-1] }

// NewtonSet is a Newton-Raphson result.
type NewtonSet struct {
	Records []NewtonRecord
	Meta    Meta
}

func (s *NewtonSet) Method() method.Method { return method.Newton }
func (s *NewtonSet) Len() int              { return len(s.Records) }
func (s *NewtonSet) Metadata() Meta        { return s.Meta }
func (s *NewtonSet) Accept(v Visitor)      { v.VisitNewton(s) }

// Last returns the final iteration.
func (s *NewtonSet) Last() NewtonRecord { return s.Records[len(s.Records)-1] }

var (
	_ Set = (*EulerSet)(nil)
	_ Set = (*RungeSet)(nil)
	_ Set = (*NewtonSet)(nil)
)
