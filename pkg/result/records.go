package result

// EulerRecord is one row of an improved Euler (Heun) run.
// Row 0 carries the initial values with "-" in the computed columns.
type EulerRecord struct {
	I     Field `json:"i"`
	X     Field `json:"x"`
	FXY   Field `json:"fxy"`
	K1    Field `json:"k1"`
	K2    Field `json:"k2"`
	YNext Field `json:"yNext"`
	Error Field `json:"error"`
}

// RungeRecord is one row of a 4th-order Runge-Kutta run.
type RungeRecord struct {
	I     Field `json:"i"`
	XI    Field `json:"xi"`
	K1    Field `json:"k1"`
	K2    Field `json:"k2"`
	K3    Field `json:"k3"`
	K4    Field `json:"k4"`
	YNext Field `json:"yNext"`
}

// NewtonRecord is one Newton-Raphson iteration.
type NewtonRecord struct {
	Iter  Field `json:"iter"`
	X     Field `json:"x"`
	FX    Field `json:"fx"`
	FPX   Field `json:"fpx"`
	XNew  Field `json:"xNew"`
	Error Field `json:"error"`
}
