package method

import (
	"testing"

	"github.com/numview/numview/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Method
		wantErr bool
	}{
		{"euler", Euler, false},
		{"Heun", Euler, false},
		{"runge", Runge, false},
		{"runge-kutta", Runge, false},
		{" RK4 ", Runge, false},
		{"newton", Newton, false},
		{"newton-raphson", Newton, false},
		{"bisection", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidMethod) {
				t.Errorf("Parse(%q) code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeInvalidMethod)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		m         Method
		endpoint  string
		container string
		control   string
		slot      string
	}{
		{Euler, "/api/euler", "eulerResults", "eulerBtn", "eulerChart"},
		{Runge, "/api/runge-kutta", "rungeResults", "rungeBtn", "rungeChart"},
		{Newton, "/api/newton-raphson", "newtonResults", "newtonBtn", "newtonChart"},
	}

	for _, tt := range tests {
		t.Run(tt.m.String(), func(t *testing.T) {
			if !tt.m.Valid() {
				t.Errorf("%s.Valid() = false", tt.m)
			}
			if got := tt.m.Endpoint(); got != tt.endpoint {
				t.Errorf("Endpoint() = %q, want %q", got, tt.endpoint)
			}
			if got := tt.m.ResultsContainer(); got != tt.container {
				t.Errorf("ResultsContainer() = %q, want %q", got, tt.container)
			}
			if got := tt.m.SubmitControl(); got != tt.control {
				t.Errorf("SubmitControl() = %q, want %q", got, tt.control)
			}
			if got := tt.m.ChartSlot(); got != tt.slot {
				t.Errorf("ChartSlot() = %q, want %q", got, tt.slot)
			}
			if m, ok := FromChartSlot(tt.slot); !ok || m != tt.m {
				t.Errorf("FromChartSlot(%q) = %q, %v", tt.slot, m, ok)
			}
		})
	}
}

func TestInvalidMethod(t *testing.T) {
	m := Method("simpson")
	if m.Valid() {
		t.Error("Valid() = true for unknown method")
	}
	if m.Endpoint() != "" {
		t.Errorf("Endpoint() = %q, want empty", m.Endpoint())
	}
	if _, ok := FromChartSlot("simpsonChart"); ok {
		t.Error("FromChartSlot should not resolve unknown slots")
	}
}
