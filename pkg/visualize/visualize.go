// Package visualize builds the report of a result set.
//
// Each visualizer is a pure function from a decoded, non-empty result set to
// a [view.Report]. Sets are never empty here: decoding rejects an empty
// results array before a visualizer can see it.
package visualize

import (
	"fmt"
	"strconv"

	"github.com/numview/numview/pkg/method"
	"github.com/numview/numview/pkg/normalize"
	"github.com/numview/numview/pkg/result"
	"github.com/numview/numview/pkg/view"
)

// Summary stat labels.
const (
	StatFunction   = "Function"
	StatFinal      = "Final value"
	StatIterations = "Iterations"
	StatDerivative = "Derivative"
	StatRoot       = "Root found"
	StatResidual   = "f(x) at last iteration"
)

// NumericDerivativeNotice replaces the derivative line when none was supplied.
const NumericDerivativeNotice = "Numerical derivative (central difference, h = 1×10⁻⁷)"

const tableTitle = "Iteration table"

var (
	primary = view.SeriesStyle{Fill: true, Width: 2.5, PointRadius: 4}
	slope   = view.SeriesStyle{Color: view.Orange, Dash: []float64{6, 4}, Width: 1.5, PointRadius: 3}
)

// Render builds the report for any result set.
func Render(set result.Set) view.Report {
	var r renderer
	set.Accept(&r)
	return r.report
}

type renderer struct{ report view.Report }

func (r *renderer) VisitEuler(s *result.EulerSet)   { r.report = Euler(s) }
func (r *renderer) VisitRunge(s *result.RungeSet)   { r.report = Runge(s) }
func (r *renderer) VisitNewton(s *result.NewtonSet) { r.report = Newton(s) }

// Euler builds the improved Euler (Heun) report.
func Euler(s *result.EulerSet) view.Report {
	last := s.Last()
	recs := s.Records

	fxy := normalize.Values(recs, func(r result.EulerRecord) result.Field { return r.FXY })
	y := normalize.Coalesce(
		normalize.Values(recs, func(r result.EulerRecord) result.Field { return r.YNext }),
		fxy,
	)

	rows := make([]view.Row, len(recs))
	for i, r := range recs {
		rows[i] = row(i, len(recs), r.I, r.X, r.FXY, r.K1, r.K2, r.YNext, r.Error)
	}

	yStyle := primary
	yStyle.Color = view.Blue
	series := []view.Series{
		{Name: "y approximation", Values: y, Style: yStyle},
		{Name: "f(xᵢ, yᵢ)", Values: fxy, Style: slope},
	}

	return view.Report{
		Method: method.Euler,
		Summary: view.SummaryView{
			Title: "Results: " + method.Euler.Title(),
			Stats: []view.Stat{
				{Label: StatFunction, Value: "f(x,y) = " + s.Meta.Function},
				{Label: StatFinal, Value: fmt.Sprintf("y(%s) ≈ %s", last.X, last.YNext), Tone: view.ToneSuccess},
				{Label: StatIterations, Value: strconv.Itoa(len(recs) - 1)},
			},
			Series: summarize(series),
		},
		Table: view.TableView{
			Title:   tableTitle,
			Columns: []string{"i", "xᵢ", "f(xᵢ, yᵢ)", "k₁", "k₂", "yᵢ₊₁", "Error"},
			Rows:    rows,
		},
		Chart: view.ChartSpec{
			SlotID: method.Euler.ChartSlot(),
			Title:  "Solution: Improved Euler",
			XTitle: "x",
			Y:      view.AxisTitle{Text: "y"},
			Labels: normalize.Labels(recs, func(r result.EulerRecord) result.Field { return r.X }),
			Series: series,
		},
	}
}

// Runge builds the 4th-order Runge-Kutta report.
func Runge(s *result.RungeSet) view.Report {
	last := s.Last()
	recs := s.Records

	rows := make([]view.Row, len(recs))
	for i, r := range recs {
		rows[i] = row(i, len(recs), r.I, r.XI, r.K1, r.K2, r.K3, r.K4, r.YNext)
	}

	yStyle := primary
	yStyle.Color = view.Green
	series := []view.Series{
		{
			Name:   "y approximation (RK4)",
			Values: normalize.Values(recs, func(r result.RungeRecord) result.Field { return r.YNext }),
			Style:  yStyle,
		},
		{
			Name:   "k₁ (slope)",
			Values: normalize.Values(recs, func(r result.RungeRecord) result.Field { return r.K1 }),
			Style:  slope,
		},
	}

	return view.Report{
		Method: method.Runge,
		Summary: view.SummaryView{
			Title: "Results: " + method.Runge.Title(),
			Stats: []view.Stat{
				{Label: StatFunction, Value: "f(x,y) = " + s.Meta.Function},
				{Label: StatFinal, Value: "yᵢ₊₁ ≈ " + last.YNext.String(), Tone: view.ToneSuccess},
				{Label: StatIterations, Value: strconv.Itoa(len(recs) - 1)},
			},
			Series: summarize(series),
		},
		Table: view.TableView{
			Title:   tableTitle,
			Columns: []string{"i", "xᵢ", "k₁", "k₂", "k₃", "k₄", "yᵢ₊₁"},
			Rows:    rows,
		},
		Chart: view.ChartSpec{
			SlotID: method.Runge.ChartSlot(),
			Title:  "Solution: Runge-Kutta 4th order",
			XTitle: "x",
			Y:      view.AxisTitle{Text: "y"},
			Labels: normalize.Labels(recs, func(r result.RungeRecord) result.Field { return r.XI }),
			Series: series,
		},
	}
}

// Newton builds the Newton-Raphson report. The chart plots xₙ and f(xₙ)
// against independent axes, labelled by iteration.
func Newton(s *result.NewtonSet) view.Report {
	last := s.Last()
	recs := s.Records

	derivative := NumericDerivativeNotice
	if s.Meta.HasDerivative() {
		derivative = "f'(x) = " + s.Meta.Derivative
	}

	rows := make([]view.Row, len(recs))
	labels := make([]string, len(recs))
	for i, r := range recs {
		rows[i] = row(i, len(recs), r.Iter, r.X, r.FX, r.FPX, r.XNew, r.Error)
		labels[i] = "iter=" + r.Iter.String()
	}

	series := []view.Series{
		{
			Name:   "xₙ (approximation)",
			Values: normalize.Values(recs, func(r result.NewtonRecord) result.Field { return r.X }),
			Axis:   view.AxisPrimary,
			Style:  view.SeriesStyle{Color: view.Blue, Width: 2.5, PointRadius: 5},
		},
		{
			Name:   "f(xₙ)",
			Values: normalize.Values(recs, func(r result.NewtonRecord) result.Field { return r.FX }),
			Axis:   view.AxisSecondary,
			Style:  view.SeriesStyle{Color: view.Red, Dash: []float64{5, 3}, Width: 2, PointRadius: 4},
		},
	}

	return view.Report{
		Method: method.Newton,
		Summary: view.SummaryView{
			Title: "Results: " + method.Newton.Title(),
			Stats: []view.Stat{
				{Label: StatFunction, Value: "f(x) = " + s.Meta.Function},
				{Label: StatDerivative, Value: derivative, Tone: view.ToneWarning},
				{Label: StatRoot, Value: "x ≈ " + last.XNew.String(), Tone: view.ToneSuccess},
				{Label: StatResidual, Value: last.FX.String()},
			},
			Badge:  badge(s.Meta.Converged, len(recs)),
			Series: summarize(series),
		},
		Table: view.TableView{
			Title:   tableTitle,
			Columns: []string{"Iter", "xₙ", "f(xₙ)", "f'(xₙ)", "xₙ₊₁", "Error"},
			Rows:    rows,
		},
		Chart: view.ChartSpec{
			SlotID: method.Newton.ChartSlot(),
			Title:  "Convergence: Newton-Raphson",
			XTitle: "Iteration",
			Y:      view.AxisTitle{Text: "xₙ", Color: view.Blue},
			Y2:     view.AxisTitle{Text: "f(xₙ)", Color: view.Red},
			Labels: labels,
			Series: series,
		},
	}
}

func badge(converged bool, n int) *view.Badge {
	if !converged {
		return &view.Badge{Text: "✗ Did not converge", Tone: view.ToneDanger}
	}
	return &view.Badge{Text: fmt.Sprintf("✓ Converged in %d iteration(s)", n), Tone: view.ToneSuccess}
}

// row renders one table row; the last of n rows is highlighted.
func row(i, n int, fields ...result.Field) view.Row {
	cells := make([]string, len(fields))
	for j, f := range fields {
		cells[j] = f.String()
	}
	return view.Row{Cells: cells, Highlight: i == n-1}
}

func summarize(series []view.Series) []view.SeriesSummary {
	out := make([]view.SeriesSummary, len(series))
	for i, s := range series {
		out[i] = view.SeriesSummary{Name: s.Name, Stats: normalize.Summarize(s.Values)}
	}
	return out
}
