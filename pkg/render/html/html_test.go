package html

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/numview/numview/pkg/chart"
	"github.com/numview/numview/pkg/method"
	"github.com/numview/numview/pkg/normalize"
	"github.com/numview/numview/pkg/result"
	"github.com/numview/numview/pkg/surface"
	"github.com/numview/numview/pkg/view"
)

func eulerReport() view.Report {
	return view.Report{
		Method: method.Euler,
		Summary: view.SummaryView{
			Title: "Results: Improved Euler (Heun)",
			Stats: []view.Stat{{Label: "Final value", Value: "y(1) ≈ 3.28125", Tone: view.ToneSuccess}},
		},
		Table: view.TableView{
			Columns: []string{"i", "x", "y"},
			Rows: []view.Row{
				{Cells: []string{"0", "0", "1"}},
				{Cells: []string{"1", "1", "3.28125"}, Highlight: true},
			},
		},
		Chart: view.ChartSpec{
			SlotID: "eulerChart",
			Title:  "Solution: Improved Euler",
			Labels: []string{"0.0000", "1.0000"},
			Series: []view.Series{{
				Name:   "y",
				Values: []normalize.Value{normalize.Of(1), normalize.Of(3.28125)},
				Style:  view.SeriesStyle{Color: view.Blue, Width: 2},
			}},
		},
	}
}

func TestNewPanel(t *testing.T) {
	p := NewPanel(method.Newton, map[string]string{result.InputFunction: "x**2-2"})
	if p.Title != "Newton-Raphson" {
		t.Errorf("Title = %q", p.Title)
	}
	if len(p.Fields) != 5 {
		t.Fatalf("fields = %d, want 5", len(p.Fields))
	}
	if p.Fields[0].Label != "f(x)" || p.Fields[0].Value != "x**2-2" {
		t.Errorf("first field = %+v", p.Fields[0])
	}
}

func TestRenderForm(t *testing.T) {
	p := NewPanel(method.Euler, map[string]string{result.InputH: "0.5"})
	p.Action = "/calculate/euler"
	p.Busy = true

	var buf bytes.Buffer
	if err := Render(&buf, Document{Panels: []Panel{p}}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<title>numview</title>`,
		`action="/calculate/euler"`,
		`name="h" value="0.5"`,
		`id="eulerBtn" type="submit" disabled`,
		`id="eulerResults"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRenderReport(t *testing.T) {
	rep := eulerReport()
	p := NewPanel(method.Euler, nil).WithContent(surface.Content{Report: &rep})
	p.ChartURL = "/charts/eulerChart.svg"

	var buf bytes.Buffer
	if err := Render(&buf, Document{Title: "Export", Panels: []Panel{p}}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Results: Improved Euler (Heun)",
		"y(1) ≈ 3.28125",
		`<img src="/charts/eulerChart.svg"`,
		`<tr class="highlight"><td>1</td><td>1</td><td>3.28125</td></tr>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(out, "<form") {
		t.Error("panel without action should not render a form")
	}
}

func TestRenderError(t *testing.T) {
	p := NewPanel(method.Runge, nil)
	p = p.WithContent(surface.Content{Error: &view.ErrorView{Message: "invalid <expression>"}})

	var buf bytes.Buffer
	if err := Render(&buf, Document{Panels: []Panel{p}}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "✗ invalid &lt;expression&gt;") {
		t.Error("error message should be escaped and shown")
	}
	if strings.Contains(out, `class="chart"`) {
		t.Error("error panel should not contain a chart")
	}
}

func TestInlineChart(t *testing.T) {
	m := chart.NewManager(chart.NewEngine(nil))
	defer m.Close()

	rep := eulerReport()
	h, err := m.Present(context.Background(), rep.Chart)
	if err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	svg, err := InlineChart(h)
	if err != nil {
		t.Fatalf("InlineChart() error = %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(svg)), "<svg") {
		t.Errorf("InlineChart() = %.40q, want svg markup", svg)
	}

	p := NewPanel(method.Euler, nil).WithContent(surface.Content{Report: &rep})
	p.ChartSVG = svg
	var buf bytes.Buffer
	if err := Render(&buf, Document{Panels: []Panel{p}}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("inline svg should not be escaped")
	}

	m.Release(context.Background(), "eulerChart")
	if _, err := InlineChart(h); err == nil {
		t.Error("InlineChart() of a released handle should fail")
	}
}
