package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/numview/numview/pkg/normalize"
	"github.com/numview/numview/pkg/theme"
	"github.com/numview/numview/pkg/view"
)

// maxTicks bounds the number of labelled x positions.
const maxTicks = 12

// loneDotWidth is the marker radius for a segment of a single point.
const loneDotWidth = 3

// GoChart is the go-chart backed [Engine].
type GoChart struct {
	theme *theme.Theme
}

// NewEngine returns a go-chart engine styled by t.
func NewEngine(t *theme.Theme) *GoChart {
	if t == nil {
		t = theme.Default()
	}
	return &GoChart{theme: t}
}

// Build composes the go-chart object for spec and renders it once, so a
// chart go-chart cannot draw fails here rather than on first use.
func (e *GoChart) Build(spec view.ChartSpec) (Drawing, error) {
	if len(spec.Labels) == 0 {
		return nil, fmt.Errorf("chart %s has no points", spec.SlotID)
	}
	ch := e.compose(spec)
	if err := ch.Render(gochart.SVG, io.Discard); err != nil {
		return nil, err
	}
	return &goDrawing{chart: &ch}, nil
}

type goDrawing struct {
	chart *gochart.Chart
}

func (d *goDrawing) Render(format Format, w io.Writer) error {
	if d.chart == nil {
		return fmt.Errorf("drawing released")
	}
	switch format {
	case FormatSVG:
		return d.chart.Render(gochart.SVG, w)
	case FormatPNG:
		return d.chart.Render(gochart.PNG, w)
	}
	return fmt.Errorf("unsupported format %q", format)
}

func (d *goDrawing) Release() { d.chart = nil }

// Segment is a run of consecutive valid points of one series.
type Segment struct {
	X []float64
	Y []float64
}

// Segments splits the first n values into runs of valid points, so gaps
// are left out of the line instead of being drawn as zero. Positions past
// the end of values are gaps.
func Segments(values []normalize.Value, n int) []Segment {
	var (
		out []Segment
		cur *Segment
	)
	for i := 0; i < n; i++ {
		if i >= len(values) || !values[i].Valid {
			cur = nil
			continue
		}
		if cur == nil {
			out = append(out, Segment{})
			cur = &out[len(out)-1]
		}
		cur.X = append(cur.X, float64(i))
		cur.Y = append(cur.Y, values[i].Float)
	}
	return out
}

type bounds struct {
	min, max float64
	ok       bool
}

func (b *bounds) add(vs ...float64) {
	for _, v := range vs {
		if !b.ok {
			b.min, b.max, b.ok = v, v, true
			continue
		}
		b.min = math.Min(b.min, v)
		b.max = math.Max(b.max, v)
	}
}

// axisRange returns a non-degenerate range covering b with a small margin.
func (b bounds) axisRange() *gochart.ContinuousRange {
	if !b.ok {
		return &gochart.ContinuousRange{Min: 0, Max: 1}
	}
	if b.min == b.max {
		pad := math.Abs(b.min) * 0.1
		if pad == 0 {
			pad = 1
		}
		return &gochart.ContinuousRange{Min: b.min - pad, Max: b.max + pad}
	}
	m := (b.max - b.min) * 0.05
	return &gochart.ContinuousRange{Min: b.min - m, Max: b.max + m}
}

func (e *GoChart) compose(spec view.ChartSpec) gochart.Chart {
	th := e.theme
	n := len(spec.Labels)

	var (
		series, heads      []gochart.Series
		primary, secondary bounds
	)
	for _, s := range spec.Series {
		style := e.seriesStyle(s.Style)
		axis, b := gochart.YAxisPrimary, &primary
		if s.Axis == view.AxisSecondary {
			axis, b = gochart.YAxisSecondary, &secondary
		}
		for i, seg := range Segments(s.Values, n) {
			cs := gochart.ContinuousSeries{
				Name:    s.Name,
				XValues: seg.X,
				YValues: seg.Y,
				YAxis:   axis,
				Style:   style,
			}
			if len(seg.X) == 1 && cs.Style.DotWidth < loneDotWidth {
				// A lone point has no line to stroke.
				cs.Style.DotWidth = loneDotWidth
			}
			series = append(series, cs)
			if i == 0 {
				heads = append(heads, cs)
			}
			b.add(seg.Y...)
		}
	}
	if len(series) == 0 {
		// go-chart needs one visible series; this one keeps the axes and
		// draws nothing.
		series = append(series, gochart.ContinuousSeries{
			XValues: []float64{0, math.Max(float64(n-1), 1)},
			YValues: []float64{0, 0},
			Style:   gochart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: 1},
		})
	}

	ticks := xTicks(spec.Labels)
	xRange := &gochart.ContinuousRange{Min: 0, Max: float64(n - 1)}
	if n == 1 {
		// The x range follows the ticks and needs two distinct values.
		ticks = []gochart.Tick{{Value: -1}, ticks[0], {Value: 1}}
		xRange = &gochart.ContinuousRange{Min: -1, Max: 1}
	}

	grid := gochart.Style{StrokeColor: e.color(th.Text.Grid).WithAlpha(uint8(th.Text.GridAlpha * 255)), StrokeWidth: 1}

	ch := gochart.Chart{
		Title:      spec.Title,
		TitleStyle: gochart.Style{FontSize: th.Font.TitleSize, FontColor: e.color(th.Text.Title)},
		Width:      th.Chart.Width,
		Height:     th.Chart.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 56, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:           spec.XTitle,
			NameStyle:      e.axisNameStyle(""),
			Style:          e.tickStyle(""),
			Range:          xRange,
			Ticks:          ticks,
			GridMajorStyle: grid,
		},
		YAxis: gochart.YAxis{
			Name:           spec.Y.Text,
			NameStyle:      e.axisNameStyle(spec.Y.Color),
			Style:          e.tickStyle(spec.Y.Color),
			Range:          primary.axisRange(),
			ValueFormatter: compactFormatter,
			GridMajorStyle: grid,
		},
		Series: series,
	}
	if secondary.ok {
		ch.YAxisSecondary = gochart.YAxis{
			Name:           spec.Y2.Text,
			NameStyle:      e.axisNameStyle(spec.Y2.Color),
			Style:          e.tickStyle(spec.Y2.Color),
			Range:          secondary.axisRange(),
			ValueFormatter: compactFormatter,
		}
	}

	// The legend lists each named series once, not once per segment.
	if len(heads) > 0 {
		legendView := ch
		legendView.Series = heads
		ch.Elements = []gochart.Renderable{
			gochart.Legend(&legendView, gochart.Style{FontSize: th.Font.LegendSize, FontColor: e.color(th.Text.Muted)}),
		}
	}
	return ch
}

func (e *GoChart) seriesStyle(st view.SeriesStyle) gochart.Style {
	sw := e.theme.Swatch(st.Color)
	line := e.color(sw.Border)
	out := gochart.Style{
		StrokeColor:     line,
		StrokeWidth:     st.Width,
		StrokeDashArray: st.Dash,
		DotColor:        line,
		DotWidth:        st.PointRadius,
	}
	if st.Fill {
		out.FillColor = line.WithAlpha(uint8(sw.BackgroundAlpha * 255))
	}
	return out
}

func (e *GoChart) axisNameStyle(c view.Color) gochart.Style {
	col := e.theme.Text.Muted
	if c != "" {
		col = e.theme.ColorOf(c)
	}
	return gochart.Style{FontSize: e.theme.Font.AxisSize, FontColor: e.color(col)}
}

func (e *GoChart) tickStyle(c view.Color) gochart.Style {
	col := e.theme.Text.Tick
	if c != "" {
		col = e.theme.ColorOf(c)
	}
	return gochart.Style{FontSize: e.theme.Font.TickSize, FontColor: e.color(col)}
}

func (e *GoChart) color(hex string) drawing.Color {
	r, g, b, err := theme.RGB(hex)
	if err != nil {
		return drawing.ColorBlack
	}
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

// xTicks places the labels at their index positions, thinned to maxTicks.
func xTicks(labels []string) []gochart.Tick {
	step := (len(labels) + maxTicks - 1) / maxTicks
	if step < 1 {
		step = 1
	}
	ticks := make([]gochart.Tick, 0, maxTicks+1)
	for i := 0; i < len(labels); i += step {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: labels[i]})
	}
	return ticks
}

func compactFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'g', 6, 64)
	}
	return ""
}
