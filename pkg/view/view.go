// Package view defines the typed view models produced by the visualizers
// and consumed by renderers.
//
// A view model carries no markup and no engine objects: renderers in
// pkg/render and the chart engine in pkg/chart decide how it looks. Colors
// are palette roles ([Color]) resolved against the theme at render time.
package view

import (
	"github.com/numview/numview/pkg/method"
	"github.com/numview/numview/pkg/normalize"
)

// Tone is the emphasis of a summary value or badge.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneSuccess
	ToneWarning
	ToneDanger
)

// String returns the tone name used as a style hook ("neutral", "success", ...).
func (t Tone) String() string {
	switch t {
	case ToneSuccess:
		return "success"
	case ToneWarning:
		return "warning"
	case ToneDanger:
		return "danger"
	default:
		return "neutral"
	}
}

// Color is a palette role.
type Color string

const (
	Blue   Color = "blue"
	Green  Color = "green"
	Orange Color = "orange"
	Red    Color = "red"
	Purple Color = "purple"
)

// =============================================================================
// Report
// =============================================================================

// Report is everything one successful calculation shows.
type Report struct {
	Method  method.Method
	Summary SummaryView
	Table   TableView
	Chart   ChartSpec
}

// SummaryView is the headline block above the chart.
type SummaryView struct {
	Title  string
	Stats  []Stat
	Badge  *Badge          // nil when the method has no convergence flag
	Series []SeriesSummary // one per chart series
}

// Stat is one labelled summary value.
type Stat struct {
	Label string
	Value string
	Tone  Tone
}

// Badge is the convergence indicator.
type Badge struct {
	Text string
	Tone Tone
}

// SeriesSummary is the descriptive statistics of one chart series.
type SeriesSummary struct {
	Name  string
	Stats normalize.Stats
}

// Stat returns the stat with the given label.
func (s SummaryView) Stat(label string) (Stat, bool) {
	for _, st := range s.Stats {
		if st.Label == label {
			return st, true
		}
	}
	return Stat{}, false
}

// =============================================================================
// Table
// =============================================================================

// TableView is the iteration table. Cells hold display text exactly as the
// server sent it.
type TableView struct {
	Title   string
	Columns []string
	Rows    []Row
}

// Row is one table row.
type Row struct {
	Cells     []string
	Highlight bool
}

// Highlighted returns the index of the first highlighted row, or -1.
func (t TableView) Highlighted() int {
	for i, r := range t.Rows {
		if r.Highlight {
			return i
		}
	}
	return -1
}

// =============================================================================
// Chart
// =============================================================================

// Axis selects the vertical axis a series is plotted against.
type Axis int

const (
	AxisPrimary Axis = iota
	AxisSecondary
)

// SeriesStyle is the fixed look of one series.
type SeriesStyle struct {
	Color       Color
	Fill        bool
	Dash        []float64 // nil for a solid line
	Width       float64
	PointRadius float64
}

// Series is one line of a chart. Invalid values are gaps.
type Series struct {
	Name   string
	Values []normalize.Value
	Axis   Axis
	Style  SeriesStyle
}

// AxisTitle is the label and color of a vertical axis.
type AxisTitle struct {
	Text  string
	Color Color // empty for the neutral axis color
}

// ChartSpec describes one chart bound to a slot.
type ChartSpec struct {
	SlotID string
	Title  string
	XTitle string
	Y      AxisTitle
	Y2     AxisTitle // used only when a series is on AxisSecondary
	Labels []string
	Series []Series
}

// HasSecondary reports whether any series uses the secondary axis.
func (c ChartSpec) HasSecondary() bool {
	for _, s := range c.Series {
		if s.Axis == AxisSecondary {
			return true
		}
	}
	return false
}

// Points returns the number of x positions.
func (c ChartSpec) Points() int { return len(c.Labels) }

// =============================================================================
// Errors
// =============================================================================

// ErrorView is the single notice that replaces a container on failure.
type ErrorView struct {
	Message string
}
