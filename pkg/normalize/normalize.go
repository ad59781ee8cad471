// Package normalize turns raw iteration fields into display-safe values.
//
// Normalization never fails. A field that is missing, null, a placeholder
// such as "-", or otherwise not a JSON number becomes an invalid [Value],
// which charts draw as a gap rather than as zero.
package normalize

import (
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/numview/numview/pkg/result"
)

// LabelDecimals is the fixed precision of numeric axis labels.
const LabelDecimals = 4

// Value is a normalized scalar. Valid is false for a gap.
type Value struct {
	Float float64
	Valid bool
}

// Gap is the invalid Value.
var Gap = Value{}

// Of returns the valid Value v.
func Of(v float64) Value { return Value{Float: v, Valid: true} }

// FromField normalizes a single field.
func FromField(f result.Field) Value {
	v, ok := f.Float()
	if !ok {
		return Gap
	}
	return Of(v)
}

// Values extracts the field chosen by sel from every record, in order.
// The result always has len(records) entries.
func Values[R any](records []R, sel func(R) result.Field) []Value {
	out := make([]Value, len(records))
	for i, r := range records {
		out[i] = FromField(sel(r))
	}
	return out
}

// Coalesce returns, per position, the first valid value of a or b.
// The result has the length of a; positions beyond b fall back to a gap.
func Coalesce(a, b []Value) []Value {
	out := make([]Value, len(a))
	for i, v := range a {
		switch {
		case v.Valid:
			out[i] = v
		case i < len(b):
			out[i] = b[i]
		}
	}
	return out
}

// Label formats an axis label: numbers with [LabelDecimals] decimals, a
// null or missing value as "null", any other value as its original text.
func Label(f result.Field) string {
	if v, ok := f.Float(); ok {
		return strconv.FormatFloat(v, 'f', LabelDecimals, 64)
	}
	if !f.Present() {
		return NullLabel
	}
	return f.String()
}

// NullLabel is the axis label of a null or missing x value.
const NullLabel = "null"

// Labels applies [Label] to the field chosen by sel in every record.
func Labels[R any](records []R, sel func(R) result.Field) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = Label(sel(r))
	}
	return out
}

// Stats summarizes the valid points of a series.
type Stats struct {
	Count int // valid points
	Gaps  int // invalid points
	Min   float64
	Max   float64
	Mean  float64
}

// Empty reports whether the series had no valid points.
func (s Stats) Empty() bool { return s.Count == 0 }

// Summarize computes [Stats] over the valid points of values.
func Summarize(values []Value) Stats {
	data := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if v.Valid {
			data = append(data, v.Float)
		}
	}
	s := Stats{Count: len(data), Gaps: len(values) - len(data)}
	if s.Count == 0 {
		return s
	}
	s.Min, _ = stats.Min(data)
	s.Max, _ = stats.Max(data)
	s.Mean, _ = stats.Mean(data)
	return s
}
