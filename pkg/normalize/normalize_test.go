package normalize

import (
	"encoding/json"
	"testing"

	"github.com/numview/numview/pkg/result"
)

func decodeNewton(t *testing.T, body string) []result.NewtonRecord {
	t.Helper()
	var records []result.NewtonRecord
	if err := json.Unmarshal([]byte(body), &records); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	return records
}

func TestValuesMalformedFieldsBecomeGaps(t *testing.T) {
	records := decodeNewton(t, `[
		{"iter":1,"x":1,"fx":-1},
		{"iter":2,"x":"-","fx":0.25},
		{"iter":3,"fx":"nan"},
		{"iter":4,"x":null,"fx":{"bad":true}},
		{"iter":5,"x":1.4142,"fx":1e-9}
	]`)

	xs := Values(records, func(r result.NewtonRecord) result.Field { return r.X })
	want := []Value{Of(1), Gap, Gap, Gap, Of(1.4142)}
	if len(xs) != len(want) {
		t.Fatalf("len = %d, want %d", len(xs), len(want))
	}
	for i := range want {
		if xs[i] != want[i] {
			t.Errorf("xs[%d] = %+v, want %+v", i, xs[i], want[i])
		}
	}

	fx := Values(records, func(r result.NewtonRecord) result.Field { return r.FX })
	if fx[2].Valid || fx[3].Valid {
		t.Errorf("non-numeric f(x) should be gaps, got %+v %+v", fx[2], fx[3])
	}
	if !fx[4].Valid || fx[4].Float != 1e-9 {
		t.Errorf("fx[4] = %+v, want 1e-9", fx[4])
	}
}

func TestValuesEmpty(t *testing.T) {
	got := Values([]result.EulerRecord(nil), func(r result.EulerRecord) result.Field { return r.X })
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name string
		a, b []Value
		want []Value
	}{
		{"primary wins", []Value{Of(1), Of(2)}, []Value{Of(9), Of(9)}, []Value{Of(1), Of(2)}},
		{"fallback fills gap", []Value{Gap, Of(2)}, []Value{Of(1), Of(9)}, []Value{Of(1), Of(2)}},
		{"both gaps", []Value{Gap}, []Value{Gap}, []Value{Gap}},
		{"short fallback", []Value{Of(1), Gap}, []Value{Of(0)}, []Value{Of(1), Gap}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coalesce(tt.a, tt.b)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name  string
		field result.Field
		want  string
	}{
		{"integer", result.Num(0), "0.0000"},
		{"fraction", result.Num(0.5), "0.5000"},
		{"rounded", result.Num(1.23456789), "1.2346"},
		{"negative", result.Num(-2.5), "-2.5000"},
		{"text passes through", result.Text("start"), "start"},
		{"absent", result.Field{}, "null"},
		{"json null", jsonField(t, "null"), "null"},
		{"placeholder", jsonField(t, `"-"`), "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.field); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func jsonField(t *testing.T, raw string) result.Field {
	t.Helper()
	var f result.Field
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestLabels(t *testing.T) {
	records := []result.RungeRecord{{XI: result.Num(0)}, {XI: result.Num(0.1)}, {XI: result.Text("x")}}
	got := Labels(records, func(r result.RungeRecord) result.Field { return r.XI })
	want := []string{"0.0000", "0.1000", "x"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Labels()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Run("mixed", func(t *testing.T) {
		s := Summarize([]Value{Of(1), Gap, Of(3), Of(2)})
		if s.Count != 3 || s.Gaps != 1 {
			t.Errorf("Count, Gaps = %d, %d, want 3, 1", s.Count, s.Gaps)
		}
		if s.Min != 1 || s.Max != 3 || s.Mean != 2 {
			t.Errorf("Min, Max, Mean = %v, %v, %v, want 1, 3, 2", s.Min, s.Max, s.Mean)
		}
	})

	t.Run("all gaps", func(t *testing.T) {
		s := Summarize([]Value{Gap, Gap})
		if !s.Empty() || s.Gaps != 2 {
			t.Errorf("Summarize(gaps) = %+v", s)
		}
	})
}
