package result

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Field is one raw value of an iteration record.
//
// The calculation server mixes numbers with placeholders ("-") and
// preformatted strings ("1.234567e-05") in the same column, so a Field keeps
// the JSON token as received and decides how to read it on demand. Decoding
// a Field never fails.
type Field struct {
	raw json.RawMessage
}

// Num returns a numeric Field.
func Num(v float64) Field {
	return Field{raw: json.RawMessage(strconv.FormatFloat(v, 'g', -1, 64))}
}

// Text returns a string Field.
func Text(s string) Field {
	data, _ := json.Marshal(s)
	return Field{raw: data}
}

// UnmarshalJSON stores the raw token.
func (f *Field) UnmarshalJSON(data []byte) error {
	f.raw = append(f.raw[:0], data...)
	return nil
}

// MarshalJSON writes the raw token back, or null for an absent field.
func (f Field) MarshalJSON() ([]byte, error) {
	if len(f.raw) == 0 {
		return []byte("null"), nil
	}
	return f.raw, nil
}

// Present reports whether the field was set to something other than null.
func (f Field) Present() bool {
	return len(f.raw) > 0 && !bytes.Equal(f.raw, []byte("null"))
}

// Float returns the numeric value of f. Only JSON numbers are numeric;
// strings are text even when they look like numbers.
func (f Field) Float() (float64, bool) {
	if !f.isNumber() {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(f.raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// String returns the display text of f: numbers in their shortest form,
// strings unquoted, and an empty string for absent or null fields.
func (f Field) String() string {
	if !f.Present() {
		return ""
	}
	if v, ok := f.Float(); ok {
		return FormatNumber(v)
	}
	var s string
	if err := json.Unmarshal(f.raw, &s); err == nil {
		return s
	}
	return string(f.raw)
}

func (f Field) isNumber() bool {
	if len(f.raw) == 0 {
		return false
	}
	c := f.raw[0]
	return c == '-' || (c >= '0' && c <= '9')
}

// FormatNumber renders v the way the results table shows raw numbers:
// integers without a fraction, plain decimals in the usual range, and
// exponent notation for very large or very small magnitudes.
func FormatNumber(v float64) string {
	abs := math.Abs(v)
	if v == math.Trunc(v) && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	// 1e-07 -> 1e-7
	if i := strings.IndexByte(s, 'e'); i >= 0 && len(s) > i+2 && s[i+2] == '0' {
		s = s[:i+2] + strings.TrimLeft(s[i+2:], "0")
	}
	return s
}
