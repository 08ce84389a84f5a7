package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RawValue holds a source field that may arrive as a JSON number or string.
type RawValue struct {
	text    string
	num     float64
	numeric bool
	present bool
}

// NumberValue wraps an already-numeric field.
func NumberValue(v float64) RawValue {
	return RawValue{num: v, numeric: true, present: true}
}

// TextValue wraps a string field.
func TextValue(s string) RawValue {
	return RawValue{text: s, present: true}
}

// IsZero reports whether the field was absent (or JSON null).
func (v RawValue) IsZero() bool { return !v.present }

// Blank reports whether the field is absent or a string of only whitespace.
func (v RawValue) Blank() bool {
	return !v.present || (!v.numeric && strings.TrimSpace(v.text) == "")
}

// String returns the field as it appeared in the source.
func (v RawValue) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}

// UnmarshalJSON accepts a number, a string, or null.
func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = RawValue{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode string value: %w", err)
		}
		*v = TextValue(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode numeric value: %w", err)
	}
	*v = NumberValue(f)
	return nil
}

// MarshalJSON writes numbers as numbers and strings as strings.
func (v RawValue) MarshalJSON() ([]byte, error) {
	switch {
	case !v.present:
		return []byte("null"), nil
	case v.numeric:
		return json.Marshal(v.num)
	default:
		return json.Marshal(v.text)
	}
}

// ParseValue coerces a raw field to a float. Numeric input is returned as-is.
// String input has every comma removed before parsing. Empty or non-numeric
// input yields NaN, which callers treat as "not observed".
func ParseValue(raw RawValue) float64 {
	if raw.numeric {
		return raw.num
	}
	return ParseString(raw.text)
}

// ParseString is ParseValue for a plain string.
func ParseString(s string) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if cleaned == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParseYear returns the field as a four-digit year. The second result is false
// for absent, non-integral, or out-of-range values.
func ParseYear(raw RawValue) (int, bool) {
	v := ParseValue(raw)
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}
	if v < 1000 || v > 9999 {
		return 0, false
	}
	return int(v), true
}

// IsValid reports whether v is a usable observation.
func IsValid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
