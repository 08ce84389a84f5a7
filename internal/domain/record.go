package domain

import (
	"encoding/json"
	"math"
)

// Record is one normalized (country, year, value) observation, regardless of
// source dataset. Value is NaN when the source field was not numeric.
type Record struct {
	Country     string
	CountryCode string
	Year        int
	Value       float64
	Status      string
}

// Valid reports whether the record carries a usable value.
func (r Record) Valid() bool { return IsValid(r.Value) }

type recordJSON struct {
	Country     string   `json:"country"`
	CountryCode string   `json:"country_code"`
	Year        int      `json:"year"`
	Value       *float64 `json:"value"`
	Status      string   `json:"status,omitempty"`
}

// MarshalJSON renders a missing value as null since JSON has no NaN.
func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{
		Country:     r.Country,
		CountryCode: r.CountryCode,
		Year:        r.Year,
		Status:      r.Status,
	}
	if r.Valid() {
		v := r.Value
		out.Value = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a null value back as NaN.
func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Record{
		Country:     in.Country,
		CountryCode: in.CountryCode,
		Year:        in.Year,
		Value:       math.NaN(),
		Status:      in.Status,
	}
	if in.Value != nil {
		r.Value = *in.Value
	}
	return nil
}
