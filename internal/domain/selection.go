package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSelection is returned when a selection parameter cannot be parsed.
var ErrInvalidSelection = errors.New("invalid selection")

// Sentinels that disable a filter.
const (
	AllYears     = 0
	AllCountries = ""
)

// Selection is the user's current (dataset, year, country) choice. It is a
// value: changing the selection means building a new one.
type Selection struct {
	Dataset DatasetType `json:"dataset"`
	Year    int         `json:"year,omitempty"`
	Country string      `json:"country,omitempty"`
}

// DefaultSelection is the initial view: water, all years, all countries.
func DefaultSelection() Selection {
	return Selection{Dataset: Water, Year: AllYears, Country: AllCountries}
}

// WithDataset returns a copy with the active dataset replaced.
func (s Selection) WithDataset(dt DatasetType) Selection {
	s.Dataset = dt
	return s
}

// WithYear returns a copy with the year replaced.
func (s Selection) WithYear(year int) Selection {
	s.Year = year
	return s
}

// WithCountry returns a copy with the country code replaced.
func (s Selection) WithCountry(code string) Selection {
	s.Country = normalizeCountrySelector(code)
	return s
}

// AllYears reports whether the year filter is off.
func (s Selection) AllYears() bool { return s.Year == AllYears }

// AllCountries reports whether the country filter is off.
func (s Selection) AllCountries() bool { return s.Country == AllCountries }

// Filter applies the year and country filters to records.
func (s Selection) Filter(records []Record) []Record {
	return Filter(records, s.Year, s.Country)
}

// YearOnly returns a copy with the country filter removed.
func (s Selection) YearOnly() Selection {
	s.Country = AllCountries
	return s
}

// CountryOnly returns a copy with the year filter removed.
func (s Selection) CountryOnly() Selection {
	s.Year = AllYears
	return s
}

func (s Selection) String() string {
	year := "All Years"
	if !s.AllYears() {
		year = strconv.Itoa(s.Year)
	}
	country := "All Countries"
	if !s.AllCountries() {
		country = s.Country
	}
	return fmt.Sprintf("%s • %s • %s", year, country, s.Dataset.Info().Name)
}

// ParseSelection builds a Selection from query-style strings. Empty values
// and "all" (any case) select everything; an empty dataset selects water.
func ParseSelection(dataset, year, country string) (Selection, error) {
	sel := DefaultSelection()

	if strings.TrimSpace(dataset) != "" {
		dt, err := ParseDatasetType(dataset)
		if err != nil {
			return Selection{}, fmt.Errorf("%w: %w", ErrInvalidSelection, err)
		}
		sel.Dataset = dt
	}

	year = strings.TrimSpace(year)
	if year != "" && !isAll(year) {
		y, ok := ParseYear(TextValue(year))
		if !ok {
			return Selection{}, fmt.Errorf("%w: year %q", ErrInvalidSelection, year)
		}
		sel.Year = y
	}

	sel.Country = normalizeCountrySelector(country)
	return sel, nil
}

func isAll(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "all")
}

func normalizeCountrySelector(code string) string {
	code = strings.TrimSpace(code)
	if isAll(code) {
		return AllCountries
	}
	return code
}
