package domain

import (
	"cmp"
	"slices"
	"strings"
)

// Filter returns the records matching year and countryCode. AllYears and
// AllCountries (or "all") disable the respective filter. Matching is exact on
// Year and CountryCode. Records without a usable value are always dropped.
func Filter(records []Record, year int, countryCode string) []Record {
	countryCode = normalizeCountrySelector(countryCode)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if !r.Valid() {
			continue
		}
		if year != AllYears && r.Year != year {
			continue
		}
		if countryCode != AllCountries && r.CountryCode != countryCode {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Country is a (code, name) pair for selector lists.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// UniqueYears returns the distinct years across the collections, ascending.
func UniqueYears(collections ...[]Record) []int {
	seen := make(map[int]struct{})
	var years []int
	for _, records := range collections {
		for _, r := range records {
			if _, ok := seen[r.Year]; ok {
				continue
			}
			seen[r.Year] = struct{}{}
			years = append(years, r.Year)
		}
	}
	slices.Sort(years)
	return years
}

// UniqueCountries returns the distinct countries across the collections,
// sorted by name. Rows with a blank name or code are skipped. When a code
// appears with several names the last one read wins.
func UniqueCountries(collections ...[]Record) []Country {
	byCode := make(map[string]string)
	for _, records := range collections {
		for _, r := range records {
			if r.Country == "" || r.CountryCode == "" {
				continue
			}
			byCode[r.CountryCode] = r.Country
		}
	}
	out := make([]Country, 0, len(byCode))
	for code, name := range byCode {
		out = append(out, Country{Code: code, Name: name})
	}
	slices.SortFunc(out, func(a, b Country) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Code, b.Code)
	})
	return out
}

// SortByYear returns a copy of records ordered by year, then country code.
func SortByYear(records []Record) []Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b Record) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.CountryCode, b.CountryCode)
	})
	return out
}
