package domain

import (
	"cmp"
	"math"
	"slices"
)

// Stats summarizes the usable values of a record set.
type Stats struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Maximum float64 `json:"maximum"`
	Minimum float64 `json:"minimum"`
	Count   int     `json:"count"`
}

// Aggregate returns display statistics rounded to two decimals. It returns nil
// when records has no usable values, meaning "insufficient data".
func Aggregate(records []Record) *Stats {
	s := AggregateRaw(records)
	if s == nil {
		return nil
	}
	return &Stats{
		Total:   Round2(s.Total),
		Average: Round2(s.Average),
		Maximum: Round2(s.Maximum),
		Minimum: Round2(s.Minimum),
		Count:   s.Count,
	}
}

// AggregateRaw is Aggregate without rounding, for follow-up arithmetic.
func AggregateRaw(records []Record) *Stats {
	var (
		s     Stats
		found bool
	)
	for _, r := range records {
		if !r.Valid() {
			continue
		}
		if !found {
			s.Maximum, s.Minimum = r.Value, r.Value
			found = true
		}
		s.Total += r.Value
		s.Maximum = max(s.Maximum, r.Value)
		s.Minimum = min(s.Minimum, r.Value)
		s.Count++
	}
	if !found {
		return nil
	}
	s.Average = s.Total / float64(s.Count)
	return &s
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Mean returns the average of the usable values and false when there are none.
func Mean(records []Record) (float64, bool) {
	s := AggregateRaw(records)
	if s == nil {
		return 0, false
	}
	return s.Average, true
}

// YearValue is the value of one year in a series.
type YearValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// YearlyMeans collapses records to one averaged value per year, ascending.
func YearlyMeans(records []Record) []YearValue {
	type acc struct {
		sum float64
		n   int
	}
	byYear := make(map[int]*acc)
	for _, r := range records {
		if !r.Valid() {
			continue
		}
		a, ok := byYear[r.Year]
		if !ok {
			a = &acc{}
			byYear[r.Year] = a
		}
		a.sum += r.Value
		a.n++
	}
	out := make([]YearValue, 0, len(byYear))
	for year, a := range byYear {
		out = append(out, YearValue{Year: year, Value: a.sum / float64(a.n)})
	}
	slices.SortFunc(out, func(a, b YearValue) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// Trend returns the percentage change between the earliest and latest year in
// records: (last-first)/first*100. Several records in one year are averaged.
// The second result is false with fewer than two distinct years or when the
// first year's value is zero.
func Trend(records []Record) (float64, bool) {
	series := YearlyMeans(records)
	if len(series) < 2 {
		return 0, false
	}
	first := series[0].Value
	last := series[len(series)-1].Value
	if first == 0 {
		return 0, false
	}
	return (last - first) / first * 100, true
}

// CountryValue is an aggregate for one country.
type CountryValue struct {
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Value       float64 `json:"value"`
}

// GroupMean averages usable values per country code. The result is sorted by
// descending value, then by name.
func GroupMean(records []Record) []CountryValue {
	return groupBy(records, func(sum float64, n int) float64 { return sum / float64(n) })
}

// GroupSum totals usable values per country code, sorted like GroupMean.
func GroupSum(records []Record) []CountryValue {
	return groupBy(records, func(sum float64, _ int) float64 { return sum })
}

func groupBy(records []Record, reduce func(sum float64, n int) float64) []CountryValue {
	type acc struct {
		name string
		sum  float64
		n    int
	}
	byCode := make(map[string]*acc)
	var order []string
	for _, r := range records {
		if !r.Valid() {
			continue
		}
		a, ok := byCode[r.CountryCode]
		if !ok {
			a = &acc{name: r.Country}
			byCode[r.CountryCode] = a
			order = append(order, r.CountryCode)
		}
		a.sum += r.Value
		a.n++
	}
	out := make([]CountryValue, 0, len(order))
	for _, code := range order {
		a := byCode[code]
		out = append(out, CountryValue{Country: a.name, CountryCode: code, Value: reduce(a.sum, a.n)})
	}
	slices.SortStableFunc(out, func(a, b CountryValue) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Country, b.Country)
	})
	return out
}
