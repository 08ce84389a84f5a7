package charts

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
)

const (
	timeSeriesCountries = 3
	barCountries        = 10
	pieCountries        = 5
	radarCountries      = 3
)

// Line is one country's values over time.
type Line struct {
	Country     string             `json:"country"`
	CountryCode string             `json:"country_code"`
	Points      []domain.YearValue `json:"points"`
}

// TimeSeriesChart plots the leading countries of a dataset across years.
type TimeSeriesChart struct {
	Placeholder
	Unit  string `json:"unit"`
	Lines []Line `json:"lines"`
}

// TimeSeries keeps the country filter but spans all years, and draws the three
// countries with the highest mean.
func TimeSeries(records []domain.Record, sel domain.Selection) TimeSeriesChart {
	c := TimeSeriesChart{Unit: sel.Dataset.Info().Unit, Lines: []Line{}}
	filtered := sel.CountryOnly().Filter(records)
	if len(filtered) == 0 {
		c.Placeholder = empty(NoData)
		return c
	}

	byCode := make(map[string][]domain.Record)
	for _, r := range filtered {
		byCode[r.CountryCode] = append(byCode[r.CountryCode], r)
	}
	for _, top := range topN(domain.GroupMean(filtered), timeSeriesCountries) {
		c.Lines = append(c.Lines, Line{
			Country:     top.Country,
			CountryCode: top.CountryCode,
			Points:      domain.YearlyMeans(byCode[top.CountryCode]),
		})
	}
	return c
}

// BarEntry is one ranked country.
type BarEntry struct {
	Rank        int     `json:"rank"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Value       float64 `json:"value"`
}

// BarChart compares countries by mean value.
type BarChart struct {
	Placeholder
	Unit string     `json:"unit"`
	Bars []BarEntry `json:"bars"`
}

// Bar ranks the ten countries with the highest mean under the selection.
func Bar(records []domain.Record, sel domain.Selection) BarChart {
	c := BarChart{Unit: sel.Dataset.Info().Unit, Bars: []BarEntry{}}
	means := domain.GroupMean(sel.Filter(records))
	if len(means) == 0 {
		c.Placeholder = empty(NoData)
		return c
	}
	for i, m := range topN(means, barCountries) {
		c.Bars = append(c.Bars, BarEntry{Rank: i + 1, Country: m.Country, CountryCode: m.CountryCode, Value: m.Value})
	}
	return c
}

// PieChart shows the share of the top countries.
type PieChart struct {
	Placeholder
	Unit   string                `json:"unit"`
	Slices []domain.CountryValue `json:"slices"`
}

// Pie returns the five countries with the largest summed value.
func Pie(records []domain.Record, sel domain.Selection) PieChart {
	c := PieChart{Unit: sel.Dataset.Info().Unit, Slices: []domain.CountryValue{}}
	sums := domain.GroupSum(sel.Filter(records))
	if len(sums) == 0 {
		c.Placeholder = empty(NoData)
		return c
	}
	c.Slices = topN(sums, pieCountries)
	return c
}

// RadarRow holds the summed value of each radar country for one year.
type RadarRow struct {
	Year   int                `json:"year"`
	Values map[string]float64 `json:"values"`
}

// RadarChart compares a few countries year by year.
type RadarChart struct {
	Placeholder
	Unit      string     `json:"unit"`
	Countries []string   `json:"countries"`
	Rows      []RadarRow `json:"rows"`
}

// Radar takes the first three countries by name and sums their values per
// year. Countries missing a year read 0 for it.
func Radar(records []domain.Record, sel domain.Selection) RadarChart {
	c := RadarChart{Unit: sel.Dataset.Info().Unit, Countries: []string{}, Rows: []RadarRow{}}
	filtered := sel.Filter(records)
	if len(filtered) == 0 {
		c.Placeholder = empty(NoData)
		return c
	}

	var names []string
	for _, r := range filtered {
		if !slices.Contains(names, r.Country) {
			names = append(names, r.Country)
		}
	}
	slices.Sort(names)
	c.Countries = topN(names, radarCountries)

	rows := make(map[int]map[string]float64)
	for _, r := range filtered {
		if _, ok := rows[r.Year]; !ok {
			rows[r.Year] = make(map[string]float64, len(c.Countries))
			for _, name := range c.Countries {
				rows[r.Year][name] = 0
			}
		}
		if slices.Contains(c.Countries, r.Country) {
			rows[r.Year][r.Country] += r.Value
		}
	}
	for year, values := range rows {
		c.Rows = append(c.Rows, RadarRow{Year: year, Values: values})
	}
	slices.SortFunc(c.Rows, func(a, b RadarRow) int { return cmp.Compare(a.Year, b.Year) })
	return c
}
