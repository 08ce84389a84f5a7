package charts

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
)

// Bar opacities for the stacked chart.
const (
	focusOpacity  = 1.0
	dimmedOpacity = 0.3
)

// ScatterChart plots one dataset against its partner.
type ScatterChart struct {
	Placeholder
	X      domain.DatasetType `json:"x_dataset"`
	Y      domain.DatasetType `json:"y_dataset"`
	XUnit  string             `json:"x_unit"`
	YUnit  string             `json:"y_unit"`
	Points []domain.Pair      `json:"points"`
}

// Scatter pairs the selected x records with the partner dataset by country and
// year. Points without a positive y value are left out.
func Scatter(x, y []domain.Record, sel domain.Selection) ScatterChart {
	partner := sel.Dataset.ScatterPartner()
	c := ScatterChart{
		X:     sel.Dataset,
		Y:     partner,
		XUnit: sel.Dataset.Info().Unit,
		YUnit: partner.Info().Unit,
	}
	c.Points = domain.Join(sel.Filter(x), y)
	if len(c.Points) == 0 {
		c.Placeholder = empty(NoMatch)
	}
	return c
}

// StackEntry is one country's water and energy means.
type StackEntry struct {
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Water       float64 `json:"water"`
	Energy      float64 `json:"energy"`
	Opacity     float64 `json:"opacity"`
}

// StackedBarChart stacks water and energy use per country.
type StackedBarChart struct {
	Placeholder
	Entries []StackEntry `json:"entries"`
}

// StackedBar ranks countries by water mean plus energy mean for the selected
// year and keeps the top ten. A selected country outside the top ten is
// appended, and the other bars are dimmed.
func StackedBar(water, energy []domain.Record, sel domain.Selection) StackedBarChart {
	yearly := sel.YearOnly()
	waterMeans := meansByCode(yearly.Filter(water))
	energyMeans := meansByCode(yearly.Filter(energy))

	names := make(map[string]string)
	for _, m := range waterMeans {
		names[m.CountryCode] = m.Country
	}
	for _, m := range energyMeans {
		if _, ok := names[m.CountryCode]; !ok {
			names[m.CountryCode] = m.Country
		}
	}

	entries := make([]StackEntry, 0, len(names))
	for code, name := range names {
		entries = append(entries, StackEntry{
			Country:     name,
			CountryCode: code,
			Water:       waterMeans[code].Value,
			Energy:      energyMeans[code].Value,
		})
	}
	slices.SortFunc(entries, func(a, b StackEntry) int {
		if c := cmp.Compare(b.Water+b.Energy, a.Water+a.Energy); c != 0 {
			return c
		}
		return cmp.Compare(a.Country, b.Country)
	})
	top := slices.Clone(topN(entries, barCountries))

	if !sel.AllCountries() && !slices.ContainsFunc(top, func(e StackEntry) bool { return e.CountryCode == sel.Country }) {
		name := sel.Country
		if n, ok := names[sel.Country]; ok {
			name = n
		}
		top = append(top, StackEntry{
			Country:     name,
			CountryCode: sel.Country,
			Water:       waterMeans[sel.Country].Value,
			Energy:      energyMeans[sel.Country].Value,
		})
	}
	if len(top) == 0 {
		return StackedBarChart{Placeholder: empty(NoData), Entries: []StackEntry{}}
	}

	for i := range top {
		top[i].Opacity = focusOpacity
		if !sel.AllCountries() && top[i].CountryCode != sel.Country {
			top[i].Opacity = dimmedOpacity
		}
	}
	return StackedBarChart{Entries: top}
}

func meansByCode(records []domain.Record) map[string]domain.CountryValue {
	means := domain.GroupMean(records)
	out := make(map[string]domain.CountryValue, len(means))
	for _, m := range means {
		out[m.CountryCode] = m
	}
	return out
}

// HeatmapChart is the dataset correlation matrix.
type HeatmapChart struct {
	Placeholder
	domain.Matrix
}

// Heatmap correlates every dataset pair under the selection. A matrix of all
// zeros means no pair overlapped enough to correlate and renders as empty.
func Heatmap(series []domain.Series, sel domain.Selection) HeatmapChart {
	m := domain.CorrelationMatrix(series, sel)
	if m.AllZero() {
		return HeatmapChart{Placeholder: empty(NoData), Matrix: m}
	}
	return HeatmapChart{Matrix: m}
}
