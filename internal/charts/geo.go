package charts

import "github.com/couchcryptid/agri-dashboard-service/internal/domain"

// ChoroplethChart colors countries on a world map by mean value.
type ChoroplethChart struct {
	Placeholder
	Unit      string    `json:"unit"`
	Locations []string  `json:"locations"`
	Values    []float64 `json:"values"`
	ZMin      float64   `json:"zmin"`
	ZMax      float64   `json:"zmax"`
	Highlight []string  `json:"highlight,omitempty"`
}

// Choropleth keeps the year filter only, so the map always shows every country.
// Names without a map code are skipped. The selected country is outlined when
// both a country and a year are chosen.
func Choropleth(records []domain.Record, sel domain.Selection) ChoroplethChart {
	c := ChoroplethChart{Unit: sel.Dataset.Info().Unit, Locations: []string{}, Values: []float64{}}
	means := domain.GroupMean(sel.YearOnly().Filter(records))
	if len(means) == 0 {
		c.Placeholder = empty(NoData)
		return c
	}

	for _, m := range means {
		iso, ok := domain.ResolveISO3(m.Country)
		if !ok {
			continue
		}
		if len(c.Values) == 0 {
			c.ZMin, c.ZMax = m.Value, m.Value
		}
		c.Locations = append(c.Locations, iso)
		c.Values = append(c.Values, m.Value)
		c.ZMin = min(c.ZMin, m.Value)
		c.ZMax = max(c.ZMax, m.Value)
	}
	if len(c.Locations) == 0 {
		c.Placeholder = empty(NoData)
		return c
	}

	if !sel.AllCountries() && !sel.AllYears() && len(sel.Filter(records)) > 0 {
		c.Highlight = []string{sel.Country}
	}
	return c
}
