package charts

import "github.com/couchcryptid/agri-dashboard-service/internal/domain"

// KPI is the metric card for one dataset.
type KPI struct {
	Placeholder
	Dataset         domain.DatasetType `json:"dataset"`
	Name            string             `json:"name"`
	Unit            string             `json:"unit"`
	Value           float64            `json:"value"`
	Display         string             `json:"display"`
	Trend           *float64           `json:"trend,omitempty"`
	TrendText       string             `json:"trend_text"`
	RegionalAverage *float64           `json:"regional_average,omitempty"`
}

// KPIFor summarizes the records of dt under the selection. The headline value
// is the mean of the selected records. The regional average ignores the
// country filter.
func KPIFor(dt domain.DatasetType, records []domain.Record, sel domain.Selection) KPI {
	info := dt.Info()
	k := KPI{
		Dataset:   dt,
		Name:      info.Name,
		Unit:      info.Unit,
		Display:   FormatCompact(0),
		TrendText: "Insufficient data for trend",
	}

	filtered := sel.Filter(records)
	mean, ok := domain.Mean(filtered)
	if !ok {
		k.Placeholder = empty(NoData)
		return k
	}
	k.Value = mean
	k.Display = FormatCompact(mean)

	if regional, ok := domain.Mean(sel.YearOnly().Filter(records)); ok {
		k.RegionalAverage = &regional
	}
	if trend, ok := domain.Trend(filtered); ok {
		k.Trend = &trend
		k.TrendText = FormatPercent(trend) + " trend"
	}
	return k
}

// KPIs returns one card per dataset in canonical order.
func KPIs(src Source, sel domain.Selection) []KPI {
	out := make([]KPI, 0, len(domain.DatasetTypes))
	for _, dt := range domain.DatasetTypes {
		out = append(out, KPIFor(dt, src.Records(dt), sel))
	}
	return out
}
