package charts

import (
	"fmt"

	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
)

// InsightText is the narrative summary under the dashboard charts.
type InsightText struct {
	Placeholder
	Text       string  `json:"text"`
	TopCountry string  `json:"top_country,omitempty"`
	TopValue   float64 `json:"top_value,omitempty"`
	Average    float64 `json:"average,omitempty"`
}

// Insight names the country with the largest summed value and the selection
// average.
func Insight(records []domain.Record, sel domain.Selection) InsightText {
	filtered := sel.Filter(records)
	stats := domain.Aggregate(filtered)
	if stats == nil {
		return InsightText{Placeholder: empty(NoSelection), Text: NoSelection}
	}

	top := domain.GroupSum(filtered)[0]
	info := sel.Dataset.Info()
	out := InsightText{TopCountry: top.Country, TopValue: top.Value, Average: stats.Average}

	if sel.Dataset == domain.Nutrient {
		out.Text = fmt.Sprintf(
			"Nutrient balance analysis reveals %s leads with %s %s. This indicates the country's agricultural efficiency in nutrient management, with an average balance of %s %s across all regions.",
			top.Country, FormatValue(top.Value, 2), info.Unit, FormatValue(stats.Average, 2), info.Unit)
		return out
	}
	out.Text = fmt.Sprintf(
		"%s analysis shows %s has the highest consumption at %s %s. The average across all regions is %s %s, with significant variation indicating different resource management strategies.",
		info.Name, top.Country, FormatValue(top.Value, 2), info.Unit, FormatValue(stats.Average, 2), info.Unit)
	return out
}
