// Package charts turns filtered records into view models for the dashboard's
// chart widgets. Every builder is a pure function of the records and the
// selection, and reports an empty placeholder instead of an error when the
// selection leaves nothing to draw.
package charts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
)

// ErrUnknownChart is returned for a chart kind the dashboard does not render.
var ErrUnknownChart = errors.New("unknown chart kind")

// Placeholder messages.
const (
	NoData      = "No data available"
	NoMatch     = "No matching data available"
	NoSelection = "No data available for the current selection."
)

// Placeholder marks a chart with nothing to draw.
type Placeholder struct {
	Empty   bool   `json:"empty"`
	Message string `json:"message,omitempty"`
}

func empty(msg string) Placeholder { return Placeholder{Empty: true, Message: msg} }

// Source provides the normalized records of each dataset. *domain.Catalog
// satisfies it.
type Source interface {
	Records(dt domain.DatasetType) []domain.Record
}

// Kind names a chart.
type Kind string

const (
	KindTimeSeries Kind = "timeseries"
	KindChoropleth Kind = "choropleth"
	KindScatter    Kind = "scatter"
	KindBar        Kind = "bar"
	KindStackedBar Kind = "stacked-bar"
	KindHeatmap    Kind = "heatmap"
	KindPie        Kind = "pie"
	KindRadar      Kind = "radar"
	KindInsight    Kind = "insight"
)

// Kinds lists every chart in dashboard order.
var Kinds = []Kind{
	KindTimeSeries, KindChoropleth, KindScatter, KindBar, KindStackedBar,
	KindHeatmap, KindPie, KindRadar, KindInsight,
}

// ParseKind resolves a chart name, ignoring case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChart, s)
}

// Build renders the chart of the given kind for the selection.
func Build(kind Kind, src Source, sel domain.Selection) (any, error) {
	records := src.Records(sel.Dataset)
	switch kind {
	case KindTimeSeries:
		return TimeSeries(records, sel), nil
	case KindChoropleth:
		return Choropleth(records, sel), nil
	case KindScatter:
		return Scatter(records, src.Records(sel.Dataset.ScatterPartner()), sel), nil
	case KindBar:
		return Bar(records, sel), nil
	case KindStackedBar:
		return StackedBar(src.Records(domain.Water), src.Records(domain.Energy), sel), nil
	case KindHeatmap:
		return Heatmap(series(src), sel), nil
	case KindPie:
		return Pie(records, sel), nil
	case KindRadar:
		return Radar(records, sel), nil
	case KindInsight:
		return Insight(records, sel), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, kind)
	}
}

func series(src Source) []domain.Series {
	out := make([]domain.Series, 0, len(domain.DatasetTypes))
	for _, dt := range domain.DatasetTypes {
		out = append(out, domain.Series{Dataset: dt, Records: src.Records(dt)})
	}
	return out
}

func topN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
