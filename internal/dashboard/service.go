// Package dashboard answers selection queries against the loaded catalog. It
// is the single entry point shared by the HTTP API and the CLI.
package dashboard

import (
	"github.com/couchcryptid/agri-dashboard-service/internal/charts"
	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
	"github.com/couchcryptid/agri-dashboard-service/internal/observability"
)

// CatalogSource provides the current catalog. *pipeline.Pipeline satisfies it.
type CatalogSource interface {
	Catalog() (*domain.Catalog, error)
}

// Service runs dashboard queries.
type Service struct {
	src     CatalogSource
	metrics *observability.Metrics
}

// NewService creates a Service over src.
func NewService(src CatalogSource, metrics *observability.Metrics) *Service {
	return &Service{src: src, metrics: metrics}
}

// DatasetSummary describes one dataset and how many records it holds.
type DatasetSummary struct {
	domain.DatasetInfo
	Records int `json:"records"`
}

// Filters lists the selector options.
type Filters struct {
	Years     []int            `json:"years"`
	Countries []domain.Country `json:"countries"`
}

// RecordsView is a filtered record listing.
type RecordsView struct {
	Selection domain.Selection `json:"selection"`
	Subtitle  string           `json:"subtitle"`
	Records   []domain.Record  `json:"records"`
}

// DatasetStats holds the aggregate and trend of one dataset under a selection.
// Stats is nil when the selection has no usable values.
type DatasetStats struct {
	Dataset domain.DatasetType `json:"dataset"`
	Name    string             `json:"name"`
	Unit    string             `json:"unit"`
	Stats   *domain.Stats      `json:"stats"`
	Trend   *float64           `json:"trend,omitempty"`
}

// Datasets returns every dataset in canonical order.
func (s *Service) Datasets() ([]DatasetSummary, error) {
	cat, err := s.catalog("datasets")
	if err != nil {
		return nil, err
	}
	counts := cat.Counts()
	out := make([]DatasetSummary, 0, len(domain.DatasetTypes))
	for _, dt := range domain.DatasetTypes {
		out = append(out, DatasetSummary{DatasetInfo: dt.Info(), Records: counts[dt]})
	}
	return out, nil
}

// Filters returns the years and countries present across all datasets.
func (s *Service) Filters() (Filters, error) {
	cat, err := s.catalog("filters")
	if err != nil {
		return Filters{}, err
	}
	return Filters{Years: cat.Years(), Countries: cat.Countries()}, nil
}

// Records returns the selected dataset's matching records ordered by year.
func (s *Service) Records(sel domain.Selection) (RecordsView, error) {
	cat, err := s.catalog("records")
	if err != nil {
		return RecordsView{}, err
	}
	return RecordsView{
		Selection: sel,
		Subtitle:  sel.String(),
		Records:   domain.SortByYear(sel.Filter(cat.Records(sel.Dataset))),
	}, nil
}

// Stats aggregates every dataset under the selection's year and country.
func (s *Service) Stats(sel domain.Selection) ([]DatasetStats, error) {
	cat, err := s.catalog("stats")
	if err != nil {
		return nil, err
	}
	out := make([]DatasetStats, 0, len(domain.DatasetTypes))
	for _, dt := range domain.DatasetTypes {
		info := dt.Info()
		filtered := sel.Filter(cat.Records(dt))
		ds := DatasetStats{Dataset: dt, Name: info.Name, Unit: info.Unit, Stats: domain.Aggregate(filtered)}
		if trend, ok := domain.Trend(filtered); ok {
			ds.Trend = &trend
		}
		out = append(out, ds)
	}
	return out, nil
}

// KPIs returns the metric cards for every dataset.
func (s *Service) KPIs(sel domain.Selection) ([]charts.KPI, error) {
	cat, err := s.catalog("kpis")
	if err != nil {
		return nil, err
	}
	return charts.KPIs(cat, sel), nil
}

// Correlation returns the dataset correlation matrix under the selection.
func (s *Service) Correlation(sel domain.Selection) (domain.Matrix, error) {
	cat, err := s.catalog("correlation")
	if err != nil {
		return domain.Matrix{}, err
	}
	return domain.CorrelationMatrix(cat.Series(), sel), nil
}

// Chart renders one chart view model.
func (s *Service) Chart(kind charts.Kind, sel domain.Selection) (any, error) {
	cat, err := s.catalog(string(kind))
	if err != nil {
		return nil, err
	}
	return charts.Build(kind, cat, sel)
}

func (s *Service) catalog(kind string) (*domain.Catalog, error) {
	cat, err := s.src.Catalog()
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.metrics.Queries.WithLabelValues(kind, outcome).Inc()
	return cat, err
}
