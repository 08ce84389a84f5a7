package dashboard

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/agri-dashboard-service/internal/charts"
	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
	"github.com/couchcryptid/agri-dashboard-service/internal/observability"
)

type staticSource struct {
	cat *domain.Catalog
	err error
}

func (s staticSource) Catalog() (*domain.Catalog, error) { return s.cat, s.err }

func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	cat, err := domain.NewCatalog(map[domain.DatasetType][]domain.Record{
		domain.Water: {
			{Country: "United States", CountryCode: "USA", Year: 2020, Value: 100},
			{Country: "Canada", CountryCode: "CAN", Year: 2020, Value: 50},
			{Country: "United States", CountryCode: "USA", Year: 2010, Value: 80},
		},
		domain.Nutrient: {{Country: "Canada", CountryCode: "CAN", Year: 2020, Value: 12}},
		domain.Energy:   {{Country: "United States", CountryCode: "USA", Year: 2020, Value: 900}},
		domain.Land:     {{Country: "France", CountryCode: "FRA", Year: 2015, Value: 28000}},
	})
	require.NoError(t, err)
	return cat
}

func newTestService(t *testing.T) (*Service, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	return NewService(staticSource{cat: testCatalog(t)}, metrics), metrics
}

func TestService_Datasets(t *testing.T) {
	svc, _ := newTestService(t)
	got, err := svc.Datasets()
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, domain.Water, got[0].Type)
	assert.Equal(t, 3, got[0].Records)
	assert.Equal(t, "Land Area", got[3].Name)
}

func TestService_Filters(t *testing.T) {
	svc, _ := newTestService(t)
	got, err := svc.Filters()
	require.NoError(t, err)
	assert.Equal(t, []int{2010, 2015, 2020}, got.Years)
	require.Len(t, got.Countries, 3)
	assert.Equal(t, "Canada", got.Countries[0].Name)
}

func TestService_Records(t *testing.T) {
	svc, _ := newTestService(t)
	got, err := svc.Records(domain.DefaultSelection().WithCountry("USA"))
	require.NoError(t, err)
	require.Len(t, got.Records, 2)
	assert.Equal(t, 2010, got.Records[0].Year)
	assert.Equal(t, "All Years • USA • Water Use", got.Subtitle)
}

func TestService_Stats(t *testing.T) {
	svc, _ := newTestService(t)
	got, err := svc.Stats(domain.DefaultSelection().WithYear(2020))
	require.NoError(t, err)
	require.Len(t, got, 4)

	require.NotNil(t, got[0].Stats)
	assert.Equal(t, domain.Stats{Total: 150, Average: 75, Maximum: 100, Minimum: 50, Count: 2}, *got[0].Stats)
	assert.Nil(t, got[0].Trend)
	assert.Nil(t, got[3].Stats, "land has no 2020 data")

	all, err := svc.Stats(domain.DefaultSelection().WithCountry("USA"))
	require.NoError(t, err)
	require.NotNil(t, all[0].Trend)
	assert.InDelta(t, 25.0, *all[0].Trend, 1e-9)
}

func TestService_KPIsAndCharts(t *testing.T) {
	svc, metrics := newTestService(t)

	kpis, err := svc.KPIs(domain.DefaultSelection())
	require.NoError(t, err)
	assert.Len(t, kpis, 4)

	chart, err := svc.Chart(charts.KindBar, domain.DefaultSelection())
	require.NoError(t, err)
	bar, ok := chart.(charts.BarChart)
	require.True(t, ok)
	assert.Equal(t, "USA", bar.Bars[0].CountryCode)

	_, err = svc.Chart(charts.Kind("sankey"), domain.DefaultSelection())
	require.ErrorIs(t, err, charts.ErrUnknownChart)

	m, err := svc.Correlation(domain.DefaultSelection())
	require.NoError(t, err)
	assert.Len(t, m.Labels, 4)

	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.Queries.WithLabelValues("bar", "ok")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.Queries.WithLabelValues("kpis", "ok")), 0)
}

func TestService_NotLoaded(t *testing.T) {
	loadErr := errors.New("catalog has not been loaded yet")
	metrics := observability.NewMetricsForTesting()
	svc := NewService(staticSource{err: loadErr}, metrics)

	_, err := svc.Datasets()
	require.ErrorIs(t, err, loadErr)
	_, err = svc.Records(domain.DefaultSelection())
	require.ErrorIs(t, err, loadErr)
	_, err = svc.Chart(charts.KindPie, domain.DefaultSelection())
	require.ErrorIs(t, err, loadErr)

	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.Queries.WithLabelValues("records", "error")), 0)
}
