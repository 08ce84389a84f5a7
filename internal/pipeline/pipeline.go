package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
	"github.com/couchcryptid/agri-dashboard-service/internal/observability"
)

// ErrNotLoaded is returned while no catalog has been loaded yet.
var ErrNotLoaded = errors.New("catalog has not been loaded yet")

// Extractor reads and normalizes one dataset. It returns the records and the
// number of raw rows read.
type Extractor interface {
	Extract(ctx context.Context, dt domain.DatasetType) ([]domain.Record, int, error)
}

// Publisher forwards a loaded dataset downstream.
type Publisher interface {
	Publish(ctx context.Context, dt domain.DatasetType, records []domain.Record, loadedAt time.Time) error
}

// state is one immutable load outcome. Exactly one of catalog and err is set.
type state struct {
	catalog *domain.Catalog
	err     error
}

// Pipeline loads the four datasets into a catalog and serves it to readers.
type Pipeline struct {
	extractor Extractor
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	timeout   time.Duration

	state atomic.Pointer[state]
}

// New creates a Pipeline. publisher may be nil to disable publishing.
func New(e Extractor, pub Publisher, logger *slog.Logger, metrics *observability.Metrics, timeout time.Duration) *Pipeline {
	return &Pipeline{
		extractor: e,
		publisher: pub,
		logger:    logger,
		metrics:   metrics,
		timeout:   timeout,
	}
}

// CheckReadiness returns nil once a catalog is loaded, or an error describing
// why the dashboard cannot serve yet.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	_, err := p.Catalog()
	return err
}

// Catalog returns the loaded catalog. Before the first load it returns
// ErrNotLoaded; after a failed load it returns that load's error.
func (p *Pipeline) Catalog() (*domain.Catalog, error) {
	s := p.state.Load()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s.catalog, s.err
}

// Load fetches all datasets concurrently and succeeds only when every one
// resolves to at least one record. A failed load never stores a partial
// catalog.
func (p *Pipeline) Load(ctx context.Context) error {
	start := time.Now()
	cat, err := p.fetch(ctx)
	if err != nil {
		p.metrics.LoadErrors.Inc()
		p.logger.Error("catalog load failed", "error", err)
		// A reload failure keeps serving the previous catalog.
		if prev := p.state.Load(); prev == nil || prev.catalog == nil {
			p.metrics.CatalogReady.Set(0)
			p.state.Store(&state{err: err})
		}
		return err
	}

	p.state.Store(&state{catalog: cat})
	p.metrics.CatalogReady.Set(1)
	p.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	for dt, n := range cat.Counts() {
		p.metrics.RecordsLoaded.WithLabelValues(string(dt)).Set(float64(n))
	}
	p.logger.Info("catalog loaded", "duration", time.Since(start), "loaded_at", cat.LoadedAt())

	p.publish(ctx, cat)
	return nil
}

func (p *Pipeline) fetch(ctx context.Context) (*domain.Catalog, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	results := make([][]domain.Record, len(domain.DatasetTypes))
	g, gctx := errgroup.WithContext(ctx)
	for i, dt := range domain.DatasetTypes {
		g.Go(func() error {
			records, rows, err := p.extractor.Extract(gctx, dt)
			if err != nil {
				return fmt.Errorf("load %s: %w", dt, err)
			}
			results[i] = records
			p.metrics.RowsDropped.WithLabelValues(string(dt)).Set(float64(rows - len(records)))
			p.logger.Info("dataset read", "dataset", dt, "rows", rows, "records", len(records))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := make(map[domain.DatasetType][]domain.Record, len(results))
	for i, dt := range domain.DatasetTypes {
		data[dt] = results[i]
	}
	return domain.NewCatalog(data)
}

// publish forwards every dataset. Failures are logged and counted but never
// unload the catalog.
func (p *Pipeline) publish(ctx context.Context, cat *domain.Catalog) {
	if p.publisher == nil {
		return
	}
	for _, dt := range domain.DatasetTypes {
		records := cat.Records(dt)
		if err := p.publisher.Publish(ctx, dt, records, cat.LoadedAt()); err != nil {
			p.metrics.PublishErrors.Inc()
			p.logger.Warn("publish dataset failed", "dataset", dt, "error", err)
			continue
		}
		p.metrics.RecordsPublished.Add(float64(len(records)))
	}
}

// Run loads the catalog, retrying failed loads with exponential backoff until
// one succeeds or the context is cancelled. The last failure stays visible
// through CheckReadiness while retrying.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "timeout", p.timeout)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		if err := p.Load(ctx); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		}
		if !retry.SleepWithContext(ctx, backoff) {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
}
