package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyDataset is returned when a dataset yields no usable records.
var ErrEmptyDataset = errors.New("dataset is empty")

// LoadError reports every dataset that came back empty. The dashboard refuses
// to render a partial view, so one empty dataset fails the whole load.
type LoadError struct {
	Empty []DatasetType
}

func (e *LoadError) Error() string {
	names := make([]string, len(e.Empty))
	for i, dt := range e.Empty {
		names[i] = string(dt)
	}
	return fmt.Sprintf("one or more datasets are empty or malformed: %s", strings.Join(names, ", "))
}

// Unwrap lets callers test with errors.Is(err, ErrEmptyDataset).
func (e *LoadError) Unwrap() error { return ErrEmptyDataset }

// Catalog holds the four normalized datasets. It is immutable once built and
// safe to share between goroutines.
type Catalog struct {
	records  map[DatasetType][]Record
	loadedAt time.Time
}

// NewCatalog validates that every dataset type has at least one record and
// returns the catalog. Missing or empty datasets produce a *LoadError.
func NewCatalog(data map[DatasetType][]Record) (*Catalog, error) {
	var empty []DatasetType
	records := make(map[DatasetType][]Record, len(DatasetTypes))
	for _, dt := range DatasetTypes {
		rs := data[dt]
		if len(rs) == 0 {
			empty = append(empty, dt)
			continue
		}
		records[dt] = rs
	}
	if len(empty) > 0 {
		return nil, &LoadError{Empty: empty}
	}
	return &Catalog{records: records, loadedAt: Now()}, nil
}

// LoadedAt is when the catalog was built.
func (c *Catalog) LoadedAt() time.Time { return c.loadedAt }

// Records returns the records of dt. The slice is shared and must not be
// modified.
func (c *Catalog) Records(dt DatasetType) []Record {
	return c.records[dt]
}

// Series returns every dataset in canonical order, as used by the correlation
// matrix.
func (c *Catalog) Series() []Series {
	out := make([]Series, 0, len(DatasetTypes))
	for _, dt := range DatasetTypes {
		out = append(out, Series{Dataset: dt, Records: c.records[dt]})
	}
	return out
}

// Counts returns the number of records per dataset.
func (c *Catalog) Counts() map[DatasetType]int {
	out := make(map[DatasetType]int, len(c.records))
	for dt, rs := range c.records {
		out[dt] = len(rs)
	}
	return out
}

// Years returns the selector years across all datasets.
func (c *Catalog) Years() []int {
	return UniqueYears(c.all()...)
}

// Countries returns the selector countries across all datasets.
func (c *Catalog) Countries() []Country {
	return UniqueCountries(c.all()...)
}

func (c *Catalog) all() [][]Record {
	out := make([][]Record, 0, len(DatasetTypes))
	for _, dt := range DatasetTypes {
		out = append(out, c.records[dt])
	}
	return out
}
