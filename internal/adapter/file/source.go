// Package file reads the four OECD dataset exports from a directory. Files
// ending in .csv are read as header-keyed CSV; anything else is a JSON array.
package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
)

const utf8BOM = "\ufeff"

// Source extracts normalized records from dataset files in a filesystem.
type Source struct {
	fsys  fs.FS
	files map[domain.DatasetType]string
}

// NewSource reads files from fsys. files maps each dataset to its file name;
// datasets without an entry use their default export name.
func NewSource(fsys fs.FS, files map[domain.DatasetType]string) *Source {
	resolved := make(map[domain.DatasetType]string, len(domain.DatasetTypes))
	for _, dt := range domain.DatasetTypes {
		resolved[dt] = dt.Info().File
		if f, ok := files[dt]; ok && f != "" {
			resolved[dt] = f
		}
	}
	return &Source{fsys: fsys, files: resolved}
}

// NewDirSource reads files from a directory on disk.
func NewDirSource(dir string, files map[domain.DatasetType]string) *Source {
	return NewSource(os.DirFS(dir), files)
}

// File returns the file name read for dt.
func (s *Source) File(dt domain.DatasetType) string { return s.files[dt] }

// Extract reads and normalizes one dataset. It returns the records and the
// number of raw rows in the file.
func (s *Source) Extract(ctx context.Context, dt domain.DatasetType) ([]domain.Record, int, error) {
	p, err := s.read(ctx, dt)
	if err != nil {
		return nil, 0, err
	}
	if p.csv {
		records, err := domain.FromFields(dt, p.rows)
		return records, len(p.rows), err
	}
	return domain.DecodeJSON(dt, p.data)
}

// Audit reads one dataset and reports how each raw row fared in
// normalization.
func (s *Source) Audit(ctx context.Context, dt domain.DatasetType) (domain.Audit, error) {
	p, err := s.read(ctx, dt)
	if err != nil {
		return domain.Audit{}, err
	}
	if p.csv {
		return domain.AuditFields(dt, p.rows)
	}
	return domain.AuditJSON(dt, p.data)
}

// payload is a dataset file as read, either CSV rows or raw JSON bytes.
type payload struct {
	csv  bool
	rows []domain.Fields
	data []byte
}

func (s *Source) read(ctx context.Context, dt domain.DatasetType) (payload, error) {
	if err := ctx.Err(); err != nil {
		return payload{}, err
	}
	name, ok := s.files[dt]
	if !ok {
		return payload{}, fmt.Errorf("%w: %q", domain.ErrUnknownDataset, dt)
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		return payload{}, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	if strings.EqualFold(path.Ext(name), ".csv") {
		rows, err := readCSV(f)
		if err != nil {
			return payload{}, fmt.Errorf("read %s: %w", name, err)
		}
		return payload{csv: true, rows: rows}, nil
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return payload{}, fmt.Errorf("read %s: %w", name, err)
	}
	return payload{data: data}, nil
}

// readCSV maps every data row to its header. Short rows leave the missing
// columns absent.
func readCSV(r io.Reader) ([]domain.Fields, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var rows []domain.Fields
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		row := make(domain.Fields, len(header))
		for i, col := range rec {
			if i < len(header) {
				row[header[i]] = col
			}
		}
		rows = append(rows, row)
	}
}
