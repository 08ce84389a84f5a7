package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Normalize maps every row that passes its discriminant to a Record. Rows with
// an unusable year are dropped. The input is never modified and the result is
// always a new slice, possibly shorter than the input.
func Normalize[T Observation](raws []T) []Record {
	out := make([]Record, 0, len(raws))
	for _, raw := range raws {
		if !raw.Included() {
			continue
		}
		h := raw.Header()
		year, ok := ParseYear(h.Period)
		if !ok {
			continue
		}
		out = append(out, Record{
			Country:     strings.TrimSpace(h.AreaName),
			CountryCode: strings.TrimSpace(h.AreaCode),
			Year:        year,
			Value:       ParseValue(raw.Observed()),
			Status:      h.StatusName,
		})
	}
	return out
}

// codec decodes and normalizes one dataset variant.
type codec struct {
	json        func(data []byte) ([]Record, int, error)
	fields      func(rows []Fields) []Record
	auditJSON   func(data []byte) (Audit, error)
	auditFields func(rows []Fields) Audit
}

var codecs = map[DatasetType]codec{
	Water:    newCodec(waterFromFields),
	Nutrient: newCodec(nutrientFromFields),
	Energy:   newCodec(energyFromFields),
	Land:     newCodec(landFromFields),
}

func newCodec[T Observation](fromFields func(Fields) T) codec {
	decode := func(data []byte) ([]T, error) {
		var raws []T
		err := json.Unmarshal(data, &raws)
		return raws, err
	}
	convert := func(rows []Fields) []T {
		raws := make([]T, len(rows))
		for i, row := range rows {
			raws[i] = fromFields(row)
		}
		return raws
	}
	return codec{
		json: func(data []byte) ([]Record, int, error) {
			raws, err := decode(data)
			if err != nil {
				return nil, 0, err
			}
			return Normalize(raws), len(raws), nil
		},
		fields: func(rows []Fields) []Record { return Normalize(convert(rows)) },
		auditJSON: func(data []byte) (Audit, error) {
			raws, err := decode(data)
			if err != nil {
				return Audit{}, err
			}
			return AuditRows(raws), nil
		},
		auditFields: func(rows []Fields) Audit { return AuditRows(convert(rows)) },
	}
}

// DecodeJSON parses a JSON array of raw rows for the dataset and normalizes it.
// It returns the normalized records and the number of raw rows read.
func DecodeJSON(dt DatasetType, data []byte) ([]Record, int, error) {
	c, ok := codecs[dt]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownDataset, dt)
	}
	records, n, err := c.json(data)
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s rows: %w", dt, err)
	}
	return records, n, nil
}

// FromFields normalizes header-keyed rows, as read from a CSV export.
func FromFields(dt DatasetType, rows []Fields) ([]Record, error) {
	c, ok := codecs[dt]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, dt)
	}
	return c.fields(rows), nil
}

// DroppedRow is a raw row that passed its discriminant but was dropped for an
// unusable year. Index is 1-based over the data rows.
type DroppedRow struct {
	Index    int
	AreaCode string
	Period   string
}

// Audit accounts for every raw row of a dataset: Rows = Excluded +
// len(BadYears) + Records.
type Audit struct {
	Rows     int
	Excluded int
	BadYears []DroppedRow
	Records  int
}

// AuditRows applies the normalization rules to raws and reports why each
// dropped row was dropped.
func AuditRows[T Observation](raws []T) Audit {
	a := Audit{Rows: len(raws)}
	for i, raw := range raws {
		if !raw.Included() {
			a.Excluded++
			continue
		}
		h := raw.Header()
		if _, ok := ParseYear(h.Period); !ok {
			a.BadYears = append(a.BadYears, DroppedRow{
				Index:    i + 1,
				AreaCode: strings.TrimSpace(h.AreaCode),
				Period:   h.Period.String(),
			})
			continue
		}
		a.Records++
	}
	return a
}

// AuditJSON is the audit counterpart of DecodeJSON.
func AuditJSON(dt DatasetType, data []byte) (Audit, error) {
	c, ok := codecs[dt]
	if !ok {
		return Audit{}, fmt.Errorf("%w: %q", ErrUnknownDataset, dt)
	}
	a, err := c.auditJSON(data)
	if err != nil {
		return Audit{}, fmt.Errorf("decode %s rows: %w", dt, err)
	}
	return a, nil
}

// AuditFields is the audit counterpart of FromFields.
func AuditFields(dt DatasetType, rows []Fields) (Audit, error) {
	c, ok := codecs[dt]
	if !ok {
		return Audit{}, fmt.Errorf("%w: %q", ErrUnknownDataset, dt)
	}
	return c.auditFields(rows), nil
}
