package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
)

// Sheet names.
const (
	SummarySheet     = "Summary"
	CorrelationSheet = "Correlation"
)

var (
	summaryHeader = []any{"Dataset", "Name", "Unit", "Records", "Total", "Average", "Maximum", "Minimum", "Count", "Trend (%)"}
	recordsHeader = []any{"Country", "Country Code", "Year", "Value", "Status"}
)

// WriteWorkbook writes a workbook for the selection: a summary sheet with one
// row per dataset, one sheet per dataset holding its filtered records, and the
// correlation matrix.
func WriteWorkbook(w io.Writer, cat *domain.Catalog, sel domain.Selection) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // nothing is left open after Write

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeSummary(f, cat, sel); err != nil {
		return err
	}
	for _, dt := range domain.DatasetTypes {
		if err := writeRecords(f, dt, sel.Filter(cat.Records(dt))); err != nil {
			return err
		}
	}
	if err := writeCorrelation(f, domain.CorrelationMatrix(cat.Series(), sel)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// RecordsSheet returns the sheet name of a dataset.
func RecordsSheet(dt domain.DatasetType) string {
	return dt.Info().Name
}

func writeSummary(f *excelize.File, cat *domain.Catalog, sel domain.Selection) error {
	if err := setRow(f, SummarySheet, 1, summaryHeader); err != nil {
		return err
	}
	counts := cat.Counts()
	for i, dt := range domain.DatasetTypes {
		info := dt.Info()
		filtered := sel.Filter(cat.Records(dt))
		row := []any{string(dt), info.Name, info.Unit, counts[dt]}
		if s := domain.Aggregate(filtered); s != nil {
			row = append(row, s.Total, s.Average, s.Maximum, s.Minimum, s.Count)
		} else {
			row = append(row, nil, nil, nil, nil, 0)
		}
		if trend, ok := domain.Trend(filtered); ok {
			row = append(row, domain.Round2(trend))
		}
		if err := setRow(f, SummarySheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRecords(f *excelize.File, dt domain.DatasetType, records []domain.Record) error {
	sheet := RecordsSheet(dt)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if err := setRow(f, sheet, 1, recordsHeader); err != nil {
		return err
	}
	for i, r := range domain.SortByYear(records) {
		if err := setRow(f, sheet, i+2, []any{r.Country, r.CountryCode, r.Year, r.Value, r.Status}); err != nil {
			return err
		}
	}
	return nil
}

func writeCorrelation(f *excelize.File, m domain.Matrix) error {
	if _, err := f.NewSheet(CorrelationSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", CorrelationSheet, err)
	}
	header := []any{""}
	for _, label := range m.Labels {
		header = append(header, label)
	}
	if err := setRow(f, CorrelationSheet, 1, header); err != nil {
		return err
	}
	for i, label := range m.Labels {
		row := []any{label}
		for _, v := range m.Values[i] {
			row = append(row, domain.Round2(v))
		}
		if err := setRow(f, CorrelationSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
	}
	return nil
}
