// Package export writes dashboard data to files: an XLSX workbook with excelize
// and PNG charts with gonum/plot.
package export
