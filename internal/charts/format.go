package charts

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatValue renders v with en-US digit grouping and a fixed number of
// decimals. Missing values render as "0".
func FormatValue(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return printer.Sprint(number.Decimal(v, number.Scale(decimals)))
}

// FormatCompact abbreviates thousands and millions with one decimal, the
// style of the KPI cards.
func FormatCompact(v float64) string {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return "0"
	case v >= 1_000_000:
		return FormatValue(v/1_000_000, 1) + "M"
	case v >= 1_000:
		return FormatValue(v/1_000, 1) + "K"
	default:
		return FormatValue(v, 1)
	}
}

// FormatPercent renders a signed percentage with one decimal.
func FormatPercent(v float64) string {
	s := FormatValue(v, 1) + "%"
	if v > 0 {
		return "+" + s
	}
	return s
}
