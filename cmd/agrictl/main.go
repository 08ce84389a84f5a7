// Command agrictl runs dashboard queries against local dataset files without
// starting the service: summaries, correlation, XLSX export, PNG charts, and
// data integrity checks.
//
// Usage:
//
//	agrictl summary --data-dir data --year 2015
//	agrictl export --manifest data/manifest.yaml --out report.xlsx
//	agrictl render --chart bar --dataset energy --out energy.png
//	agrictl validate --data-dir data
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
