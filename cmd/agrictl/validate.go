package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
)

// errValidationFailed is returned after the report has been printed, so main
// exits non-zero without printing it again.
var errValidationFailed = errors.New("validation failed")

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// extracted is one dataset as read from disk.
type extracted struct {
	dataset domain.DatasetType
	file    string
	rows    int
	records []domain.Record
	audit   domain.Audit
}

func newValidateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the dataset files for integrity problems",
		Long: `Reads every dataset file and runs integrity phases: each dataset yields
records, no row that passes its discriminant is dropped for a missing or
malformed year, records carry a country, (country, year) keys are unique, and
every raw row is accounted for as excluded, dropped, or kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := opts.source()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "=== Agricultural Dataset Integrity Validation ===")
			fmt.Fprintln(out)

			read := &phase{name: "Datasets contain records"}
			var sets []extracted
			for _, dt := range domain.DatasetTypes {
				records, rows, err := src.Extract(cmd.Context(), dt)
				if err != nil {
					read.errorf("%s: %v", dt, err)
					continue
				}
				if len(records) == 0 {
					read.errorf("%s (%s): no usable records in %d rows", dt, src.File(dt), rows)
				}
				audit, err := src.Audit(cmd.Context(), dt)
				if err != nil {
					read.errorf("%s: %v", dt, err)
					continue
				}
				sets = append(sets, extracted{dataset: dt, file: src.File(dt), rows: rows, records: records, audit: audit})
			}

			phases := []*phase{
				read,
				validateYears(sets),
				validateCountries(sets),
				validateUniqueKeys(sets),
				validateFiltering(sets),
			}
			if !report(out, phases, sets) {
				return errValidationFailed
			}
			return nil
		},
	}
}

func validateYears(sets []extracted) *phase {
	p := &phase{name: "Years are four-digit"}
	for _, s := range sets {
		for _, d := range s.audit.BadYears {
			p.errorf("%s: row %d (%s) has year %q", s.dataset, d.Index, d.AreaCode, d.Period)
		}
		for _, r := range s.records {
			if r.Year < 1000 || r.Year > 9999 {
				p.errorf("%s: %s has year %d", s.dataset, r.CountryCode, r.Year)
			}
		}
	}
	return p
}

func validateCountries(sets []extracted) *phase {
	p := &phase{name: "Records carry a country"}
	for _, s := range sets {
		for _, r := range s.records {
			if r.CountryCode == "" || r.Country == "" {
				p.errorf("%s: %d record with code %q name %q", s.dataset, r.Year, r.CountryCode, r.Country)
			}
		}
	}
	return p
}

func validateUniqueKeys(sets []extracted) *phase {
	p := &phase{name: "No duplicate country/year keys"}
	for _, s := range sets {
		seen := make(map[domain.Key]int, len(s.records))
		for _, r := range s.records {
			seen[domain.KeyOf(r)]++
		}
		for _, r := range s.records {
			k := domain.KeyOf(r)
			if n := seen[k]; n > 1 {
				p.errorf("%s: %s %d appears %d times", s.dataset, k.CountryCode, k.Year, n)
				seen[k] = 0
			}
		}
	}
	return p
}

func validateFiltering(sets []extracted) *phase {
	p := &phase{name: "Discriminant-filtered counts"}
	for _, s := range sets {
		if len(s.records) > s.rows {
			p.errorf("%s: %d records from only %d rows", s.dataset, len(s.records), s.rows)
			continue
		}
		a := s.audit
		if kept := a.Rows - a.Excluded - len(a.BadYears); kept != len(s.records) {
			p.errorf("%s: %d rows less %d excluded and %d bad years leaves %d, got %d records",
				s.dataset, a.Rows, a.Excluded, len(a.BadYears), kept, len(s.records))
		}
	}
	return p
}

func report(out io.Writer, phases []*phase, sets []extracted) bool {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	for _, s := range sets {
		missing := 0
		for _, r := range s.records {
			if !r.Valid() {
				missing++
			}
		}
		fmt.Fprintf(out, "  %-8s %-24s %5d rows %5d records %5d filtered %5d missing values\n",
			s.dataset, s.file, s.rows, len(s.records), s.rows-len(s.records), missing)
	}

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return true
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return false
}
