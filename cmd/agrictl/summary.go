package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/agri-dashboard-service/internal/charts"
	"github.com/couchcryptid/agri-dashboard-service/internal/dashboard"
	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
)

func newSummaryCmd(opts *globalOptions) *cobra.Command {
	var sel selectionOptions
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print statistics and trend for every dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sel.selection()
			if err != nil {
				return err
			}
			svc, _, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := svc.Stats(s)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), s, stats)
		},
	}
	sel.register(cmd, false)
	return cmd
}

func writeSummary(out io.Writer, sel domain.Selection, stats []dashboard.DatasetStats) error {
	fmt.Fprintf(out, "Selection: %s\n\n", scope(sel))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATASET\tUNIT\tCOUNT\tTOTAL\tAVERAGE\tMAX\tMIN\tTREND")
	for _, ds := range stats {
		if ds.Stats == nil {
			fmt.Fprintf(tw, "%s\t%s\t0\t-\t-\t-\t-\t%s\n", ds.Name, ds.Unit, charts.NoSelection)
			continue
		}
		trend := "Insufficient data for trend"
		if ds.Trend != nil {
			trend = charts.FormatPercent(*ds.Trend)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			ds.Name, ds.Unit, ds.Stats.Count,
			charts.FormatValue(ds.Stats.Total, 2),
			charts.FormatValue(ds.Stats.Average, 2),
			charts.FormatValue(ds.Stats.Maximum, 2),
			charts.FormatValue(ds.Stats.Minimum, 2),
			trend,
		)
	}
	return tw.Flush()
}

// scope describes the year and country filters of sel.
func scope(sel domain.Selection) string {
	year := "All Years"
	if !sel.AllYears() {
		year = strconv.Itoa(sel.Year)
	}
	country := "All Countries"
	if !sel.AllCountries() {
		country = sel.Country
	}
	return year + " • " + country
}
