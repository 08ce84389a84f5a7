package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/agri-dashboard-service/internal/charts"
	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
)

func newCorrelateCmd(opts *globalOptions) *cobra.Command {
	var sel selectionOptions
	cmd := &cobra.Command{
		Use:   "correlate",
		Short: "Print the Pearson correlation matrix of the four datasets",
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
			m, err := svc.Correlation(s)
			if err != nil {
				return err
			}
			return writeMatrix(cmd.OutOrStdout(), s, m)
		},
	}
	sel.register(cmd, false)
	return cmd
}

func writeMatrix(out io.Writer, sel domain.Selection, m domain.Matrix) error {
	fmt.Fprintf(out, "Selection: %s\n\n", scope(sel))
	if m.AllZero() {
		fmt.Fprintln(out, charts.NoSelection)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, label := range m.Labels {
		fmt.Fprintf(tw, "%s\t", label)
	}
	fmt.Fprintln(tw)
	for i, label := range m.Labels {
		fmt.Fprintf(tw, "%s\t", label)
		for _, v := range m.Values[i] {
			fmt.Fprintf(tw, "%s\t", charts.FormatValue(v, 2))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
