package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/agri-dashboard-service/internal/charts"
	"github.com/couchcryptid/agri-dashboard-service/internal/export"
)

func newRenderCmd(opts *globalOptions) *cobra.Command {
	var (
		sel   selectionOptions
		chart string
		out   string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the time series or bar chart of a dataset to PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := charts.ParseKind(chart)
			if err != nil {
				return err
			}
			if kind != charts.KindTimeSeries && kind != charts.KindBar {
				return fmt.Errorf("%w: %q cannot be rendered to PNG, use timeseries or bar", charts.ErrUnknownChart, chart)
			}
			s, err := sel.selection()
			if err != nil {
				return err
			}
			svc, _, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			view, err := svc.Chart(kind, s)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			switch c := view.(type) {
			case charts.TimeSeriesChart:
				err = export.RenderTimeSeries(&buf, c, s.String())
			case charts.BarChart:
				err = export.RenderBar(&buf, c, s.String())
			}
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	sel.register(cmd, true)
	cmd.Flags().StringVar(&chart, "chart", string(charts.KindTimeSeries), "chart to render: timeseries or bar")
	cmd.Flags().StringVarP(&out, "out", "o", "chart.png", "output PNG path")
	return cmd
}
