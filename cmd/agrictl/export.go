package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/agri-dashboard-service/internal/export"
)

func newExportCmd(opts *globalOptions) *cobra.Command {
	var (
		sel selectionOptions
		out string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a workbook with summary, per-dataset, and correlation sheets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sel.selection()
			if err != nil {
				return err
			}
			_, cat, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := export.WriteWorkbook(f, cat, s); err != nil {
				f.Close() //nolint:errcheck // the write error is reported
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	sel.register(cmd, false)
	cmd.Flags().StringVarP(&out, "out", "o", "report.xlsx", "output workbook path")
	return cmd
}
