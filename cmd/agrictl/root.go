package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/agri-dashboard-service/internal/adapter/file"
	"github.com/couchcryptid/agri-dashboard-service/internal/config"
	"github.com/couchcryptid/agri-dashboard-service/internal/dashboard"
	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
	"github.com/couchcryptid/agri-dashboard-service/internal/observability"
	"github.com/couchcryptid/agri-dashboard-service/internal/pipeline"
)

const loadTimeout = 30 * time.Second

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	dataDir  string
	manifest string
	logLevel string
}

// selectionOptions are the dataset, year, and country flags.
type selectionOptions struct {
	dataset string
	year    string
	country string
}

func (o *selectionOptions) register(cmd *cobra.Command, withDataset bool) {
	if withDataset {
		cmd.Flags().StringVar(&o.dataset, "dataset", "water", "dataset: water, nutrient, energy, or land")
	}
	cmd.Flags().StringVar(&o.year, "year", "all", "year to select, or all")
	cmd.Flags().StringVar(&o.country, "country", "all", "ISO3 country code to select, or all")
}

func (o *selectionOptions) selection() (domain.Selection, error) {
	return domain.ParseSelection(o.dataset, o.year, o.country)
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "agrictl",
		Short:         "Query the agricultural resource datasets from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "data", "directory containing the dataset files")
	root.PersistentFlags().StringVar(&opts.manifest, "manifest", "", "YAML manifest overriding dataset file names")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, or error")

	root.AddCommand(
		newSummaryCmd(opts),
		newCorrelateCmd(opts),
		newExportCmd(opts),
		newRenderCmd(opts),
		newValidateCmd(opts),
	)
	return root
}

func (o *globalOptions) logger() *slog.Logger {
	return observability.NewCLILogger(o.logLevel)
}

func (o *globalOptions) source() (*file.Source, error) {
	m, err := config.LoadManifest(o.manifest)
	if err != nil {
		return nil, err
	}
	return file.NewDirSource(o.dataDir, m.Files()), nil
}

// load reads every dataset through the pipeline and returns the query service
// and catalog.
func (o *globalOptions) load(ctx context.Context) (*dashboard.Service, *domain.Catalog, error) {
	src, err := o.source()
	if err != nil {
		return nil, nil, err
	}
	metrics := observability.NewUnregisteredMetrics()
	p := pipeline.New(src, nil, o.logger(), metrics, loadTimeout)
	if err := p.Load(ctx); err != nil {
		return nil, nil, fmt.Errorf("load datasets from %s: %w", o.dataDir, err)
	}
	cat, err := p.Catalog()
	if err != nil {
		return nil, nil, err
	}
	return dashboard.NewService(p, metrics), cat, nil
}
