package app

import (
	"context"

	"github.com/guttosm/cryptoreport/config"
	"github.com/guttosm/cryptoreport/internal/ingestion"
	"github.com/guttosm/cryptoreport/internal/logger"
	"github.com/guttosm/cryptoreport/internal/pipeline"
	"github.com/guttosm/cryptoreport/internal/sink"
)

// Build sets up all run dependencies and returns an Idle pipeline driver and
// a cleanup function releasing them.
//
// Responsibilities:
//   - Creates the CoinGecko client from cfg.Source.
//   - Creates the spreadsheet and PDF writers.
//   - Opens the optional run archive. A broken archive is logged and skipped;
//     it never prevents the report from being produced.
func Build(ctx context.Context, cfg config.Config) (*pipeline.Driver, func(), error) {
	client := ingestion.NewClient(cfg.Source, nil)
	sheet := sink.NewSpreadsheet(cfg.Output.SheetName)
	pdf := sink.NewPDFReport()

	var opts []pipeline.Option
	cleanup := func() {}

	repo, closeArchive, err := archiveOpener(ctx, cfg)
	switch {
	case err != nil:
		logger.L().Warn().Err(err).Str("driver", cfg.Archive.Driver).Msg("archive unavailable, continuing without it")
	case repo != nil:
		opts = append(opts, pipeline.WithArchive(repo))
		cleanup = closeArchive
	}

	driver := pipeline.NewDriver(client, sheet, pdf, pipeline.Paths{
		Spreadsheet: cfg.Output.SpreadsheetPath,
		Report:      cfg.Output.ReportPath,
	}, opts...)

	return driver, cleanup, nil
}
