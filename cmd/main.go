package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/guttosm/cryptoreport/config"
	"github.com/guttosm/cryptoreport/internal/app"
	"github.com/guttosm/cryptoreport/internal/logger"
)

// run builds the pipeline from cfg and executes it once.
//
// Returns the error that failed the run; nil means both artifacts were written.
func run(ctx context.Context, cfg config.Config) error {
	driver, cleanup, err := app.Build(ctx, cfg)
	if err != nil {
		return fmt.Errorf("app init: %w", err)
	}
	defer cleanup()

	state, err := driver.Run(ctx)
	if err != nil {
		return err
	}

	logger.L().Info().
		Str("run_id", driver.RunID()).
		Str("state", state.String()).
		Str("spreadsheet", cfg.Output.SpreadsheetPath).
		Str("report", cfg.Output.ReportPath).
		Msg("report completed")
	return nil
}

// main is the entry point of cryptoreport.
//
// Modes (selected via --mode flag):
//   - run: fetch the market snapshot, analyze it and write the spreadsheet
//     and the PDF report. This is the only mode.
//
// Exit status is 0 when the run reaches Done and 1 otherwise.
func main() {
	mode := flag.String("mode", "run", "Mode: run")
	flag.Parse()

	// Configure logging from the environment first so config errors are visible
	logger.InitFromEnv()

	if err := config.LoadConfig(); err != nil {
		logger.L().Fatal().Err(err).Msg("config error")
	}
	cfg := config.AppConfig
	logger.Init(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	if *mode != "run" {
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg)
	stop()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("run failed")
	}
}
