// Package pipeline drives a single report run.
//
// The Driver is an explicit state machine
//
//	Idle -> Fetching -> Analyzing -> Exporting -> Done
//
// where any non-terminal stage after Idle may end in Failed. All I/O goes
// through the injected collaborators.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guttosm/cryptoreport/internal/domain/errs"
	"github.com/guttosm/cryptoreport/internal/domain/models"
	"github.com/guttosm/cryptoreport/internal/export"
	"github.com/guttosm/cryptoreport/internal/logger"
	"github.com/guttosm/cryptoreport/internal/report"
	"github.com/guttosm/cryptoreport/internal/service"
)

const (
	SinkSpreadsheet = "spreadsheet"
	SinkReport      = "report"
)

// ErrAlreadyRun is returned by a second call to Driver.Run.
var ErrAlreadyRun = errors.New("pipeline: driver already ran")

// Fetcher retrieves the market snapshot. It is called exactly once per run.
type Fetcher interface {
	FetchMarkets(ctx context.Context) ([]models.MarketRecord, error)
}

// SpreadsheetSink persists the tabular projection.
type SpreadsheetSink interface {
	WriteTable(table models.ExportTable, path string) error
}

// ReportSink renders the narrative document.
type ReportSink interface {
	WriteReport(doc models.Document, path string) error
}

// Archive stores the outcome of a run.
type Archive interface {
	RecordRun(ctx context.Context, summary models.RunSummary, records []models.MarketRecord) error
}

// Paths are the artifact destinations.
type Paths struct {
	Spreadsheet string
	Report      string
}

// Option customizes a Driver.
type Option func(*Driver)

// WithArchive records every finished run in a.
func WithArchive(a Archive) Option {
	return func(d *Driver) { d.archive = a }
}

// WithClock replaces time.Now for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) { d.now = now }
}

// Driver sequences a single report run.
type Driver struct {
	fetcher Fetcher
	sheet   SpreadsheetSink
	report  ReportSink
	archive Archive
	paths   Paths

	runID       string
	log         zerolog.Logger
	now         func() time.Time
	state       State
	transitions []State
}

// NewDriver builds an Idle driver with a fresh run id.
func NewDriver(f Fetcher, sheet SpreadsheetSink, rep ReportSink, paths Paths, opts ...Option) *Driver {
	runID := uuid.NewString()
	d := &Driver{
		fetcher:     f,
		sheet:       sheet,
		report:      rep,
		paths:       paths,
		runID:       runID,
		log:         logger.WithRun(runID),
		now:         time.Now,
		state:       Idle,
		transitions: []State{Idle},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RunID identifies this run in logs and in the archive.
func (d *Driver) RunID() string { return d.runID }

// State returns the current state.
func (d *Driver) State() State { return d.state }

// Transitions returns the states visited so far, starting with Idle.
func (d *Driver) Transitions() []State {
	out := make([]State, len(d.transitions))
	copy(out, d.transitions)
	return out
}

// Run executes the pipeline and returns the terminal state with the error
// that caused Failed, if any.
//
// Behavior:
//   - Fetch or analysis failures stop the run before any sink is invoked.
//   - Both sinks are always attempted; their failures are joined.
//   - When an archive is configured the run summary is recorded after the
//     terminal state is reached. Archive failures are only logged.
func (d *Driver) Run(ctx context.Context) (State, error) {
	if d.state != Idle {
		return d.state, ErrAlreadyRun
	}
	started := d.now()

	d.transition(Fetching)
	records, err := d.fetcher.FetchMarkets(ctx)
	if err != nil {
		d.logFetchError(err)
		return d.finish(ctx, started, nil, nil, err)
	}

	d.transition(Analyzing)
	res, table, doc, err := d.analyze(records)
	if err != nil {
		d.logAnalysisError(err)
		return d.finish(ctx, started, nil, nil, err)
	}

	d.transition(Exporting)
	err = d.export(table, doc)
	return d.finish(ctx, started, records, res, err)
}

func (d *Driver) transition(next State) {
	d.log.Debug().Str("from", d.state.String()).Str("to", next.String()).Msg("state change")
	d.state = next
	d.transitions = append(d.transitions, next)
}

// analyze derives the result, the table and the document from one record set.
func (d *Driver) analyze(records []models.MarketRecord) (*models.AnalysisResult, models.ExportTable, models.Document, error) {
	if len(records) == 0 {
		return nil, models.ExportTable{}, models.Document{}, errs.ErrEmptyInput
	}
	if err := service.ValidateRecords(records); err != nil {
		return nil, models.ExportTable{}, models.Document{}, err
	}
	res, err := service.Aggregate(records)
	if err != nil {
		return nil, models.ExportTable{}, models.Document{}, err
	}

	d.log.Info().
		Int("records", res.RecordCount).
		Int("ranked", len(res.TopByMarketCap)).
		Bool("has_average", res.AveragePrice.Valid).
		Msg("analysis done")

	return res, export.Project(records), report.Compose(res), nil
}

func (d *Driver) export(table models.ExportTable, doc models.Document) error {
	var failures []error

	if err := d.sheet.WriteTable(table, d.paths.Spreadsheet); err != nil {
		failures = append(failures, d.sinkFailed(SinkSpreadsheet, d.paths.Spreadsheet, err))
	}
	if err := d.report.WriteReport(doc, d.paths.Report); err != nil {
		failures = append(failures, d.sinkFailed(SinkReport, d.paths.Report, err))
	}

	return errors.Join(failures...)
}

func (d *Driver) sinkFailed(sink, path string, err error) error {
	d.log.Error().Err(err).Str("sink", sink).Str("path", path).Msg("sink write failed")
	return &errs.SinkWriteError{Sink: sink, Path: path, Err: err}
}

func (d *Driver) finish(ctx context.Context, started time.Time, records []models.MarketRecord, res *models.AnalysisResult, err error) (State, error) {
	if err != nil {
		d.transition(Failed)
	} else {
		d.transition(Done)
	}

	finished := d.now()
	var ev *zerolog.Event
	if err != nil {
		ev = d.log.Error().Err(err)
	} else {
		ev = d.log.Info()
	}
	ev.Str("state", d.state.String()).Dur("elapsed", finished.Sub(started)).Msg("run finished")

	if d.archive != nil {
		summary := models.RunSummary{
			RunID:      d.runID,
			StartedAt:  started,
			FinishedAt: finished,
			State:      d.state.String(),
		}
		if res != nil {
			summary.RecordCount = res.RecordCount
			summary.AveragePrice = res.AveragePrice
		}
		if err != nil {
			summary.Error = err.Error()
		}
		if aerr := d.archive.RecordRun(ctx, summary, records); aerr != nil {
			d.log.Warn().Err(aerr).Msg("archive write failed")
		}
	}

	return d.state, err
}

func (d *Driver) logFetchError(err error) {
	ev := d.log.Error().Err(err)
	var fe *errs.FetchError
	if errors.As(err, &fe) && fe.StatusCode != 0 {
		ev = ev.Int("status", fe.StatusCode)
	}
	ev.Msg("fetch failed")
}

func (d *Driver) logAnalysisError(err error) {
	ev := d.log.Error().Err(err)
	var mre *errs.MalformedRecordError
	if errors.As(err, &mre) {
		ev = ev.Int("index", mre.Index).Str("record", mre.Identifier).Str("field", mre.Field).Str("rule", mre.Rule)
	}
	ev.Msg("analysis failed")
}
