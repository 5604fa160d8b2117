// Package storage persists report runs and their market snapshots.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	pq "github.com/lib/pq"

	"github.com/guttosm/cryptoreport/internal/domain/models"
)

// Dialect selects the SQL flavour of the archive database.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

var snapshotColumns = []string{
	"run_id",
	"position",
	"coin_id",
	"name",
	"symbol",
	"current_price",
	"market_cap",
	"total_volume",
	"price_change_percentage_24h",
}

// RunsRepository defines contract for archive writes.
type RunsRepository interface {
	RecordRun(ctx context.Context, summary models.RunSummary, records []models.MarketRecord) error
}

type runsRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewRunsRepository returns a repository writing to db with the given dialect.
func NewRunsRepository(db *sql.DB, dialect Dialect) RunsRepository {
	return &runsRepository{db: db, dialect: dialect}
}

// RecordRun stores the run summary and, when records is non-empty, the
// snapshot of every record in source order. Everything happens in one
// transaction; on any error nothing is kept.
func (r *runsRepository) RecordRun(ctx context.Context, summary models.RunSummary, records []models.MarketRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO report_runs (run_id, started_at, finished_at, state, record_count, average_price, error)
		VALUES (%s)`, r.placeholders(7))
	if _, err := tx.ExecContext(ctx, query,
		summary.RunID,
		summary.StartedAt.UTC(),
		summary.FinishedAt.UTC(),
		summary.State,
		summary.RecordCount,
		summary.AveragePrice,
		toNullString(summary.Error),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert run: %w", err)
	}

	if len(records) > 0 {
		if err := r.insertSnapshots(ctx, tx, summary.RunID, records); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert snapshots: %w", err)
		}
	}

	return tx.Commit()
}

// insertSnapshots streams rows with COPY on Postgres and a prepared INSERT on SQLite.
func (r *runsRepository) insertSnapshots(ctx context.Context, tx *sql.Tx, runID string, records []models.MarketRecord) error {
	var query string
	if r.dialect == Postgres {
		query = pq.CopyIn("market_snapshots", snapshotColumns...)
	} else {
		query = fmt.Sprintf("INSERT INTO market_snapshots (%s) VALUES (%s)",
			strings.Join(snapshotColumns, ", "), r.placeholders(len(snapshotColumns)))
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			runID,
			i,
			toNullString(rec.ID),
			rec.Name,
			rec.Symbol,
			rec.CurrentPrice,
			rec.MarketCap,
			rec.TotalVolume,
			rec.PriceChangePercent24h,
		); err != nil {
			_ = stmt.Close()
			return err
		}
	}

	// COPY is flushed by an argument-less Exec.
	if r.dialect == Postgres {
		if _, err := stmt.ExecContext(ctx); err != nil {
			_ = stmt.Close()
			return err
		}
	}
	return stmt.Close()
}

func (r *runsRepository) placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		if r.dialect == Postgres {
			marks[i] = fmt.Sprintf("$%d", i+1)
		} else {
			marks[i] = "?"
		}
	}
	return strings.Join(marks, ", ")
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
