package app

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/guttosm/cryptoreport/config"
	"github.com/guttosm/cryptoreport/internal/domain/models"
	"github.com/guttosm/cryptoreport/internal/pipeline"
	"github.com/guttosm/cryptoreport/internal/storage"
)

func pgConfig() config.Config {
	return config.Config{
		Archive:  config.ArchiveConfig{Driver: "postgres"},
		Postgres: config.PostgresConfig{URL: "postgres://u:p@h:5432/d?sslmode=disable"},
	}
}

func TestInitPostgres_OpenError(t *testing.T) {
	old := sqlOpener
	sqlOpener = func(driverName, dataSourceName string) (*sql.DB, error) {
		return nil, errors.New("open failed")
	}
	t.Cleanup(func() { sqlOpener = old })

	if _, err := InitPostgres(pgConfig()); err == nil {
		t.Fatalf("expected error from InitPostgres when open fails")
	}
}

func TestInitPostgres_PingError(t *testing.T) {
	old := sqlOpener
	sqlOpener = func(driverName, dataSourceName string) (*sql.DB, error) {
		if driverName != "postgres" || dataSourceName != pgConfig().Postgres.URL {
			t.Fatalf("unexpected open(%q, %q)", driverName, dataSourceName)
		}
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		if err != nil {
			t.Fatalf("sqlmock new: %v", err)
		}
		mock.ExpectPing().WillReturnError(errors.New("ping failed"))
		return db, nil
	}
	t.Cleanup(func() { sqlOpener = old })

	if _, err := InitPostgres(pgConfig()); err == nil {
		t.Fatalf("expected ping error from InitPostgres")
	}
}

func TestOpenArchive_Disabled(t *testing.T) {
	repo, cleanup, err := OpenArchive(context.Background(), config.Config{})
	if err != nil || repo != nil || cleanup == nil {
		t.Fatalf("want nil repo and noop cleanup, got repo=%v err=%v", repo, err)
	}
	cleanup()
}

func TestOpenArchive_UnknownDriver(t *testing.T) {
	cfg := config.Config{Archive: config.ArchiveConfig{Driver: "mysql"}}
	if _, _, err := OpenArchive(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestOpenArchive_PostgresFailure(t *testing.T) {
	old := sqlOpener
	sqlOpener = func(string, string) (*sql.DB, error) { return nil, errors.New("open failed") }
	t.Cleanup(func() { sqlOpener = old })

	if _, _, err := OpenArchive(context.Background(), pgConfig()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpenArchive_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "runs.db")
	cfg := config.Config{Archive: config.ArchiveConfig{Driver: "sqlite", SQLitePath: path}}

	repo, cleanup, err := OpenArchive(context.Background(), cfg)
	if err != nil {
		t.Fatalf("OpenArchive: %v", err)
	}
	defer cleanup()

	if err := repo.RecordRun(context.Background(), models.RunSummary{RunID: "r1", State: "Failed", Error: "x"}, nil); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
}

type nopRepo struct{}

func (nopRepo) RecordRun(context.Context, models.RunSummary, []models.MarketRecord) error {
	return nil
}

func TestBuild_WithArchive(t *testing.T) {
	closed := false
	old := archiveOpener
	archiveOpener = func(context.Context, config.Config) (storage.RunsRepository, func(), error) {
		return nopRepo{}, func() { closed = true }, nil
	}
	t.Cleanup(func() { archiveOpener = old })

	driver, cleanup, err := Build(context.Background(), config.Config{})
	if err != nil || driver == nil || cleanup == nil {
		t.Fatalf("Build failed: err=%v", err)
	}
	if driver.State() != pipeline.Idle {
		t.Fatalf("new driver should be Idle, got %s", driver.State())
	}
	cleanup()
	if !closed {
		t.Fatalf("cleanup did not close the archive")
	}
}

func TestBuild_ArchiveFailureIsNotFatal(t *testing.T) {
	old := archiveOpener
	archiveOpener = func(context.Context, config.Config) (storage.RunsRepository, func(), error) {
		return nil, nil, errors.New("db down")
	}
	t.Cleanup(func() { archiveOpener = old })

	driver, cleanup, err := Build(context.Background(), pgConfig())
	if err != nil || driver == nil || cleanup == nil {
		t.Fatalf("Build should degrade without archive, err=%v", err)
	}
	cleanup()
}
