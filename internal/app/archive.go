package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/guttosm/cryptoreport/config"
	"github.com/guttosm/cryptoreport/internal/storage"

	_ "github.com/lib/pq"  // PostgreSQL driver for database/sql
	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// InitPostgres opens and pings the PostgreSQL archive database.
//
// Behavior:
//   - Opens a handle with the DSN built by config.LoadConfig (cfg.Postgres.URL).
//   - Immediately pings the database to validate connectivity.
//
// Returns:
//   - *sql.DB: an open database connection pool.
//   - error: if opening or pinging the database fails.
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	db, err := sqlOpener("postgres", cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// InitSQLite opens the SQLite archive file, creating its directory when missing.
func InitSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
	}

	db, err := sqlOpener("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}
	return db, nil
}

// OpenArchive connects the archive selected by ARCHIVE_DRIVER and migrates
// its schema. An empty driver disables the archive: the repository is nil.
//
// Returns the repository and a cleanup function that closes the database.
func OpenArchive(ctx context.Context, cfg config.Config) (storage.RunsRepository, func(), error) {
	var (
		db      *sql.DB
		dialect storage.Dialect
		err     error
	)

	switch cfg.Archive.Driver {
	case "":
		return nil, func() {}, nil
	case "postgres":
		dialect = storage.Postgres
		db, err = InitPostgres(cfg)
	case "sqlite":
		dialect = storage.SQLite
		db, err = InitSQLite(cfg.Archive.SQLitePath)
	default:
		return nil, nil, fmt.Errorf("unknown archive driver %q", cfg.Archive.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := storage.Migrate(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	cleanup := func() { _ = db.Close() }
	return storage.NewRunsRepository(db, dialect), cleanup, nil
}

// archiveOpener is an indirection used by Build; overridden in tests to avoid real connections.
var archiveOpener = OpenArchive
