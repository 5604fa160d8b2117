package storage

import (
	"context"
	"database/sql"
	"fmt"

	goose "github.com/pressly/goose/v3"

	"github.com/guttosm/cryptoreport/db"
)

// gooseDialect maps the archive dialect to the goose dialect name.
func (d Dialect) gooseDialect() (string, error) {
	switch d {
	case Postgres:
		return "postgres", nil
	case SQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported archive dialect %q", string(d))
	}
}

// Migrate applies the embedded schema migrations up to the latest version.
// Applied migrations are skipped, so calling it on every run is safe.
func Migrate(ctx context.Context, conn *sql.DB, dialect Dialect) error {
	name, err := dialect.gooseDialect()
	if err != nil {
		return err
	}

	goose.SetBaseFS(db.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(name); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, conn, db.MigrationsDir); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
