// Package storage opens the client's local sqlite database and keeps its
// schema current. The database holds only session metadata (the persisted
// credential); item data always comes from the remote API.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dverbis/itemkeeper/internal/client/storage/migrations"

	_ "modernc.org/sqlite"
)

// Open opens (creating if needed) the sqlite database at path and runs the
// embedded migrations. The caller owns the returned handle.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating local store: %w", err)
	}

	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
