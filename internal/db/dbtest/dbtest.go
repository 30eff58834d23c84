// Package dbtest opens migrated SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/macromind/backend/internal/db"
)

// Open returns a fresh database for service with all migrations applied.
// The database lives in t.TempDir and is closed on cleanup.
func Open(t testing.TB, service string) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), service+".db") + "?_pragma=foreign_keys(1)"
	database, err := db.Init("sqlite", dsn)
	if err != nil {
		t.Fatalf("dbtest: init: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite", service)
	if err != nil {
		t.Fatalf("dbtest: migrate %s: %v", service, err)
	}
	return database
}
