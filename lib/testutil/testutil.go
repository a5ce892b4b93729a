package testutil

import (
	"database/sql"
	"homework-assist/pkg/migrations"
	"testing"
)

// OpenDB opens a sqlite database with schema applied and closes it when the
// test ends. An empty path opens a private in-memory database.
func OpenDB(t testing.TB, schema, path string) *sql.DB {
	if path == "" {
		path = ":memory:"
	}
	db, err := migrations.OpenAndMigrateDB(schema, path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}
