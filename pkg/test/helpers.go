package test

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"tasktracker/internal/adapter/database"
	"tasktracker/internal/adapter/database/sqlite"
)

// InitTestDB opens a private in-memory SQLite database with the schema
// applied. It is closed when the test ends.
func InitTestDB(t testing.TB) *database.DB {
	t.Helper()

	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	dsn := sqlite.DSN(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))

	sqlDB, err := sql.Open(database.DriverSQLite, dsn)

	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	// The in-memory database lives as long as its connection stays open.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err := sqlDB.PingContext(context.Background()); err != nil {
		t.Fatalf("ping test database: %v", err)
	}

	if err := sqlite.RunMigrations(sqlDB); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return database.New(sqlDB, database.DriverSQLite)
}

// CleanDB empties every application table, keeping the schema.
func CleanDB(t testing.TB, db *database.DB) {
	t.Helper()

	for _, table := range []string{"todo_items", "categories", "users"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("clean table %s: %v", table, err)
		}
	}
}
