// ABOUTME: Shared test setup for MCP tool handler tests
// ABOUTME: Provides an in-memory database with the full schema
package handlers

import (
	"database/sql"
	"testing"

	"github.com/harperreed/dealflow/db"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.InitSchema(database); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	return database
}
