package datastore

import (
	"database/sql"
	"fmt"

	// pq is the PostgreSQL driver
	_ "github.com/lib/pq"
)

// DB is a global database connection pool (for simplicity in this context).
// In a larger application this would be passed via dependency injection.
var DB *sql.DB

// InitDB opens and verifies the database connection.
func InitDB(dataSourceName string) error {
	var err error
	DB, err = sql.Open("postgres", dataSourceName)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err = DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// EnsureSchema creates the tables this service needs if they do not exist.
// Called at startup, after InitDB.
func EnsureSchema() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS datasets (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			source TEXT NOT NULL,
			object_name TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS evaluation_rows (
			id SERIAL PRIMARY KEY,
			dataset_id INTEGER NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
			model TEXT NOT NULL,
			test_case TEXT NOT NULL,
			groundedness DOUBLE PRECISION NOT NULL,
			relevance DOUBLE PRECISION NOT NULL,
			coherence DOUBLE PRECISION NOT NULL,
			latency_ms DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS traces (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			context TEXT NOT NULL,
			response TEXT NOT NULL,
			groundedness_score DOUBLE PRECISION NOT NULL,
			reasoning TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
