package storage

import (
	"database/sql"
	"fmt"
)

// MigrationVersion tracks the current database schema version.
const MigrationVersion = 1

// InitializeDatabase creates the SQLite database schema for check history.
// This includes migration version tracking to support future schema updates.
func InitializeDatabase(db *sql.DB) error {
	// Create migrations table to track schema version
	migrationsTable := `
	CREATE TABLE IF NOT EXISTS migrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		version INTEGER NOT NULL UNIQUE,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(migrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Check current version
	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to check migration version: %w", err)
	}

	// Apply migrations
	if currentVersion < 1 {
		if err := applyMigration1(db); err != nil {
			return fmt.Errorf("failed to apply migration 1: %w", err)
		}
	}

	return nil
}

// applyMigration1 creates the initial database schema.
func applyMigration1(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Artifacts table - persisted submission artifacts (opaque envelopes)
	artifactsTable := `
	CREATE TABLE artifacts (
		id TEXT PRIMARY KEY,
		nb_path TEXT NOT NULL,
		steps INTEGER NOT NULL,
		envelope BLOB NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := tx.Exec(artifactsTable); err != nil {
		return fmt.Errorf("failed to create artifacts table: %w", err)
	}

	// Check results table - one row per reference run against an artifact
	resultsTable := `
	CREATE TABLE check_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		artifact_id TEXT NOT NULL,
		reference_id TEXT NOT NULL,
		reference_name TEXT NOT NULL,
		group_label TEXT NOT NULL DEFAULT '',
		correct INTEGER NOT NULL,
		messages TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (artifact_id) REFERENCES artifacts(id) ON DELETE CASCADE
	);`

	if _, err := tx.Exec(resultsTable); err != nil {
		return fmt.Errorf("failed to create check_results table: %w", err)
	}

	// Indexes for common queries
	indexes := []string{
		"CREATE INDEX idx_artifacts_created_at ON artifacts(created_at DESC);",
		"CREATE INDEX idx_results_artifact_id ON check_results(artifact_id, created_at DESC);",
		"CREATE INDEX idx_results_reference ON check_results(reference_name, created_at DESC);",
	}

	for _, index := range indexes {
		if _, err := tx.Exec(index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	// Record migration
	if _, err := tx.Exec("INSERT INTO migrations (version) VALUES (1)"); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}
