package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ZabehCruz/pybryt/pkg/domain/types"
	"github.com/ZabehCruz/pybryt/pkg/reference"
	"github.com/ZabehCruz/pybryt/pkg/submission"
)

// ArtifactRecord is an artifact history row without its envelope payload.
type ArtifactRecord struct {
	ID        types.ArtifactID
	NBPath    string
	Steps     int
	CreatedAt time.Time
}

// ResultRecord is one persisted check result.
type ResultRecord struct {
	ArtifactID    types.ArtifactID
	ReferenceID   types.ReferenceID
	ReferenceName string
	Group         string
	Correct       bool
	Messages      []string
	CreatedAt     time.Time
}

// SQLiteHistoryRepository persists submission artifacts and their check
// results for later inspection. Artifacts are stored as their opaque
// serialized envelopes, so loading one back never re-runs the submission.
type SQLiteHistoryRepository struct {
	db *sql.DB
}

// NewSQLiteHistoryRepository creates a repository at the default location,
// ~/.pybryt/pybryt.db.
func NewSQLiteHistoryRepository() (*SQLiteHistoryRepository, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewSQLiteHistoryRepositoryWithPath(filepath.Join(homeDir, ".pybryt", "pybryt.db"))
}

// NewSQLiteHistoryRepositoryWithPath creates a repository with a custom
// database path. Useful for testing.
func NewSQLiteHistoryRepositoryWithPath(dbPath string) (*SQLiteHistoryRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := InitializeDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &SQLiteHistoryRepository{db: db}, nil
}

// Close closes the database connection.
func (r *SQLiteHistoryRepository) Close() error {
	return r.db.Close()
}

// SaveArtifact persists an artifact's envelope. Saving an already stored
// artifact updates it in place.
func (r *SQLiteHistoryRepository) SaveArtifact(sub *submission.Submission) error {
	if sub == nil {
		return fmt.Errorf("cannot save nil artifact")
	}

	envelope, err := sub.DumpBytes()
	if err != nil {
		return fmt.Errorf("failed to serialize artifact: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO artifacts (id, nb_path, steps, envelope)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET nb_path = excluded.nb_path,
			steps = excluded.steps, envelope = excluded.envelope`,
		sub.ID().String(), sub.Path(), sub.Steps(), envelope)
	if err != nil {
		return fmt.Errorf("failed to save artifact: %w", err)
	}
	return nil
}

// LoadArtifact restores a stored artifact from its envelope.
func (r *SQLiteHistoryRepository) LoadArtifact(id types.ArtifactID) (*submission.Submission, error) {
	var envelope []byte
	err := r.db.QueryRow("SELECT envelope FROM artifacts WHERE id = ?", id.String()).Scan(&envelope)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("artifact %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact: %w", err)
	}
	return submission.LoadBytes(envelope)
}

// ListArtifacts returns artifact metadata, most recent first.
func (r *SQLiteHistoryRepository) ListArtifacts() ([]ArtifactRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, nb_path, steps, created_at
		FROM artifacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []ArtifactRecord
	for rows.Next() {
		var rec ArtifactRecord
		var id string
		if err := rows.Scan(&id, &rec.NBPath, &rec.Steps, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan artifact row: %w", err)
		}
		rec.ID = types.ArtifactID(id)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SaveResult records one reference result for an artifact.
func (r *SQLiteHistoryRepository) SaveResult(artifactID types.ArtifactID, result *reference.Result) error {
	if result == nil {
		return fmt.Errorf("cannot save nil result")
	}

	messages, err := json.Marshal(result.Messages)
	if err != nil {
		return fmt.Errorf("failed to encode result messages: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO check_results (artifact_id, reference_id, reference_name, group_label, correct, messages)
		VALUES (?, ?, ?, ?, ?, ?)`,
		artifactID.String(), result.ReferenceID.String(), result.Name,
		result.Group, result.Correct, string(messages))
	if err != nil {
		return fmt.Errorf("failed to save check result: %w", err)
	}
	return nil
}

// ListResults returns an artifact's check results, most recent first.
func (r *SQLiteHistoryRepository) ListResults(artifactID types.ArtifactID) ([]ResultRecord, error) {
	rows, err := r.db.Query(`
		SELECT artifact_id, reference_id, reference_name, group_label, correct, messages, created_at
		FROM check_results WHERE artifact_id = ? ORDER BY created_at DESC, id DESC`,
		artifactID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list check results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []ResultRecord
	for rows.Next() {
		var rec ResultRecord
		var artifact, ref, messages string
		if err := rows.Scan(&artifact, &ref, &rec.ReferenceName, &rec.Group,
			&rec.Correct, &messages, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		rec.ArtifactID = types.ArtifactID(artifact)
		rec.ReferenceID = types.ReferenceID(ref)
		if err := json.Unmarshal([]byte(messages), &rec.Messages); err != nil {
			return nil, fmt.Errorf("failed to decode result messages: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
