package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yangwenmai/minutes/internal/model"
)

// Verify at compile time that Store implements the archive interface.
var _ ExportArchiver = (*Store)(nil)

// Store provides data access to the SQLite export archive.
type Store struct {
	db *sql.DB
}

// New creates a new Store and initialises the schema.
func New(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// currentSchemaVersion is bumped whenever the schema changes.
// Add a new migration function in the migrations slice below.
const currentSchemaVersion = 1

func (s *Store) migrate() error {
	// Ensure the schema_version table exists.
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var version int
	err := s.db.QueryRow(`SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		// Fresh database: initialize to version 0.
		if _, err := s.db.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("init schema version: %w", err)
		}
		version = 0
	} else if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	// migrations is an ordered list of migration functions.
	// Index 0 = migration from v0 to v1, etc.
	migrations := []func() error{
		s.migrateV1, // v0 → v1: initial schema
	}

	for i := version; i < len(migrations); i++ {
		if err := migrations[i](); err != nil {
			return fmt.Errorf("migration v%d→v%d: %w", i, i+1, err)
		}
		if _, err := s.db.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
			return fmt.Errorf("update schema version to %d: %w", i+1, err)
		}
	}

	return nil
}

// migrateV1 creates the initial schema (v0 → v1).
func (s *Store) migrateV1() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exports (
		id          TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL,
		filename    TEXT NOT NULL,
		content     TEXT NOT NULL,
		status      TEXT NOT NULL,
		version     INTEGER NOT NULL,
		exported_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_exports_session ON exports(session_id, exported_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveExport appends one export record to the archive.
func (s *Store) SaveExport(ctx context.Context, e model.Export) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (id, session_id, filename, content, status, version, exported_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, e.Filename, e.Content, e.Status, e.Version,
		e.ExportedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert export: %w", err)
	}
	return nil
}

// ListExports returns all export records, newest first.
func (s *Store) ListExports(ctx context.Context) ([]model.Export, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, filename, content, status, version, exported_at
		 FROM exports ORDER BY exported_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query exports: %w", err)
	}
	defer rows.Close()

	var out []model.Export
	for rows.Next() {
		var e model.Export
		var exportedAt string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Filename, &e.Content, &e.Status, &e.Version, &exportedAt); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, exportedAt); err == nil {
			e.ExportedAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
