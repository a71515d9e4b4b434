// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the signature corpus and cluster memberships in
// SQLite. Implements: prd001-storage (R1-R5);
//
//	docs/ARCHITECTURE § Corpus Store.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/canopy-engine/pkg/types"
)

const (
	indexDir  = "index"
	corpusDir = "corpus"
	dbFile    = "corpus.db"
)

// Store is an explicitly passed storage handle. It is opened once at
// process start and closed at shutdown; components receive it rather
// than sharing ambient state.
type Store struct {
	db      *sql.DB
	dataDir string
}

// NewStore opens or creates the corpus database at dataDir/index/corpus.db
// and creates the schema if it does not exist (R1.2, R1.3).
func NewStore(cfg types.StorageConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: cfg.DataDir}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			paper_id TEXT PRIMARY KEY,
			title TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS paper_authors (
			paper_id TEXT NOT NULL REFERENCES papers(paper_id),
			position INTEGER NOT NULL,
			author_name TEXT NOT NULL,
			PRIMARY KEY (paper_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS signatures (
			signature_id TEXT PRIMARY KEY,
			paper_id TEXT NOT NULL REFERENCES papers(paper_id),
			fullname TEXT NOT NULL,
			position INTEGER NOT NULL,
			block TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signatures_block ON signatures(block)`,
		`CREATE INDEX IF NOT EXISTS idx_signatures_paper_id ON signatures(paper_id)`,
		// Membership rows are append-only within a run; a re-run replaces
		// its canopy's rows in one transaction (R4.2).
		`CREATE TABLE IF NOT EXISTS cluster_members (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			prediction_group TEXT NOT NULL,
			cluster_id TEXT NOT NULL,
			signature_id TEXT NOT NULL,
			canopy TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_members_cluster ON cluster_members(cluster_id)`,
		`CREATE INDEX IF NOT EXISTS idx_members_canopy ON cluster_members(canopy)`,
		`CREATE INDEX IF NOT EXISTS idx_members_signature ON cluster_members(signature_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	return nil
}

// storageErr tags a driver failure with the storage-unavailable kind so
// batch runs can treat it as fatal (R4.3).
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, types.ErrStorageUnavailable, err)
}
