// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a searchable SQLite copy of the cleaned dataset.
// Titles and abstracts are indexed with FTS5; each index run is recorded
// with a run id so the provenance of the current contents is visible.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cord-insights/pkg/types"
)

const dbFile = "papers.db"

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
	now        func() time.Time
}

// NewStore opens or creates the catalog database at cfg.Dir/papers.db and
// creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults, now: time.Now}
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
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			cord_uid TEXT,
			title TEXT NOT NULL,
			abstract TEXT NOT NULL,
			publish_time TEXT,
			journal TEXT NOT NULL,
			authors TEXT NOT NULL,
			source TEXT NOT NULL,
			pub_year INTEGER,
			abstract_word_count INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(pub_year)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_source ON papers(source)`,
		`CREATE TABLE IF NOT EXISTS index_runs (
			id TEXT PRIMARY KEY,
			source_path TEXT NOT NULL,
			records INTEGER NOT NULL,
			indexed_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE papers_fts USING fts5(title, abstract, content=papers, content_rowid=rowid)`,
		`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
			INSERT INTO papers_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
		END`,
		`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
			INSERT INTO papers_fts(papers_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
		END`,
		`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
			INSERT INTO papers_fts(papers_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			INSERT INTO papers_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
		END`,
	}
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// Run describes one Index call.
type Run struct {
	ID         string    `json:"id" yaml:"id"`
	SourcePath string    `json:"source_path" yaml:"source_path"`
	Records    int       `json:"records" yaml:"records"`
	IndexedAt  time.Time `json:"indexed_at" yaml:"indexed_at"`
}

// Index replaces the catalog contents with ds in a single transaction and
// records the run. Progress is written to w.
func (s *Store) Index(ctx context.Context, ds *types.Dataset, w io.Writer) (Run, error) {
	run := Run{
		ID:         uuid.NewString(),
		SourcePath: ds.Path,
		Records:    ds.Len(),
		IndexedAt:  s.now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM papers`); err != nil {
		return Run{}, fmt.Errorf("clearing papers: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (cord_uid, title, abstract, publish_time, journal, authors, source, pub_year, abstract_word_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range ds.Records {
		var publishTime sql.NullString
		if r.PublishTime.Valid {
			publishTime = sql.NullString{String: r.PublishTime.Time.Format(time.DateOnly), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.Title, r.Abstract, publishTime, r.Journal, r.Authors, r.Source,
			r.PublishYear, r.AbstractWordCount,
		); err != nil {
			return Run{}, fmt.Errorf("inserting %s: %w", r.ID.String, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO index_runs (id, source_path, records, indexed_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.SourcePath, run.Records, run.IndexedAt.Format(time.RFC3339Nano),
	); err != nil {
		return Run{}, fmt.Errorf("recording run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("committing index: %w", err)
	}

	fmt.Fprintf(w, "indexed %d papers from %s (run %s)\n", run.Records, run.SourcePath, run.ID)
	return run, nil
}

// Runs lists index runs, most recent first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_path, records, indexed_at FROM index_runs ORDER BY indexed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r  Run
			at string
		)
		if err := rows.Scan(&r.ID, &r.SourcePath, &r.Records, &at); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		indexedAt, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parsing run %s timestamp: %w", r.ID, err)
		}
		r.IndexedAt = indexedAt
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
