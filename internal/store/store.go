// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists analyzed documents in a SQLite library: one row
// per document, one analysis record holding sentiment, summary, and concept
// map as JSON, and one row per keyword so keywords can be searched.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docsight/pkg/types"
)

const dbFile = "docsight.db"

// ErrNotFound is returned when a document is not in the library.
var ErrNotFound = errors.New("document not found")

// Store manages the library database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// Open opens or creates the library database at cfg.Dir/docsight.db and
// creates the schema if it does not exist.
func Open(cfg types.LibraryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}

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
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			source TEXT,
			page_count INTEGER,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS analyses (
			document_id TEXT PRIMARY KEY REFERENCES documents(id) ON DELETE CASCADE,
			sentiment TEXT,
			summary TEXT,
			concept_map TEXT,
			analyzed_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS keywords (
			document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			word TEXT NOT NULL,
			definition TEXT,
			context TEXT,
			score REAL,
			external INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (document_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_keywords_word ON keywords(word)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores a. Saving a document that already exists replaces its
// analysis and keywords.
func (s *Store) Save(ctx context.Context, a types.DocumentAnalysis) error {
	if a.Document.ID == "" {
		return errors.New("saving analysis: document id is empty")
	}

	sentiment, err := json.Marshal(a.Sentiment)
	if err != nil {
		return fmt.Errorf("encoding sentiment: %w", err)
	}
	summary, err := json.Marshal(a.Summary)
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	conceptMap, err := json.Marshal(a.ConceptMap)
	if err != nil {
		return fmt.Errorf("encoding concept map: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	doc := a.Document
	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, title, source, page_count, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, source=excluded.source, page_count=excluded.page_count`,
		doc.ID, doc.Title, doc.Source, doc.PageCount, formatTime(doc.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO analyses (document_id, sentiment, summary, concept_map, analyzed_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(document_id) DO UPDATE SET
			sentiment=excluded.sentiment, summary=excluded.summary,
			concept_map=excluded.concept_map, analyzed_at=excluded.analyzed_at`,
		doc.ID, string(sentiment), string(summary), string(conceptMap), formatTime(a.AnalyzedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting analysis: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM keywords WHERE document_id = ?`, doc.ID); err != nil {
		return fmt.Errorf("deleting old keywords: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO keywords (document_id, position, word, definition, context, score, external)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, k := range a.Keywords {
		if _, err := stmt.ExecContext(ctx,
			doc.ID, i, k.Word, k.Definition, k.Context, k.Score, k.IsFromExternalSource,
		); err != nil {
			return fmt.Errorf("inserting keyword %q: %w", k.Word, err)
		}
	}

	return tx.Commit()
}

// Get returns the stored analysis of the document with id.
func (s *Store) Get(ctx context.Context, id string) (types.DocumentAnalysis, error) {
	var (
		a                              types.DocumentAnalysis
		created, analyzed              string
		source                         sql.NullString
		pages                          sql.NullInt64
		sentiment, summary, conceptMap sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT d.id, d.title, d.source, d.page_count, d.created_at,
			a.sentiment, a.summary, a.concept_map, a.analyzed_at
		 FROM documents d JOIN analyses a ON a.document_id = d.id
		 WHERE d.id = ?`, id,
	).Scan(&a.Document.ID, &a.Document.Title, &source, &pages, &created,
		&sentiment, &summary, &conceptMap, &analyzed)
	if errors.Is(err, sql.ErrNoRows) {
		return types.DocumentAnalysis{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return types.DocumentAnalysis{}, fmt.Errorf("looking up document: %w", err)
	}

	a.Document.Source = source.String
	a.Document.PageCount = int(pages.Int64)
	a.Document.CreatedAt = parseTime(created)
	a.AnalyzedAt = parseTime(analyzed)

	if err := decodeJSON(sentiment, &a.Sentiment); err != nil {
		return types.DocumentAnalysis{}, fmt.Errorf("decoding sentiment: %w", err)
	}
	if err := decodeJSON(summary, &a.Summary); err != nil {
		return types.DocumentAnalysis{}, fmt.Errorf("decoding summary: %w", err)
	}
	if err := decodeJSON(conceptMap, &a.ConceptMap); err != nil {
		return types.DocumentAnalysis{}, fmt.Errorf("decoding concept map: %w", err)
	}

	a.Keywords, err = s.keywords(ctx, id)
	if err != nil {
		return types.DocumentAnalysis{}, err
	}
	return a, nil
}

func (s *Store) keywords(ctx context.Context, id string) ([]types.Keyword, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, definition, context, score, external
		 FROM keywords WHERE document_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying keywords: %w", err)
	}
	defer rows.Close()

	kws := []types.Keyword{}
	for rows.Next() {
		var (
			k                     types.Keyword
			definition, kwContext sql.NullString
		)
		if err := rows.Scan(&k.Word, &definition, &kwContext, &k.Score, &k.IsFromExternalSource); err != nil {
			return nil, fmt.Errorf("scanning keyword: %w", err)
		}
		k.Definition = definition.String
		k.Context = kwContext.String
		kws = append(kws, k)
	}
	return kws, rows.Err()
}

// List returns every stored document, newest first.
func (s *Store) List(ctx context.Context) ([]types.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, source, page_count, created_at
		 FROM documents ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	docs := []types.Document{}
	for rows.Next() {
		var (
			d       types.Document
			source  sql.NullString
			pages   sql.NullInt64
			created string
		)
		if err := rows.Scan(&d.ID, &d.Title, &source, &pages, &created); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		d.Source = source.String
		d.PageCount = int(pages.Int64)
		d.CreatedAt = parseTime(created)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Delete removes a document with its analysis and keywords.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func decodeJSON[T any](col sql.NullString, dst **T) error {
	if !col.Valid || col.String == "" || col.String == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal([]byte(col.String), &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}
