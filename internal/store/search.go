// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/docsight/pkg/types"
)

// QueryOptions holds parameters for keyword searches.
type QueryOptions struct {
	// Query is matched as a substring of keyword words and definitions,
	// ignoring ASCII case.
	Query string

	// DocumentID restricts results to one document.
	DocumentID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return strings.TrimSpace(q.Query) == "" && q.DocumentID == ""
}

// SearchResult is a stored keyword with the document it belongs to.
type SearchResult struct {
	types.Keyword
	DocumentID    string `json:"documentId" yaml:"document_id"`
	DocumentTitle string `json:"documentTitle" yaml:"document_title"`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search finds stored keywords. Exact word matches rank first, then higher
// scores.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]SearchResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}
	query := strings.TrimSpace(opts.Query)

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT k.word, k.definition, k.context, k.score, k.external, d.id, d.title
		FROM keywords k
		JOIN documents d ON d.id = k.document_id
		WHERE 1=1`)

	if query != "" {
		pattern := "%" + likeEscaper.Replace(query) + "%"
		qb.WriteString(` AND (k.word LIKE ? ESCAPE '\' OR k.definition LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if opts.DocumentID != "" {
		qb.WriteString(` AND k.document_id = ?`)
		args = append(args, opts.DocumentID)
	}

	qb.WriteString(` ORDER BY lower(k.word) = lower(?) DESC, k.score DESC, d.id, k.position LIMIT ?`)
	args = append(args, query, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("searching library: %w", err)
	}
	defer rows.Close()

	results := []SearchResult{}
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Word, &r.Definition, &r.Context, &r.Score, &r.IsFromExternalSource,
			&r.DocumentID, &r.DocumentTitle); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
