package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docsight/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.LibraryConfig{Dir: filepath.Join(t.TempDir(), "library"), MaxResults: 20})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var base = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

func sampleAnalysis(id, title string, created time.Time, words ...string) types.DocumentAnalysis {
	a := types.DocumentAnalysis{
		Document: types.Document{
			ID:        id,
			Title:     title,
			Source:    title + ".pdf",
			PageCount: 3,
			CreatedAt: created,
		},
		Sentiment: &types.SentimentResult{
			OverallSentiment: types.SentimentPositive,
			SentimentScore:   0.4,
			Confidence:       80,
			KeyIndicators:    []string{"robust"},
		},
		Summary: &types.DocumentSummary{
			MainTopic:   "Neural networks",
			KeyFindings: []string{"One.", "Two.", "Three."},
			Complexity:  types.ComplexityIntermediate,
		},
		ConceptMap: &types.ConceptMap{
			Nodes: []types.ConceptNode{{ID: "a", Label: "A", Weight: 1}},
			Edges: []types.ConceptEdge{},
		},
		AnalyzedAt: created.Add(time.Minute),
	}
	for i, w := range words {
		a.Keywords = append(a.Keywords, types.Keyword{
			Word:       w,
			Definition: w + " is a term in " + title + ".",
			Context:    "... " + w + " ...",
			Score:      float64(len(words) - i),
		})
	}
	return a
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := testSetup(t)

	want := sampleAnalysis("abc123def456", "paper", base, "CNN", "gradient descent")
	want.Keywords[0].IsFromExternalSource = true
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "abc123def456")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	wantJSON, _ := json.Marshal(want)
	gotJSON, _ := json.Marshal(got)
	if !bytes.Equal(wantJSON, gotJSON) {
		t.Errorf("round trip mismatch:\n got %s\nwant %s", gotJSON, wantJSON)
	}
}

func TestSaveReplacesKeywords(t *testing.T) {
	ctx := context.Background()
	s := testSetup(t)

	if err := s.Save(ctx, sampleAnalysis("doc1", "paper", base, "alpha", "beta", "gamma")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, sampleAnalysis("doc1", "paper v2", base, "delta")); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "doc1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Document.Title != "paper v2" {
		t.Errorf("title = %q, want %q", got.Document.Title, "paper v2")
	}
	if len(got.Keywords) != 1 || got.Keywords[0].Word != "delta" {
		t.Errorf("keywords = %+v, want only delta", got.Keywords)
	}
}

func TestSaveRequiresID(t *testing.T) {
	s := testSetup(t)
	if err := s.Save(context.Background(), types.DocumentAnalysis{}); err == nil {
		t.Fatal("expected error for empty document id")
	}
}

func TestGetNotFound(t *testing.T) {
	s := testSetup(t)
	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetWithoutOptionalResults(t *testing.T) {
	ctx := context.Background()
	s := testSetup(t)

	a := types.DocumentAnalysis{
		Document:   types.Document{ID: "bare", Title: "bare", CreatedAt: base},
		AnalyzedAt: base,
	}
	if err := s.Save(ctx, a); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "bare")
	if err != nil {
		t.Fatal(err)
	}
	if got.Sentiment != nil || got.Summary != nil || got.ConceptMap != nil {
		t.Errorf("expected nil optional results, got %+v", got)
	}
	if len(got.Keywords) != 0 {
		t.Errorf("keywords = %+v, want none", got.Keywords)
	}
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := testSetup(t)

	for i, id := range []string{"old", "mid", "new"} {
		if err := s.Save(ctx, sampleAnalysis(id, id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	docs, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	if len(ids) != 3 || ids[0] != "new" || ids[1] != "mid" || ids[2] != "old" {
		t.Errorf("ids = %v, want [new mid old]", ids)
	}
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := testSetup(t)

	if err := s.Save(ctx, sampleAnalysis("doc1", "paper", base, "alpha", "beta")); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "doc1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var n int
	if err := s.db.QueryRow(`SELECT count(*) FROM keywords`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("keywords left after delete: %d", n)
	}
	if err := s.db.QueryRow(`SELECT count(*) FROM analyses`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("analyses left after delete: %d", n)
	}

	if err := s.Delete(ctx, "doc1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	s := testSetup(t)

	if err := s.Save(ctx, sampleAnalysis("doc1", "vision", base, "CNN", "attention", "pooling")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, sampleAnalysis("doc2", "language", base, "self-attention", "attention", "100%_done")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		opts      QueryOptions
		wantWords []string
		wantDocs  []string
	}{
		{
			name:      "exact match ranks first",
			opts:      QueryOptions{Query: "ATTENTION"},
			wantWords: []string{"attention", "attention", "self-attention"},
			wantDocs:  []string{"doc1", "doc2", "doc2"},
		},
		{
			name:      "definition matches",
			opts:      QueryOptions{Query: "term in vision"},
			wantWords: []string{"CNN", "attention", "pooling"},
		},
		{
			name:      "document filter",
			opts:      QueryOptions{Query: "attention", DocumentID: "doc1"},
			wantWords: []string{"attention"},
		},
		{
			name:      "wildcards are literal",
			opts:      QueryOptions{Query: "%_"},
			wantWords: []string{"100%_done"},
		},
		{
			name:      "max results",
			opts:      QueryOptions{Query: "attention", MaxResults: 1},
			wantWords: []string{"attention"},
		},
		{
			name: "no match",
			opts: QueryOptions{Query: "transformer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.Search(ctx, tt.opts)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(results) != len(tt.wantWords) {
				t.Fatalf("got %d results, want %d: %+v", len(results), len(tt.wantWords), results)
			}
			for i, r := range results {
				if r.Word != tt.wantWords[i] {
					t.Errorf("result %d word = %q, want %q", i, r.Word, tt.wantWords[i])
				}
				if tt.wantDocs != nil && r.DocumentID != tt.wantDocs[i] {
					t.Errorf("result %d document = %q, want %q", i, r.DocumentID, tt.wantDocs[i])
				}
			}
		})
	}
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	if !(QueryOptions{MaxResults: 5}).IsEmpty() {
		t.Error("options without query or filter should be empty")
	}
	if (QueryOptions{DocumentID: "doc1"}).IsEmpty() {
		t.Error("document filter is not empty")
	}
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	s := testSetup(t)

	if err := s.Save(ctx, sampleAnalysis("doc1", "paper", base, "alpha")); err != nil {
		t.Fatal(err)
	}

	path, err := s.WriteExport(ctx, FormatYAML)
	if err != nil {
		t.Fatalf("WriteExport yaml: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML []types.DocumentAnalysis
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatalf("parsing export.yaml: %v", err)
	}
	if len(fromYAML) != 1 || fromYAML[0].Document.ID != "doc1" || fromYAML[0].Keywords[0].Word != "alpha" {
		t.Errorf("yaml export = %+v", fromYAML)
	}

	var buf bytes.Buffer
	if err := s.ExportJSON(ctx, &buf); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	var fromJSON []types.DocumentAnalysis
	if err := json.Unmarshal(buf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("parsing JSON export: %v", err)
	}
	if len(fromJSON) != 1 || fromJSON[0].Summary.MainTopic != "Neural networks" {
		t.Errorf("json export = %+v", fromJSON)
	}

	if _, err := s.WriteExport(ctx, "csv"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
