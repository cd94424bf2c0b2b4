// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docsight/internal/analyze"
	"github.com/pdiddy/docsight/internal/convert"
	"github.com/pdiddy/docsight/internal/store"
	"github.com/pdiddy/docsight/pkg/types"
)

const sampleText = `Abstract
This study presents a neural network approach to image classification. The neural network
uses a CNN backbone. Our machine learning model improves accuracy on the benchmark.

Methodology
We trained the neural network with gradient descent. Cross-validation was used to select
hyperparameters. The results are robust and efficient.`

type fakeConverter struct {
	text string
	err  error
}

func (f fakeConverter) Convert(string) (convert.Result, error) {
	return convert.Result{Text: f.text, Pages: 2}, f.err
}

func newTestServer(t *testing.T, conv convert.Converter) *httptest.Server {
	t.Helper()
	library, err := store.Open(types.LibraryConfig{Dir: filepath.Join(t.TempDir(), "library"), MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { library.Close() })

	s := New(analyze.New(analyze.Options{}), library, conv, types.ServerConfig{}, nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, fakeConverter{})
	resp := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "cache")
}

func TestEmptyTextReturnsBadRequest(t *testing.T) {
	ts := newTestServer(t, fakeConverter{})

	for _, path := range []string{"/keywords/detect", "/keywords", "/sentiment", "/summary", "/conceptmap", "/documents"} {
		t.Run(path, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/v1"+path, map[string]string{"text": "  "})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decodeBody[map[string]string](t, resp)
			assert.Equal(t, "no text provided", body["error"])
		})
	}
}

func TestInvalidJSON(t *testing.T) {
	ts := newTestServer(t, fakeConverter{})
	resp, err := http.Post(ts.URL+"/api/v1/sentiment", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestKeywordEndpoints(t *testing.T) {
	ts := newTestServer(t, fakeConverter{})

	resp := postJSON(t, ts.URL+"/api/v1/keywords/detect", map[string]string{"text": sampleText})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detected := decodeBody[[]types.Keyword](t, resp)
	require.NotEmpty(t, detected)
	assert.LessOrEqual(t, len(detected), 50)
	for _, kw := range detected {
		assert.Empty(t, kw.Definition)
	}

	resp = postJSON(t, ts.URL+"/api/v1/keywords", map[string]string{"text": sampleText})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defined := decodeBody[[]types.Keyword](t, resp)
	require.NotEmpty(t, defined)
	assert.LessOrEqual(t, len(defined), 20)
	for _, kw := range defined {
		assert.NotEmpty(t, kw.Definition, kw.Word)
	}
}

func TestSentimentAndSummary(t *testing.T) {
	ts := newTestServer(t, fakeConverter{})

	resp := postJSON(t, ts.URL+"/api/v1/sentiment", map[string]any{"text": sampleText, "forceRegenerate": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sent := decodeBody[types.SentimentResult](t, resp)
	assert.GreaterOrEqual(t, sent.SentimentScore, -1.0)
	assert.LessOrEqual(t, sent.SentimentScore, 1.0)

	resp = postJSON(t, ts.URL+"/api/v1/summary", map[string]any{
		"text":     sampleText,
		"keywords": []types.Keyword{{Word: "neural network"}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sum := decodeBody[types.DocumentSummary](t, resp)
	assert.NotEmpty(t, sum.MainTopic)
	assert.Contains(t, sum.ImportantConcepts, "neural network")
}

func TestDocumentLifecycle(t *testing.T) {
	ts := newTestServer(t, fakeConverter{})

	resp := postJSON(t, ts.URL+"/api/v1/documents", map[string]string{"title": "Vision paper", "text": sampleText})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[types.DocumentAnalysis](t, resp)
	id := created.Document.ID
	require.NotEmpty(t, id)
	assert.Equal(t, "Vision paper", created.Document.Title)

	resp = get(t, ts.URL+"/api/v1/documents")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	docs := decodeBody[[]types.Document](t, resp)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0].ID)

	resp = get(t, ts.URL+"/api/v1/documents/"+id)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[types.DocumentAnalysis](t, resp)
	assert.Equal(t, len(created.Keywords), len(got.Keywords))

	resp = get(t, ts.URL+"/api/v1/search?q="+url.QueryEscape(created.Keywords[0].Word))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	results := decodeBody[[]store.SearchResult](t, resp)
	require.NotEmpty(t, results)
	assert.Equal(t, id, results[0].DocumentID)

	resp = get(t, ts.URL+"/api/v1/export?format=yaml")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/yaml", resp.Header.Get("Content-Type"))

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/documents/"+id, nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	resp = get(t, ts.URL+"/api/v1/documents/"+id)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploadDocument(t *testing.T) {
	ts := newTestServer(t, fakeConverter{text: sampleText})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "vision.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/api/v1/documents", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody[types.DocumentAnalysis](t, resp)
	assert.Equal(t, "vision.pdf", created.Document.Source)
	assert.Equal(t, 2, created.Document.PageCount)
	assert.NotEmpty(t, created.Keywords)
}

func TestUploadFailedExtractionStillAnalyzes(t *testing.T) {
	ts := newTestServer(t, fakeConverter{err: errors.New("broken xref")})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "broken.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not a pdf"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/api/v1/documents", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestUploadMissingFile(t *testing.T) {
	ts := newTestServer(t, fakeConverter{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "nothing"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/api/v1/documents", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchValidation(t *testing.T) {
	ts := newTestServer(t, fakeConverter{})

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing query", "", http.StatusBadRequest},
		{"bad limit", "?q=cnn&limit=x", http.StatusBadRequest},
		{"no results", "?q=cnn", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, ts.URL+"/api/v1/search"+tt.query)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	ts := newTestServer(t, fakeConverter{})
	resp := get(t, ts.URL+"/api/v1/export?format=csv")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	var logs bytes.Buffer
	s := &Server{logger: slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	rec := httptest.NewRecorder()
	s.writeJSON(rec, http.StatusOK, map[string]float64{"score": math.Inf(1)})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, logs.String(), "writing response failed")
	assert.Contains(t, logs.String(), "unsupported value")
}
