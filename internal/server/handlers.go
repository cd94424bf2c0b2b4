// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/docsight/internal/analyze"
	"github.com/pdiddy/docsight/internal/convert"
	"github.com/pdiddy/docsight/internal/store"
	"github.com/pdiddy/docsight/pkg/types"
)

// textRequest is the body of the analysis endpoints.
type textRequest struct {
	Text            string          `json:"text"`
	Title           string          `json:"title,omitempty"`
	Keywords        []types.Keyword `json:"keywords,omitempty"`
	ForceRegenerate bool            `json:"forceRegenerate,omitempty"`
}

var errBadRequest = errors.New("bad request")

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("writing response failed", "status", code, "error", err)
	}
}

// writeError maps err to a status code and writes {"error": ...}.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, analyze.ErrNoText):
		code = http.StatusBadRequest
		err = analyze.ErrNoText
	case errors.Is(err, errBadRequest):
		code = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		code = http.StatusNotFound
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, code, map[string]string{"error": err.Error()})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (textRequest, error) {
	var req textRequest
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return req, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"cache":  s.analyzer.CacheStats(),
	})
}

func (s *Server) handleDetectKeywords(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kws, err := s.analyzer.DetectKeywords(req.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, kws)
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kws, err := s.analyzer.AnalyzeSemanticFingerprintKeywords(r.Context(), req.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, kws)
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.analyzer.AnalyzeSentiment(r.Context(), req.Text, req.ForceRegenerate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.analyzer.SummarizeDocument(r.Context(), req.Text, req.Keywords, req.ForceRegenerate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleConceptMap(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.analyzer.BuildConceptMap(r.Context(), req.Text, req.Keywords)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// handleCreateDocument accepts either a multipart upload in the "file"
// field or a JSON {title, text} body, analyzes it, and stores the result.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	src, err := s.readDocument(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	analysis, err := s.analyzer.Analyze(r.Context(), src.Document, src.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.library.Save(r.Context(), analysis); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, analysis)
}

func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (convert.Source, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		req, err := s.decode(w, r)
		if err != nil {
			return convert.Source{}, err
		}
		title := req.Title
		if title == "" {
			title = "Untitled document"
		}
		return convert.Source{Document: types.Document{Title: title}, Text: req.Text}, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return convert.Source{}, fmt.Errorf("%w: invalid upload: %v", errBadRequest, err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return convert.Source{}, fmt.Errorf("%w: missing file field: %v", errBadRequest, err)
	}
	defer file.Close()

	src, err := convert.ReadFrom(s.converter, header.Filename, file)
	if err != nil {
		return convert.Source{}, err
	}
	if title := r.FormValue("title"); title != "" {
		src.Document.Title = title
	}
	return src, nil
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.library.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	a, err := s.library.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.library.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := store.QueryOptions{
		Query:      q.Get("q"),
		DocumentID: q.Get("document"),
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			s.writeError(w, r, fmt.Errorf("%w: invalid limit %q", errBadRequest, limit))
			return
		}
		opts.MaxResults = n
	}
	if opts.IsEmpty() {
		s.writeError(w, r, fmt.Errorf("%w: search needs q or document", errBadRequest))
		return
	}

	results, err := s.library.Search(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

// handleExport streams the whole library as JSON, or YAML with
// ?format=yaml.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	switch format := r.URL.Query().Get("format"); format {
	case "", store.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
		if err := s.library.ExportJSON(r.Context(), w); err != nil {
			s.logger.Error("export failed", "error", err)
		}
	case store.FormatYAML:
		w.Header().Set("Content-Type", "application/yaml")
		if err := s.library.ExportYAML(r.Context(), w); err != nil {
			s.logger.Error("export failed", "error", err)
		}
	default:
		s.writeError(w, r, fmt.Errorf("%w: unsupported format %q", errBadRequest, format))
	}
}
