// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns uploaded files into RawText for analysis. PDFs go
// through a Converter; any other file is read as plain text.
package convert

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docsight/pkg/types"
)

// Result is the text extracted from a file.
type Result struct {
	Text  string
	Pages int
}

// Converter extracts plain text from a PDF file.
type Converter interface {
	Convert(pdfPath string) (Result, error)
}

// Source is a document ready for analysis.
type Source struct {
	Document types.Document
	Text     string
}

// FailedText is the placeholder analyzed in place of a PDF whose text could
// not be extracted.
func FailedText(name string) string {
	return fmt.Sprintf("Text extraction failed for %s.", name)
}

// ReadText loads the file at path. PDFs are converted with c; when that
// fails the placeholder FailedText is returned instead of an error so the
// document can still be stored. Other files are read verbatim.
func ReadText(c Converter, path string) (Source, error) {
	name := filepath.Base(path)
	src := Source{Document: types.Document{
		Title:  strings.TrimSuffix(name, filepath.Ext(name)),
		Source: path,
	}}

	if !isPDF(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return Source{}, fmt.Errorf("reading %s: %w", path, err)
		}
		src.Text = string(data)
		return src, nil
	}

	res, err := c.Convert(path)
	if err != nil || strings.TrimSpace(res.Text) == "" {
		slog.Warn("pdf text extraction failed", "file", name, "error", err)
		src.Text = FailedText(name)
		return src, nil
	}
	src.Text = res.Text
	src.Document.PageCount = res.Pages
	return src, nil
}

// ReadFrom stores r, named name, in a temporary file and loads it with
// ReadText. The returned document's Source is name.
func ReadFrom(c Converter, name string, r io.Reader) (Source, error) {
	tmp, err := os.CreateTemp("", "docsight-*"+filepath.Ext(name))
	if err != nil {
		return Source{}, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return Source{}, fmt.Errorf("saving %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return Source{}, fmt.Errorf("saving %s: %w", name, err)
	}

	src, err := ReadText(c, tmp.Name())
	if err != nil {
		return Source{}, err
	}
	base := filepath.Base(name)
	src.Document.Title = strings.TrimSuffix(base, filepath.Ext(base))
	src.Document.Source = name
	if src.Text == FailedText(filepath.Base(tmp.Name())) {
		src.Text = FailedText(base)
	}
	return src, nil
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// BatchResult holds the outcome of loading several files.
type BatchResult struct {
	Loaded int
	Failed int
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Loaded + r.Failed
}

// HasFailures reports whether any file could not be loaded.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ReadBatch loads every path, printing per-file status to w. Files that
// cannot be read are reported and skipped.
func ReadBatch(c Converter, paths []string, w io.Writer) ([]Source, BatchResult) {
	var (
		sources []Source
		result  BatchResult
	)
	for _, p := range paths {
		src, err := ReadText(c, p)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(p), err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "loaded:  %s\n", filepath.Base(p))
		sources = append(sources, src)
		result.Loaded++
	}
	return sources, result
}
