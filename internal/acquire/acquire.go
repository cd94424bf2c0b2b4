// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads remote documents (arXiv IDs, DOIs, and PDF
// URLs) so they can be converted and analyzed like local files.
package acquire

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/docsight/internal/httputil"
)

const defaultUserAgent = "docsight/0.1"

// Download is a fetched document on disk.
type Download struct {
	Path      string
	SourceURL string

	// Title comes from arXiv metadata when available.
	Title string

	// Cached is true when the file was already present and not fetched again.
	Cached bool
}

// Fetcher downloads documents into Dir.
type Fetcher struct {
	Client    *http.Client
	Dir       string
	UserAgent string

	// MaxRetries bounds retries on HTTP 429. Zero uses the httputil default.
	MaxRetries int

	Logger *slog.Logger
}

// NewFetcher returns a Fetcher writing into dir with the given timeout.
func NewFetcher(dir string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		Dir:       dir,
		UserAgent: defaultUserAgent,
	}
}

func (f *Fetcher) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}

// Fetch downloads the document named by raw into <Dir>/<slug>.pdf. A file
// that already exists is reused.
func (f *Fetcher) Fetch(ctx context.Context, raw string) (Download, error) {
	id, ok := Parse(raw)
	if !ok {
		return Download{}, fmt.Errorf("unrecognized identifier format: %q", raw)
	}

	d := Download{
		Path:      filepath.Join(f.Dir, id.Slug()+".pdf"),
		SourceURL: id.PDFURL(),
	}
	if id.Kind == KindArxiv {
		title, err := f.arxivTitle(ctx, id.Value)
		if err != nil {
			f.logger().Debug("arXiv metadata unavailable", "id", id.Value, "error", err)
		}
		d.Title = title
	}

	if _, err := os.Stat(d.Path); err == nil {
		d.Cached = true
		return d, nil
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return Download{}, fmt.Errorf("creating directory %s: %w", f.Dir, err)
	}
	if err := f.download(ctx, d.SourceURL, d.Path); err != nil {
		return Download{}, fmt.Errorf("downloading %s: %w", raw, err)
	}
	return d, nil
}

// FetchAll downloads every identifier, printing per-item status to w.
// Failures are reported and skipped.
func (f *Fetcher) FetchAll(ctx context.Context, ids []string, w io.Writer) ([]Download, int) {
	var (
		downloads []Download
		failed    int
	)
	for _, raw := range ids {
		d, err := f.Fetch(ctx, raw)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", raw, err)
			failed++
			continue
		}
		if d.Cached {
			fmt.Fprintf(w, "cached:  %s\n", filepath.Base(d.Path))
		} else {
			fmt.Fprintf(w, "fetched: %s\n", filepath.Base(d.Path))
		}
		downloads = append(downloads, d)
	}
	return downloads, failed
}

func (f *Fetcher) get(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	ua := f.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", accept)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, f.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return resp, nil
}

// download writes url to dest through a temporary file so a failed
// transfer never leaves a partial PDF behind.
func (f *Fetcher) download(ctx context.Context, url, dest string) error {
	resp, err := f.get(ctx, url, "application/pdf")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	_, copyErr := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(tmp.Name())
		if copyErr != nil {
			return fmt.Errorf("writing download: %w", copyErr)
		}
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

type arxivFeed struct {
	Entries []struct {
		Title string `xml:"title"`
	} `xml:"entry"`
}

// arxivTitle looks up the paper title in the arXiv Atom API.
func (f *Fetcher) arxivTitle(ctx context.Context, id string) (string, error) {
	resp, err := f.get(ctx, arxivAPIBase+"?id_list="+id, "application/atom+xml")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return "", fmt.Errorf("parsing arXiv response: %w", err)
	}
	if len(feed.Entries) == 0 {
		return "", fmt.Errorf("no entries found for arXiv ID %s", id)
	}
	return strings.Join(strings.Fields(feed.Entries[0].Title), " "), nil
}
