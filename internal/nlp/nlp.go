// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package nlp talks to the remote NLP service that produces definitions,
// sentiment, summaries, and concept maps. Two backends are supported: any
// OpenAI-compatible chat completion endpoint and the Anthropic Messages API.
// Both retry HTTP 429 responses through httputil.
//
// Callers treat every error from this package as a signal to fall back to
// local analysis; nothing here is fatal to a pipeline run.
package nlp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"text/template"

	"github.com/pdiddy/docsight/internal/httputil"
	"github.com/pdiddy/docsight/pkg/types"
)

// ErrNotConfigured is returned by New when no API key is available.
var ErrNotConfigured = errors.New("nlp service not configured")

// ErrEmptyResponse is returned when the service answers with no text.
var ErrEmptyResponse = errors.New("nlp service returned empty content")

// Request is one completion call.
type Request struct {
	// Instructions is the system prompt.
	Instructions string

	// Prompt is the user content.
	Prompt string

	// JSON asks the service for a single JSON object.
	JSON bool

	// MaxTokens bounds the answer length. Zero uses the backend default.
	MaxTokens int
}

// Completer sends a request to the NLP service and returns the answer text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// New returns the Completer selected by cfg. It returns ErrNotConfigured
// when cfg has no API key.
func New(cfg types.AIConfig) (Completer, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	var c Completer
	switch cfg.Provider {
	case types.ProviderOpenAI, "":
		client := &http.Client{Transport: &httputil.RetryTransport{MaxRetries: cfg.MaxRetries}}
		c = NewOpenAIBackend(cfg, client)
	case types.ProviderAnthropic:
		c = &ClaudeBackend{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			MaxRetries: cfg.MaxRetries,
		}
	default:
		return nil, fmt.Errorf("unsupported ai provider %q: use openai or anthropic", cfg.Provider)
	}

	if cfg.Timeout > 0 {
		c = timeoutCompleter{next: c, timeout: cfg.Timeout}
	}
	return c, nil
}

// Render executes a prompt template with data.
func Render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
