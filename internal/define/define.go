// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package define produces short definitions for extracted keywords.
//
// A Provider either asks the remote NLP service (Remote) or applies local
// heuristics to the document text (Local). Fallback chains the two so a
// remote failure degrades to the local answer. Generate is the entry point
// used by the pipeline: it never returns an error or an empty definition.
package define

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// Request asks for the definition of one word as used in a document.
type Request struct {
	Word string

	// Text is the cleaned document text.
	Text string

	// Domains are the research domains detected in the document.
	Domains []string
}

// Definition is a provider's answer.
type Definition struct {
	Text string

	// External reports whether the definition came from the remote service.
	External bool
}

// Provider defines words.
type Provider interface {
	Define(ctx context.Context, req Request) (Definition, error)
}

// ErrNoDefinition is returned by a provider that has nothing to offer.
var ErrNoDefinition = errors.New("no definition available")

// Fallback tries Primary and uses Secondary when Primary fails or answers
// with an empty definition.
type Fallback struct {
	Primary   Provider
	Secondary Provider
	Logger    *slog.Logger
}

// Define implements Provider.
func (f *Fallback) Define(ctx context.Context, req Request) (Definition, error) {
	def, err := f.Primary.Define(ctx, req)
	if err == nil && strings.TrimSpace(def.Text) != "" {
		return def, nil
	}
	if err == nil {
		err = ErrNoDefinition
	}
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("definition fallback", "word", req.Word, "error", err)
	return f.Secondary.Define(ctx, req)
}

// NewProvider returns the provider for a pipeline run: Remote with a Local
// fallback when remote is non-nil, otherwise Local alone.
func NewProvider(remote Provider, logger *slog.Logger) Provider {
	if remote == nil {
		return Local{}
	}
	return &Fallback{Primary: remote, Secondary: Local{}, Logger: logger}
}

// Generate returns a definition for req from p. Any error or empty answer
// yields the local heuristic definition, so the result is never empty.
func Generate(ctx context.Context, p Provider, req Request) Definition {
	if p != nil {
		def, err := p.Define(ctx, req)
		if err == nil && strings.TrimSpace(def.Text) != "" {
			def.Text = strings.TrimSpace(def.Text)
			return def
		}
	}
	def, _ := Local{}.Define(ctx, req)
	return def
}
