// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"context"
	"log/slog"

	"github.com/pdiddy/docsight/internal/cache"
	"github.com/pdiddy/docsight/pkg/types"
)

// Summarizer summarizes text through an optional remote composer and a
// cache keyed by the text alone.
type Summarizer struct {
	remote Composer
	cache  *cache.Cache[types.DocumentSummary]
	logger *slog.Logger
}

// NewSummarizer returns a Summarizer. A nil remote composes locally; a nil
// cache disables caching; a nil logger uses slog.Default().
func NewSummarizer(remote Composer, c *cache.Cache[types.DocumentSummary], logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{remote: remote, cache: c, logger: logger}
}

// Summarize returns the summary of text. The cache is keyed by text only,
// so a cached summary is returned even if kws differ from the first call;
// pass force to recompute. The result is always written back to the cache.
func (s *Summarizer) Summarize(ctx context.Context, text string, kws []types.Keyword, force bool) types.DocumentSummary {
	if s.cache != nil && !force {
		if sum, ok := s.cache.Get(ctx, text); ok {
			s.logger.Debug("summary cache hit")
			return sum
		}
	}

	sum := s.compose(ctx, text, kws)
	if s.cache != nil {
		s.cache.Put(ctx, text, sum)
	}
	return sum
}

func (s *Summarizer) compose(ctx context.Context, text string, kws []types.Keyword) types.DocumentSummary {
	if s.remote != nil {
		sum, err := s.remote.Compose(ctx, text, kws)
		if err == nil {
			return sum
		}
		s.logger.Debug("remote summary failed, composing locally", "error", err)
	}
	return Compose(text, kws)
}
