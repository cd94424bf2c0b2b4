// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentiment

import (
	"context"
	"log/slog"

	"github.com/pdiddy/docsight/internal/cache"
	"github.com/pdiddy/docsight/pkg/types"
)

// Analyzer scores text through an optional remote scorer and a cache.
type Analyzer struct {
	remote Scorer
	cache  *cache.Cache[types.SentimentResult]
	logger *slog.Logger
}

// NewAnalyzer returns an Analyzer. A nil remote scores locally; a nil cache
// disables caching; a nil logger uses slog.Default().
func NewAnalyzer(remote Scorer, c *cache.Cache[types.SentimentResult], logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{remote: remote, cache: c, logger: logger}
}

// Analyze returns the sentiment of text. A cached result younger than the
// cache TTL is returned unless force is set; either way a freshly computed
// result is written back to the cache.
func (a *Analyzer) Analyze(ctx context.Context, text string, force bool) types.SentimentResult {
	if a.cache != nil && !force {
		if r, ok := a.cache.Get(ctx, text); ok {
			a.logger.Debug("sentiment cache hit")
			return r
		}
	}

	result := a.score(ctx, text)
	if a.cache != nil {
		a.cache.Put(ctx, text, result)
	}
	return result
}

func (a *Analyzer) score(ctx context.Context, text string) types.SentimentResult {
	if a.remote != nil {
		r, err := a.remote.Score(ctx, text)
		if err == nil {
			return r
		}
		a.logger.Debug("remote sentiment failed, scoring locally", "error", err)
	}
	return Score(text)
}
