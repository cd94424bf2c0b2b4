// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docsight/internal/cache"
	"github.com/pdiddy/docsight/internal/nlp"
	"github.com/pdiddy/docsight/pkg/types"
)

const paper = `Abstract
This study presents a neural network approach to image classification. The neural network
uses a CNN backbone and attention. Our machine learning model improves accuracy on the benchmark.

Introduction
Image classification is a core task in computer vision. Deep learning methods such as CNN models
dominate image classification benchmarks. A neural network learns features from training data.

Methodology
We trained the neural network with gradient descent on a labeled dataset. Cross-validation was used
to select hyperparameters. The algorithm was implemented in Python with GPU acceleration.

Results
The neural network achieved 94% accuracy. Precision and recall improved over the baseline algorithm.
The model is robust and efficient, although training remains computationally expensive.

Conclusion
The neural network approach is effective for image classification.

References
[1] Smith, J. Neural networks. 2020.`

func newLocal() *Analyzer {
	return New(Options{})
}

func TestEmptyTextIsRejected(t *testing.T) {
	ctx := context.Background()
	a := newLocal()

	for _, text := range []string{"", "   \n\t"} {
		_, err := a.DetectKeywords(text)
		assert.ErrorIs(t, err, ErrNoText)
		_, err = a.AnalyzeSemanticFingerprintKeywords(ctx, text)
		assert.ErrorIs(t, err, ErrNoText)
		_, err = a.AnalyzeSentiment(ctx, text, false)
		assert.ErrorIs(t, err, ErrNoText)
		_, err = a.SummarizeDocument(ctx, text, nil, false)
		assert.ErrorIs(t, err, ErrNoText)
		_, err = a.BuildConceptMap(ctx, text, nil)
		assert.ErrorIs(t, err, ErrNoText)
		_, err = a.Analyze(ctx, types.Document{}, text)
		assert.ErrorIs(t, err, ErrNoText)
	}
}

func assertKeywordInvariants(t *testing.T, kws []types.Keyword, limit int) {
	t.Helper()
	assert.LessOrEqual(t, len(kws), limit)
	seen := make(map[string]bool)
	for i, k := range kws {
		key := strings.ToLower(k.Word)
		assert.False(t, seen[key], "duplicate keyword %q", k.Word)
		seen[key] = true
		if i > 0 {
			assert.GreaterOrEqual(t, kws[i-1].Score, k.Score, "keywords sorted by score")
		}
	}
}

func TestDetectKeywords(t *testing.T) {
	kws, err := newLocal().DetectKeywords(paper)
	require.NoError(t, err)
	require.NotEmpty(t, kws)
	assertKeywordInvariants(t, kws, 50)
	for _, k := range kws {
		assert.Empty(t, k.Definition)
	}
}

func TestDetectKeywordsReferencesOnly(t *testing.T) {
	kws, err := newLocal().DetectKeywords("References: [1] Smith et al.")
	require.NoError(t, err)
	assert.Empty(t, kws)
}

func TestAnalyzeSemanticFingerprintKeywordsLocal(t *testing.T) {
	kws, err := newLocal().AnalyzeSemanticFingerprintKeywords(context.Background(), paper)
	require.NoError(t, err)
	require.NotEmpty(t, kws)
	assertKeywordInvariants(t, kws, 20)
	for _, k := range kws {
		assert.NotEmpty(t, k.Definition, k.Word)
		assert.False(t, k.IsFromExternalSource)
	}
}

func TestAnalyzeSemanticFingerprintKeywordsRemote(t *testing.T) {
	var calls atomic.Int32
	client := nlp.CompleterFunc(func(_ context.Context, req nlp.Request) (string, error) {
		calls.Add(1)
		if strings.Contains(req.Prompt, `"CNN"`) {
			return "", errors.New("rate limited")
		}
		return "A remote definition.", nil
	})
	a := New(Options{Client: client})

	kws, err := a.AnalyzeSemanticFingerprintKeywords(context.Background(), paper)
	require.NoError(t, err)
	assert.Equal(t, len(kws), int(calls.Load()))
	for _, k := range kws {
		if k.Word == "CNN" {
			assert.False(t, k.IsFromExternalSource)
			assert.NotEqual(t, "A remote definition.", k.Definition)
			continue
		}
		assert.True(t, k.IsFromExternalSource, k.Word)
		assert.Equal(t, "A remote definition.", k.Definition)
	}
}

func TestAnalyzeSentimentIsCached(t *testing.T) {
	ctx := context.Background()
	a := newLocal()

	first, err := a.AnalyzeSentiment(ctx, "excellent outstanding breakthrough success", false)
	require.NoError(t, err)
	assert.Equal(t, types.SentimentPositive, first.OverallSentiment)
	assert.Greater(t, first.SentimentScore, 0.1)

	second, err := a.AnalyzeSentiment(ctx, "excellent outstanding breakthrough success", false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, cache.Stats{Hits: 1, Misses: 1, Writes: 1}, a.CacheStats()["sentiment"])
}

func TestSummarizeDocumentCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	a := New(Options{Clock: cache.ClockFunc(func() time.Time { return now })})

	_, err := a.SummarizeDocument(ctx, paper, nil, false)
	require.NoError(t, err)
	_, err = a.SummarizeDocument(ctx, paper, nil, false)
	require.NoError(t, err)

	now = now.Add(24 * time.Hour)
	_, err = a.SummarizeDocument(ctx, paper, nil, false)
	require.NoError(t, err)

	assert.Equal(t, cache.Stats{Hits: 1, Misses: 2, Writes: 2}, a.CacheStats()["summary"])
}

func TestAnalyze(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	a := New(Options{Clock: cache.ClockFunc(func() time.Time { return now })})

	res, err := a.Analyze(context.Background(), types.Document{Title: "Paper"}, paper)
	require.NoError(t, err)

	assert.Equal(t, DocumentID(paper), res.Document.ID)
	assert.Len(t, res.Document.ID, 12)
	assert.Equal(t, now, res.Document.CreatedAt)
	assert.Equal(t, now, res.AnalyzedAt)

	assertKeywordInvariants(t, res.Keywords, 20)
	require.NotNil(t, res.Sentiment)
	require.NotNil(t, res.Summary)
	require.NotNil(t, res.ConceptMap)
	assert.Equal(t, "Research Paper", res.Summary.DocumentType)
	assert.NotEmpty(t, res.ConceptMap.Nodes)
	for _, k := range res.Keywords {
		assert.NotEmpty(t, k.Definition)
	}
}

func TestOpenWithoutAPIKeyIsLocal(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.AI.APIKey = ""

	a, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	kws, err := a.AnalyzeSemanticFingerprintKeywords(context.Background(), paper)
	require.NoError(t, err)
	for _, k := range kws {
		assert.False(t, k.IsFromExternalSource)
	}
}

func TestOpenRejectsUnknownProvider(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.AI.APIKey = "key"
	cfg.AI.Provider = "carrier-pigeon"

	_, err := Open(context.Background(), cfg, nil)
	assert.Error(t, err)
}
