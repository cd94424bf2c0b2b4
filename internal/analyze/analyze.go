// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze is the entry point to the text-analysis pipeline. It
// wires the cleaner, fingerprint, keyword extractor, definition provider,
// sentiment analyzer, summarizer, and concept-map builder together and
// exposes the operations used by the CLI and the HTTP API.
//
// Every operation rejects empty text with ErrNoText before any stage runs.
// Remote NLP failures never surface: each stage falls back to its local
// implementation.
package analyze

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/docsight/internal/cache"
	"github.com/pdiddy/docsight/internal/clean"
	"github.com/pdiddy/docsight/internal/conceptmap"
	"github.com/pdiddy/docsight/internal/define"
	"github.com/pdiddy/docsight/internal/fingerprint"
	"github.com/pdiddy/docsight/internal/keywords"
	"github.com/pdiddy/docsight/internal/nlp"
	"github.com/pdiddy/docsight/internal/sentiment"
	"github.com/pdiddy/docsight/internal/summary"
	"github.com/pdiddy/docsight/pkg/types"
)

// ErrNoText is returned for empty or whitespace-only input.
var ErrNoText = errors.New("no text provided")

// definitionConcurrency bounds concurrent definition requests.
const definitionConcurrency = 4

// Options configures an Analyzer.
type Options struct {
	// Client is the remote NLP service. Nil runs everything locally.
	Client nlp.Completer

	// MaxContextTokens bounds document text sent to the service.
	MaxContextTokens int

	// Backends supplies cache storage. Nil uses unbounded memory.
	Backends *cache.Backends

	// TTL is the cache entry lifetime. Zero uses cache.DefaultTTL.
	TTL time.Duration

	// Clock drives cache expiry and analysis timestamps. Nil uses the
	// system clock.
	Clock cache.Clock

	Logger *slog.Logger
}

// Analyzer runs the pipeline. It is safe for concurrent use.
type Analyzer struct {
	definitions define.Provider
	sentiment   *sentiment.Analyzer
	summaries   *summary.Summarizer
	concepts    *conceptmap.Builder

	sentimentCache *cache.Cache[types.SentimentResult]
	summaryCache   *cache.Cache[types.DocumentSummary]

	backends *cache.Backends
	clock    cache.Clock
	logger   *slog.Logger
}

// New returns an Analyzer configured by opts.
func New(opts Options) *Analyzer {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = cache.SystemClock
	}

	newBackend := func() cache.Backend { return cache.NewMemory(0) }
	if opts.Backends != nil {
		newBackend = opts.Backends.New
	}
	cacheOpts := func(ns string) cache.Options {
		return cache.Options{Namespace: ns, TTL: opts.TTL, Clock: opts.Clock, Logger: opts.Logger}
	}

	a := &Analyzer{
		sentimentCache: cache.New[types.SentimentResult](newBackend(), cacheOpts("sentiment")),
		summaryCache:   cache.New[types.DocumentSummary](newBackend(), cacheOpts("summary")),
		backends:       opts.Backends,
		clock:          opts.Clock,
		logger:         opts.Logger,
	}

	var (
		definer  define.Provider
		scorer   sentiment.Scorer
		composer summary.Composer
		mapper   conceptmap.Mapper
	)
	if opts.Client != nil {
		definer = &define.Remote{Client: opts.Client}
		scorer = &sentiment.Remote{Client: opts.Client, MaxContextTokens: opts.MaxContextTokens}
		composer = &summary.Remote{Client: opts.Client, MaxContextTokens: opts.MaxContextTokens}
		mapper = &conceptmap.Remote{Client: opts.Client, MaxContextTokens: opts.MaxContextTokens}
	}
	a.definitions = define.NewProvider(definer, opts.Logger)
	a.sentiment = sentiment.NewAnalyzer(scorer, a.sentimentCache, opts.Logger)
	a.summaries = summary.NewSummarizer(composer, a.summaryCache, opts.Logger)
	a.concepts = conceptmap.NewBuilder(mapper, opts.Logger)
	return a
}

// Open builds an Analyzer from configuration. Without an API key the
// analyzer runs fully local. Close releases the cache connection.
func Open(ctx context.Context, cfg types.Config, logger *slog.Logger) (*Analyzer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := nlp.New(cfg.AI)
	switch {
	case errors.Is(err, nlp.ErrNotConfigured):
		logger.Debug("no API key configured, using local analysis only")
		client = nil
	case err != nil:
		return nil, err
	}

	backends, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	return New(Options{
		Client:           client,
		MaxContextTokens: cfg.AI.MaxContextTokens,
		Backends:         backends,
		TTL:              cfg.Cache.TTL,
		Logger:           logger,
	}), nil
}

// Close releases cache resources.
func (a *Analyzer) Close() error {
	if a.backends == nil {
		return nil
	}
	return a.backends.Close()
}

// CacheStats reports activity of the sentiment and summary caches.
func (a *Analyzer) CacheStats() map[string]cache.Stats {
	return map[string]cache.Stats{
		"sentiment": a.sentimentCache.Stats(),
		"summary":   a.summaryCache.Stats(),
	}
}

func checkText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrNoText
	}
	return nil
}

// DetectKeywords returns up to 50 keywords found locally, without
// definitions.
func (a *Analyzer) DetectKeywords(text string) ([]types.Keyword, error) {
	if err := checkText(text); err != nil {
		return nil, err
	}
	cleaned := clean.Clean(text)
	return toKeywords(keywords.Extract(cleaned, fingerprint.Build(cleaned), keywords.MaxDetected)), nil
}

// AnalyzeSemanticFingerprintKeywords returns up to 20 keywords ranked by
// the fingerprint strategies, each with a definition.
func (a *Analyzer) AnalyzeSemanticFingerprintKeywords(ctx context.Context, text string) ([]types.Keyword, error) {
	if err := checkText(text); err != nil {
		return nil, err
	}
	cleaned := clean.Clean(text)
	fp := fingerprint.Build(cleaned)
	kws := toKeywords(keywords.Extract(cleaned, fp, keywords.MaxKeywords))
	if err := a.define(ctx, cleaned, fp.Domains, kws); err != nil {
		return nil, err
	}
	return kws, nil
}

// AnalyzeSentiment returns the sentiment of text, from cache unless force.
func (a *Analyzer) AnalyzeSentiment(ctx context.Context, text string, force bool) (types.SentimentResult, error) {
	if err := checkText(text); err != nil {
		return types.SentimentResult{}, err
	}
	return a.sentiment.Analyze(ctx, text, force), nil
}

// SummarizeDocument returns the summary of text, from cache unless force.
// kws may be nil.
func (a *Analyzer) SummarizeDocument(ctx context.Context, text string, kws []types.Keyword, force bool) (types.DocumentSummary, error) {
	if err := checkText(text); err != nil {
		return types.DocumentSummary{}, err
	}
	return a.summaries.Summarize(ctx, text, kws, force), nil
}

// BuildConceptMap links the keywords of text. With nil kws the keywords are
// extracted first.
func (a *Analyzer) BuildConceptMap(ctx context.Context, text string, kws []types.Keyword) (types.ConceptMap, error) {
	if err := checkText(text); err != nil {
		return types.ConceptMap{}, err
	}
	cleaned := clean.Clean(text)
	if kws == nil {
		kws = toKeywords(keywords.Extract(cleaned, nil, keywords.MaxKeywords))
	}
	return a.concepts.Build(ctx, cleaned, kws), nil
}

// Analyze runs the whole pipeline on one document. Definitions, sentiment,
// summary, and concept map are computed concurrently once keywords are
// extracted. An empty doc.ID is set to DocumentID(text).
func (a *Analyzer) Analyze(ctx context.Context, doc types.Document, text string) (types.DocumentAnalysis, error) {
	if err := checkText(text); err != nil {
		return types.DocumentAnalysis{}, err
	}
	if doc.ID == "" {
		doc.ID = DocumentID(text)
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = a.clock.Now().UTC()
	}

	cleaned := clean.Clean(text)
	fp := fingerprint.Build(cleaned)
	kws := toKeywords(keywords.Extract(cleaned, fp, keywords.MaxKeywords))
	a.logger.Debug("keywords extracted", "document", doc.ID, "count", len(kws), "domains", fp.Domains)

	var (
		sent     types.SentimentResult
		sum      types.DocumentSummary
		concepts types.ConceptMap
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.define(gctx, cleaned, fp.Domains, kws)
	})
	g.Go(func() error {
		sent = a.sentiment.Analyze(gctx, text, false)
		return nil
	})
	g.Go(func() error {
		sum = a.summaries.Summarize(gctx, text, kws, false)
		return nil
	})
	g.Go(func() error {
		concepts = a.concepts.Build(gctx, cleaned, kws)
		return nil
	})
	if err := g.Wait(); err != nil {
		return types.DocumentAnalysis{}, fmt.Errorf("analyzing %s: %w", doc.ID, err)
	}

	return types.DocumentAnalysis{
		Document:   doc,
		Keywords:   kws,
		Sentiment:  &sent,
		Summary:    &sum,
		ConceptMap: &concepts,
		AnalyzedAt: a.clock.Now().UTC(),
	}, nil
}

// define fills in the definition of every keyword in place.
func (a *Analyzer) define(ctx context.Context, text string, domains []string, kws []types.Keyword) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(definitionConcurrency)
	for i := range kws {
		g.Go(func() error {
			def := define.Generate(gctx, a.definitions, define.Request{
				Word:    kws[i].Word,
				Text:    text,
				Domains: domains,
			})
			kws[i].Definition = def.Text
			kws[i].IsFromExternalSource = def.External
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func toKeywords(cands []types.CandidateKeyword) []types.Keyword {
	out := make([]types.Keyword, len(cands))
	for i, c := range cands {
		out[i] = types.Keyword{Word: c.Word, Context: c.Context, Score: c.Score}
	}
	return out
}

// DocumentID is the first 12 hex characters of the SHA-256 of text.
func DocumentID(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:12]
}
