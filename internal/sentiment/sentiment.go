// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sentiment scores the tone of a document.
//
// Score is the local lexicon scorer. Remote asks the NLP service and
// degrades to Score on any failure. Analyzer adds the content-hash cache in
// front of whichever scorer is configured.
package sentiment

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/pdiddy/docsight/pkg/types"
)

// Scorer produces a SentimentResult for text.
type Scorer interface {
	Score(ctx context.Context, text string) (types.SentimentResult, error)
}

// Thresholds of the local scorer.
const (
	labelThreshold = 0.1
	mixedThreshold = 0.05
	minConfidence  = 60
	maxConfidence  = 95
	maxIndicators  = 8
	maxSections    = 5
)

// Local is the lexicon scorer as a Scorer.
type Local struct{}

// Score implements Scorer. It never fails.
func (Local) Score(_ context.Context, text string) (types.SentimentResult, error) {
	return Score(text), nil
}

// tally counts lexicon hits over whitespace tokens.
type tally struct {
	tokens, positive, negative, neutral int
	indicators                          []string
}

func count(text string) tally {
	var t tally
	seen := make(map[string]bool)
	note := func(w string) {
		if !seen[w] && len(t.indicators) < maxIndicators {
			seen[w] = true
			t.indicators = append(t.indicators, w)
		}
	}

	for _, tok := range strings.Fields(strings.ToLower(text)) {
		t.tokens++
		if w, ok := containsAny(tok, positiveWords); ok {
			t.positive++
			note(w)
		}
		if w, ok := containsAny(tok, negativeWords); ok {
			t.negative++
			note(w)
		}
		if _, ok := containsAny(tok, neutralWords); ok {
			t.neutral++
		}
	}
	return t
}

func containsAny(token string, words []string) (string, bool) {
	for _, w := range words {
		if strings.Contains(token, w) {
			return w, true
		}
	}
	return "", false
}

// ratios returns the positive and negative shares of all tokens.
func (t tally) ratios() (pos, neg float64) {
	if t.tokens == 0 {
		return 0, 0
	}
	return float64(t.positive) / float64(t.tokens), float64(t.negative) / float64(t.tokens)
}

// score is (pos - neg) * 2 clamped to [-1, 1].
func (t tally) score() float64 {
	pos, neg := t.ratios()
	return clamp((pos-neg)*2, -1, 1)
}

// label classifies the tally. Positive and negative thresholds are checked
// first, so mixed only occurs inside the neutral band. Text without any
// lexicon hit has equal ratios and is therefore mixed.
func (t tally) label() types.Sentiment {
	pos, neg := t.ratios()
	s := t.score()
	switch {
	case s > labelThreshold:
		return types.SentimentPositive
	case s < -labelThreshold:
		return types.SentimentNegative
	case math.Abs(pos-neg) < mixedThreshold:
		return types.SentimentMixed
	default:
		return types.SentimentNeutral
	}
}

func (t tally) confidence() float64 {
	pos, neg := t.ratios()
	return clamp(math.Abs(pos-neg)*200+minConfidence, minConfidence, maxConfidence)
}

// Score rates text with the local lexicon.
func Score(text string) types.SentimentResult {
	t := count(text)
	label := t.label()
	result := types.SentimentResult{
		OverallSentiment:   label,
		SentimentScore:     t.score(),
		EmotionalTone:      emotionalTones[label],
		Confidence:         t.confidence(),
		KeyIndicators:      t.indicators,
		SectionBreakdown:   sections(text),
		AudiencePerception: audiencePerceptions[label],
	}
	result.Summary = fmt.Sprintf(
		"The document reads as %s overall (score %.2f), with %d positive and %d negative indicators across %d words.",
		label, result.SentimentScore, t.positive, t.negative, t.tokens)
	return result
}

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// sections scores up to the first five paragraphs on their own.
func sections(text string) []types.SectionSentiment {
	var out []types.SectionSentiment
	for _, p := range paragraphBreak.Split(text, -1) {
		if strings.TrimSpace(p) == "" {
			continue
		}
		t := count(p)
		out = append(out, types.SectionSentiment{
			Section:   fmt.Sprintf("Section %d", len(out)+1),
			Sentiment: t.label(),
			Score:     t.score(),
		})
		if len(out) == maxSections {
			break
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
