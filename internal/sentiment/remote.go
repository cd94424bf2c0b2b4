// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentiment

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/pdiddy/docsight/internal/nlp"
	"github.com/pdiddy/docsight/pkg/types"
)

const remoteInstructions = `You analyze the sentiment of academic and professional documents. Reply with a single JSON object and nothing else.`

var sentimentPromptTmpl = template.Must(template.New("sentiment").Parse(`Analyze the sentiment of the document below and return JSON with these fields:
- "overallSentiment": one of "positive", "negative", "neutral", "mixed"
- "sentimentScore": number from -1 (very negative) to 1 (very positive)
- "emotionalTone": a short phrase
- "confidence": number from 0 to 100
- "keyIndicators": up to 8 words or phrases that signal the sentiment
- "sectionBreakdown": list of {"section", "sentiment", "score"} for the main parts
- "audiencePerception": one sentence on how readers will likely react
- "summary": one or two sentences

Document:
{{.}}
`))

// errUnrecoverable is returned when a response holds neither JSON nor a
// recognizable sentiment label.
var errUnrecoverable = errors.New("sentiment response not understood")

// Remote scores text with the NLP service.
type Remote struct {
	Client nlp.Completer

	// MaxContextTokens bounds the document text sent. Zero sends everything.
	MaxContextTokens int
}

// Score implements Scorer.
func (r *Remote) Score(ctx context.Context, text string) (types.SentimentResult, error) {
	prompt, err := nlp.Render(sentimentPromptTmpl, nlp.Truncate(text, r.MaxContextTokens))
	if err != nil {
		return types.SentimentResult{}, err
	}
	raw, err := r.Client.Complete(ctx, nlp.Request{
		Instructions: remoteInstructions,
		Prompt:       prompt,
		JSON:         true,
	})
	if err != nil {
		return types.SentimentResult{}, fmt.Errorf("remote sentiment: %w", err)
	}
	return parseResult(raw)
}

// parseResult decodes a service answer, reconstructing a result from the
// raw text when it is not valid JSON.
func parseResult(raw string) (types.SentimentResult, error) {
	var result types.SentimentResult
	if err := nlp.ExtractJSON(raw, &result); err != nil {
		result, err = reconstruct(raw)
		if err != nil {
			return types.SentimentResult{}, err
		}
	}
	return normalize(result), nil
}

var (
	labelWord   = regexp.MustCompile(`(?i)\b(positive|negative|neutral|mixed)\b`)
	firstNumber = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

// reconstruct builds a result from free text: the first sentiment label it
// names and the first number as the score.
func reconstruct(raw string) (types.SentimentResult, error) {
	m := labelWord.FindString(raw)
	if m == "" {
		return types.SentimentResult{}, errUnrecoverable
	}
	result := types.SentimentResult{
		OverallSentiment: types.Sentiment(strings.ToLower(m)),
		Summary:          strings.TrimSpace(raw),
	}
	if n := firstNumber.FindString(raw); n != "" {
		result.SentimentScore, _ = strconv.ParseFloat(n, 64)
	}
	return result, nil
}

// normalize clamps numeric fields and fills anything the service left out.
func normalize(r types.SentimentResult) types.SentimentResult {
	r.SentimentScore = clamp(r.SentimentScore, -1, 1)
	r.Confidence = clamp(r.Confidence, 0, 100)
	if !r.OverallSentiment.Valid() {
		r.OverallSentiment = labelFor(r.SentimentScore)
	}
	if r.EmotionalTone == "" {
		r.EmotionalTone = emotionalTones[r.OverallSentiment]
	}
	if r.AudiencePerception == "" {
		r.AudiencePerception = audiencePerceptions[r.OverallSentiment]
	}
	for i := range r.SectionBreakdown {
		s := &r.SectionBreakdown[i]
		s.Score = clamp(s.Score, -1, 1)
		if !s.Sentiment.Valid() {
			s.Sentiment = labelFor(s.Score)
		}
	}
	return r
}

func labelFor(score float64) types.Sentiment {
	switch {
	case score > labelThreshold:
		return types.SentimentPositive
	case score < -labelThreshold:
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}
