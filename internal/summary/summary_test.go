// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docsight/internal/cache"
	"github.com/pdiddy/docsight/internal/nlp"
	"github.com/pdiddy/docsight/pkg/types"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		words, keywords int
		want            types.Complexity
	}{
		{450, 0, types.ComplexityBeginner},
		{450, 20, types.ComplexityBeginner},
		{499, 0, types.ComplexityBeginner},
		{500, 0, types.ComplexityIntermediate},
		{2000, 10, types.ComplexityIntermediate},
		{2001, 0, types.ComplexityAdvanced},
		{2500, 0, types.ComplexityAdvanced},
		{1000, 11, types.ComplexityAdvanced},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.words, tt.keywords), "words=%d keywords=%d", tt.words, tt.keywords)
	}
}

func TestComposeComplexityByLength(t *testing.T) {
	short := Compose(strings.Repeat("data ", 450), nil)
	assert.Equal(t, types.ComplexityBeginner, short.Complexity)
	assert.Equal(t, "3 min read", short.ReadingTime)

	long := Compose(strings.Repeat("data ", 2500), nil)
	assert.Equal(t, types.ComplexityAdvanced, long.Complexity)
	assert.Equal(t, "13 min read", long.ReadingTime)
}

func TestCount(t *testing.T) {
	assert.Equal(t, Stats{Words: 4, Sentences: 4, Paragraphs: 2}, Count("One. Two! Three?\n\nFour"))
	assert.Equal(t, Stats{}, Count("   "))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Abstract ... our methodology was ...", "Research Paper"},
		{"Introduction. Body. Conclusion.", "Academic Article"},
		{"Step 1 of the procedure", "Technical Manual"},
		{"An analysis of sales data", "Analytical Report"},
		{"A letter to a friend", "Document"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.text), tt.text)
	}
}

func TestKeyFindingsRanksByConcepts(t *testing.T) {
	sentences := []string{
		"the gradient shrinks in deep stacks",
		"weather was pleasant during the visit",
		"a tokenizer splits words into pieces",
		"lunch was served at noon",
		"every benchmark reports accuracy",
	}
	got := keyFindings(sentences, []string{"gradient", "tokenizer", "benchmark"})
	assert.ElementsMatch(t, []string{sentences[0], sentences[2], sentences[4]}, got)

	assert.Equal(t, sentences[:3], keyFindings(sentences, nil))
}

func TestComposeFields(t *testing.T) {
	text := "Abstract\nWe propose a transformer approach for translation.\n\n" +
		"Methodology\nThe transformer uses attention. Attention relates every token.\n\n" +
		"Results\nThe transformer improves translation quality."
	kws := []types.Keyword{{Word: "transformer"}, {Word: "attention"}, {Word: "translation"}}

	s := Compose(text, kws)
	assert.Equal(t, "transformer", s.MainTopic)
	assert.Equal(t, "Research Paper", s.DocumentType)
	assert.Equal(t, []string{"transformer", "attention", "translation"}, s.ImportantConcepts)
	assert.Len(t, s.KeyFindings, 3)
	assert.Contains(t, s.Methodology, "We propose a transformer approach")
	assert.Len(t, s.PracticalApplications, 3)
	assert.Equal(t, types.ComplexityBeginner, s.Complexity)
	assert.NotEmpty(t, s.Summary)
}

type countingComposer struct {
	calls int
	err   error
}

func (c *countingComposer) Compose(context.Context, string, []types.Keyword) (types.DocumentSummary, error) {
	c.calls++
	if c.err != nil {
		return types.DocumentSummary{}, c.err
	}
	return types.DocumentSummary{MainTopic: "remote", KeyFindings: []string{"a", "b", "c"}}, nil
}

func newTestSummarizer(remote Composer) (*Summarizer, *time.Time) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := cache.New[types.DocumentSummary](cache.NewMemory(0), cache.Options{
		Namespace: "summary",
		Clock:     cache.ClockFunc(func() time.Time { return now }),
	})
	return NewSummarizer(remote, c, nil), &now
}

func TestSummarizerCache(t *testing.T) {
	ctx := context.Background()
	remote := &countingComposer{}
	s, now := newTestSummarizer(remote)

	first := s.Summarize(ctx, "text", nil, false)
	second := s.Summarize(ctx, "text", []types.Keyword{{Word: "ignored"}}, false)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, remote.calls)

	s.Summarize(ctx, "text", nil, true)
	assert.Equal(t, 2, remote.calls)

	*now = now.Add(25 * time.Hour)
	s.Summarize(ctx, "text", nil, false)
	assert.Equal(t, 3, remote.calls)
}

func TestSummarizerFallsBackToLocal(t *testing.T) {
	remote := &countingComposer{err: errors.New("timeout")}
	s := NewSummarizer(remote, nil, nil)

	sum := s.Summarize(context.Background(), strings.Repeat("data ", 450), nil, false)
	assert.Equal(t, types.ComplexityBeginner, sum.Complexity)
	assert.Equal(t, 1, remote.calls)
}

func TestRemoteComposeMergesLocalStatistics(t *testing.T) {
	remote := &Remote{Client: nlp.CompleterFunc(func(_ context.Context, req nlp.Request) (string, error) {
		assert.Contains(t, req.Prompt, "keywords are: alpha, beta")
		return `{"mainTopic":"Alpha studies","keyFindings":["one","two","three","four"],"summary":"About alpha.","readingTime":"99 min read","complexity":"advanced"}`, nil
	})}

	sum, err := remote.Compose(context.Background(), strings.Repeat("alpha beta ", 100), []types.Keyword{{Word: "alpha"}, {Word: "beta"}})
	require.NoError(t, err)
	assert.Equal(t, "Alpha studies", sum.MainTopic)
	assert.Equal(t, []string{"one", "two", "three"}, sum.KeyFindings)
	assert.Equal(t, "About alpha.", sum.Summary)
	assert.Equal(t, "1 min read", sum.ReadingTime)
	assert.Equal(t, types.ComplexityBeginner, sum.Complexity)
	assert.Equal(t, []string{"alpha", "beta"}, sum.ImportantConcepts)
}

func TestRemoteComposeRejectsNonJSON(t *testing.T) {
	remote := &Remote{Client: nlp.CompleterFunc(func(context.Context, nlp.Request) (string, error) {
		return "Sorry, no.", nil
	})}
	_, err := remote.Compose(context.Background(), "text", nil)
	assert.ErrorIs(t, err, nlp.ErrNoJSON)
}
