// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary composes a structured DocumentSummary.
//
// Compose works offline from text statistics and a few heuristics. Remote
// asks the NLP service for the same record. Summarizer puts the content-hash
// cache in front of them and degrades Remote failures to Compose.
package summary

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/chriscorrea/bm25md"

	"github.com/pdiddy/docsight/internal/fingerprint"
	"github.com/pdiddy/docsight/internal/keywords"
	"github.com/pdiddy/docsight/pkg/types"
)

// Composer produces a summary of text, optionally guided by its keywords.
type Composer interface {
	Compose(ctx context.Context, text string, kws []types.Keyword) (types.DocumentSummary, error)
}

const (
	wordsPerMinute     = 200
	beginnerMaxWords   = 500
	advancedMinWords   = 2000
	advancedMinKeyword = 10
	maxFindings        = 3
	maxConcepts        = 5
)

// Stats are the raw counts behind a summary.
type Stats struct {
	Words      int
	Sentences  int
	Paragraphs int
}

var (
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
)

// Count returns the word, sentence, and paragraph counts of text.
func Count(text string) Stats {
	return Stats{
		Words:      len(strings.Fields(text)),
		Sentences:  nonBlank(sentenceSplit.Split(text, -1)),
		Paragraphs: nonBlank(paragraphSplit.Split(text, -1)),
	}
}

func nonBlank(parts []string) int {
	n := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}

// ReadingTime renders the minutes needed to read words at 200 words a minute.
func ReadingTime(words int) string {
	return fmt.Sprintf("%d min read", int(math.Ceil(float64(words)/wordsPerMinute)))
}

// Grade returns the complexity tier for a document. Short documents are
// beginner level whatever their keyword count.
func Grade(words, keywordCount int) types.Complexity {
	switch {
	case words < beginnerMaxWords:
		return types.ComplexityBeginner
	case words > advancedMinWords || keywordCount > advancedMinKeyword:
		return types.ComplexityAdvanced
	default:
		return types.ComplexityIntermediate
	}
}

// documentTypes are checked in order; a type matches when both markers occur.
var documentTypes = []struct {
	markers [2]string
	name    string
}{
	{[2]string{"abstract", "methodology"}, "Research Paper"},
	{[2]string{"introduction", "conclusion"}, "Academic Article"},
	{[2]string{"step", "procedure"}, "Technical Manual"},
	{[2]string{"analysis", "data"}, "Analytical Report"},
}

const genericDocumentType = "Document"

// Classify returns the document type suggested by marker words in text.
func Classify(text string) string {
	lower := strings.ToLower(text)
	for _, dt := range documentTypes {
		if strings.Contains(lower, dt.markers[0]) && strings.Contains(lower, dt.markers[1]) {
			return dt.name
		}
	}
	return genericDocumentType
}

var applications = map[string][]string{
	"Research Paper": {
		"Informing follow-up research in the same field",
		"Grounding evidence-based decisions",
		"Serving as a reference for comparable studies",
	},
	"Academic Article": {
		"Course reading and teaching material",
		"Background for literature reviews",
		"Framing discussion of the topic",
	},
	"Technical Manual": {
		"Carrying out the described procedures",
		"Training new operators or users",
		"Troubleshooting and maintenance",
	},
	"Analytical Report": {
		"Supporting data-driven planning",
		"Tracking trends and performance",
		"Briefing stakeholders on findings",
	},
	genericDocumentType: {
		"General reference on the topic",
		"Background reading",
		"Starting point for further inquiry",
	},
}

var audiences = map[types.Complexity]string{
	types.ComplexityBeginner:     "General readers new to the topic",
	types.ComplexityIntermediate: "Practitioners and students with some background in the field",
	types.ComplexityAdvanced:     "Researchers and specialists in the field",
}

var methodMarkers = regexp.MustCompile(`(?i)\b(method|methodology|approach|experiment|survey|dataset|we propose|procedure|framework|analy[sz]ed?)\b`)

// Local is Compose as a Composer.
type Local struct{}

// Compose implements Composer. It never fails.
func (Local) Compose(_ context.Context, text string, kws []types.Keyword) (types.DocumentSummary, error) {
	return Compose(text, kws), nil
}

// Compose builds a summary of text from counts and heuristics. kws may be
// nil, in which case important concepts come from local keyword extraction.
func Compose(text string, kws []types.Keyword) types.DocumentSummary {
	stats := Count(text)
	docType := Classify(text)
	complexity := Grade(stats.Words, len(kws))
	sentences := fingerprint.Sentences(text)

	concepts := conceptsOf(text, kws)
	topic := "General content"
	if len(concepts) > 0 {
		topic = concepts[0]
	}

	s := types.DocumentSummary{
		MainTopic:             topic,
		KeyFindings:           keyFindings(sentences, concepts),
		Methodology:           methodology(sentences),
		ImportantConcepts:     concepts,
		TargetAudience:        audiences[complexity],
		PracticalApplications: applications[docType],
		DocumentType:          docType,
		ReadingTime:           ReadingTime(stats.Words),
		Complexity:            complexity,
	}
	s.Summary = fmt.Sprintf("This %s of %d words in %d paragraphs centers on %s. It is written at %s level.",
		strings.ToLower(docType), stats.Words, stats.Paragraphs, topic, complexity)
	return s
}

func conceptsOf(text string, kws []types.Keyword) []string {
	var out []string
	if len(kws) > 0 {
		for _, k := range kws {
			out = append(out, k.Word)
			if len(out) == maxConcepts {
				break
			}
		}
		return out
	}
	for _, c := range keywords.Extract(text, nil, maxConcepts) {
		out = append(out, c.Word)
	}
	return out
}

// keyFindings returns the sentences BM25 ranks highest against the concept
// list, or the opening sentences when there are no concepts.
func keyFindings(sentences, concepts []string) []string {
	if len(sentences) <= maxFindings || len(concepts) == 0 {
		return firstN(sentences, maxFindings)
	}

	corpus := bm25md.NewCorpus()
	parser := bm25md.NewMarkdownFieldParser()
	for i, s := range sentences {
		corpus.AddDocument(bm25md.Document{
			ID:       i,
			Fields:   parser.ParseDocument(s),
			Original: s,
		})
	}

	query := strings.Join(concepts, " ")
	type ranked struct {
		index int
		score float64
	}
	scores := make([]ranked, len(sentences))
	for i := range sentences {
		scores[i] = ranked{index: i, score: corpus.Score(query, i)}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	out := make([]string, 0, maxFindings)
	for _, r := range scores[:maxFindings] {
		out = append(out, sentences[r.index])
	}
	return out
}

func methodology(sentences []string) string {
	for _, s := range sentences {
		if methodMarkers.MatchString(s) {
			return s
		}
	}
	return "The document does not describe a specific methodology."
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		s = s[:n]
	}
	return append([]string(nil), s...)
}
