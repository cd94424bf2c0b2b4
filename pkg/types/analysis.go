// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CandidateKeyword is a keyword proposed by one extraction strategy before
// definitions are attached.
type CandidateKeyword struct {
	Word    string  `json:"word" yaml:"word"`
	Context string  `json:"context" yaml:"context"`
	Score   float64 `json:"score" yaml:"score"`
}

// Keyword is a ranked keyword with its definition and surrounding context.
type Keyword struct {
	Word       string  `json:"word" yaml:"word"`
	Definition string  `json:"definition" yaml:"definition"`
	Context    string  `json:"context" yaml:"context"`
	Score      float64 `json:"score" yaml:"score"`

	// IsFromExternalSource reports whether the definition came from the
	// remote NLP service rather than the local heuristics.
	IsFromExternalSource bool `json:"isFromExternalSource" yaml:"is_from_external_source"`
}

// Sentiment labels a document's overall tone.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentMixed    Sentiment = "mixed"
)

// Valid reports whether s is one of the four known labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed:
		return true
	}
	return false
}

// SectionSentiment is the sentiment of one part of a document.
type SectionSentiment struct {
	Section   string    `json:"section" yaml:"section"`
	Sentiment Sentiment `json:"sentiment" yaml:"sentiment"`
	Score     float64   `json:"score" yaml:"score"`
}

// SentimentResult is the outcome of sentiment analysis for one text.
type SentimentResult struct {
	OverallSentiment   Sentiment          `json:"overallSentiment" yaml:"overall_sentiment"`
	SentimentScore     float64            `json:"sentimentScore" yaml:"sentiment_score"`
	EmotionalTone      string             `json:"emotionalTone" yaml:"emotional_tone"`
	Confidence         float64            `json:"confidence" yaml:"confidence"`
	KeyIndicators      []string           `json:"keyIndicators" yaml:"key_indicators"`
	SectionBreakdown   []SectionSentiment `json:"sectionBreakdown" yaml:"section_breakdown"`
	AudiencePerception string             `json:"audiencePerception" yaml:"audience_perception"`
	Summary            string             `json:"summary" yaml:"summary"`
}

// Complexity grades how demanding a document is to read.
type Complexity string

const (
	ComplexityBeginner     Complexity = "beginner"
	ComplexityIntermediate Complexity = "intermediate"
	ComplexityAdvanced     Complexity = "advanced"
)

// DocumentSummary is the structured summary of one text.
type DocumentSummary struct {
	MainTopic             string     `json:"mainTopic" yaml:"main_topic"`
	KeyFindings           []string   `json:"keyFindings" yaml:"key_findings"`
	Methodology           string     `json:"methodology" yaml:"methodology"`
	ImportantConcepts     []string   `json:"importantConcepts" yaml:"important_concepts"`
	TargetAudience        string     `json:"targetAudience" yaml:"target_audience"`
	PracticalApplications []string   `json:"practicalApplications" yaml:"practical_applications"`
	DocumentType          string     `json:"documentType" yaml:"document_type"`
	Summary               string     `json:"summary" yaml:"summary"`
	ReadingTime           string     `json:"readingTime" yaml:"reading_time"`
	Complexity            Complexity `json:"complexity" yaml:"complexity"`
}

// ConceptNode is one concept in a ConceptMap.
type ConceptNode struct {
	ID     string  `json:"id" yaml:"id"`
	Label  string  `json:"label" yaml:"label"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// ConceptEdge links two concepts that appear together.
type ConceptEdge struct {
	Source string  `json:"source" yaml:"source"`
	Target string  `json:"target" yaml:"target"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// ConceptMap is a graph of the document's key concepts.
type ConceptMap struct {
	Nodes []ConceptNode `json:"nodes" yaml:"nodes"`
	Edges []ConceptEdge `json:"edges" yaml:"edges"`
}

// Document identifies an analyzed text and where it came from.
type Document struct {
	// ID is the first 12 hex characters of the SHA-256 of the document text.
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Source    string    `json:"source,omitempty" yaml:"source,omitempty"`
	PageCount int       `json:"pageCount,omitempty" yaml:"page_count,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}

// DocumentAnalysis bundles every analysis result produced for one document.
type DocumentAnalysis struct {
	Document   Document         `json:"document" yaml:"document"`
	Keywords   []Keyword        `json:"keywords" yaml:"keywords"`
	Sentiment  *SentimentResult `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
	Summary    *DocumentSummary `json:"summary,omitempty" yaml:"summary,omitempty"`
	ConceptMap *ConceptMap      `json:"conceptMap,omitempty" yaml:"concept_map,omitempty"`
	AnalyzedAt time.Time        `json:"analyzedAt" yaml:"analyzed_at"`
}
