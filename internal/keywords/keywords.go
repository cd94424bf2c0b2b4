// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keywords proposes, merges, and ranks candidate keywords from
// cleaned text and its semantic fingerprint.
//
// Six strategies run in a fixed order: technical terms, frequent terms,
// cross-section terms, fixed vocabulary, cluster members, and phrases.
// Their candidates are merged with case-insensitive deduplication where the
// first occurrence wins (its context and its score), then sorted by score,
// highest first.
package keywords

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/docsight/internal/fingerprint"
	"github.com/pdiddy/docsight/pkg/types"
)

// Result sizes.
const (
	// MaxKeywords bounds the fingerprint-driven keyword list.
	MaxKeywords = 20
	// MaxDetected bounds the local keyword list.
	MaxDetected = 50
)

// contextRadius is the number of characters kept on each side of a
// keyword's first occurrence.
const contextRadius = 100

// strategy proposes candidates from text and its fingerprint.
type strategy struct {
	name    string
	propose func(text string, fp *fingerprint.Fingerprint) []types.CandidateKeyword
}

// strategies run in this order; earlier strategies win deduplication.
var strategies = []strategy{
	{name: "technical", propose: technicalTerms},
	{name: "frequent", propose: frequentTerms},
	{name: "cross-section", propose: crossSectionTerms},
	{name: "vocabulary", propose: vocabularyTerms},
	{name: "cluster", propose: clusterTerms},
	{name: "phrases", propose: phraseTerms},
}

// Extract runs every strategy over text and returns at most limit candidates
// sorted by descending score. Candidates with equal scores keep strategy order.
func Extract(text string, fp *fingerprint.Fingerprint, limit int) []types.CandidateKeyword {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if fp == nil {
		fp = fingerprint.Build(text)
	}

	var all []types.CandidateKeyword
	for _, s := range strategies {
		found := s.propose(text, fp)
		slog.Debug("keyword strategy", "strategy", s.name, "candidates", len(found))
		all = append(all, found...)
	}

	merged := Merge(all)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// Merge drops candidates whose word, ignoring case, was already seen. The
// first candidate for a word is kept unchanged.
func Merge(candidates []types.CandidateKeyword) []types.CandidateKeyword {
	seen := make(map[string]bool, len(candidates))
	out := make([]types.CandidateKeyword, 0, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(c.Word)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// collector accumulates one strategy's candidates, skipping words it has
// already proposed.
type collector struct {
	text string
	seen map[string]bool
	out  []types.CandidateKeyword
}

func newCollector(text string) *collector {
	return &collector{text: text, seen: make(map[string]bool)}
}

func (c *collector) add(word string, score float64) {
	key := strings.ToLower(word)
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.out = append(c.out, types.CandidateKeyword{
		Word:    word,
		Context: Context(c.text, word),
		Score:   score,
	})
}

var technicalPatterns = []struct {
	re     *regexp.Regexp
	weight float64
}{
	{fingerprint.AcronymPattern, 0.9},
	{fingerprint.SuffixPattern, 0.8},
	{fingerprint.AlphanumericPattern, 0.7},
	{fingerprint.CompoundPattern, 0.6},
}

// technicalTerms scores acronyms, technical-suffix words, alphanumeric
// tokens, and hyphenated compounds by pattern weight times frequency.
func technicalTerms(text string, fp *fingerprint.Fingerprint) []types.CandidateKeyword {
	c := newCollector(text)
	for _, p := range technicalPatterns {
		for _, m := range p.re.FindAllString(text, -1) {
			if isStopword(strings.ToLower(m)) {
				continue
			}
			freq := fp.Frequency(m)
			if freq == 0 {
				freq = 1
			}
			c.add(m, p.weight*float64(freq))
		}
	}
	return c.out
}

const (
	minFrequentCount  = 3
	minFrequentLength = 4
	frequentWeight    = 0.5
)

// frequentTerms proposes words seen at least three times, scored by their
// contextual importance.
func frequentTerms(text string, fp *fingerprint.Fingerprint) []types.CandidateKeyword {
	c := newCollector(text)
	for _, w := range sortedByCount(fp.WordFrequency) {
		if fp.WordFrequency[w] < minFrequentCount || len(w) < minFrequentLength || isStopword(w) {
			continue
		}
		c.add(capitalize(w), float64(fp.Importance[w])*frequentWeight)
	}
	return c.out
}

const crossSectionWeight = 0.7

// crossSectionTerms proposes words that appear in two or more sections.
func crossSectionTerms(text string, fp *fingerprint.Fingerprint) []types.CandidateKeyword {
	c := newCollector(text)
	for _, w := range sortedByCount(fp.Importance) {
		if isStopword(w) {
			continue
		}
		if n := fp.SectionsContaining(w); n >= 2 {
			c.add(w, float64(n)*crossSectionWeight)
		}
	}
	return c.out
}

// vocabularyTerms proposes fixed vocabulary terms present in the text.
func vocabularyTerms(text string, _ *fingerprint.Fingerprint) []types.CandidateKeyword {
	c := newCollector(text)
	for _, term := range vocabulary {
		if n := fingerprint.CountWord(text, term); n > 0 {
			c.add(term, float64(n)*vocabularyWeight)
		}
	}
	return c.out
}

const clusterWeight = 0.4

// clusterTerms proposes the members of matched semantic clusters.
func clusterTerms(text string, fp *fingerprint.Fingerprint) []types.CandidateKeyword {
	c := newCollector(text)
	for _, cl := range fp.Clusters {
		for _, m := range cl.Members {
			if n := fp.Frequency(m); n > 0 {
				c.add(m, float64(n)*clusterWeight)
			}
		}
	}
	return c.out
}

var phraseToken = regexp.MustCompile(`[A-Za-z]+`)

// phraseTerms proposes curated phrases and repeated two- and three-word
// sequences.
func phraseTerms(text string, _ *fingerprint.Fingerprint) []types.CandidateKeyword {
	c := newCollector(text)
	for _, list := range curatedPhrases {
		for _, p := range list.phrases {
			if n := fingerprint.CountWord(text, p); n > 0 {
				c.add(p, list.weight*float64(n))
			}
		}
	}

	tokens := phraseToken.FindAllString(strings.ToLower(text), -1)
	counts := make(map[string]int)
	var order []string
	for size := 2; size <= 3; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			gram := tokens[i : i+size]
			if !usableNgram(gram) {
				continue
			}
			phrase := strings.Join(gram, " ")
			if counts[phrase] == 0 {
				order = append(order, phrase)
			}
			counts[phrase]++
		}
	}
	for _, phrase := range order {
		if counts[phrase] < minNgramCount {
			continue
		}
		if _, stop := stopPhrases[phrase]; stop {
			continue
		}
		c.add(phrase, float64(counts[phrase])*ngramWeight)
	}
	return c.out
}

// usableNgram rejects n-grams that start or end with a stopword or contain a
// token shorter than three letters.
func usableNgram(gram []string) bool {
	if isStopword(gram[0]) || isStopword(gram[len(gram)-1]) {
		return false
	}
	for _, t := range gram {
		if len(t) < 3 {
			return false
		}
	}
	return true
}

// Context returns up to contextRadius characters on each side of the first
// case-insensitive occurrence of word in text, or "" if word is absent.
func Context(text, word string) string {
	return Window(text, word, contextRadius)
}

// Window returns up to radius bytes on each side of the first
// case-insensitive occurrence of word in text, widened to rune boundaries,
// or "" if word is absent.
func Window(text, word string, radius int) string {
	if word == "" {
		return ""
	}
	i := strings.Index(strings.ToLower(text), strings.ToLower(word))
	if i < 0 {
		return ""
	}
	start := max(i-radius, 0)
	end := min(i+len(word)+radius, len(text))
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	return strings.TrimSpace(text[start:end])
}

// sortedByCount returns the keys of m ordered by descending value, then
// alphabetically.
func sortedByCount(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}
