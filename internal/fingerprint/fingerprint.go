// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fingerprint builds a SemanticFingerprint of cleaned document text:
// the standard academic sections, a word-frequency table, technical density,
// matched semantic clusters, per-word contextual importance, and research
// domain indicators. A Fingerprint is computed once per analysis and treated
// as read-only afterwards.
package fingerprint

import (
	"strings"
	"unicode"
)

// Fingerprint summarizes the structure and vocabulary of a document.
type Fingerprint struct {
	// Sections maps a section name (see SectionNames) to its body text.
	// Sections that were not found are absent.
	Sections map[string]string `json:"sections" yaml:"sections"`

	// WordFrequency counts lowercase letter-only words of three or more letters.
	WordFrequency map[string]int `json:"word_frequency" yaml:"word_frequency"`

	// TechnicalDensity is the share of words that look technical, in [0, 1].
	TechnicalDensity float64 `json:"technical_density" yaml:"technical_density"`

	// Clusters lists the taxonomy clusters present in the text, in taxonomy order.
	Clusters []Cluster `json:"clusters" yaml:"clusters"`

	// Importance scores words of four or more letters that occur inside
	// recognized sections.
	Importance map[string]int `json:"importance" yaml:"importance"`

	// Domains lists the research domains the text indicates, in table order.
	Domains []string `json:"domains" yaml:"domains"`
}

// Build computes the fingerprint of cleaned text.
func Build(text string) *Fingerprint {
	sections := extractSections(text)
	freq := wordFrequency(text)
	return &Fingerprint{
		Sections:         sections,
		WordFrequency:    freq,
		TechnicalDensity: technicalDensity(text),
		Clusters:         matchClusters(freq),
		Importance:       contextualImportance(sections),
		Domains:          detectDomains(text),
	}
}

// SectionsContaining returns how many recognized sections contain word as a
// whole word, ignoring case.
func (f *Fingerprint) SectionsContaining(word string) int {
	word = strings.ToLower(word)
	n := 0
	for _, body := range f.Sections {
		if containsWord(body, word) {
			n++
		}
	}
	return n
}

// Frequency returns the word-frequency count for word, ignoring case.
func (f *Fingerprint) Frequency(word string) int {
	return f.WordFrequency[strings.ToLower(word)]
}

func extractSections(text string) map[string]string {
	sections := make(map[string]string)
	for _, name := range SectionNames {
		loc := sectionHeadings[name].FindStringIndex(text)
		if loc == nil {
			continue
		}
		body := text[loc[1]:]
		body = strings.TrimSpace(body[:sectionEnd(body)])
		if body != "" {
			sections[name] = body
		}
	}
	return sections
}

// sectionEnd returns the offset of the first heading-like line in body after
// its first line, or len(body) if there is none. The first line is the rest
// of the heading line and always belongs to the section.
func sectionEnd(body string) int {
	offset := strings.IndexByte(body, '\n')
	if offset < 0 {
		return len(body)
	}
	offset++
	for offset < len(body) {
		next := strings.IndexByte(body[offset:], '\n')
		line := body[offset:]
		if next >= 0 {
			line = body[offset : offset+next]
		}
		if isHeadingLike(line) {
			return offset
		}
		if next < 0 {
			break
		}
		offset += next + 1
	}
	return len(body)
}

// headingSmallWords may appear lowercase inside a title-cased heading.
var headingSmallWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "by": true,
	"for": true, "in": true, "of": true, "on": true, "or": true, "the": true,
	"to": true, "with": true,
}

// isHeadingLike reports whether line looks like a capitalized section
// heading: short, title-cased, optionally numbered, and not a sentence.
func isHeadingLike(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || len(line) > 60 {
		return false
	}
	switch line[len(line)-1] {
	case '.', ',', ';', '?', '!':
		return false
	}
	words := strings.Fields(strings.TrimSuffix(line, ":"))
	if len(words) > 0 && isSectionNumber(words[0]) {
		words = words[1:]
	}
	if len(words) == 0 || len(words) > 6 {
		return false
	}
	for i, w := range words {
		r := []rune(w)
		if unicode.IsUpper(r[0]) {
			continue
		}
		if i > 0 && headingSmallWords[w] {
			continue
		}
		return false
	}
	return true
}

func isSectionNumber(s string) bool {
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '.' && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func wordFrequency(text string) map[string]int {
	freq := make(map[string]int)
	for _, w := range frequencyWord.FindAllString(text, -1) {
		freq[strings.ToLower(w)]++
	}
	return freq
}

func technicalDensity(text string) float64 {
	total := len(strings.Fields(text))
	if total == 0 {
		return 0
	}
	technical := len(AcronymPattern.FindAllStringIndex(text, -1)) +
		len(SuffixPattern.FindAllStringIndex(text, -1)) +
		len(AlphanumericPattern.FindAllStringIndex(text, -1))
	density := float64(technical) / float64(total)
	if density > 1 {
		return 1
	}
	return density
}

func matchClusters(freq map[string]int) []Cluster {
	var matched []Cluster
	for _, c := range Taxonomy {
		hits := 0
		for _, m := range c.Members {
			if freq[m] > 0 {
				hits++
			}
		}
		if hits >= minClusterMatches {
			matched = append(matched, c)
		}
	}
	return matched
}

// contextualImportance scores each word by its count across all sections plus
// the number of sections it appears in.
func contextualImportance(sections map[string]string) map[string]int {
	counts := make(map[string]int)
	spread := make(map[string]int)
	for _, name := range SectionNames {
		body, ok := sections[name]
		if !ok {
			continue
		}
		seen := make(map[string]bool)
		for _, w := range importanceWord.FindAllString(body, -1) {
			w = strings.ToLower(w)
			counts[w]++
			if !seen[w] {
				seen[w] = true
				spread[w]++
			}
		}
	}
	importance := make(map[string]int, len(counts))
	for w, c := range counts {
		importance[w] = c + spread[w]
	}
	return importance
}

func detectDomains(text string) []string {
	var found []string
	for _, d := range domains {
		if len(d.pattern.FindAllStringIndex(text, -1)) > minDomainMatches {
			found = append(found, d.name)
		}
	}
	return found
}

// containsWord reports whether text contains word as a whole word, ignoring case.
func containsWord(text, word string) bool {
	return CountWord(text, word) > 0
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// CountWord returns the number of whole-word, case-insensitive occurrences of
// term in text. Multi-word terms are matched as a phrase.
func CountWord(text, term string) int {
	lower := strings.ToLower(text)
	term = strings.ToLower(term)
	if term == "" {
		return 0
	}
	n := 0
	for start := 0; start <= len(lower)-len(term); {
		i := strings.Index(lower[start:], term)
		if i < 0 {
			break
		}
		i += start
		end := i + len(term)
		if (i == 0 || !isWordByte(lower[i-1])) && (end == len(lower) || !isWordByte(lower[end])) {
			n++
			start = end
			continue
		}
		start = i + 1
	}
	return n
}
