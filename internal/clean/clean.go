// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clean strips boilerplate from extracted document text before
// analysis: bibliographies, copyright and licensing lines, acknowledgments,
// publication metadata, page furniture, and legal disclaimers.
package clean

import (
	"regexp"
	"strings"
)

// referencesHeading marks the start of a bibliography. Everything from the
// heading to the end of the text is dropped.
var referencesHeading = regexp.MustCompile(`(?im)^[ \t]*(?:\d+\.?[ \t]*)?(?:references|bibliography|works cited|literature cited)[ \t]*:?[ \t]*(?:\n|\[|\d+\.|$)`)

// lineFilters drop whole lines. Order does not matter; each is applied to the
// full text.
var lineFilters = []*regexp.Regexp{
	// Copyright, Creative Commons, rights-reserved notices.
	regexp.MustCompile(`(?im)^.*(?:©|\bcopyright\b|\(c\)[ \t]*\d{4}|\bcreative commons\b|\bcc[ -]by\b|\brights reserved\b).*$`),
	// Acknowledgments, funding, and affiliations.
	regexp.MustCompile(`(?im)^.*\b(?:acknowledge?ments?|funding|funded by|grant (?:no\.|number)|affiliations?)\b.*$`),
	// Publication metadata.
	regexp.MustCompile(`(?im)^[ \t]*(?:keywords|key words|index terms|received|accepted|published(?: online)?|doi|arxiv)[ \t]*[:—-].*$`),
	// Standalone page numbers.
	regexp.MustCompile(`(?m)^[ \t]*\d{1,4}[ \t]*$`),
	// "Page N" and "Page N of M" headers.
	regexp.MustCompile(`(?im)^[ \t]*page[ \t]+\d+(?:[ \t]+of[ \t]+\d+)?[ \t]*$`),
	// Legal disclaimers.
	regexp.MustCompile(`(?im)^.*\b(?:disclaimer|for informational purposes only|without warranty|not (?:be )?(?:liable|responsible) for)\b.*$`),
}

var excessBlankLines = regexp.MustCompile(`\n{3,}`)

// Clean returns text with boilerplate removed, each line trimmed, and runs of
// three or more newlines collapsed to two. It never fails; text that is all
// boilerplate yields the empty string.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	if loc := referencesHeading.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}

	for _, re := range lineFilters {
		text = re.ReplaceAllString(text, "")
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = excessBlankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
