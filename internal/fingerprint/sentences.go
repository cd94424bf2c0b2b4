// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fingerprint

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/jdkato/prose/v2"
)

var sentenceEnd = regexp.MustCompile(`[.!?]+\s+`)

// Sentences splits text into sentences with prose's segmenter, falling back
// to splitting on terminal punctuation if the segmenter fails.
func Sentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		slog.Debug("sentence segmenter failed", "error", err)
		return splitSentences(text)
	}

	var out []string
	for _, s := range doc.Sentences() {
		if t := strings.Join(strings.Fields(s.Text), " "); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func splitSentences(text string) []string {
	var out []string
	for _, s := range sentenceEnd.Split(text, -1) {
		if t := strings.Join(strings.Fields(s), " "); t != "" {
			out = append(out, t)
		}
	}
	return out
}
