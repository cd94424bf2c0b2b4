// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nlp

import (
	"log/slog"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// charsPerToken approximates token length when the tokenizer cannot load.
const charsPerToken = 4

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
	encodingErr  error
)

func loadEncoding() (*tiktoken.Tiktoken, error) {
	encodingOnce.Do(func() {
		encoding, encodingErr = tiktoken.GetEncoding("cl100k_base")
	})
	return encoding, encodingErr
}

// Truncate returns the longest prefix of text that fits in maxTokens
// cl100k_base tokens. A maxTokens of zero or less disables truncation.
func Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 || text == "" {
		return text
	}

	enc, err := loadEncoding()
	if err != nil {
		slog.Debug("tokenizer unavailable, truncating by characters", "error", err)
		return truncateRunes(text, maxTokens*charsPerToken)
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return enc.Decode(tokens[:maxTokens])
}

func truncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
