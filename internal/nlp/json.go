// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nlp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned by ExtractJSON when raw holds no JSON object.
var ErrNoJSON = errors.New("no JSON object in response")

// ExtractJSON decodes the outermost JSON object in raw into v. Models often
// wrap JSON in Markdown code fences or add a sentence before it; both are
// ignored.
func ExtractJSON(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return ErrNoJSON
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), v); err != nil {
		return fmt.Errorf("parsing response JSON: %w", err)
	}
	return nil
}
