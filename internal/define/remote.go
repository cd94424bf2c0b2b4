// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package define

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/docsight/internal/keywords"
	"github.com/pdiddy/docsight/internal/nlp"
)

// contextRadius is the number of characters sent on each side of the word.
const contextRadius = 200

const remoteInstructions = `You write concise definitions of technical terms for readers of academic and professional documents. Answer with the definition only: one or two plain sentences, no lists, no quotation marks.`

var definitionPromptTmpl = template.Must(template.New("definition").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`Define the term "{{.Word}}" as it is used in the document excerpt below.
{{- if .Domains}}
The document belongs to these research domains: {{join .Domains ", "}}.
{{- end}}

Excerpt:
{{.Context}}
`))

// Remote asks the NLP service for a definition.
type Remote struct {
	Client nlp.Completer
}

// Define implements Provider.
func (r *Remote) Define(ctx context.Context, req Request) (Definition, error) {
	prompt, err := nlp.Render(definitionPromptTmpl, struct {
		Word    string
		Domains []string
		Context string
	}{
		Word:    req.Word,
		Domains: req.Domains,
		Context: keywords.Window(req.Text, req.Word, contextRadius),
	})
	if err != nil {
		return Definition{}, err
	}

	answer, err := r.Client.Complete(ctx, nlp.Request{
		Instructions: remoteInstructions,
		Prompt:       prompt,
		MaxTokens:    150,
	})
	if err != nil {
		return Definition{}, fmt.Errorf("defining %q: %w", req.Word, err)
	}

	text := firstSentences(strings.Trim(strings.TrimSpace(answer), `"`), 2)
	if text == "" {
		return Definition{}, ErrNoDefinition
	}
	return Definition{Text: text, External: true}, nil
}

// firstSentences keeps at most n sentences of s.
func firstSentences(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	count := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', '!', '?':
			if i+1 == len(s) || s[i+1] == ' ' {
				count++
				if count == n {
					return s[:i+1]
				}
			}
		}
	}
	return s
}
