// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/docsight/internal/nlp"
	"github.com/pdiddy/docsight/pkg/types"
)

const remoteInstructions = `You summarize academic and professional documents for busy readers. Reply with a single JSON object and nothing else.`

var summaryPromptTmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`Summarize the document below. Return JSON with these fields:
- "mainTopic": a short phrase
- "keyFindings": exactly 3 sentences
- "methodology": one sentence
- "importantConcepts": up to 5 terms
- "targetAudience": a short phrase
- "practicalApplications": exactly 3 short phrases
- "summary": two or three sentences
{{- if .Keywords}}

The document's keywords are: {{join .Keywords ", "}}.
{{- end}}

Document:
{{.Text}}
`))

// Remote asks the NLP service for a summary. Counts, reading time, document
// type, and complexity are always computed locally.
type Remote struct {
	Client nlp.Completer

	// MaxContextTokens bounds the document text sent. Zero sends everything.
	MaxContextTokens int
}

// Compose implements Composer.
func (r *Remote) Compose(ctx context.Context, text string, kws []types.Keyword) (types.DocumentSummary, error) {
	words := make([]string, 0, len(kws))
	for _, k := range kws {
		words = append(words, k.Word)
	}
	prompt, err := nlp.Render(summaryPromptTmpl, struct {
		Keywords []string
		Text     string
	}{words, nlp.Truncate(text, r.MaxContextTokens)})
	if err != nil {
		return types.DocumentSummary{}, err
	}

	raw, err := r.Client.Complete(ctx, nlp.Request{
		Instructions: remoteInstructions,
		Prompt:       prompt,
		JSON:         true,
	})
	if err != nil {
		return types.DocumentSummary{}, fmt.Errorf("remote summary: %w", err)
	}

	var remote types.DocumentSummary
	if err := nlp.ExtractJSON(raw, &remote); err != nil {
		return types.DocumentSummary{}, err
	}
	return merge(remote, Compose(text, kws)), nil
}

// merge keeps the service's prose and takes statistics and classifications
// from the local summary. Fields the service left empty are filled locally.
func merge(remote, local types.DocumentSummary) types.DocumentSummary {
	out := local
	if remote.MainTopic != "" {
		out.MainTopic = remote.MainTopic
	}
	if len(remote.KeyFindings) > 0 {
		out.KeyFindings = firstN(remote.KeyFindings, maxFindings)
	}
	if remote.Methodology != "" {
		out.Methodology = remote.Methodology
	}
	if len(remote.ImportantConcepts) > 0 {
		out.ImportantConcepts = firstN(remote.ImportantConcepts, maxConcepts)
	}
	if remote.TargetAudience != "" {
		out.TargetAudience = remote.TargetAudience
	}
	if len(remote.PracticalApplications) > 0 {
		out.PracticalApplications = firstN(remote.PracticalApplications, 3)
	}
	if remote.Summary != "" {
		out.Summary = remote.Summary
	}
	return out
}
