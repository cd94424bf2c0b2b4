// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package conceptmap links a document's keywords into a graph. Two keywords
// are connected when they appear in the same sentence.
package conceptmap

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"text/template"

	"github.com/pdiddy/docsight/internal/fingerprint"
	"github.com/pdiddy/docsight/internal/nlp"
	"github.com/pdiddy/docsight/pkg/types"
)

// MaxNodes bounds the number of concepts in a map.
const MaxNodes = 12

// Mapper builds a concept map.
type Mapper interface {
	Map(ctx context.Context, text string, kws []types.Keyword) (types.ConceptMap, error)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// NodeID is the lowercase, hyphenated form of a label.
func NodeID(label string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(label), "-"), "-")
}

// Map builds the co-occurrence map of the first MaxNodes keywords.
func Map(text string, kws []types.Keyword) types.ConceptMap {
	m := types.ConceptMap{Nodes: []types.ConceptNode{}, Edges: []types.ConceptEdge{}}
	seen := make(map[string]bool)
	for _, k := range kws {
		id := NodeID(k.Word)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		m.Nodes = append(m.Nodes, types.ConceptNode{ID: id, Label: k.Word, Weight: k.Score})
		if len(m.Nodes) == MaxNodes {
			break
		}
	}

	counts := make([][]int, len(m.Nodes))
	for i := range counts {
		counts[i] = make([]int, len(m.Nodes))
	}
	for _, s := range fingerprint.Sentences(text) {
		var present []int
		for i, n := range m.Nodes {
			if fingerprint.CountWord(s, n.Label) > 0 {
				present = append(present, i)
			}
		}
		for a := 0; a < len(present); a++ {
			for b := a + 1; b < len(present); b++ {
				counts[present[a]][present[b]]++
			}
		}
	}

	for i := range m.Nodes {
		for j := i + 1; j < len(m.Nodes); j++ {
			if c := counts[i][j]; c > 0 {
				m.Edges = append(m.Edges, types.ConceptEdge{
					Source: m.Nodes[i].ID,
					Target: m.Nodes[j].ID,
					Weight: float64(c),
				})
			}
		}
	}
	return m
}

// Local is Map as a Mapper.
type Local struct{}

// Map implements Mapper.
func (Local) Map(_ context.Context, text string, kws []types.Keyword) (types.ConceptMap, error) {
	return Map(text, kws), nil
}

const remoteInstructions = `You draw concept maps of documents. Reply with a single JSON object and nothing else.`

var conceptPromptTmpl = template.Must(template.New("conceptmap").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`Build a concept map of the document below using at most {{.Max}} concepts.
Return JSON: {"nodes":[{"id","label","weight"}],"edges":[{"source","target","weight"}]}.
Node ids are lowercase and hyphenated; edge source and target are node ids; weights are between 0 and 10.
{{- if .Keywords}}
Prefer these keywords as concepts: {{join .Keywords ", "}}.
{{- end}}

Document:
{{.Text}}
`))

// Remote asks the NLP service for a concept map.
type Remote struct {
	Client           nlp.Completer
	MaxContextTokens int
}

// Map implements Mapper. Edges that reference unknown nodes are dropped; a
// map with no nodes is an error.
func (r *Remote) Map(ctx context.Context, text string, kws []types.Keyword) (types.ConceptMap, error) {
	words := make([]string, 0, len(kws))
	for _, k := range kws {
		words = append(words, k.Word)
	}
	prompt, err := nlp.Render(conceptPromptTmpl, struct {
		Max      int
		Keywords []string
		Text     string
	}{MaxNodes, words, nlp.Truncate(text, r.MaxContextTokens)})
	if err != nil {
		return types.ConceptMap{}, err
	}

	raw, err := r.Client.Complete(ctx, nlp.Request{
		Instructions: remoteInstructions,
		Prompt:       prompt,
		JSON:         true,
	})
	if err != nil {
		return types.ConceptMap{}, fmt.Errorf("remote concept map: %w", err)
	}

	var m types.ConceptMap
	if err := nlp.ExtractJSON(raw, &m); err != nil {
		return types.ConceptMap{}, err
	}
	return validate(m)
}

func validate(m types.ConceptMap) (types.ConceptMap, error) {
	out := types.ConceptMap{Nodes: []types.ConceptNode{}, Edges: []types.ConceptEdge{}}
	ids := make(map[string]bool)
	for _, n := range m.Nodes {
		if n.ID == "" {
			n.ID = NodeID(n.Label)
		}
		if n.ID == "" || ids[n.ID] {
			continue
		}
		if n.Label == "" {
			n.Label = n.ID
		}
		ids[n.ID] = true
		out.Nodes = append(out.Nodes, n)
		if len(out.Nodes) == MaxNodes {
			break
		}
	}
	if len(out.Nodes) == 0 {
		return types.ConceptMap{}, fmt.Errorf("remote concept map has no nodes")
	}
	for _, e := range m.Edges {
		if ids[e.Source] && ids[e.Target] && e.Source != e.Target {
			out.Edges = append(out.Edges, e)
		}
	}
	return out, nil
}

// Builder builds concept maps remotely when configured, locally otherwise.
type Builder struct {
	remote Mapper
	logger *slog.Logger
}

// NewBuilder returns a Builder. A nil remote always maps locally.
func NewBuilder(remote Mapper, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{remote: remote, logger: logger}
}

// Build returns the concept map of text. It never fails.
func (b *Builder) Build(ctx context.Context, text string, kws []types.Keyword) types.ConceptMap {
	if b.remote != nil {
		m, err := b.remote.Map(ctx, text, kws)
		if err == nil {
			return m
		}
		b.logger.Debug("remote concept map failed, mapping locally", "error", err)
	}
	return Map(text, kws)
}
