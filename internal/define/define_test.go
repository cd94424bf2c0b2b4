// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package define

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docsight/internal/nlp"
)

func TestLocalDefine(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "definitional statement",
			req: Request{
				Word: "transformer",
				Text: "A transformer is a neural network architecture based on attention. It scales well.",
			},
			want: "Transformer is a neural network architecture based on attention.",
		},
		{
			name: "gloss after the word",
			req: Request{
				Word: "BLEU",
				Text: "We report BLEU (bilingual evaluation understudy) scores for every model.",
			},
			want: "BLEU: bilingual evaluation understudy.",
		},
		{
			name: "acronym after its expansion",
			req: Request{
				Word: "NLP",
				Text: "We use natural language processing (NLP) to parse the corpus.",
			},
			want: "NLP: natural language processing.",
		},
		{
			name: "stem match",
			req: Request{
				Word: "classifiers",
				Text: "A classifier is a model that assigns labels to inputs.",
			},
			want: "Classifier is a model that assigns labels to inputs.",
		},
		{
			name: "domain sentence",
			req: Request{
				Word:    "gradient",
				Text:    "The gradient was computed twice.",
				Domains: []string{"Computer Science", "Physics"},
			},
			want: "gradient is a key concept in Computer Science discussed in this document.",
		},
		{
			name: "generic placeholder",
			req:  Request{Word: "lattice", Text: "No explanation here."},
			want: "lattice is a key term used in this document.",
		},
		{
			name: "definition outside the context window is ignored",
			req: Request{
				Word: "lattice",
				Text: "The lattice appears early in the introduction. " +
					strings.Repeat("Other sections discuss sampling and evaluation. ", 6) +
					"A lattice is a partially ordered set with joins and meets.",
				Domains: []string{"Mathematics"},
			},
			want: "lattice is a key concept in Mathematics discussed in this document.",
		},
		{
			name: "definition inside the context window",
			req: Request{
				Word: "lattice",
				Text: strings.Repeat("Other sections discuss sampling and evaluation. ", 6) +
					"A lattice is a partially ordered set with joins and meets.",
			},
			want: "Lattice is a partially ordered set with joins and meets.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := Local{}.Define(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, def.Text)
			assert.False(t, def.External)
		})
	}
}

func TestRemoteDefine(t *testing.T) {
	var got nlp.Request
	remote := &Remote{Client: nlp.CompleterFunc(func(_ context.Context, req nlp.Request) (string, error) {
		got = req
		return "\"Attention weighs tokens by relevance. It is central to transformers. It was popularized in 2017.\"", nil
	})}

	def, err := remote.Define(context.Background(), Request{
		Word:    "attention",
		Text:    "Models rely on attention to relate tokens.",
		Domains: []string{"Computer Science"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Attention weighs tokens by relevance. It is central to transformers.", def.Text)
	assert.True(t, def.External)

	assert.Contains(t, got.Prompt, `"attention"`)
	assert.Contains(t, got.Prompt, "Computer Science")
	assert.Contains(t, got.Prompt, "Models rely on attention to relate tokens.")
	assert.NotEmpty(t, got.Instructions)
}

func TestRemoteDefineEmptyAnswer(t *testing.T) {
	remote := &Remote{Client: nlp.CompleterFunc(func(context.Context, nlp.Request) (string, error) {
		return "   ", nil
	})}
	_, err := remote.Define(context.Background(), Request{Word: "x"})
	assert.ErrorIs(t, err, ErrNoDefinition)
}

func TestFallbackUsesLocalOnRemoteFailure(t *testing.T) {
	failing := &Remote{Client: nlp.CompleterFunc(func(context.Context, nlp.Request) (string, error) {
		return "", errors.New("quota exceeded")
	})}
	p := NewProvider(failing, nil)

	def, err := p.Define(context.Background(), Request{
		Word: "transformer",
		Text: "A transformer is a sequence model.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Transformer is a sequence model.", def.Text)
	assert.False(t, def.External)
}

func TestNewProviderWithoutRemoteIsLocal(t *testing.T) {
	assert.Equal(t, Local{}, NewProvider(nil, nil))
}

type erroringProvider struct{}

func (erroringProvider) Define(context.Context, Request) (Definition, error) {
	return Definition{}, errors.New("broken")
}

func TestGenerateNeverEmpty(t *testing.T) {
	ctx := context.Background()
	req := Request{Word: "kernel"}

	for _, p := range []Provider{nil, erroringProvider{}, Local{}} {
		def := Generate(ctx, p, req)
		assert.NotEmpty(t, def.Text)
		assert.False(t, def.External)
	}
}

func TestFirstSentences(t *testing.T) {
	assert.Equal(t, "One. Two!", firstSentences("One.  Two!\nThree?", 2))
	assert.Equal(t, "No terminal punctuation", firstSentences("No terminal punctuation", 2))
	assert.Equal(t, "Version 2.5 is out.", firstSentences("Version 2.5 is out.", 1))
}
