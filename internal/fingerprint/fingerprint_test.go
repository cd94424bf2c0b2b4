// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fingerprint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePaper = `Abstract: We study neural network training for image classification.

1. Introduction
Deep learning has changed image classification. Neural models need large datasets.

2. Methods
We trained a neural network with the ADAM optimizer on a GPU cluster.
The training procedure used ResNet50 as a backbone.

3. Results
The neural network reached high accuracy on the benchmark.

Conclusion
Neural training is effective for classification tasks.`

func TestBuildSections(t *testing.T) {
	fp := Build(samplePaper)

	require.Contains(t, fp.Sections, SectionAbstract)
	assert.Equal(t, "We study neural network training for image classification.", fp.Sections[SectionAbstract])

	require.Contains(t, fp.Sections, SectionIntroduction)
	assert.Contains(t, fp.Sections[SectionIntroduction], "Deep learning has changed")
	assert.NotContains(t, fp.Sections[SectionIntroduction], "ADAM", "introduction must stop at the next heading")

	require.Contains(t, fp.Sections, SectionMethodology)
	assert.Contains(t, fp.Sections[SectionMethodology], "ResNet50")

	require.Contains(t, fp.Sections, SectionResults)
	require.Contains(t, fp.Sections, SectionConclusion)
	assert.NotContains(t, fp.Sections, SectionDiscussion)
}

func TestBuildWordFrequency(t *testing.T) {
	fp := Build("Algorithm ALGORITHM algorithm x1 ab the The")

	assert.Equal(t, 3, fp.WordFrequency["algorithm"])
	assert.Equal(t, 2, fp.WordFrequency["the"])
	assert.NotContains(t, fp.WordFrequency, "ab", "words shorter than three letters are ignored")
	assert.NotContains(t, fp.WordFrequency, "x1")
	assert.Equal(t, 3, fp.Frequency("ALGORITHM"))
}

func TestTechnicalDensity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "empty", text: "", want: 0},
		{name: "plain words", text: "the cat sat down", want: 0},
		{name: "acronym and alphanumeric", text: "GPU runs GPT4 fast", want: 0.5},
		{name: "capped at one", text: "CPU GPU", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := technicalDensity(tt.text)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestClustersRequireTwoMembers(t *testing.T) {
	fp := Build("The model uses a neural encoder. Accuracy was measured once.")
	names := clusterNames(fp.Clusters)
	assert.Contains(t, names, "machine-learning")
	assert.NotContains(t, names, "performance-evaluation", "one member is not enough")
}

func TestContextualImportance(t *testing.T) {
	fp := Build(samplePaper)

	// "neural" occurs once in abstract, once in introduction, once in methods,
	// once in results, once in conclusion: 5 occurrences + 5 sections.
	assert.Equal(t, 10, fp.Importance["neural"])
	assert.NotContains(t, fp.Importance, "for", "words shorter than four letters are ignored")
	assert.Equal(t, 5, fp.SectionsContaining("Neural"))
}

func TestDomainsNeedMoreThanThreeMatches(t *testing.T) {
	three := "The patient, a second patient, and a third patient."
	assert.Empty(t, Build(three).Domains)

	four := three + " A fourth patient."
	assert.Equal(t, []string{"Medicine/Biology"}, Build(four).Domains)
}

func TestIsHeadingLike(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Results", true},
		{"2.1 Experimental Setup", true},
		{"Related Work:", true},
		{"Discussion of the Results", true},
		{"The model converged quickly.", false},
		{"we then trained", false},
		{"", false},
		{strings.Repeat("Long ", 20), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isHeadingLike(tt.line), "isHeadingLike(%q)", tt.line)
	}
}

func TestCountWord(t *testing.T) {
	assert.Equal(t, 2, CountWord("Deep learning and deep learning models", "deep learning"))
	assert.Equal(t, 0, CountWord("modeling", "model"))
	assert.Equal(t, 3, CountWord("data, DATA; Data", "data"))
	assert.Equal(t, 0, CountWord("anything", ""))
}

func clusterNames(cs []Cluster) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return names
}
