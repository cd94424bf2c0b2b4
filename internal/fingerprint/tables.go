// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fingerprint

import "regexp"

// Section names in document order.
const (
	SectionAbstract     = "abstract"
	SectionIntroduction = "introduction"
	SectionMethodology  = "methodology"
	SectionResults      = "results"
	SectionDiscussion   = "discussion"
	SectionConclusion   = "conclusion"
)

// SectionNames lists the recognized sections in document order.
var SectionNames = []string{
	SectionAbstract,
	SectionIntroduction,
	SectionMethodology,
	SectionResults,
	SectionDiscussion,
	SectionConclusion,
}

// sectionHeadings locates the start of each section. A heading may carry a
// numeric prefix ("2.1 Methods") and a trailing colon; body text can follow
// on the same line.
var sectionHeadings = map[string]*regexp.Regexp{
	SectionAbstract:     headingPattern(`abstract`),
	SectionIntroduction: headingPattern(`introduction|background`),
	SectionMethodology:  headingPattern(`materials and methods|methodology|methods?|approach`),
	SectionResults:      headingPattern(`results?|findings`),
	SectionDiscussion:   headingPattern(`discussion`),
	SectionConclusion:   headingPattern(`conclusions?|concluding remarks`),
}

func headingPattern(labels string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*(?:\d+(?:\.\d+)*\.?[ \t]+)?(?:` + labels + `)\b[ \t]*[:.]?`)
}

// Technical-term patterns. Shared with the keyword extractor, which weights
// each pattern differently.
var (
	AcronymPattern      = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	SuffixPattern       = regexp.MustCompile(`\b[a-zA-Z]{3,}(?:tion|sion|ment|ity|ism|ology|ometry|ics|ization|ical|ware)\b`)
	AlphanumericPattern = regexp.MustCompile(`\b(?:[a-zA-Z]+\d+|\d+[a-zA-Z]+)[a-zA-Z0-9]*\b`)
	CompoundPattern     = regexp.MustCompile(`\b[a-zA-Z]+(?:-[a-zA-Z]+)+\b`)
)

var (
	frequencyWord  = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)
	importanceWord = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)
)

// Cluster is a named group of related terms from the semantic taxonomy.
type Cluster struct {
	Name    string   `json:"name" yaml:"name"`
	Members []string `json:"members" yaml:"members"`
}

// minClusterMatches is the number of distinct members that must appear for a
// cluster to be included in a fingerprint.
const minClusterMatches = 2

// Taxonomy is the fixed set of semantic clusters, in match order.
var Taxonomy = []Cluster{
	{
		Name:    "research-methodology",
		Members: []string{"methodology", "method", "approach", "experiment", "hypothesis", "survey", "sample", "participants", "procedure", "protocol"},
	},
	{
		Name:    "technical-implementation",
		Members: []string{"implementation", "architecture", "system", "algorithm", "software", "module", "pipeline", "deployment", "infrastructure", "interface"},
	},
	{
		Name:    "statistical-analysis",
		Members: []string{"statistical", "regression", "variance", "correlation", "significance", "distribution", "probability", "mean", "deviation", "estimate"},
	},
	{
		Name:    "machine-learning",
		Members: []string{"learning", "neural", "network", "training", "model", "classification", "dataset", "deep", "prediction", "feature"},
	},
	{
		Name:    "performance-evaluation",
		Members: []string{"performance", "evaluation", "accuracy", "precision", "recall", "benchmark", "efficiency", "latency", "throughput", "metric"},
	},
}

// domain pairs a research-domain label with the pattern counting its
// indicator terms.
type domain struct {
	name    string
	pattern *regexp.Regexp
}

// minDomainMatches is exclusive: a domain needs more matches than this.
const minDomainMatches = 3

var domains = []domain{
	{
		name:    "Computer Science",
		pattern: regexp.MustCompile(`(?i)\b(?:algorithms?|software|computers?|computing|networks?|programming|databases?|neural|machine learning|artificial intelligence|data)\b`),
	},
	{
		name:    "Medicine/Biology",
		pattern: regexp.MustCompile(`(?i)\b(?:patients?|clinical|diseases?|treatments?|medical|cells?|genes?|proteins?|biological|therapy|diagnosis)\b`),
	},
	{
		name:    "Psychology",
		pattern: regexp.MustCompile(`(?i)\b(?:cognitive|behaviou?rs?|psychological|emotions?|emotional|perception|mental|participants?|memory|anxiety)\b`),
	},
	{
		name:    "Economics",
		pattern: regexp.MustCompile(`(?i)\b(?:economic|economy|markets?|prices?|financial|costs?|investments?|trade|inflation|gdp|revenue)\b`),
	},
	{
		name:    "Physics",
		pattern: regexp.MustCompile(`(?i)\b(?:quantum|particles?|energy|physics|velocity|momentum|electrons?|photons?|gravitational|thermodynamics?)\b`),
	},
}
