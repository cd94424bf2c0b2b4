// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

// stopwords are common English words that never become keywords.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "against": {}, "all": {},
	"also": {}, "although": {}, "am": {}, "among": {}, "an": {}, "and": {}, "any": {},
	"are": {}, "as": {}, "at": {}, "be": {}, "because": {}, "been": {}, "before": {},
	"being": {}, "below": {}, "between": {}, "both": {}, "but": {}, "by": {}, "can": {},
	"could": {}, "did": {}, "do": {}, "does": {}, "doing": {}, "down": {}, "during": {},
	"each": {}, "either": {}, "et": {}, "etc": {}, "few": {}, "for": {}, "from": {},
	"further": {}, "had": {}, "has": {}, "have": {}, "having": {}, "he": {}, "her": {},
	"here": {}, "hers": {}, "him": {}, "his": {}, "how": {}, "however": {}, "i": {},
	"if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {}, "itself": {}, "just": {},
	"may": {}, "might": {}, "more": {}, "most": {}, "much": {}, "must": {}, "my": {},
	"no": {}, "nor": {}, "not": {}, "now": {}, "of": {}, "off": {}, "often": {}, "on": {},
	"once": {}, "only": {}, "or": {}, "other": {}, "our": {}, "ours": {}, "out": {},
	"over": {}, "own": {}, "same": {}, "shall": {}, "she": {}, "should": {}, "since": {},
	"so": {}, "some": {}, "such": {}, "than": {}, "that": {}, "the": {}, "their": {},
	"them": {}, "then": {}, "there": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"through": {}, "thus": {}, "to": {}, "too": {}, "under": {}, "until": {}, "up": {},
	"upon": {}, "use": {}, "used": {}, "using": {}, "very": {}, "was": {}, "we": {},
	"were": {}, "what": {}, "when": {}, "where": {}, "whether": {}, "which": {},
	"while": {}, "who": {}, "whom": {}, "why": {}, "will": {}, "with": {}, "within": {},
	"without": {}, "would": {}, "yet": {}, "you": {}, "your": {},
	// Frequent in papers but carry no topic.
	"figure": {}, "table": {}, "section": {}, "paper": {}, "shown": {}, "show": {},
	"shows": {}, "based": {}, "well": {}, "first": {}, "second": {}, "third": {},
	"one": {}, "two": {}, "three": {}, "new": {}, "given": {}, "like": {}, "different": {},
	"several": {}, "many": {}, "following": {}, "able": {}, "thing": {}, "things": {},
}

// isStopword reports whether the lowercase word w is a stopword.
func isStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}

// vocabularyWeight scores each occurrence of a fixed vocabulary term.
const vocabularyWeight = 0.6

// vocabulary is a fixed list of terms that are always worth surfacing.
var vocabulary = []string{
	"algorithm", "analysis", "architecture", "classification", "clustering",
	"dataset", "deep learning", "evaluation", "framework", "hypothesis",
	"inference", "machine learning", "methodology", "model", "neural network",
	"optimization", "performance", "prediction", "regression", "reinforcement learning",
	"simulation", "statistical significance", "supervised learning", "training", "validation",
}

// phraseList is a curated list of multi-word terms sharing one weight.
type phraseList struct {
	weight  float64
	phrases []string
}

var curatedPhrases = []phraseList{
	{
		// Technical.
		weight: 0.9,
		phrases: []string{
			"artificial intelligence", "natural language processing", "computer vision",
			"convolutional neural network", "recurrent neural network", "large language model",
			"gradient descent", "transfer learning", "attention mechanism", "feature extraction",
			"data mining", "cloud computing", "distributed system",
		},
	},
	{
		// Medical and biological.
		weight: 0.8,
		phrases: []string{
			"clinical trial", "randomized controlled trial", "gene expression",
			"immune response", "risk factor", "public health", "blood pressure",
			"cell line", "drug discovery",
		},
	},
	{
		// Research design.
		weight: 0.7,
		phrases: []string{
			"control group", "sample size", "case study", "literature review",
			"systematic review", "cross validation", "ablation study", "user study",
		},
	},
	{
		// General academic.
		weight: 0.6,
		phrases: []string{
			"research question", "future work", "related work", "empirical evidence",
			"theoretical framework", "experimental results", "significant difference",
		},
	},
}

// ngramWeight scores each occurrence of a repeated dynamic n-gram.
const ngramWeight = 0.5

// minNgramCount is the number of occurrences a dynamic n-gram needs.
const minNgramCount = 2

// stopPhrases are n-grams that repeat often without naming anything.
var stopPhrases = map[string]struct{}{
	"in this paper": {}, "in this study": {}, "in this work": {}, "as well as": {},
	"in order to": {}, "on the other hand": {}, "the other hand": {}, "for example": {},
	"such as the": {}, "due to the": {}, "based on the": {}, "the use of": {},
	"et al": {}, "this paper": {}, "this study": {}, "this work": {},
	"the results": {}, "our results": {}, "the proposed": {}, "we propose": {},
}
