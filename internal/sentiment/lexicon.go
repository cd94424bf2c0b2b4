// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentiment

import "github.com/pdiddy/docsight/pkg/types"

// Word lists matched by substring against lowercase tokens, so "improve"
// also counts "improvements".
var (
	positiveWords = []string{
		"excellent", "outstanding", "breakthrough", "success", "effective",
		"improve", "innovative", "significant", "robust", "superior",
		"promising", "beneficial", "advantage", "strong", "positive",
		"remarkable", "efficient", "accurate", "achieve", "great",
	}

	negativeWords = []string{
		"fail", "poor", "weak", "problem", "issue",
		"concern", "limitation", "error", "difficult", "negative",
		"decline", "loss", "risk", "worse", "worst",
		"inadequate", "insufficient", "flaw", "drawback", "unfortunately",
	}

	neutralWords = []string{
		"analysis", "method", "data", "result", "study",
		"research", "approach", "model", "experiment", "observe",
		"measure", "evaluate", "investigate",
	}
)

var emotionalTones = map[types.Sentiment]string{
	types.SentimentPositive: "Optimistic and confident",
	types.SentimentNegative: "Critical and cautious",
	types.SentimentNeutral:  "Objective and analytical",
	types.SentimentMixed:    "Balanced, weighing strengths against concerns",
}

var audiencePerceptions = map[types.Sentiment]string{
	types.SentimentPositive: "Readers are likely to come away with a favorable impression of the work.",
	types.SentimentNegative: "Readers are likely to focus on the problems and limitations the document raises.",
	types.SentimentNeutral:  "Readers are likely to treat the document as an informational, factual account.",
	types.SentimentMixed:    "Readers are likely to see both promise and open concerns in the document.",
}
