package oracle

import "context"

// TokenPrediction is one scored token from a token-classification model.
// Multi-token entities arrive split: the first token carries the clean word,
// continuation tokens carry a "##" prefix meaning "append without a space".
type TokenPrediction struct {
	Word   string  `json:"word"`
	Entity string  `json:"entity"`
	Score  float64 `json:"score"`
}

// LabelScore is one entry of an emotion-classification distribution.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Token is a dependency-annotated token from a parse.
type Token struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
	Dep   string `json:"dep"`
}

// Sentence is one parsed sentence.
type Sentence struct {
	Text   string  `json:"text"`
	Tokens []Token `json:"tokens"`
}

// NER classifies tokens into named-entity categories.
type NER interface {
	TokenClassify(ctx context.Context, text string) ([]TokenPrediction, error)
}

// Emotion scores text against a fixed emotion vocabulary and returns the
// full label distribution, not just the best guess.
type Emotion interface {
	Classify(ctx context.Context, text string) ([]LabelScore, error)
}

// Parser segments text into sentences with per-token dependency annotations.
type Parser interface {
	Parse(ctx context.Context, text string) ([]Sentence, error)
}

// ContinuationMarker prefixes sub-word tokens that continue the previous word.
const ContinuationMarker = "##"
