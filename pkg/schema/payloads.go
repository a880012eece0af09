package schema

// TokenClassification is the structured-output payload of the LLM-backed NER
// oracle. Words may carry a "##" prefix when they continue the previous word.
type TokenClassification struct {
	Tokens []Token `json:"tokens"`
}

type Token struct {
	Word   string  `json:"word"`
	Entity string  `json:"entity" jsonschema:"enum=PER,enum=LOC,enum=ORG,enum=MISC"`
	Score  float64 `json:"score"`
}

// EmotionDistribution is the full label distribution for one passage.
type EmotionDistribution struct {
	Emotions []Emotion `json:"emotions"`
}

type Emotion struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// DependencyParse is a sentence-segmented dependency parse.
type DependencyParse struct {
	Sentences []Sentence `json:"sentences"`
}

type Sentence struct {
	Text   string       `json:"text"`
	Tokens []ParseToken `json:"tokens"`
}

type ParseToken struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
	Dep   string `json:"dep"`
}
