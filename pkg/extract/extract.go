package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"storycue/pkg/oracle"
)

// Type is a named-entity category.
type Type string

const (
	Person       Type = "PER"
	Location     Type = "LOC"
	Organization Type = "ORG"
	Misc         Type = "MISC"
)

// Entity is a whole-word named entity reconstructed from token predictions.
type Entity struct {
	Text  string  `json:"text"`
	Type  Type    `json:"type"`
	Score float64 `json:"score"`
}

// Extractor finds named entities in prose via an injected NER oracle.
type Extractor struct {
	ner oracle.NER
}

func NewExtractor(ner oracle.NER) *Extractor {
	return &Extractor{ner: ner}
}

// Entities runs the oracle once and merges its sub-word tokens back into
// whole-word entities. Empty oracle output yields an empty result, not an
// error.
func (e *Extractor) Entities(ctx context.Context, text string) ([]Entity, error) {
	preds, err := e.ner.TokenClassify(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extract entities: %w", err)
	}
	entities := merge(preds)
	log.Debug("entity extraction done", "tokens", len(preds), "entities", len(entities))
	return entities, nil
}

// merge walks token predictions in order, gluing continuation tokens onto the
// entity they extend. A merged entity keeps the lowest score among its
// constituent tokens: it is only as confident as its weakest link.
func merge(preds []oracle.TokenPrediction) []Entity {
	var out []Entity
	var cur *Entity

	for _, p := range preds {
		if rest, ok := strings.CutPrefix(p.Word, oracle.ContinuationMarker); ok {
			if cur == nil {
				// Continuation with nothing to continue; treat as a fresh word.
				cur = &Entity{Text: rest, Type: Type(p.Entity), Score: p.Score}
				continue
			}
			cur.Text += rest
			cur.Score = min(cur.Score, p.Score)
			continue
		}

		if cur != nil {
			out = append(out, *cur)
		}
		cur = &Entity{Text: p.Word, Type: Type(p.Entity), Score: p.Score}
	}

	if cur != nil {
		out = append(out, *cur)
	}
	return out
}
