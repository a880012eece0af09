package mood

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"storycue/pkg/oracle"
	"storycue/pkg/utils"
)

// maxInputRunes caps oracle input; the emotion model cannot score longer
// passages reliably.
const maxInputRunes = 512

// Score is one ranked emotion for a passage.
type Score struct {
	Mood       string  `json:"mood"`
	Confidence float64 `json:"confidence"`
}

// Detector ranks emotions in prose via an injected emotion oracle.
type Detector struct {
	emotion oracle.Emotion
}

func NewDetector(emotion oracle.Emotion) *Detector {
	return &Detector{emotion: emotion}
}

// Detect returns the k most probable emotions above threshold, ranked by
// descending confidence with the oracle's order preserved on ties. k <= 0
// keeps every label above threshold. A threshold no label reaches yields an
// empty result, not an error.
func (d *Detector) Detect(ctx context.Context, text string, k int, threshold float64) ([]Score, error) {
	dist, err := d.emotion.Classify(ctx, utils.TruncateRunes(text, maxInputRunes))
	if err != nil {
		return nil, fmt.Errorf("detect mood: %w", err)
	}

	filtered := make([]oracle.LabelScore, 0, len(dist))
	for _, ls := range dist {
		if ls.Score >= threshold {
			filtered = append(filtered, ls)
		}
	}

	slices.SortStableFunc(filtered, func(a, b oracle.LabelScore) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if k > 0 && len(filtered) > k {
		filtered = filtered[:k]
	}

	scores := make([]Score, 0, len(filtered))
	for _, ls := range filtered {
		scores = append(scores, Score{
			Mood:       strings.ToLower(ls.Label),
			Confidence: math.Round(ls.Score*1000) / 1000,
		})
	}
	log.Debug("mood detection done", "labels", len(dist), "kept", len(scores))
	return scores, nil
}

// Top returns the single most probable emotion, or false for a degenerate
// empty distribution.
func (d *Detector) Top(ctx context.Context, text string) (Score, bool, error) {
	scores, err := d.Detect(ctx, text, 1, 0)
	if err != nil {
		return Score{}, false, err
	}
	if len(scores) == 0 {
		return Score{}, false, nil
	}
	return scores[0], true, nil
}
