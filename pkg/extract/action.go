package extract

import (
	"context"
	"fmt"
	"strings"

	"storycue/pkg/oracle"
)

// ActionExtractor finds the main verb of a passage via an injected parser
// oracle.
type ActionExtractor struct {
	parser oracle.Parser
}

func NewActionExtractor(parser oracle.Parser) *ActionExtractor {
	return &ActionExtractor{parser: parser}
}

// Action returns the lowercased lemma of the first sentence's root verb.
// The second return is false when the text has no sentences or the first
// sentence has no verb-rooted token; that is an absent action, not an error.
func (a *ActionExtractor) Action(ctx context.Context, text string) (string, bool, error) {
	sentences, err := a.parser.Parse(ctx, text)
	if err != nil {
		return "", false, fmt.Errorf("extract action: %w", err)
	}
	if len(sentences) == 0 {
		return "", false, nil
	}

	for _, tok := range sentences[0].Tokens {
		if tok.Dep == "ROOT" && strings.HasPrefix(tok.POS, "V") {
			return strings.ToLower(tok.Lemma), true, nil
		}
	}
	return "", false, nil
}
