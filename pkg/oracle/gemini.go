package oracle

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"storycue/pkg/schema"
	"storycue/pkg/utils"
)

// Gemini backs all three oracles with Gemini JSON-mode completions, sharing
// the OpenAI backend's prompts and payload schemas.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &Gemini{
		client: client,
		model:  cmp.Or(model, "gemini-2.5-flash"),
	}, nil
}

func (g *Gemini) TokenClassify(ctx context.Context, text string) ([]TokenPrediction, error) {
	var payload schema.TokenClassification
	if err := g.complete(ctx, nerSystemPrompt, text, &payload); err != nil {
		return nil, fmt.Errorf("token classification: %w", err)
	}

	preds := make([]TokenPrediction, 0, len(payload.Tokens))
	for _, t := range payload.Tokens {
		preds = append(preds, TokenPrediction{
			Word:   t.Word,
			Entity: normalizeTag(t.Entity),
			Score:  t.Score,
		})
	}
	return preds, nil
}

func (g *Gemini) Classify(ctx context.Context, text string) ([]LabelScore, error) {
	var payload schema.EmotionDistribution
	if err := g.complete(ctx, emotionSystemPrompt, text, &payload); err != nil {
		return nil, fmt.Errorf("emotion classification: %w", err)
	}

	scores := make([]LabelScore, 0, len(payload.Emotions))
	for _, e := range payload.Emotions {
		scores = append(scores, LabelScore{Label: e.Label, Score: e.Score})
	}
	return scores, nil
}

func (g *Gemini) Parse(ctx context.Context, text string) ([]Sentence, error) {
	var payload schema.DependencyParse
	if err := g.complete(ctx, parseSystemPrompt, text, &payload); err != nil {
		return nil, fmt.Errorf("dependency parse: %w", err)
	}

	sentences := make([]Sentence, 0, len(payload.Sentences))
	for _, s := range payload.Sentences {
		tokens := make([]Token, 0, len(s.Tokens))
		for _, t := range s.Tokens {
			tokens = append(tokens, Token{Text: t.Text, Lemma: t.Lemma, POS: t.POS, Dep: t.Dep})
		}
		sentences = append(sentences, Sentence{Text: s.Text, Tokens: tokens})
	}
	return sentences, nil
}

func (g *Gemini) complete(ctx context.Context, system, user string, out any) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleModel),
		ResponseMIMEType:  "application/json",
		MaxOutputTokens:   4096,
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(user), config)
	if err != nil {
		return fmt.Errorf("failed to generate content: %w", err)
	}
	content := result.Text()
	if content == "" {
		return errors.New("empty completion content")
	}

	if err := json.Unmarshal([]byte(utils.CleanJSON(content)), out); err != nil {
		return fmt.Errorf("decode completion: %w", err)
	}
	return nil
}
