package oracle

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
	"github.com/pkoukk/tiktoken-go"

	"storycue/pkg/flight"
	"storycue/pkg/schema"
	"storycue/pkg/utils"
)

// encodings holds tiktoken BPE tables, which are expensive to build. Loaded
// once per model and reused for the lifetime of the process.
var encodings = flight.NewCache(tiktoken.EncodingForModel)

// OpenAI backs all three oracles with chat completions constrained by strict
// structured outputs. Useful where no hosted classification endpoint is
// available.
type OpenAI struct {
	client *openai.Client
	apiKey string
	model  string
}

// NewOpenAI creates an LLM-backed oracle using OpenAI's official Go SDK.
func NewOpenAI(apiKey, model string) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{
		client: &client,
		apiKey: apiKey,
		model:  cmp.Or(model, "gpt-4o-mini"),
	}
}

// ChangeBaseURL points the client at an OpenAI-compatible server.
func (o *OpenAI) ChangeBaseURL(baseURL string) {
	client := openai.NewClient(
		option.WithAPIKey(o.apiKey),
		option.WithBaseURL(baseURL),
	)
	o.client = &client
}

func (o *OpenAI) SetModel(model string) {
	o.model = model
}

func (o *OpenAI) TokenClassify(ctx context.Context, text string) ([]TokenPrediction, error) {
	var payload schema.TokenClassification
	if err := o.complete(ctx, nerSystemPrompt, text, schema.TokenClassificationFormat(), &payload); err != nil {
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

func (o *OpenAI) Classify(ctx context.Context, text string) ([]LabelScore, error) {
	var payload schema.EmotionDistribution
	if err := o.complete(ctx, emotionSystemPrompt, text, schema.EmotionDistributionFormat(), &payload); err != nil {
		return nil, fmt.Errorf("emotion classification: %w", err)
	}

	scores := make([]LabelScore, 0, len(payload.Emotions))
	for _, e := range payload.Emotions {
		scores = append(scores, LabelScore{Label: e.Label, Score: e.Score})
	}
	return scores, nil
}

func (o *OpenAI) Parse(ctx context.Context, text string) ([]Sentence, error) {
	var payload schema.DependencyParse
	if err := o.complete(ctx, parseSystemPrompt, text, schema.DependencyParseFormat(), &payload); err != nil {
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

func (o *OpenAI) complete(ctx context.Context, system, user string, format openai.ChatCompletionNewParamsResponseFormatUnion, out any) error {
	params := openai.ChatCompletionNewParams{
		Model:          o.model,
		ResponseFormat: format,
		Temperature:    openai.Float(0.0),
		TopP:           openai.Float(1.0),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Role: "system",
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: param.Opt[string]{Value: system},
					},
				}},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Role: "user",
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: param.Opt[string]{Value: user},
					},
				},
			},
		},
	}
	params.MaxCompletionTokens = openai.Int(completionBudget(o.model, system+user))

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return fmt.Errorf("openai inference error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return errors.New("no choices returned")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return errors.New("empty completion content")
	}

	if err := json.Unmarshal([]byte(utils.CleanJSON(content)), out); err != nil {
		return fmt.Errorf("decode completion: %w", err)
	}
	return nil
}

// completionBudget sizes the output allowance from the input length. Token
// counting is best effort; on an unknown model the raw length stands in.
func completionBudget(model, input string) int64 {
	budget := int64(len(input))
	if enc, err := encodings.Get(model); err == nil {
		budget = int64(len(enc.Encode(input, nil, nil)))
	} else {
		log.Debug("no tiktoken encoding for model", "model", model, "error", err)
	}
	return max(budget*2, 4096)
}
