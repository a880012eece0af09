package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultNERModel is a lightweight BERT fine-tuned for NER.
	DefaultNERModel = "dslim/bert-base-NER"
	// DefaultEmotionModel scores text against a small emotion vocabulary.
	DefaultEmotionModel = "j-hartmann/emotion-english-distilroberta-base"

	defaultHFBaseURL = "https://api-inference.huggingface.co/models"
)

// HuggingFace calls hosted inference endpoints for token classification and
// text classification. It implements NER and Emotion.
type HuggingFace struct {
	client       *http.Client
	baseURL      string
	token        string
	nerModel     string
	emotionModel string
}

type HuggingFaceOption func(*HuggingFace)

// WithBaseURL points the client at a different inference host, e.g. a local
// text-embeddings-inference server.
func WithBaseURL(url string) HuggingFaceOption {
	return func(h *HuggingFace) { h.baseURL = strings.TrimRight(url, "/") }
}

func WithNERModel(model string) HuggingFaceOption {
	return func(h *HuggingFace) { h.nerModel = model }
}

func WithEmotionModel(model string) HuggingFaceOption {
	return func(h *HuggingFace) { h.emotionModel = model }
}

func WithHTTPClient(c *http.Client) HuggingFaceOption {
	return func(h *HuggingFace) { h.client = c }
}

// NewHuggingFace creates a client for the hosted inference API. An empty
// token is allowed for self-hosted endpoints.
func NewHuggingFace(token string, opts ...HuggingFaceOption) *HuggingFace {
	h := &HuggingFace{
		client:       &http.Client{Timeout: 60 * time.Second},
		baseURL:      defaultHFBaseURL,
		token:        token,
		nerModel:     DefaultNERModel,
		emotionModel: DefaultEmotionModel,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type nerPrediction struct {
	Word        string  `json:"word"`
	Entity      string  `json:"entity"`
	EntityGroup string  `json:"entity_group"`
	Score       float64 `json:"score"`
}

// TokenClassify runs the NER model once and returns its token predictions in
// order. Entity tags are normalized to their bare category (B-PER -> PER);
// continuation markers on words are left intact for the caller to merge.
func (h *HuggingFace) TokenClassify(ctx context.Context, text string) ([]TokenPrediction, error) {
	var raw []nerPrediction
	if err := h.post(ctx, h.nerModel, text, &raw); err != nil {
		return nil, fmt.Errorf("token classification: %w", err)
	}
	log.Debug("token classification done", "model", h.nerModel, "tokens", len(raw))

	preds := make([]TokenPrediction, 0, len(raw))
	for _, p := range raw {
		tag := p.EntityGroup
		if tag == "" {
			tag = p.Entity
		}
		preds = append(preds, TokenPrediction{
			Word:   p.Word,
			Entity: normalizeTag(tag),
			Score:  p.Score,
		})
	}
	return preds, nil
}

// Classify runs the emotion model once and returns the full distribution in
// the oracle's original order.
func (h *HuggingFace) Classify(ctx context.Context, text string) ([]LabelScore, error) {
	// The classification endpoint nests the distribution one level deep.
	var raw [][]LabelScore
	if err := h.post(ctx, h.emotionModel, text, &raw); err != nil {
		return nil, fmt.Errorf("emotion classification: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	log.Debug("emotion classification done", "model", h.emotionModel, "labels", len(raw[0]))
	return raw[0], nil
}

func (h *HuggingFace) post(ctx context.Context, model, text string, out any) error {
	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/"+model, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		const maxErr = 4096
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErr))
		return fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// normalizeTag strips IOB prefixes so merging sees bare categories.
func normalizeTag(tag string) string {
	tag = strings.ToUpper(tag)
	if rest, ok := strings.CutPrefix(tag, "B-"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(tag, "I-"); ok {
		return rest
	}
	return tag
}
