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

// ParserService is a JSON-over-HTTP client for a dependency-parse service
// exposing a single /parse endpoint. It implements Parser.
type ParserService struct {
	client  *http.Client
	baseURL string
}

func NewParserService(baseURL string) *ParserService {
	return &ParserService{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SetHTTPClient swaps the underlying client, mainly for tests.
func (p *ParserService) SetHTTPClient(c *http.Client) { p.client = c }

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Sentences []Sentence `json:"sentences"`
}

// Parse sends text to the service and returns its sentence-segmented,
// dependency-annotated tokens.
func (p *ParserService) Parse(ctx context.Context, text string) ([]Sentence, error) {
	body, err := json.Marshal(parseRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("parse marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/parse", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		const maxErr = 4096
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErr))
		return nil, fmt.Errorf("parse %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var out parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("parse decode: %w", err)
	}
	log.Debug("dependency parse done", "sentences", len(out.Sentences))
	return out.Sentences, nil
}
