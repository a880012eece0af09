package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedHuggingFace(t *testing.T, opts ...HuggingFaceOption) *HuggingFace {
	t.Helper()
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewHuggingFace("test-token", append(opts, WithHTTPClient(client))...)
}

func TestHuggingFace_TokenClassify(t *testing.T) {
	hf := newMockedHuggingFace(t)

	httpmock.RegisterResponder(http.MethodPost,
		defaultHFBaseURL+"/"+DefaultNERModel,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, []map[string]any{
			{"word": "Har", "entity": "B-PER", "score": 0.9},
			{"word": "##ry", "entity": "I-PER", "score": 0.95},
			{"word": "London", "entity_group": "LOC", "score": 0.97},
		}))

	preds, err := hf.TokenClassify(context.Background(), "Harry went to London.")

	require.NoError(t, err)
	require.Len(t, preds, 3)
	// IOB prefixes normalized, continuation markers preserved.
	assert.Equal(t, TokenPrediction{Word: "Har", Entity: "PER", Score: 0.9}, preds[0])
	assert.Equal(t, TokenPrediction{Word: "##ry", Entity: "PER", Score: 0.95}, preds[1])
	assert.Equal(t, TokenPrediction{Word: "London", Entity: "LOC", Score: 0.97}, preds[2])
}

func TestHuggingFace_TokenClassify_SendsAuthAndInputs(t *testing.T) {
	hf := newMockedHuggingFace(t)

	httpmock.RegisterResponder(http.MethodPost,
		defaultHFBaseURL+"/"+DefaultNERModel,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			var body inferenceRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "some passage", body.Inputs)
			return httpmock.NewJsonResponse(http.StatusOK, []map[string]any{})
		})

	preds, err := hf.TokenClassify(context.Background(), "some passage")

	require.NoError(t, err)
	assert.Empty(t, preds)
}

func TestHuggingFace_TokenClassify_HTTPError(t *testing.T) {
	hf := newMockedHuggingFace(t)

	httpmock.RegisterResponder(http.MethodPost,
		defaultHFBaseURL+"/"+DefaultNERModel,
		httpmock.NewStringResponder(http.StatusServiceUnavailable, `{"error":"model loading"}`))

	_, err := hf.TokenClassify(context.Background(), "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model loading")
}

func TestHuggingFace_Classify(t *testing.T) {
	hf := newMockedHuggingFace(t)

	httpmock.RegisterResponder(http.MethodPost,
		defaultHFBaseURL+"/"+DefaultEmotionModel,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, [][]map[string]any{{
			{"label": "joy", "score": 0.964},
			{"label": "love", "score": 0.012},
		}}))

	dist, err := hf.Classify(context.Background(), "What a day!")

	require.NoError(t, err)
	require.Len(t, dist, 2)
	assert.Equal(t, LabelScore{Label: "joy", Score: 0.964}, dist[0])
	assert.Equal(t, LabelScore{Label: "love", Score: 0.012}, dist[1])
}

func TestHuggingFace_Classify_EmptyResponse(t *testing.T) {
	hf := newMockedHuggingFace(t)

	httpmock.RegisterResponder(http.MethodPost,
		defaultHFBaseURL+"/"+DefaultEmotionModel,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, [][]map[string]any{}))

	dist, err := hf.Classify(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, dist)
}

func TestHuggingFace_Options(t *testing.T) {
	hf := newMockedHuggingFace(t,
		WithBaseURL("http://localhost:8080/models/"),
		WithNERModel("custom/ner"),
	)

	httpmock.RegisterResponder(http.MethodPost,
		"http://localhost:8080/models/custom/ner",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, []map[string]any{
			{"word": "Paris", "entity_group": "LOC", "score": 0.91},
		}))

	preds, err := hf.TokenClassify(context.Background(), "Paris")

	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, "LOC", preds[0].Entity)
}

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"B-PER", "PER"},
		{"I-PER", "PER"},
		{"LOC", "LOC"},
		{"b-org", "ORG"},
		{"misc", "MISC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeTag(tt.in), tt.in)
	}
}
