package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
)

func TestParseResult(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want api.InferenceResult
	}{
		{
			name: "clean json",
			raw:  `{"anlass": "Hotel stay client visit", "distance_km": 250, "type": "Hotel"}`,
			want: api.InferenceResult{Purpose: "Hotel stay client visit", DistanceKM: 250, Type: "Hotel"},
		},
		{
			name: "fenced json",
			raw:  "```json\n{\"anlass\": \"Taxi to airport\", \"distance_km\": 12.5, \"type\": \"Public Transport\"}\n```",
			want: api.InferenceResult{Purpose: "Taxi to airport", DistanceKM: 12.5, Type: "Public Transport"},
		},
		{
			name: "missing keys",
			raw:  `{"type": "Parking"}`,
			want: api.InferenceResult{Type: "Parking"},
		},
		{
			name: "distance as string",
			raw:  `{"anlass": "Train ride", "distance_km": "120 km", "type": "Transport"}`,
			want: api.InferenceResult{Purpose: "Train ride", DistanceKM: 120, Type: "Transport"},
		},
		{
			name: "not json at all",
			raw:  "Sorry, I cannot help with that.",
			want: api.InferenceResult{},
		},
		{
			name: "empty",
			raw:  "",
			want: api.InferenceResult{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseResult(tc.raw))
		})
	}
}

func TestOpenAIClient_Infer(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		gotPrompt = req.Messages[0].Content

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{
					"role":    "assistant",
					"content": `{"anlass": "Parking at station", "distance_km": 0, "type": "Parking"}`,
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := &OpenAIClient{BaseURL: srv.URL, Model: "mistral"}
	res, err := client.Infer(context.Background(), api.InferenceRequest{
		Text:     "Parkschein 4,50 €",
		Category: api.CategoryTravel,
		Event:    "Client onsite Munich",
		Language: "en",
	})
	require.NoError(t, err)

	assert.Equal(t, "Parking at station", res.Purpose)
	assert.Equal(t, "Parking", res.Type)
	assert.True(t, strings.Contains(gotPrompt, "Parkschein"))
	assert.True(t, strings.Contains(gotPrompt, "Calendar context: Client onsite Munich"))
}

func TestOpenAIClient_Infer_MalformedAnswerDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "no json here"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := &OpenAIClient{BaseURL: srv.URL, Model: "mistral"}
	res, err := client.Infer(context.Background(), api.InferenceRequest{Text: "x", Category: api.CategoryFood})
	require.NoError(t, err)
	assert.Equal(t, api.InferenceResult{}, res)
}

func TestOpenAIClient_Infer_MissingConfig(t *testing.T) {
	client := &OpenAIClient{}
	_, err := client.Infer(context.Background(), api.InferenceRequest{Text: "x"})
	assert.Error(t, err)
}

func TestBuildPrompt_GermanPurpose(t *testing.T) {
	p := buildPrompt(api.InferenceRequest{Text: "Beleg", Category: api.CategoryFood, Language: "de"})
	assert.Contains(t, p, "in German")
	assert.Contains(t, p, "Expense category: Food")
}
