package geminikit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientConfig{
		Backend: BackendGeminiAPI,
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)
	return client, srv
}

func newVertexTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientConfig{
		Backend:  BackendVertexAI,
		Project:  "my-project",
		Location: "us-central1",
		BaseURL:  srv.URL,
	})
	require.NoError(t, err)
	client.api.provider = fakeProvider{}
	return client
}

// fakeProvider avoids real OAuth token fetches in Vertex tests.
type fakeProvider struct{}

func (fakeProvider) Apply(_ context.Context, h http.Header) error {
	h.Set("Authorization", "Bearer fake-token")
	return nil
}

func TestGenerateContent(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": "hello there"}},
					},
					"finishReason": "STOP",
				},
			},
			"usageMetadata": map[string]any{
				"promptTokenCount":     float64(3),
				"candidatesTokenCount": float64(5),
			},
		})
	}))

	resp, err := client.Models.GenerateContent(context.Background(), "gemini-2.0-flash",
		[]*Content{{Role: RoleUser, Parts: []*Part{Text("hi")}}}, nil)
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", gotPath)
	assert.Equal(t, "hello there", resp.Text())
	require.NotNil(t, resp.UsageMetadata, "candidatesTokenCount should relocate to responseTokenCount")
	assert.Equal(t, int32(5), resp.UsageMetadata.ResponseTokenCount)

	contents, ok := gotBody["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 1)
}

func TestGenerateContent_ConfigSplit(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))

	temp := 0.5
	config := &GenerateContentConfig{
		Temperature:       &temp,
		SystemInstruction: &Content{Parts: []*Part{Text("be brief")}},
	}
	_, err := client.Models.GenerateContent(context.Background(), "gemini-2.0-flash",
		[]*Content{{Role: RoleUser, Parts: []*Part{Text("hi")}}}, config)
	require.NoError(t, err)

	genConfig, ok := gotBody["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 0.5, genConfig["temperature"])

	_, hoisted := gotBody["systemInstruction"]
	assert.True(t, hoisted, "system instruction belongs at the request root")
}

func TestGenerateContent_VertexURL(t *testing.T) {
	var gotPath string
	client := newVertexTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "Bearer fake-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))

	_, err := client.Models.GenerateContent(context.Background(), "gemini-2.0-flash",
		[]*Content{{Role: RoleUser, Parts: []*Part{Text("hi")}}}, nil)
	require.NoError(t, err)

	assert.Equal(t,
		"/v1beta1/projects/my-project/locations/us-central1/publishers/google/models/gemini-2.0-flash:generateContent",
		gotPath)
}

func TestGenerateContent_ClientAndServerErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantClient bool
	}{
		{"bad request", http.StatusBadRequest, true},
		{"unauthorized", http.StatusUnauthorized, true},
		{"internal error", http.StatusInternalServerError, false},
		{"unavailable", http.StatusServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{
						"code":    tt.statusCode,
						"status":  "FAILED",
						"message": "backend rejected the request",
					},
				})
			}))

			_, err := client.Models.GenerateContent(context.Background(), "gemini-2.0-flash",
				[]*Content{{Role: RoleUser, Parts: []*Part{Text("hi")}}}, nil)
			require.Error(t, err)

			var clientErr *ClientError
			var serverErr *ServerError
			if tt.wantClient {
				require.ErrorAs(t, err, &clientErr)
				assert.Equal(t, tt.statusCode, clientErr.Code)
				assert.Contains(t, clientErr.Message, "backend rejected")
			} else {
				require.ErrorAs(t, err, &serverErr)
				assert.Equal(t, tt.statusCode, serverErr.Code)
			}
		})
	}
}

func TestGenerateContentStream(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "alt=sse")
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w,
			"data: {\"candidates\": [{\"content\": {\"role\": \"model\", \"parts\": [{\"text\": \"hel\"}]}}]}\n\n",
			"data: {\"candidates\": [{\"content\": {\"role\": \"model\", \"parts\": [{\"text\": \"lo\"}]}}]}\n\n",
		)
	}))

	var texts []string
	for resp, err := range client.Models.GenerateContentStream(context.Background(), "gemini-2.0-flash",
		[]*Content{{Role: RoleUser, Parts: []*Part{Text("hi")}}}, nil) {
		require.NoError(t, err)
		texts = append(texts, resp.Text())
	}
	assert.Equal(t, []string{"hel", "lo"}, texts)
}

func TestGenerateContentStream_EmbeddedError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w,
			"data: {\"candidates\": [{\"content\": {\"role\": \"model\", \"parts\": [{\"text\": \"partial\"}]}}]}\n\n",
			"data: {\"error\": {\"code\": 429, \"status\": \"RESOURCE_EXHAUSTED\", \"message\": \"quota exceeded\"}}\n\n",
		)
	}))

	var texts []string
	var streamErr error
	for resp, err := range client.Models.GenerateContentStream(context.Background(), "gemini-2.0-flash",
		[]*Content{{Role: RoleUser, Parts: []*Part{Text("hi")}}}, nil) {
		if err != nil {
			streamErr = err
			break
		}
		texts = append(texts, resp.Text())
	}

	assert.Equal(t, []string{"partial"}, texts, "frames before the error still yield")
	require.Error(t, streamErr)
	var clientErr *ClientError
	require.ErrorAs(t, streamErr, &clientErr)
	assert.Equal(t, 429, clientErr.Code)
	assert.Contains(t, clientErr.Message, "quota exceeded")
}

func TestCountTokens(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, ":countTokens")
		_ = json.NewEncoder(w).Encode(map[string]any{"totalTokens": float64(42)})
	}))

	resp, err := client.Models.CountTokens(context.Background(), "gemini-2.0-flash",
		[]*Content{{Role: RoleUser, Parts: []*Part{Text("hi")}}})
	require.NoError(t, err)
	assert.Equal(t, int32(42), resp.TotalTokens)
}

func TestModelsGetAndList(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v1beta/models/gemini-2.0-flash":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"name":                       "models/gemini-2.0-flash",
				"version":                    "2.0",
				"supportedGenerationMethods": []any{"generateContent"},
			})
		case r.URL.Path == "/v1beta/models" && r.URL.Query().Get("pageToken") == "":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"models":        []any{map[string]any{"name": "models/a"}},
				"nextPageToken": "page-2",
			})
		default:
			assert.Equal(t, "page-2", r.URL.Query().Get("pageToken"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"models": []any{map[string]any{"name": "models/b"}},
			})
		}
	}))

	t.Run("get", func(t *testing.T) {
		model, err := client.Models.Get(context.Background(), "gemini-2.0-flash")
		require.NoError(t, err)
		assert.Equal(t, "models/gemini-2.0-flash", model.Name)
		assert.Equal(t, "2.0", model.Version)
		assert.Equal(t, []string{"generateContent"}, model.SupportedActions,
			"supportedGenerationMethods should canonicalize to supportedActions")
	})

	t.Run("list all pages", func(t *testing.T) {
		pager, err := client.Models.List(context.Background())
		require.NoError(t, err)

		var names []string
		for model, err := range pager.All(context.Background()) {
			require.NoError(t, err)
			names = append(names, model.Name)
		}
		assert.Equal(t, []string{"models/a", "models/b"}, names)
	})
}

func TestEmbedContent(t *testing.T) {
	t.Run("gemini", func(t *testing.T) {
		var gotBody map[string]any
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, ":embedContent")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"embedding": map[string]any{"values": []any{0.1, 0.2}},
			})
		}))

		resp, err := client.Models.EmbedContent(context.Background(), "text-embedding-004",
			&Content{Parts: []*Part{Text("hello")}},
			&EmbedContentConfig{TaskType: "RETRIEVAL_QUERY"})
		require.NoError(t, err)

		assert.Equal(t, "RETRIEVAL_QUERY", gotBody["taskType"])
		require.Len(t, resp.Embeddings, 1)
		assert.Equal(t, []float64{0.1, 0.2}, resp.Embeddings[0].Values)
	})

	t.Run("vertex", func(t *testing.T) {
		var gotBody map[string]any
		client := newVertexTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, ":predict")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"predictions": []any{
					map[string]any{"embeddings": map[string]any{"values": []any{0.3}}},
				},
			})
		}))

		resp, err := client.Models.EmbedContent(context.Background(), "text-embedding-004",
			&Content{Parts: []*Part{Text("hello")}},
			&EmbedContentConfig{TaskType: "RETRIEVAL_QUERY"})
		require.NoError(t, err)

		instances, ok := gotBody["instances"].([]any)
		require.True(t, ok, "vertex embed options split into instances")
		first, ok := instances[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "RETRIEVAL_QUERY", first["task_type"])
		assert.Equal(t, "hello", first["content"])

		require.Len(t, resp.Embeddings, 1)
		assert.Equal(t, []float64{0.3}, resp.Embeddings[0].Values)
	})
}

func TestGenerateImages(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, ":predict")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"predictions": []any{
				map[string]any{"bytesBase64Encoded": "aW1n", "mimeType": "image/png"},
			},
		})
	}))

	resp, err := client.Models.GenerateImages(context.Background(), "imagen-3.0", "a lighthouse",
		&GenerateImagesConfig{NumberOfImages: 2})
	require.NoError(t, err)

	params, ok := gotBody["parameters"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), params["sampleCount"])

	require.Len(t, resp.GeneratedImages, 1)
	require.NotNil(t, resp.GeneratedImages[0].Image)
	assert.Equal(t, "image/png", resp.GeneratedImages[0].Image.MIMEType)
	assert.Equal(t, []byte("img"), resp.GeneratedImages[0].Image.ImageBytes)
}
