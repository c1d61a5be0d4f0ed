package geminikit

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachesCreate_NormalizesModel(t *testing.T) {
	var gotBody map[string]any
	client := newVertexTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":  "projects/my-project/locations/us-central1/cachedContents/c1",
			"model": gotBody["model"],
		})
	}))

	cache, err := client.Caches.Create(context.Background(), &CachedContent{
		Model:       "gemini-2.0-flash",
		DisplayName: "ctx cache",
		Contents:    []*Content{{Role: RoleUser, Parts: []*Part{Text("background")}}},
		TTL:         "3600s",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"projects/my-project/locations/us-central1/publishers/google/models/gemini-2.0-flash",
		gotBody["model"],
		"cache models always root under the project path on Vertex")
	assert.Equal(t, "projects/my-project/locations/us-central1/cachedContents/c1", cache.Name)
}

func TestCachesGetUpdateDelete(t *testing.T) {
	var gotPaths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusOK)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"name": "cachedContents/c1"})
	}))

	cache, err := client.Caches.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "cachedContents/c1", cache.Name)
	assert.Equal(t, "GET /v1beta/cachedContents/c1", gotPaths[len(gotPaths)-1], "short ids complete to the full name")

	_, err = client.Caches.Update(context.Background(), "cachedContents/c1", &CachedContent{TTL: "7200s"})
	require.NoError(t, err)
	assert.Equal(t, "PATCH /v1beta/cachedContents/c1", gotPaths[len(gotPaths)-1])

	require.NoError(t, client.Caches.Delete(context.Background(), "c1"))
	assert.Equal(t, "DELETE /v1beta/cachedContents/c1", gotPaths[len(gotPaths)-1])
}

func TestCachesList(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageToken") == "" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"cachedContents": []any{map[string]any{"name": "cachedContents/a"}},
				"nextPageToken":  "next",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"cachedContents": []any{map[string]any{"name": "cachedContents/b"}},
		})
	}))

	pager, err := client.Caches.List(context.Background())
	require.NoError(t, err)

	var names []string
	for cache, err := range pager.All(context.Background()) {
		require.NoError(t, err)
		names = append(names, cache.Name)
	}
	assert.Equal(t, []string{"cachedContents/a", "cachedContents/b"}, names)
}
