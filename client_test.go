package geminikit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Validation(t *testing.T) {
	t.Run("gemini requires api key", func(t *testing.T) {
		_, err := NewClient(ClientConfig{Backend: BackendGeminiAPI})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "APIKey is required")
	})

	t.Run("vertex requires project", func(t *testing.T) {
		_, err := NewClient(ClientConfig{Backend: BackendVertexAI})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Project is required")
	})

	t.Run("vertex defaults location", func(t *testing.T) {
		client, err := NewClient(ClientConfig{Backend: BackendVertexAI, Project: "p"})
		require.NoError(t, err)
		assert.Equal(t, "us-central1", client.api.location)
	})

	t.Run("all services wired", func(t *testing.T) {
		client, err := NewClient(ClientConfig{Backend: BackendGeminiAPI, APIKey: "k"})
		require.NoError(t, err)
		assert.NotNil(t, client.Models)
		assert.NotNil(t, client.Chats)
		assert.NotNil(t, client.Caches)
		assert.NotNil(t, client.Files)
		assert.NotNil(t, client.Tunings)
		assert.NotNil(t, client.Live)
	})
}
