// Package auth supplies request credentials for the two backends: a static
// API key for the Gemini Developer API and cached OAuth2 access tokens for
// Vertex AI.
package auth

import (
	"context"
	"net/http"
)

// Provider applies authentication to an outgoing request's headers.
type Provider interface {
	Apply(ctx context.Context, h http.Header) error
}

// APIKey authenticates Gemini Developer API requests.
type APIKey string

func (k APIKey) Apply(_ context.Context, h http.Header) error {
	h.Set("x-goog-api-key", string(k))
	return nil
}
