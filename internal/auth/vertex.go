package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// tokenCacheSize bounds the number of distinct credentials a process can
// hold tokens for at once.
const tokenCacheSize = 64

// cachedToken pairs an access token with the source that can refresh it.
type cachedToken struct {
	token       *oauth2.Token
	tokenSource oauth2.TokenSource
}

// VertexTokens mints and caches OAuth2 access tokens for Vertex AI
// requests. Tokens are refreshed shortly before expiry so requests never
// carry a token about to lapse mid-flight.
type VertexTokens struct {
	mu           sync.Mutex
	cache        *lru.Cache[string, *cachedToken]
	logger       *slog.Logger
	refreshAhead time.Duration
}

// NewVertexTokens creates a token cache.
func NewVertexTokens(logger *slog.Logger) (*VertexTokens, error) {
	cache, err := lru.New[string, *cachedToken](tokenCacheSize)
	if err != nil {
		return nil, fmt.Errorf("auth: create token cache: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &VertexTokens{
		cache:        cache,
		logger:       logger,
		refreshAhead: 5 * time.Minute,
	}, nil
}

// Token returns a valid access token for the given credentials file, or for
// application default credentials when the path is empty.
func (v *VertexTokens) Token(ctx context.Context, credentialsFile string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	key := credentialsFile
	if cached, ok := v.cache.Get(key); ok {
		if time.Now().Before(cached.token.Expiry.Add(-v.refreshAhead)) {
			return cached.token.AccessToken, nil
		}
		v.logger.Debug("refreshing vertex access token", "credentials", key)
		token, err := cached.tokenSource.Token()
		if err != nil {
			v.cache.Remove(key)
			return "", fmt.Errorf("auth: refresh token: %w", err)
		}
		cached.token = token
		return token.AccessToken, nil
	}

	source, err := newTokenSource(ctx, credentialsFile)
	if err != nil {
		return "", err
	}
	token, err := source.Token()
	if err != nil {
		return "", fmt.Errorf("auth: fetch token: %w", err)
	}
	v.cache.Add(key, &cachedToken{token: token, tokenSource: source})
	v.logger.Debug("minted vertex access token", "credentials", key, "expires_at", token.Expiry)
	return token.AccessToken, nil
}

func newTokenSource(ctx context.Context, credentialsFile string) (oauth2.TokenSource, error) {
	if credentialsFile == "" {
		creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("auth: default credentials: %w", err)
		}
		return creds.TokenSource, nil
	}
	raw, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("auth: read credentials file: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, raw, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("auth: parse credentials: %w", err)
	}
	return creds.TokenSource, nil
}

// Vertex is a Provider backed by a VertexTokens cache.
type Vertex struct {
	Tokens          *VertexTokens
	CredentialsFile string
}

func (p *Vertex) Apply(ctx context.Context, h http.Header) error {
	token, err := p.Tokens.Token(ctx, p.CredentialsFile)
	if err != nil {
		return err
	}
	h.Set("Authorization", "Bearer "+token)
	return nil
}
