// Package geminikit is a client SDK for the Gemini Developer API and
// Vertex AI generative backends. One canonical request/response vocabulary
// covers both; a mapping engine translates payloads into whichever wire
// dialect the configured backend speaks.
package geminikit

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mixaill76/geminikit/internal/auth"
	"github.com/mixaill76/geminikit/internal/dialect"
	"github.com/mixaill76/geminikit/internal/httputil"
)

// Backend selects which API variant the client talks to.
type Backend int

const (
	// BackendGeminiAPI is the Gemini Developer API (API-key auth).
	BackendGeminiAPI Backend = iota
	// BackendVertexAI is Vertex AI (OAuth2 auth, project/location scoped).
	BackendVertexAI
)

// ClientConfig configures a Client. Zero value is not usable: Gemini needs
// APIKey, Vertex needs Project.
type ClientConfig struct {
	Backend Backend

	// APIKey authenticates against the Gemini Developer API.
	APIKey string

	// Project and Location scope Vertex AI requests.
	Project  string
	Location string

	// CredentialsFile is an optional service-account JSON for Vertex.
	// Application default credentials are used when empty.
	CredentialsFile string

	// BaseURL overrides the backend endpoint, mainly for testing.
	BaseURL string

	// HTTPClient overrides the default transport-tuned client.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client is the SDK entry point. Resource services share one API client.
type Client struct {
	Models  *Models
	Chats   *Chats
	Caches  *Caches
	Files   *Files
	Tunings *Tunings
	Live    *Live

	api *apiClient
}

// NewClient validates the config and builds a client for the selected
// backend.
func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var d dialect.Dialect
	var provider auth.Provider
	switch cfg.Backend {
	case BackendGeminiAPI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("geminikit: APIKey is required for the Gemini backend")
		}
		d = dialect.GeminiAPI
		provider = auth.APIKey(cfg.APIKey)
	case BackendVertexAI:
		if cfg.Project == "" {
			return nil, fmt.Errorf("geminikit: Project is required for the Vertex backend")
		}
		if cfg.Location == "" {
			cfg.Location = "us-central1"
		}
		d = dialect.VertexAI
		tokens, err := auth.NewVertexTokens(logger)
		if err != nil {
			return nil, err
		}
		provider = &auth.Vertex{
			Tokens:          tokens,
			CredentialsFile: cfg.CredentialsFile,
		}
	default:
		return nil, fmt.Errorf("geminikit: unknown backend %d", cfg.Backend)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = httputil.NewClient(nil)
	}

	api := &apiClient{
		dialect:    d,
		project:    cfg.Project,
		location:   cfg.Location,
		baseURL:    cfg.BaseURL,
		provider:   provider,
		httpClient: httpClient,
		logger:     logger,
	}

	c := &Client{api: api}
	c.Models = &Models{api: api}
	c.Chats = &Chats{models: c.Models}
	c.Caches = &Caches{api: api}
	c.Files = &Files{api: api}
	c.Tunings = &Tunings{api: api}
	c.Live = &Live{api: api}
	return c, nil
}
