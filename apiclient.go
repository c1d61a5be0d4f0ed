package geminikit

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mixaill76/geminikit/internal/auth"
	"github.com/mixaill76/geminikit/internal/dialect"
	"github.com/mixaill76/geminikit/internal/logger"
	"github.com/mixaill76/geminikit/internal/monitoring"
)

const (
	geminiBaseURL    = "https://generativelanguage.googleapis.com"
	geminiAPIVersion = "v1beta"
	vertexAPIVersion = "v1beta1"
)

// apiClient performs the HTTP calls behind every resource service. It owns
// URL construction for both backends, auth header application, unary JSON
// calls, and SSE streaming.
type apiClient struct {
	dialect    dialect.Dialect
	project    string
	location   string
	baseURL    string
	provider   auth.Provider
	httpClient *http.Client
	logger     *slog.Logger
}

// transformContext returns the dialect context used by the mapping engine,
// optionally carrying a parent map for sibling-path writes.
func (a *apiClient) transformContext(parent map[string]any) *dialect.Context {
	return &dialect.Context{
		Dialect:  a.dialect,
		Project:  a.project,
		Location: a.location,
		Parent:   parent,
	}
}

// buildURL resolves a resource path against the backend endpoint.
// Format (Gemini): {base_url}/v1beta/{path}
// Format (Vertex): https://{location}-aiplatform.googleapis.com/v1beta1/projects/{project}/locations/{location}/{path}
// The "global" location drops the regional host prefix.
func (a *apiClient) buildURL(path string) string {
	if a.dialect == dialect.VertexAI {
		base := a.baseURL
		if base == "" {
			if a.location == "global" {
				base = "https://aiplatform.googleapis.com"
			} else {
				base = fmt.Sprintf("https://%s-aiplatform.googleapis.com", a.location)
			}
		}
		base = strings.TrimSuffix(base, "/")
		if strings.HasPrefix(path, "projects/") {
			return fmt.Sprintf("%s/%s/%s", base, vertexAPIVersion, path)
		}
		return fmt.Sprintf("%s/%s/projects/%s/locations/%s/%s",
			base, vertexAPIVersion, a.project, a.location, path)
	}

	base := a.baseURL
	if base == "" {
		base = geminiBaseURL
	}
	base = strings.TrimSuffix(base, "/")
	return fmt.Sprintf("%s/%s/%s", base, geminiAPIVersion, path)
}

// parentResource is the fully-qualified resource parent, empty on Gemini.
func (a *apiClient) parentResource() string {
	if a.dialect != dialect.VertexAI {
		return ""
	}
	return fmt.Sprintf("projects/%s/locations/%s", a.project, a.location)
}

func (a *apiClient) newRequest(ctx context.Context, method, url string, body map[string]any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if err := a.provider.Apply(ctx, req.Header); err != nil {
		return nil, fmt.Errorf("failed to apply credentials: %w", err)
	}

	return req, nil
}

// debugMaxFieldLength caps string values in debug-logged payloads. Known
// binary fields (inline media, generated images) are cut harder.
const debugMaxFieldLength = 500

// debugPayload renders a request body for debug logs with long and binary
// fields truncated.
func debugPayload(body map[string]any) string {
	if body == nil {
		return ""
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return ""
	}
	return logger.TruncateLongFields(string(encoded), debugMaxFieldLength)
}

// request performs a unary JSON call and decodes the response body.
// A nil body map is returned for empty responses (e.g. DELETE).
func (a *apiClient) request(ctx context.Context, method, path string, body map[string]any) (map[string]any, error) {
	url := a.buildURL(path)
	endpoint := endpointLabel(path)
	start := time.Now()

	req, err := a.newRequest(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	if a.logger.Enabled(ctx, slog.LevelDebug) {
		a.logger.Debug("API request",
			"method", method, "url", url, "dialect", a.dialect.String(),
			"body", debugPayload(body))
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if a.logger.Enabled(ctx, slog.LevelDebug) {
		a.logger.Debug("API response",
			"status", resp.StatusCode, "url", url,
			"body", logger.TruncateLongFields(string(respBody), debugMaxFieldLength))
	}

	monitoring.ObserveRequest(a.dialect.String(), endpoint, resp.StatusCode, start)

	if resp.StatusCode >= 400 {
		return nil, apiErrorFrom(resp.StatusCode, respBody)
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil, nil
	}

	var decoded map[string]any
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return decoded, nil
}

// stream performs an SSE call (`alt=sse`) and yields one decoded record per
// `data:` line. An `error` payload embedded mid-stream stops iteration with
// an APIError instead of yielding the frame.
func (a *apiClient) stream(ctx context.Context, method, path string, body map[string]any) iter.Seq2[map[string]any, error] {
	return func(yield func(map[string]any, error) bool) {
		url := a.buildURL(path)
		endpoint := endpointLabel(path)
		start := time.Now()

		req, err := a.newRequest(ctx, method, url, body)
		if err != nil {
			yield(nil, err)
			return
		}
		req.Header.Set("Accept", "text/event-stream")

		if a.logger.Enabled(ctx, slog.LevelDebug) {
			a.logger.Debug("API stream request",
				"method", method, "url", url, "dialect", a.dialect.String(),
				"body", debugPayload(body))
		}

		resp, err := a.httpClient.Do(req)
		if err != nil {
			yield(nil, fmt.Errorf("request failed: %w", err))
			return
		}
		defer func() { _ = resp.Body.Close() }()

		monitoring.ObserveRequest(a.dialect.String(), endpoint, resp.StatusCode, start)

		if resp.StatusCode >= 400 {
			respBody, readErr := io.ReadAll(resp.Body)
			if readErr != nil {
				yield(nil, fmt.Errorf("failed to read error response: %w", readErr))
				return
			}
			yield(nil, apiErrorFrom(resp.StatusCode, respBody))
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if !strings.HasPrefix(line, "data:") {
				continue
			}
			payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if payload == "" {
				continue
			}

			var chunk map[string]any
			if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
				yield(nil, fmt.Errorf("failed to decode stream chunk: %w", err))
				return
			}

			if errPayload, ok := chunk["error"].(map[string]any); ok {
				yield(nil, streamAPIError(errPayload))
				return
			}

			monitoring.StreamChunksTotal.WithLabelValues(a.dialect.String()).Inc()
			if !yield(chunk, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(nil, fmt.Errorf("stream read error: %w", err))
		}
	}
}

// endpointLabel reduces a resource path to a low-cardinality metric label:
// the method suffix after ":" when present, otherwise the leading collection
// segment.
func endpointLabel(path string) string {
	if _, method, ok := strings.Cut(path, ":"); ok {
		method, _, _ = strings.Cut(method, "?")
		return method
	}
	segment, _, _ := strings.Cut(path, "/")
	segment, _, _ = strings.Cut(segment, "?")
	return segment
}
