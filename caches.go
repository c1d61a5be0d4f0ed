package geminikit

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mixaill76/geminikit/internal/dialect"
)

// Caches manages server-side cached content.
type Caches struct {
	api *apiClient
}

func (c *Caches) toWire(cache *CachedContent) (map[string]any, error) {
	record, err := toRecord(cache)
	if err != nil {
		return nil, err
	}
	return dialect.ToWire(c.api.transformContext(nil), dialect.CachedContentConcept, record)
}

func (c *Caches) fromWire(wire map[string]any) (*CachedContent, error) {
	canonical, err := dialect.FromWire(c.api.transformContext(nil), dialect.CachedContentConcept, wire)
	if err != nil {
		return nil, err
	}
	return fromRecord[CachedContent](canonical)
}

// Create stores new cached content.
func (c *Caches) Create(ctx context.Context, cache *CachedContent) (*CachedContent, error) {
	body, err := c.toWire(cache)
	if err != nil {
		return nil, err
	}

	resp, err := c.api.request(ctx, http.MethodPost, "cachedContents", body)
	if err != nil {
		return nil, err
	}
	return c.fromWire(resp)
}

// Get fetches one cached-content resource by name or short id.
func (c *Caches) Get(ctx context.Context, name string) (*CachedContent, error) {
	tc := c.api.transformContext(nil)
	normalized, err := dialect.NormalizeCachedContentName(tc, name)
	if err != nil {
		return nil, err
	}

	resp, err := c.api.request(ctx, http.MethodGet, normalized, nil)
	if err != nil {
		return nil, err
	}
	return c.fromWire(resp)
}

// Update changes a cache's expiry (ttl or expireTime).
func (c *Caches) Update(ctx context.Context, name string, update *CachedContent) (*CachedContent, error) {
	tc := c.api.transformContext(nil)
	normalized, err := dialect.NormalizeCachedContentName(tc, name)
	if err != nil {
		return nil, err
	}

	body, err := c.toWire(update)
	if err != nil {
		return nil, err
	}

	resp, err := c.api.request(ctx, http.MethodPatch, normalized, body)
	if err != nil {
		return nil, err
	}
	return c.fromWire(resp)
}

// Delete removes a cached-content resource.
func (c *Caches) Delete(ctx context.Context, name string) error {
	tc := c.api.transformContext(nil)
	normalized, err := dialect.NormalizeCachedContentName(tc, name)
	if err != nil {
		return err
	}

	_, err = c.api.request(ctx, http.MethodDelete, normalized, nil)
	return err
}

func (c *Caches) listPage(ctx context.Context, params map[string]any) (map[string]any, error) {
	path := "cachedContents"
	if token, ok := params["pageToken"].(string); ok && token != "" {
		path += "?pageToken=" + url.QueryEscape(token)
	}

	resp, err := c.api.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	tc := c.api.transformContext(nil)
	if raw, ok := resp["cachedContents"].([]any); ok {
		canonical := make([]any, 0, len(raw))
		for _, item := range raw {
			record, ok := item.(map[string]any)
			if !ok {
				continue
			}
			entry, err := dialect.FromWire(tc, dialect.CachedContentConcept, record)
			if err != nil {
				return nil, err
			}
			canonical = append(canonical, entry)
		}
		resp["cachedContents"] = canonical
	}
	return resp, nil
}

// List pages through cached-content resources.
func (c *Caches) List(ctx context.Context) (*Pager[CachedContent], error) {
	resp, err := c.listPage(ctx, map[string]any{})
	if err != nil {
		return nil, err
	}
	return newPager[CachedContent]("cachedContents", c.listPage, resp, map[string]any{})
}
