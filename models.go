package geminikit

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strings"

	"github.com/mixaill76/geminikit/internal/dialect"
	"github.com/mixaill76/geminikit/internal/fieldpath"
)

// Models exposes content generation, token counting, embeddings, media
// generation and the model catalog.
type Models struct {
	api *apiClient
}

// buildGenerateBody assembles the wire request body: transformed contents
// plus the generation config split between generationConfig and the request
// root.
func (m *Models) buildGenerateBody(contents []*Content, config *GenerateContentConfig) (map[string]any, error) {
	body := map[string]any{}

	wireContents := make([]any, 0, len(contents))
	tc := m.api.transformContext(nil)
	for _, content := range contents {
		record, err := toRecord(content)
		if err != nil {
			return nil, err
		}
		wire, err := dialect.ToWire(tc, dialect.ContentConcept, record)
		if err != nil {
			return nil, err
		}
		wireContents = append(wireContents, wire)
	}
	body["contents"] = wireContents

	if config != nil {
		record, err := toRecord(config)
		if err != nil {
			return nil, err
		}
		genConfig, err := dialect.ToWire(m.api.transformContext(body), dialect.GenerateContentConfigConcept, record)
		if err != nil {
			return nil, err
		}
		if len(genConfig) > 0 {
			body["generationConfig"] = genConfig
		}
	}

	return body, nil
}

func (m *Models) decodeResponse(wire map[string]any) (*GenerateContentResponse, error) {
	canonical, err := dialect.FromWire(m.api.transformContext(nil), dialect.GenerateContentResponseConcept, wire)
	if err != nil {
		return nil, err
	}
	return fromRecord[GenerateContentResponse](canonical)
}

// GenerateContent performs a unary generation request.
func (m *Models) GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error) {
	name, err := dialect.NormalizeModel(m.api.transformContext(nil), model)
	if err != nil {
		return nil, err
	}

	body, err := m.buildGenerateBody(contents, config)
	if err != nil {
		return nil, err
	}

	resp, err := m.api.request(ctx, http.MethodPost, name+":generateContent", body)
	if err != nil {
		return nil, err
	}
	return m.decodeResponse(resp)
}

// GenerateContentStream performs a streaming generation request, yielding
// one response per server-sent event.
func (m *Models) GenerateContentStream(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) iter.Seq2[*GenerateContentResponse, error] {
	return func(yield func(*GenerateContentResponse, error) bool) {
		name, err := dialect.NormalizeModel(m.api.transformContext(nil), model)
		if err != nil {
			yield(nil, err)
			return
		}

		body, err := m.buildGenerateBody(contents, config)
		if err != nil {
			yield(nil, err)
			return
		}

		for chunk, err := range m.api.stream(ctx, http.MethodPost, name+":streamGenerateContent?alt=sse", body) {
			if err != nil {
				yield(nil, err)
				return
			}
			resp, err := m.decodeResponse(chunk)
			if !yield(resp, err) || err != nil {
				return
			}
		}
	}
}

// CountTokens reports the token count the given request would consume.
func (m *Models) CountTokens(ctx context.Context, model string, contents []*Content) (*CountTokensResponse, error) {
	name, err := dialect.NormalizeModel(m.api.transformContext(nil), model)
	if err != nil {
		return nil, err
	}

	body, err := m.buildGenerateBody(contents, nil)
	if err != nil {
		return nil, err
	}

	resp, err := m.api.request(ctx, http.MethodPost, name+":countTokens", body)
	if err != nil {
		return nil, err
	}
	return fromRecord[CountTokensResponse](resp)
}

// Get fetches the catalog entry for one model.
func (m *Models) Get(ctx context.Context, model string) (*Model, error) {
	tc := m.api.transformContext(nil)
	name, err := dialect.NormalizeModel(tc, model)
	if err != nil {
		return nil, err
	}

	resp, err := m.api.request(ctx, http.MethodGet, name, nil)
	if err != nil {
		return nil, err
	}

	canonical, err := dialect.FromWire(tc, dialect.ModelInfoConcept, resp)
	if err != nil {
		return nil, err
	}
	return fromRecord[Model](canonical)
}

// listModels fetches one catalog page and canonicalizes its entries.
func (m *Models) listModels(ctx context.Context, params map[string]any) (map[string]any, error) {
	path := "models"
	if token, ok := params["pageToken"].(string); ok && token != "" {
		path = "models?pageToken=" + url.QueryEscape(token)
	}

	resp, err := m.api.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	tc := m.api.transformContext(nil)
	if raw, ok := resp["models"].([]any); ok {
		canonical := make([]any, 0, len(raw))
		for _, item := range raw {
			record, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("geminikit: model list entry is not a record")
			}
			entry, err := dialect.FromWire(tc, dialect.ModelInfoConcept, record)
			if err != nil {
				return nil, err
			}
			canonical = append(canonical, entry)
		}
		resp["models"] = canonical
	}
	return resp, nil
}

// List pages through the model catalog.
func (m *Models) List(ctx context.Context) (*Pager[Model], error) {
	resp, err := m.listModels(ctx, map[string]any{})
	if err != nil {
		return nil, err
	}
	return newPager[Model]("models", m.listModels, resp, map[string]any{})
}

// EmbedContent computes an embedding for one content.
func (m *Models) EmbedContent(ctx context.Context, model string, content *Content, config *EmbedContentConfig) (*EmbedContentResponse, error) {
	name, err := dialect.NormalizeModel(m.api.transformContext(nil), model)
	if err != nil {
		return nil, err
	}

	body := map[string]any{}
	if config != nil {
		record, err := toRecord(config)
		if err != nil {
			return nil, err
		}
		if _, err := dialect.ToWire(m.api.transformContext(body), dialect.EmbedContentConfigConcept, record); err != nil {
			return nil, err
		}
	}

	if m.api.dialect == dialect.VertexAI {
		// Vertex embeds through the predict surface: text in the first
		// instance, options already split across instances/parameters.
		var text strings.Builder
		for _, part := range content.Parts {
			text.WriteString(part.Text)
		}
		if err := fieldpath.Set(body, "instances[0].content", text.String()); err != nil {
			return nil, err
		}

		resp, err := m.api.request(ctx, http.MethodPost, name+":predict", body)
		if err != nil {
			return nil, err
		}

		out := &EmbedContentResponse{}
		if predictions, ok := resp["predictions"].([]any); ok {
			for _, prediction := range predictions {
				values, _ := fieldpath.Get(prediction, "embeddings.values")
				embedding, err := fromRecord[ContentEmbedding](map[string]any{"values": values})
				if err != nil {
					return nil, err
				}
				out.Embeddings = append(out.Embeddings, embedding)
			}
		}
		return out, nil
	}

	contentRecord, err := toRecord(content)
	if err != nil {
		return nil, err
	}
	wireContent, err := dialect.ToWire(m.api.transformContext(nil), dialect.ContentConcept, contentRecord)
	if err != nil {
		return nil, err
	}
	body["content"] = wireContent

	resp, err := m.api.request(ctx, http.MethodPost, name+":embedContent", body)
	if err != nil {
		return nil, err
	}

	out := &EmbedContentResponse{}
	if raw, ok := resp["embedding"].(map[string]any); ok {
		embedding, err := fromRecord[ContentEmbedding](raw)
		if err != nil {
			return nil, err
		}
		out.Embeddings = append(out.Embeddings, embedding)
	}
	return out, nil
}

// GenerateImages performs an image-generation predict request.
func (m *Models) GenerateImages(ctx context.Context, model, prompt string, config *GenerateImagesConfig) (*GenerateImagesResponse, error) {
	name, err := dialect.NormalizeModel(m.api.transformContext(nil), model)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"instances": []any{map[string]any{"prompt": prompt}},
	}
	if config != nil {
		record, err := toRecord(config)
		if err != nil {
			return nil, err
		}
		if _, err := dialect.ToWire(m.api.transformContext(body), dialect.GenerateImagesConfigConcept, record); err != nil {
			return nil, err
		}
	}

	resp, err := m.api.request(ctx, http.MethodPost, name+":predict", body)
	if err != nil {
		return nil, err
	}

	canonical, err := dialect.FromWire(m.api.transformContext(nil), dialect.GenerateImagesResponseConcept, resp)
	if err != nil {
		return nil, err
	}
	return fromRecord[GenerateImagesResponse](canonical)
}

// GenerateVideos starts a long-running video-generation operation.
func (m *Models) GenerateVideos(ctx context.Context, model, prompt string, config *GenerateVideosConfig) (*GenerateVideosOperation, error) {
	name, err := dialect.NormalizeModel(m.api.transformContext(nil), model)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"instances": []any{map[string]any{"prompt": prompt}},
	}
	if config != nil {
		record, err := toRecord(config)
		if err != nil {
			return nil, err
		}
		if _, err := dialect.ToWire(m.api.transformContext(body), dialect.GenerateVideosConfigConcept, record); err != nil {
			return nil, err
		}
	}

	resp, err := m.api.request(ctx, http.MethodPost, name+":predictLongRunning", body)
	if err != nil {
		return nil, err
	}
	return fromRecord[GenerateVideosOperation](resp)
}
