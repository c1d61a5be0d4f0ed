package geminikit

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mixaill76/geminikit/internal/dialect"
)

// Tunings manages supervised tuning jobs.
type Tunings struct {
	api *apiClient
}

// TuningConfig describes a tuning job to create.
type TuningConfig struct {
	BaseModel       string   `json:"baseModel,omitempty"`
	TunedModelName  string   `json:"tunedModelName,omitempty"`
	Description     string   `json:"description,omitempty"`
	TrainingDataset string   `json:"trainingDataset,omitempty"`
	EpochCount      *int32   `json:"epochCount,omitempty"`
	LearningRate    *float64 `json:"learningRate,omitempty"`
}

func (t *Tunings) collection() string {
	if t.api.dialect == dialect.VertexAI {
		return "tuningJobs"
	}
	return "tunedModels"
}

func (t *Tunings) fromWire(wire map[string]any) (*TuningJob, error) {
	canonical, err := dialect.FromWire(t.api.transformContext(nil), dialect.TuningJobConcept, wire)
	if err != nil {
		return nil, err
	}
	return fromRecord[TuningJob](canonical)
}

// Create starts a tuning job.
func (t *Tunings) Create(ctx context.Context, config *TuningConfig) (*TuningJob, error) {
	var body map[string]any
	if t.api.dialect == dialect.VertexAI {
		body = map[string]any{
			"baseModel": config.BaseModel,
			"supervisedTuningSpec": map[string]any{
				"trainingDatasetUri": config.TrainingDataset,
			},
		}
		if config.TunedModelName != "" {
			body["tunedModelDisplayName"] = config.TunedModelName
		}
		if config.Description != "" {
			body["description"] = config.Description
		}
	} else {
		tuningTask := map[string]any{
			"trainingData": map[string]any{"examples": config.TrainingDataset},
		}
		hyperparameters := map[string]any{}
		if config.EpochCount != nil {
			hyperparameters["epochCount"] = *config.EpochCount
		}
		if config.LearningRate != nil {
			hyperparameters["learningRate"] = *config.LearningRate
		}
		if len(hyperparameters) > 0 {
			tuningTask["hyperparameters"] = hyperparameters
		}
		body = map[string]any{
			"baseModel":  config.BaseModel,
			"tuningTask": tuningTask,
		}
		if config.TunedModelName != "" {
			body["displayName"] = config.TunedModelName
		}
	}

	resp, err := t.api.request(ctx, http.MethodPost, t.collection(), body)
	if err != nil {
		return nil, err
	}
	return t.fromWire(resp)
}

// Get fetches one tuning job by name or short id.
func (t *Tunings) Get(ctx context.Context, name string) (*TuningJob, error) {
	tc := t.api.transformContext(nil)
	normalized := dialect.ResourceName(tc, name, t.collection(), 1)

	resp, err := t.api.request(ctx, http.MethodGet, normalized, nil)
	if err != nil {
		return nil, err
	}
	return t.fromWire(resp)
}

func (t *Tunings) listPage(ctx context.Context, params map[string]any) (map[string]any, error) {
	path := t.collection()
	if token, ok := params["pageToken"].(string); ok && token != "" {
		path += "?pageToken=" + url.QueryEscape(token)
	}

	resp, err := t.api.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	tc := t.api.transformContext(nil)
	if raw, ok := resp[t.collection()].([]any); ok {
		canonical := make([]any, 0, len(raw))
		for _, item := range raw {
			record, ok := item.(map[string]any)
			if !ok {
				continue
			}
			entry, err := dialect.FromWire(tc, dialect.TuningJobConcept, record)
			if err != nil {
				return nil, err
			}
			canonical = append(canonical, entry)
		}
		// The pager reads one stable item tag regardless of dialect.
		delete(resp, t.collection())
		resp["tuningJobs"] = canonical
	}
	return resp, nil
}

// List pages through tuning jobs.
func (t *Tunings) List(ctx context.Context) (*Pager[TuningJob], error) {
	resp, err := t.listPage(ctx, map[string]any{})
	if err != nil {
		return nil, err
	}
	return newPager[TuningJob]("tuningJobs", t.listPage, resp, map[string]any{})
}
