package dialect

// Mapping tables for the resource concepts that ride on top of content
// generation: cached content, files, tuning jobs, embeddings and media
// generation configs.

func normalizeCacheModelField(tc *Context, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, &TypeError{Field: "model", Want: "string", Got: v}
	}
	return NormalizeCacheModel(tc, s)
}

func translateTuningStateField(tc *Context, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, &TypeError{Field: "state", Want: "string", Got: v}
	}
	if tc.Dialect == GeminiAPI {
		return TranslateTuningState(s), nil
	}
	return s, nil
}

// CachedContentConcept maps a cached-content resource.
var CachedContentConcept = &Concept{
	Name: "CachedContent",
	Fields: []Field{
		{Name: "name", Gemini: "name", Vertex: "name"},
		{Name: "displayName", Gemini: "displayName", Vertex: "displayName"},
		{Name: "model", Gemini: "model", Vertex: "model", ToWire: normalizeCacheModelField},
		{Name: "contents", Gemini: "contents", Vertex: "contents", Concept: ContentConcept},
		{Name: "systemInstruction", Gemini: "systemInstruction", Vertex: "systemInstruction", Concept: ContentConcept},
		{Name: "tools", Gemini: "tools", Vertex: "tools", Concept: ToolConcept},
		{Name: "ttl", Gemini: "ttl", Vertex: "ttl"},
		{Name: "expireTime", Gemini: "expireTime", Vertex: "expireTime"},
		{Name: "createTime", Gemini: "createTime", Vertex: "createTime"},
		{Name: "updateTime", Gemini: "updateTime", Vertex: "updateTime"},
		{Name: "usageMetadata", Gemini: "usageMetadata", Vertex: "usageMetadata"},
	},
}

// FileConcept maps a file resource. The file API exists only on the Gemini
// Developer API; the Files service rejects Vertex AI clients before any
// transformation happens, so the Vertex side of this table is empty.
var FileConcept = &Concept{
	Name: "File",
	Fields: []Field{
		{Name: "name", Gemini: "name"},
		{Name: "displayName", Gemini: "displayName"},
		{Name: "mimeType", Gemini: "mimeType"},
		{Name: "sizeBytes", Gemini: "sizeBytes"},
		{Name: "createTime", Gemini: "createTime"},
		{Name: "updateTime", Gemini: "updateTime"},
		{Name: "expirationTime", Gemini: "expirationTime"},
		{Name: "sha256Hash", Gemini: "sha256Hash"},
		{Name: "uri", Gemini: "uri"},
		{Name: "downloadUri", Gemini: "downloadUri"},
		{Name: "state", Gemini: "state"},
		{Name: "source", Gemini: "source"},
		{Name: "error", Gemini: "error"},
	},
}

// TuningJobConcept maps a tuning job. The Gemini Developer API spells the
// tuned model as a flat field and reports legacy status strings; both are
// canonicalized on the way in.
var TuningJobConcept = &Concept{
	Name: "TuningJob",
	Fields: []Field{
		{Name: "name", Gemini: "name", Vertex: "name"},
		{Name: "state", Gemini: "state", Vertex: "state", FromWire: translateTuningStateField},
		{Name: "createTime", Gemini: "createTime", Vertex: "createTime"},
		{Name: "startTime", Gemini: "startTime", Vertex: "startTime"},
		{Name: "endTime", Gemini: "completeTime", Vertex: "endTime"},
		{Name: "updateTime", Gemini: "updateTime", Vertex: "updateTime"},
		{Name: "baseModel", Gemini: "baseModel", Vertex: "baseModel"},
		{Name: "tunedModel", Gemini: "tunedModel", Vertex: "tunedModel.model"},
		{Name: "description", Gemini: "description", Vertex: "description"},
		{Name: "experiment", Gemini: "", Vertex: "experiment"},
	},
}

// ModelInfoConcept maps a model listing entry.
var ModelInfoConcept = &Concept{
	Name: "Model",
	Fields: []Field{
		{Name: "name", Gemini: "name", Vertex: "name"},
		{Name: "displayName", Gemini: "displayName", Vertex: "displayName"},
		{Name: "description", Gemini: "description", Vertex: "description"},
		{Name: "version", Gemini: "version", Vertex: "versionId"},
		{Name: "inputTokenLimit", Gemini: "inputTokenLimit", Vertex: "inputTokenLimit"},
		{Name: "outputTokenLimit", Gemini: "outputTokenLimit", Vertex: "outputTokenLimit"},
		{Name: "supportedActions", Gemini: "supportedGenerationMethods", Vertex: "supportedActions"},
	},
}

// EmbedContentConfigConcept maps embedding options. The Gemini Developer API
// takes them at the request root; Vertex AI splits them between the first
// prediction instance and the shared parameters object, so every field here
// is a parent write.
var EmbedContentConfigConcept = &Concept{
	Name: "EmbedContentConfig",
	Fields: []Field{
		{Name: "taskType", Gemini: "taskType", Vertex: "instances[0].task_type", Parent: true},
		{Name: "title", Gemini: "title", Vertex: "instances[0].title", Parent: true},
		{Name: "outputDimensionality", Gemini: "outputDimensionality", Vertex: "parameters.outputDimensionality", Parent: true},
		{Name: "mimeType", Gemini: "", Vertex: "instances[0].mimeType", Parent: true},
		{Name: "autoTruncate", Gemini: "", Vertex: "parameters.autoTruncate", Parent: true},
	},
}

// GenerateImagesConfigConcept maps image-generation options onto the predict
// request's parameters object.
var GenerateImagesConfigConcept = &Concept{
	Name: "GenerateImagesConfig",
	Fields: []Field{
		{Name: "numberOfImages", Gemini: "parameters.sampleCount", Vertex: "parameters.sampleCount", Parent: true},
		{Name: "aspectRatio", Gemini: "parameters.aspectRatio", Vertex: "parameters.aspectRatio", Parent: true},
		{Name: "negativePrompt", Gemini: "parameters.negativePrompt", Vertex: "parameters.negativePrompt", Parent: true},
		{Name: "personGeneration", Gemini: "parameters.personGeneration", Vertex: "parameters.personGeneration", Parent: true},
		{Name: "includeRaiReason", Gemini: "parameters.includeRaiReason", Vertex: "parameters.includeRaiReason", Parent: true},
		{Name: "outputMimeType", Gemini: "parameters.outputOptions.mimeType", Vertex: "parameters.outputOptions.mimeType", Parent: true},
		{Name: "seed", Gemini: "", Vertex: "parameters.seed", Parent: true},
		{Name: "addWatermark", Gemini: "", Vertex: "parameters.addWatermark", Parent: true},
		{Name: "outputGcsUri", Gemini: "", Vertex: "parameters.storageUri", Parent: true},
	},
}

// GeneratedImageConcept maps one predict-response image.
var GeneratedImageConcept = &Concept{
	Name: "GeneratedImage",
	Fields: []Field{
		{Name: "image.imageBytes", Gemini: "bytesBase64Encoded", Vertex: "bytesBase64Encoded"},
		{Name: "image.mimeType", Gemini: "mimeType", Vertex: "mimeType"},
		{Name: "image.gcsUri", Gemini: "", Vertex: "gcsUri"},
		{Name: "raiFilteredReason", Gemini: "raiFilteredReason", Vertex: "raiFilteredReason"},
	},
}

// GenerateImagesResponseConcept maps the predict response envelope.
var GenerateImagesResponseConcept = &Concept{
	Name: "GenerateImagesResponse",
	Fields: []Field{
		{Name: "generatedImages", Gemini: "predictions", Vertex: "predictions", Concept: GeneratedImageConcept},
	},
}

// GenerateVideosConfigConcept maps video-generation options onto the
// long-running predict request.
var GenerateVideosConfigConcept = &Concept{
	Name: "GenerateVideosConfig",
	Fields: []Field{
		{Name: "numberOfVideos", Gemini: "parameters.sampleCount", Vertex: "parameters.sampleCount", Parent: true},
		{Name: "durationSeconds", Gemini: "parameters.durationSeconds", Vertex: "parameters.durationSeconds", Parent: true},
		{Name: "fps", Gemini: "", Vertex: "parameters.fps", Parent: true},
		{Name: "aspectRatio", Gemini: "parameters.aspectRatio", Vertex: "parameters.aspectRatio", Parent: true},
		{Name: "negativePrompt", Gemini: "parameters.negativePrompt", Vertex: "parameters.negativePrompt", Parent: true},
		{Name: "personGeneration", Gemini: "parameters.personGeneration", Vertex: "parameters.personGeneration", Parent: true},
		{Name: "outputGcsUri", Gemini: "", Vertex: "parameters.storageUri", Parent: true},
	},
}
