package dialect

// Field-mapping tables for the content-generation concepts. Every entry is a
// "read canonical path, write wire path" rule; dialect differences are
// expressed entirely as differing wire paths, an empty (unsupported) path, or
// a value transform.

func normalizeModelField(tc *Context, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, &TypeError{Field: "model", Want: "string", Got: v}
	}
	return NormalizeModel(tc, s)
}

func normalizeCachedContentField(tc *Context, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, &TypeError{Field: "cachedContent", Want: "string", Got: v}
	}
	return NormalizeCachedContentName(tc, s)
}

// PartConcept maps one Part, the tagged union over the content kinds.
var PartConcept = &Concept{
	Name: "Part",
	Fields: []Field{
		{Name: "text", Gemini: "text", Vertex: "text"},
		{Name: "inlineData", Gemini: "inlineData", Vertex: "inlineData"},
		{Name: "fileData", Gemini: "fileData", Vertex: "fileData"},
		{Name: "functionCall", Gemini: "functionCall", Vertex: "functionCall"},
		{Name: "functionResponse", Gemini: "functionResponse", Vertex: "functionResponse"},
		{Name: "executableCode", Gemini: "executableCode", Vertex: "executableCode"},
		{Name: "codeExecutionResult", Gemini: "codeExecutionResult", Vertex: "codeExecutionResult"},
		{Name: "thought", Gemini: "thought", Vertex: "thought"},
		{Name: "thoughtSignature", Gemini: "thoughtSignature", Vertex: "thoughtSignature"},
		// Clipping metadata is only honored by Vertex AI.
		{Name: "videoMetadata", Gemini: "", Vertex: "videoMetadata"},
	},
}

// ContentConcept maps a Content: a role plus its ordered Parts.
var ContentConcept = &Concept{
	Name: "Content",
	Fields: []Field{
		{Name: "role", Gemini: "role", Vertex: "role"},
		{Name: "parts", Gemini: "parts", Vertex: "parts", Concept: PartConcept},
	},
}

// FunctionDeclarationConcept maps a tool function declaration.
var FunctionDeclarationConcept = &Concept{
	Name: "FunctionDeclaration",
	Fields: []Field{
		{Name: "name", Gemini: "name", Vertex: "name"},
		{Name: "description", Gemini: "description", Vertex: "description"},
		{Name: "parameters", Gemini: "parameters", Vertex: "parameters"},
		{Name: "response", Gemini: "", Vertex: "response"},
	},
}

// ToolConcept maps a Tool. Retrieval-backed tools exist only on Vertex AI.
var ToolConcept = &Concept{
	Name: "Tool",
	Fields: []Field{
		{Name: "functionDeclarations", Gemini: "functionDeclarations", Vertex: "functionDeclarations", Concept: FunctionDeclarationConcept},
		{Name: "retrieval", Gemini: "", Vertex: "retrieval"},
		{Name: "enterpriseWebSearch", Gemini: "", Vertex: "enterpriseWebSearch"},
		{Name: "googleSearch", Gemini: "googleSearch", Vertex: "googleSearch"},
		{Name: "codeExecution", Gemini: "codeExecution", Vertex: "codeExecution"},
	},
}

// SafetySettingConcept maps a safety setting; the probability-vs-severity
// method selector is a Vertex AI concept.
var SafetySettingConcept = &Concept{
	Name: "SafetySetting",
	Fields: []Field{
		{Name: "category", Gemini: "category", Vertex: "category"},
		{Name: "threshold", Gemini: "threshold", Vertex: "threshold"},
		{Name: "method", Gemini: "", Vertex: "method"},
	},
}

// GenerateContentConfigConcept maps the per-request generation config. The
// concept's own output record is the wire generationConfig object; fields
// that the wire format hoists to the request root (system instruction, tools,
// safety settings, cached content, labels) are parent writes and therefore
// only materialize when a request body is being assembled.
var GenerateContentConfigConcept = &Concept{
	Name: "GenerateContentConfig",
	Fields: []Field{
		{Name: "temperature", Gemini: "temperature", Vertex: "temperature"},
		{Name: "topP", Gemini: "topP", Vertex: "topP"},
		{Name: "topK", Gemini: "topK", Vertex: "topK"},
		{Name: "candidateCount", Gemini: "candidateCount", Vertex: "candidateCount"},
		{Name: "maxOutputTokens", Gemini: "maxOutputTokens", Vertex: "maxOutputTokens"},
		{Name: "stopSequences", Gemini: "stopSequences", Vertex: "stopSequences"},
		{Name: "presencePenalty", Gemini: "presencePenalty", Vertex: "presencePenalty"},
		{Name: "frequencyPenalty", Gemini: "frequencyPenalty", Vertex: "frequencyPenalty"},
		{Name: "seed", Gemini: "seed", Vertex: "seed"},
		{Name: "responseLogprobs", Gemini: "responseLogprobs", Vertex: "responseLogprobs"},
		{Name: "logprobs", Gemini: "logprobs", Vertex: "logprobs"},
		{Name: "responseMimeType", Gemini: "responseMimeType", Vertex: "responseMimeType"},
		{Name: "responseSchema", Gemini: "responseSchema", Vertex: "responseSchema"},
		{Name: "responseModalities", Gemini: "responseModalities", Vertex: "responseModalities"},
		{Name: "thinkingConfig", Gemini: "thinkingConfig", Vertex: "thinkingConfig"},
		{Name: "audioTimestamp", Gemini: "", Vertex: "audioTimestamp"},

		{Name: "systemInstruction", Gemini: "systemInstruction", Vertex: "systemInstruction", Parent: true, Concept: ContentConcept},
		{Name: "tools", Gemini: "tools", Vertex: "tools", Parent: true, Concept: ToolConcept},
		{Name: "safetySettings", Gemini: "safetySettings", Vertex: "safetySettings", Parent: true, Concept: SafetySettingConcept},
		{Name: "cachedContent", Gemini: "cachedContent", Vertex: "cachedContent", Parent: true, ToWire: normalizeCachedContentField},
		{Name: "labels", Gemini: "", Vertex: "labels", Parent: true},
	},
}

// UsageMetadataConcept maps token accounting. The canonical model counts
// "response" tokens where the wire formats count "candidates" tokens.
var UsageMetadataConcept = &Concept{
	Name: "UsageMetadata",
	Fields: []Field{
		{Name: "promptTokenCount", Gemini: "promptTokenCount", Vertex: "promptTokenCount"},
		{Name: "responseTokenCount", Gemini: "candidatesTokenCount", Vertex: "candidatesTokenCount"},
		{Name: "totalTokenCount", Gemini: "totalTokenCount", Vertex: "totalTokenCount"},
		{Name: "cachedContentTokenCount", Gemini: "cachedContentTokenCount", Vertex: "cachedContentTokenCount"},
		{Name: "thoughtsTokenCount", Gemini: "thoughtsTokenCount", Vertex: "thoughtsTokenCount"},
	},
}

// CandidateConcept maps one response candidate.
var CandidateConcept = &Concept{
	Name: "Candidate",
	Fields: []Field{
		{Name: "content", Gemini: "content", Vertex: "content", Concept: ContentConcept},
		{Name: "finishReason", Gemini: "finishReason", Vertex: "finishReason"},
		{Name: "finishMessage", Gemini: "", Vertex: "finishMessage"},
		{Name: "safetyRatings", Gemini: "safetyRatings", Vertex: "safetyRatings"},
		{Name: "citationMetadata", Gemini: "citationMetadata", Vertex: "citationMetadata"},
		{Name: "index", Gemini: "index", Vertex: "index"},
	},
}

// GenerateContentResponseConcept maps a full generation response.
var GenerateContentResponseConcept = &Concept{
	Name: "GenerateContentResponse",
	Fields: []Field{
		{Name: "candidates", Gemini: "candidates", Vertex: "candidates", Concept: CandidateConcept},
		{Name: "promptFeedback", Gemini: "promptFeedback", Vertex: "promptFeedback"},
		{Name: "usageMetadata", Gemini: "usageMetadata", Vertex: "usageMetadata", Concept: UsageMetadataConcept},
		{Name: "modelVersion", Gemini: "modelVersion", Vertex: "modelVersion"},
		{Name: "responseId", Gemini: "responseId", Vertex: "responseId"},
		{Name: "createTime", Gemini: "", Vertex: "createTime"},
	},
}
