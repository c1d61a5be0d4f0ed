package dialect

// Mapping tables for the bidirectional live-session protocol. Client frames
// move canonical -> wire, server frames wire -> canonical.

func normalizeLiveModelField(tc *Context, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, &TypeError{Field: "model", Want: "string", Got: v}
	}
	// Live sessions address models the same way cache operations do: on
	// Vertex AI the name is always rooted under the project/location path.
	return NormalizeCacheModel(tc, s)
}

// LiveConnectConfigConcept maps the setup payload sent as the very first
// frame after the socket opens. Modalities and speech options live inside
// the setup's generationConfig on the wire; the rest are siblings.
var LiveConnectConfigConcept = &Concept{
	Name: "LiveConnectConfig",
	Fields: []Field{
		{Name: "model", Gemini: "model", Vertex: "model", ToWire: normalizeLiveModelField},
		{Name: "generationConfig", Gemini: "generationConfig", Vertex: "generationConfig"},
		{Name: "responseModalities", Gemini: "generationConfig.responseModalities", Vertex: "generationConfig.responseModalities"},
		{Name: "speechConfig", Gemini: "generationConfig.speechConfig", Vertex: "generationConfig.speechConfig"},
		{Name: "systemInstruction", Gemini: "systemInstruction", Vertex: "systemInstruction", Concept: ContentConcept},
		{Name: "tools", Gemini: "tools", Vertex: "tools", Concept: ToolConcept},
		{Name: "sessionResumption", Gemini: "sessionResumption", Vertex: "sessionResumption"},
		{Name: "inputAudioTranscription", Gemini: "inputAudioTranscription", Vertex: "inputAudioTranscription"},
		{Name: "outputAudioTranscription", Gemini: "outputAudioTranscription", Vertex: "outputAudioTranscription"},
		{Name: "realtimeInputConfig", Gemini: "realtimeInputConfig", Vertex: "realtimeInputConfig"},
		{Name: "contextWindowCompression", Gemini: "contextWindowCompression", Vertex: "contextWindowCompression"},
	},
}

// LiveClientContentConcept maps an ordered turn-based content frame.
var LiveClientContentConcept = &Concept{
	Name: "LiveClientContent",
	Fields: []Field{
		{Name: "turns", Gemini: "turns", Vertex: "turns", Concept: ContentConcept},
		{Name: "turnComplete", Gemini: "turnComplete", Vertex: "turnComplete"},
	},
}

// LiveRealtimeInputConcept maps a best-effort realtime media frame.
var LiveRealtimeInputConcept = &Concept{
	Name: "LiveRealtimeInput",
	Fields: []Field{
		{Name: "audio", Gemini: "audio", Vertex: "audio"},
		{Name: "video", Gemini: "video", Vertex: "video"},
		{Name: "media", Gemini: "mediaChunks[0]", Vertex: "mediaChunks[0]"},
		{Name: "text", Gemini: "text", Vertex: "text"},
		{Name: "audioStreamEnd", Gemini: "audioStreamEnd", Vertex: ""},
		{Name: "activityStart", Gemini: "activityStart", Vertex: "activityStart"},
		{Name: "activityEnd", Gemini: "activityEnd", Vertex: "activityEnd"},
	},
}

// LiveToolResponseConcept maps a reply to a server tool call. The id
// correlation requirement is enforced by the session before transformation.
var LiveToolResponseConcept = &Concept{
	Name: "LiveToolResponse",
	Fields: []Field{
		{Name: "functionResponses", Gemini: "functionResponses", Vertex: "functionResponses"},
	},
}

// LiveServerContentConcept maps the model-output portion of a server frame.
var LiveServerContentConcept = &Concept{
	Name: "LiveServerContent",
	Fields: []Field{
		{Name: "modelTurn", Gemini: "modelTurn", Vertex: "modelTurn", Concept: ContentConcept},
		{Name: "turnComplete", Gemini: "turnComplete", Vertex: "turnComplete"},
		{Name: "generationComplete", Gemini: "generationComplete", Vertex: "generationComplete"},
		{Name: "interrupted", Gemini: "interrupted", Vertex: "interrupted"},
		{Name: "groundingMetadata", Gemini: "groundingMetadata", Vertex: "groundingMetadata"},
		{Name: "inputTranscription", Gemini: "inputTranscription", Vertex: "inputTranscription"},
		{Name: "outputTranscription", Gemini: "outputTranscription", Vertex: "outputTranscription"},
	},
}

// LiveServerMessageConcept maps one inbound server frame into the canonical
// tagged union. Exactly one of these fields is present per frame; the first
// frame observed on a healthy session is always setupComplete.
var LiveServerMessageConcept = &Concept{
	Name: "LiveServerMessage",
	Fields: []Field{
		{Name: "setupComplete", Gemini: "setupComplete", Vertex: "setupComplete"},
		{Name: "serverContent", Gemini: "serverContent", Vertex: "serverContent", Concept: LiveServerContentConcept},
		{Name: "toolCall", Gemini: "toolCall", Vertex: "toolCall"},
		{Name: "toolCallCancellation", Gemini: "toolCallCancellation", Vertex: "toolCallCancellation"},
		{Name: "usageMetadata", Gemini: "usageMetadata", Vertex: "usageMetadata", Concept: UsageMetadataConcept},
		{Name: "goAway", Gemini: "goAway", Vertex: "goAway"},
		{Name: "sessionResumptionUpdate", Gemini: "sessionResumptionUpdate", Vertex: "sessionResumptionUpdate"},
	},
}
