package geminikit

// Canonical message shapes for the live bidirectional session protocol.

// SessionResumptionConfig opts into resumable sessions; Handle resumes a
// previous session.
type SessionResumptionConfig struct {
	Handle string `json:"handle,omitempty"`
}

// AudioTranscriptionConfig enables transcription of an audio stream.
// It currently carries no options.
type AudioTranscriptionConfig struct{}

// RealtimeInputConfig tunes automatic activity detection for realtime input.
type RealtimeInputConfig struct {
	AutomaticActivityDetection map[string]any `json:"automaticActivityDetection,omitempty"`
	ActivityHandling           string         `json:"activityHandling,omitempty"`
	TurnCoverage               string         `json:"turnCoverage,omitempty"`
}

// SlidingWindow is a context-window-compression policy.
type SlidingWindow struct {
	TargetTokens string `json:"targetTokens,omitempty"`
}

// ContextWindowCompressionConfig enables context compression on long
// sessions.
type ContextWindowCompressionConfig struct {
	TriggerTokens string         `json:"triggerTokens,omitempty"`
	SlidingWindow *SlidingWindow `json:"slidingWindow,omitempty"`
}

// LiveConnectConfig configures a live session. Every field is independently
// optional; the assembled setup message is the first frame on the wire.
type LiveConnectConfig struct {
	GenerationConfig         map[string]any                  `json:"generationConfig,omitempty"`
	ResponseModalities       []string                        `json:"responseModalities,omitempty"`
	SpeechConfig             map[string]any                  `json:"speechConfig,omitempty"`
	SystemInstruction        *Content                        `json:"systemInstruction,omitempty"`
	Tools                    []*Tool                         `json:"tools,omitempty"`
	SessionResumption        *SessionResumptionConfig        `json:"sessionResumption,omitempty"`
	InputAudioTranscription  *AudioTranscriptionConfig       `json:"inputAudioTranscription,omitempty"`
	OutputAudioTranscription *AudioTranscriptionConfig       `json:"outputAudioTranscription,omitempty"`
	RealtimeInputConfig      *RealtimeInputConfig            `json:"realtimeInputConfig,omitempty"`
	ContextWindowCompression *ContextWindowCompressionConfig `json:"contextWindowCompression,omitempty"`
}

// LiveClientContent is an ordered, turn-based content frame. Turns are
// appended to the model context in exactly the order sent.
type LiveClientContent struct {
	Turns        []*Content `json:"turns,omitempty"`
	TurnComplete bool       `json:"turnComplete,omitempty"`
}

// LiveRealtimeInput is a best-effort realtime media frame. Chunks are
// appended to context as they arrive, with no ordering guarantee relative to
// each other.
type LiveRealtimeInput struct {
	Audio          *Blob  `json:"audio,omitempty"`
	Video          *Blob  `json:"video,omitempty"`
	Media          *Blob  `json:"media,omitempty"`
	Text           string `json:"text,omitempty"`
	AudioStreamEnd bool   `json:"audioStreamEnd,omitempty"`
	ActivityStart  bool   `json:"activityStart,omitempty"`
	ActivityEnd    bool   `json:"activityEnd,omitempty"`
}

// LiveToolResponse replies to a server tool call.
type LiveToolResponse struct {
	FunctionResponses []*FunctionResponse `json:"functionResponses,omitempty"`
}

// Transcription is a transcribed fragment of an audio stream.
type Transcription struct {
	Text     string `json:"text,omitempty"`
	Finished bool   `json:"finished,omitempty"`
}

// LiveServerContent is the model-output portion of a server frame.
type LiveServerContent struct {
	ModelTurn           *Content       `json:"modelTurn,omitempty"`
	TurnComplete        bool           `json:"turnComplete,omitempty"`
	GenerationComplete  bool           `json:"generationComplete,omitempty"`
	Interrupted         bool           `json:"interrupted,omitempty"`
	GroundingMetadata   map[string]any `json:"groundingMetadata,omitempty"`
	InputTranscription  *Transcription `json:"inputTranscription,omitempty"`
	OutputTranscription *Transcription `json:"outputTranscription,omitempty"`
}

// LiveServerToolCall asks the caller to execute functions.
type LiveServerToolCall struct {
	FunctionCalls []*FunctionCall `json:"functionCalls,omitempty"`
}

// LiveServerToolCallCancellation withdraws previously issued tool calls.
type LiveServerToolCallCancellation struct {
	IDs []string `json:"ids,omitempty"`
}

// LiveServerGoAway announces imminent disconnection.
type LiveServerGoAway struct {
	TimeLeft string `json:"timeLeft,omitempty"`
}

// LiveServerSessionResumptionUpdate carries a resumable session handle.
type LiveServerSessionResumptionUpdate struct {
	NewHandle string `json:"newHandle,omitempty"`
	Resumable bool   `json:"resumable,omitempty"`
}

// LiveServerMessage is the canonical tagged union over server frames.
// Exactly one field is set per message; the first message on a healthy
// session is always SetupComplete.
type LiveServerMessage struct {
	SetupComplete           map[string]any                     `json:"setupComplete,omitempty"`
	ServerContent           *LiveServerContent                 `json:"serverContent,omitempty"`
	ToolCall                *LiveServerToolCall                `json:"toolCall,omitempty"`
	ToolCallCancellation    *LiveServerToolCallCancellation    `json:"toolCallCancellation,omitempty"`
	UsageMetadata           *UsageMetadata                     `json:"usageMetadata,omitempty"`
	GoAway                  *LiveServerGoAway                  `json:"goAway,omitempty"`
	SessionResumptionUpdate *LiveServerSessionResumptionUpdate `json:"sessionResumptionUpdate,omitempty"`
}
