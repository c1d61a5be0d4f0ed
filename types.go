package geminikit

// Canonical, backend-agnostic object model. These types are what callers
// construct and receive; the dialect layer rewrites them to and from each
// backend's wire shape per call.

// Role values accepted in conversation history.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Content is one conversation turn: a role plus an ordered sequence of Parts.
type Content struct {
	Role  string  `json:"role,omitempty"`
	Parts []*Part `json:"parts,omitempty"`
}

// Part is a tagged union over the supported content kinds. Exactly one of
// the pointer fields should be set (Text counts as set when non-empty).
type Part struct {
	Text                string               `json:"text,omitempty"`
	InlineData          *Blob                `json:"inlineData,omitempty"`
	FileData            *FileData            `json:"fileData,omitempty"`
	FunctionCall        *FunctionCall        `json:"functionCall,omitempty"`
	FunctionResponse    *FunctionResponse    `json:"functionResponse,omitempty"`
	ExecutableCode      *ExecutableCode      `json:"executableCode,omitempty"`
	CodeExecutionResult *CodeExecutionResult `json:"codeExecutionResult,omitempty"`
	VideoMetadata       *VideoMetadata       `json:"videoMetadata,omitempty"`
	Thought             bool                 `json:"thought,omitempty"`
	ThoughtSignature    []byte               `json:"thoughtSignature,omitempty"`
}

// Text returns a Part carrying plain text.
func Text(s string) *Part { return &Part{Text: s} }

// Blob is inline binary data.
type Blob struct {
	MIMEType string `json:"mimeType,omitempty"`
	Data     []byte `json:"data,omitempty"`
}

// FileData references previously uploaded file content by URI.
type FileData struct {
	MIMEType string `json:"mimeType,omitempty"`
	FileURI  string `json:"fileUri,omitempty"`
}

// FunctionCall is a model-requested tool invocation.
type FunctionCall struct {
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name,omitempty"`
	Args map[string]any `json:"args,omitempty"`
}

// FunctionResponse is the caller's reply to a FunctionCall. ID must echo the
// originating call's id on the Gemini Developer API.
type FunctionResponse struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name,omitempty"`
	Response map[string]any `json:"response,omitempty"`
}

// ExecutableCode is model-generated code intended for execution.
type ExecutableCode struct {
	Language string `json:"language,omitempty"`
	Code     string `json:"code,omitempty"`
}

// CodeExecutionResult reports the outcome of executing model-generated code.
type CodeExecutionResult struct {
	Outcome string `json:"outcome,omitempty"`
	Output  string `json:"output,omitempty"`
}

// VideoMetadata clips a referenced video to an offset range.
type VideoMetadata struct {
	StartOffset string `json:"startOffset,omitempty"`
	EndOffset   string `json:"endOffset,omitempty"`
}

// FunctionDeclaration describes one callable function inside a Tool.
type FunctionDeclaration struct {
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
	Response    map[string]any `json:"response,omitempty"`
}

// Tool groups capabilities offered to the model for one request.
type Tool struct {
	FunctionDeclarations []*FunctionDeclaration `json:"functionDeclarations,omitempty"`
	Retrieval            map[string]any         `json:"retrieval,omitempty"`
	EnterpriseWebSearch  map[string]any         `json:"enterpriseWebSearch,omitempty"`
	GoogleSearch         map[string]any         `json:"googleSearch,omitempty"`
	CodeExecution        map[string]any         `json:"codeExecution,omitempty"`
}

// SafetySetting adjusts blocking behavior for one harm category.
type SafetySetting struct {
	Category  string `json:"category,omitempty"`
	Threshold string `json:"threshold,omitempty"`
	Method    string `json:"method,omitempty"`
}

// ThinkingConfig controls reasoning-trace output.
type ThinkingConfig struct {
	IncludeThoughts bool   `json:"includeThoughts,omitempty"`
	ThinkingBudget  *int32 `json:"thinkingBudget,omitempty"`
}

// GenerateContentConfig holds the optional knobs for a generation request.
type GenerateContentConfig struct {
	SystemInstruction  *Content          `json:"systemInstruction,omitempty"`
	Temperature        *float64          `json:"temperature,omitempty"`
	TopP               *float64          `json:"topP,omitempty"`
	TopK               *float64          `json:"topK,omitempty"`
	CandidateCount     int32             `json:"candidateCount,omitempty"`
	MaxOutputTokens    int32             `json:"maxOutputTokens,omitempty"`
	StopSequences      []string          `json:"stopSequences,omitempty"`
	PresencePenalty    *float64          `json:"presencePenalty,omitempty"`
	FrequencyPenalty   *float64          `json:"frequencyPenalty,omitempty"`
	Seed               *int32            `json:"seed,omitempty"`
	ResponseLogprobs   bool              `json:"responseLogprobs,omitempty"`
	Logprobs           *int32            `json:"logprobs,omitempty"`
	ResponseMIMEType   string            `json:"responseMimeType,omitempty"`
	ResponseSchema     map[string]any    `json:"responseSchema,omitempty"`
	ResponseModalities []string          `json:"responseModalities,omitempty"`
	ThinkingConfig     *ThinkingConfig   `json:"thinkingConfig,omitempty"`
	AudioTimestamp     bool              `json:"audioTimestamp,omitempty"`
	SafetySettings     []*SafetySetting  `json:"safetySettings,omitempty"`
	Tools              []*Tool           `json:"tools,omitempty"`
	CachedContent      string            `json:"cachedContent,omitempty"`
	Labels             map[string]string `json:"labels,omitempty"`
}

// SafetyRating is one category's scoring on generated content.
type SafetyRating struct {
	Category    string `json:"category,omitempty"`
	Probability string `json:"probability,omitempty"`
	Blocked     bool   `json:"blocked,omitempty"`
}

// Candidate is one generated answer.
type Candidate struct {
	Content          *Content        `json:"content,omitempty"`
	FinishReason     string          `json:"finishReason,omitempty"`
	FinishMessage    string          `json:"finishMessage,omitempty"`
	SafetyRatings    []*SafetyRating `json:"safetyRatings,omitempty"`
	CitationMetadata map[string]any  `json:"citationMetadata,omitempty"`
	Index            int32           `json:"index,omitempty"`
}

// UsageMetadata is the canonical token accounting for a response.
type UsageMetadata struct {
	PromptTokenCount        int32 `json:"promptTokenCount,omitempty"`
	ResponseTokenCount      int32 `json:"responseTokenCount,omitempty"`
	TotalTokenCount         int32 `json:"totalTokenCount,omitempty"`
	CachedContentTokenCount int32 `json:"cachedContentTokenCount,omitempty"`
	ThoughtsTokenCount      int32 `json:"thoughtsTokenCount,omitempty"`
}

// GenerateContentResponse is a full (or, when streaming, partial) generation
// response.
type GenerateContentResponse struct {
	Candidates     []*Candidate   `json:"candidates,omitempty"`
	PromptFeedback map[string]any `json:"promptFeedback,omitempty"`
	UsageMetadata  *UsageMetadata `json:"usageMetadata,omitempty"`
	ModelVersion   string         `json:"modelVersion,omitempty"`
	ResponseID     string         `json:"responseId,omitempty"`
	CreateTime     string         `json:"createTime,omitempty"`
}

// Text concatenates the text parts of the first candidate.
func (r *GenerateContentResponse) Text() string {
	if r == nil || len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return ""
	}
	var out string
	for _, p := range r.Candidates[0].Content.Parts {
		out += p.Text
	}
	return out
}

// CountTokensResponse reports token usage for a prospective request.
type CountTokensResponse struct {
	TotalTokens int32 `json:"totalTokens,omitempty"`
}

// ContentEmbedding is one embedding vector.
type ContentEmbedding struct {
	Values []float64 `json:"values,omitempty"`
}

// EmbedContentConfig holds embedding options. MIMEType and AutoTruncate are
// Vertex AI concepts.
type EmbedContentConfig struct {
	TaskType             string `json:"taskType,omitempty"`
	Title                string `json:"title,omitempty"`
	OutputDimensionality *int32 `json:"outputDimensionality,omitempty"`
	MIMEType             string `json:"mimeType,omitempty"`
	AutoTruncate         *bool  `json:"autoTruncate,omitempty"`
}

// EmbedContentResponse carries the computed embeddings.
type EmbedContentResponse struct {
	Embeddings []*ContentEmbedding `json:"embeddings,omitempty"`
}

// Model describes one available model.
type Model struct {
	Name             string   `json:"name,omitempty"`
	DisplayName      string   `json:"displayName,omitempty"`
	Description      string   `json:"description,omitempty"`
	Version          string   `json:"version,omitempty"`
	InputTokenLimit  int32    `json:"inputTokenLimit,omitempty"`
	OutputTokenLimit int32    `json:"outputTokenLimit,omitempty"`
	SupportedActions []string `json:"supportedActions,omitempty"`
}

// CachedContent is server-side cached context reusable across requests.
type CachedContent struct {
	Name              string         `json:"name,omitempty"`
	DisplayName       string         `json:"displayName,omitempty"`
	Model             string         `json:"model,omitempty"`
	Contents          []*Content     `json:"contents,omitempty"`
	SystemInstruction *Content       `json:"systemInstruction,omitempty"`
	Tools             []*Tool        `json:"tools,omitempty"`
	TTL               string         `json:"ttl,omitempty"`
	ExpireTime        string         `json:"expireTime,omitempty"`
	CreateTime        string         `json:"createTime,omitempty"`
	UpdateTime        string         `json:"updateTime,omitempty"`
	UsageMetadata     map[string]any `json:"usageMetadata,omitempty"`
}

// File states reported by the file service.
const (
	FileStateProcessing = "PROCESSING"
	FileStateActive     = "ACTIVE"
	FileStateFailed     = "FAILED"
)

// File is an uploaded file resource (Gemini Developer API only).
type File struct {
	Name           string         `json:"name,omitempty"`
	DisplayName    string         `json:"displayName,omitempty"`
	MIMEType       string         `json:"mimeType,omitempty"`
	SizeBytes      string         `json:"sizeBytes,omitempty"`
	CreateTime     string         `json:"createTime,omitempty"`
	UpdateTime     string         `json:"updateTime,omitempty"`
	ExpirationTime string         `json:"expirationTime,omitempty"`
	SHA256Hash     string         `json:"sha256Hash,omitempty"`
	URI            string         `json:"uri,omitempty"`
	DownloadURI    string         `json:"downloadUri,omitempty"`
	State          string         `json:"state,omitempty"`
	Source         string         `json:"source,omitempty"`
	Error          map[string]any `json:"error,omitempty"`
}

// TuningJob is a supervised tuning job. State uses the canonical job-state
// vocabulary regardless of dialect.
type TuningJob struct {
	Name        string `json:"name,omitempty"`
	State       string `json:"state,omitempty"`
	CreateTime  string `json:"createTime,omitempty"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	UpdateTime  string `json:"updateTime,omitempty"`
	BaseModel   string `json:"baseModel,omitempty"`
	TunedModel  string `json:"tunedModel,omitempty"`
	Description string `json:"description,omitempty"`
	Experiment  string `json:"experiment,omitempty"`
}

// Image is generated image data.
type Image struct {
	ImageBytes []byte `json:"imageBytes,omitempty"`
	GCSURI     string `json:"gcsUri,omitempty"`
	MIMEType   string `json:"mimeType,omitempty"`
}

// GeneratedImage is one image-generation result.
type GeneratedImage struct {
	Image             *Image `json:"image,omitempty"`
	RAIFilteredReason string `json:"raiFilteredReason,omitempty"`
}

// GenerateImagesConfig holds image-generation options. Seed, watermarking
// and GCS output are Vertex AI concepts.
type GenerateImagesConfig struct {
	NumberOfImages   int32  `json:"numberOfImages,omitempty"`
	AspectRatio      string `json:"aspectRatio,omitempty"`
	NegativePrompt   string `json:"negativePrompt,omitempty"`
	PersonGeneration string `json:"personGeneration,omitempty"`
	IncludeRAIReason bool   `json:"includeRaiReason,omitempty"`
	OutputMIMEType   string `json:"outputMimeType,omitempty"`
	Seed             *int32 `json:"seed,omitempty"`
	AddWatermark     bool   `json:"addWatermark,omitempty"`
	OutputGCSURI     string `json:"outputGcsUri,omitempty"`
}

// GenerateImagesResponse carries generated images.
type GenerateImagesResponse struct {
	GeneratedImages []*GeneratedImage `json:"generatedImages,omitempty"`
}

// Video is generated video data.
type Video struct {
	URI        string `json:"uri,omitempty"`
	VideoBytes []byte `json:"videoBytes,omitempty"`
	MIMEType   string `json:"mimeType,omitempty"`
}

// GeneratedVideo is one video-generation result.
type GeneratedVideo struct {
	Video *Video `json:"video,omitempty"`
}

// GenerateVideosConfig holds video-generation options.
type GenerateVideosConfig struct {
	NumberOfVideos   int32  `json:"numberOfVideos,omitempty"`
	DurationSeconds  *int32 `json:"durationSeconds,omitempty"`
	FPS              *int32 `json:"fps,omitempty"`
	AspectRatio      string `json:"aspectRatio,omitempty"`
	NegativePrompt   string `json:"negativePrompt,omitempty"`
	PersonGeneration string `json:"personGeneration,omitempty"`
	OutputGCSURI     string `json:"outputGcsUri,omitempty"`
}

// GenerateVideosOperation is the long-running operation handle returned by
// video generation. Polling the operation until Done is up to the caller.
type GenerateVideosOperation struct {
	Name     string         `json:"name,omitempty"`
	Done     bool           `json:"done,omitempty"`
	Error    map[string]any `json:"error,omitempty"`
	Response map[string]any `json:"response,omitempty"`
}
