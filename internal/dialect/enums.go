package dialect

// Enumerated wire values are closed string sets on the backends, but unknown
// values always pass through unchanged so that new backend values do not
// break existing clients.

// Finish reasons reported on a candidate.
const (
	FinishReasonStop          = "STOP"
	FinishReasonMaxTokens     = "MAX_TOKENS"
	FinishReasonSafety        = "SAFETY"
	FinishReasonRecitation    = "RECITATION"
	FinishReasonBlocklist     = "BLOCKLIST"
	FinishReasonProhibited    = "PROHIBITED_CONTENT"
	FinishReasonSPII          = "SPII"
	FinishReasonMalformedCall = "MALFORMED_FUNCTION_CALL"
	FinishReasonOther         = "OTHER"
	FinishReasonUnspecified   = "FINISH_REASON_UNSPECIFIED"
)

// Harm categories and block thresholds for safety settings.
const (
	HarmCategoryHarassment       = "HARM_CATEGORY_HARASSMENT"
	HarmCategoryHateSpeech       = "HARM_CATEGORY_HATE_SPEECH"
	HarmCategorySexuallyExplicit = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmCategoryDangerousContent = "HARM_CATEGORY_DANGEROUS_CONTENT"

	HarmBlockNone           = "BLOCK_NONE"
	HarmBlockLowAndAbove    = "BLOCK_LOW_AND_ABOVE"
	HarmBlockMediumAndAbove = "BLOCK_MEDIUM_AND_ABOVE"
	HarmBlockOnlyHigh       = "BLOCK_ONLY_HIGH"
)

// Canonical tuning job states, following the Vertex AI job-state vocabulary.
const (
	JobStateUnspecified = "JOB_STATE_UNSPECIFIED"
	JobStateQueued      = "JOB_STATE_QUEUED"
	JobStatePending     = "JOB_STATE_PENDING"
	JobStateRunning     = "JOB_STATE_RUNNING"
	JobStateSucceeded   = "JOB_STATE_SUCCEEDED"
	JobStateFailed      = "JOB_STATE_FAILED"
	JobStateCancelled   = "JOB_STATE_CANCELLED"
)

// Response modalities.
const (
	ModalityText  = "TEXT"
	ModalityImage = "IMAGE"
	ModalityAudio = "AUDIO"
)

// tuningStates maps the Gemini Developer API tuned-model status vocabulary
// onto the canonical job states. This is the one enumeration whose values
// differ between the two backends, not just their placement.
var tuningStates = map[string]string{
	"STATE_UNSPECIFIED": JobStateUnspecified,
	"CREATING":          JobStateRunning,
	"ACTIVE":            JobStateSucceeded,
	"FAILED":            JobStateFailed,
}

// TranslateTuningState canonicalizes a Gemini Developer API tuning status
// string. Values outside the known set pass through unchanged.
func TranslateTuningState(s string) string {
	if out, ok := tuningStates[s]; ok {
		return out
	}
	return s
}
