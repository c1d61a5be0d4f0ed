// Package dialect rewrites payloads between the SDK's canonical object model
// and the wire shapes of the two supported backends: the Gemini Developer API
// and Vertex AI. The per-concept differences are declared as field-mapping
// tables interpreted by a single generic engine, so adding a field means
// adding a table row, not a function.
package dialect

// Dialect identifies one of the two supported backend wire formats.
// It is resolved once at client construction and threaded through every
// transformation.
type Dialect int

const (
	// GeminiAPI is the Gemini Developer API wire format
	// (generativelanguage.googleapis.com).
	GeminiAPI Dialect = iota

	// VertexAI is the Vertex AI wire format (aiplatform.googleapis.com),
	// where resources are rooted under projects/{project}/locations/{location}.
	VertexAI
)

func (d Dialect) String() string {
	switch d {
	case GeminiAPI:
		return "gemini"
	case VertexAI:
		return "vertex"
	default:
		return "unknown"
	}
}

// Context carries the state a transformation needs beyond the payload
// itself: the active dialect, the client's project/location (used by
// identifier normalizers), and optionally the parent object under assembly
// for fields that land on a sibling path rather than under the concept's own
// key. Parent-targeted writes are skipped when Parent is nil, which is how
// "validate only" transformations are expressed.
type Context struct {
	Dialect  Dialect
	Project  string
	Location string
	Parent   map[string]any
}
