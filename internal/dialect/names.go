package dialect

import (
	"fmt"
	"regexp"
	"strings"
)

// NormalizeModel canonicalizes a model identifier into the path format the
// dialect expects. Already-qualified names are returned unchanged.
func NormalizeModel(tc *Context, model string) (string, error) {
	if model == "" {
		return "", fmt.Errorf("dialect: model name is required")
	}
	if strings.HasPrefix(model, "publishers/") ||
		strings.HasPrefix(model, "projects/") ||
		strings.HasPrefix(model, "models/") ||
		strings.HasPrefix(model, "tunedModels/") {
		return model, nil
	}
	if tc.Dialect == VertexAI {
		if publisher, name, ok := strings.Cut(model, "/"); ok {
			return fmt.Sprintf("publishers/%s/models/%s", publisher, name), nil
		}
		return "publishers/google/models/" + model, nil
	}
	return "models/" + model, nil
}

// NormalizeCacheModel normalizes a model name for cached-content operations.
// On Vertex AI, cache resources always hang off the project/location path,
// even for publisher models.
func NormalizeCacheModel(tc *Context, model string) (string, error) {
	name, err := NormalizeModel(tc, model)
	if err != nil {
		return "", err
	}
	if tc.Dialect != VertexAI || strings.HasPrefix(name, "projects/") {
		return name, nil
	}
	if strings.HasPrefix(name, "publishers/") {
		return fmt.Sprintf("projects/%s/locations/%s/%s", tc.Project, tc.Location, name), nil
	}
	return name, nil
}

// ResourceName completes a short resource name into the dialect's fully
// qualified form. prefix is the collection segment ("cachedContents",
// "tuningJobs", ...); expectedParts is the number of "/"-separated segments a
// bare name has (one, unless the resource nests).
//
// Names that already carry path structure are completed from the left:
// "projects/..." is final, "locations/..." needs only the project, and a
// "<prefix>/..." form needs the project/location root on Vertex AI. A name
// with more segments than expected is passed through untouched.
func ResourceName(tc *Context, name, prefix string, expectedParts int) string {
	if expectedParts <= 0 {
		expectedParts = 1
	}
	switch {
	case strings.HasPrefix(name, "projects/"):
		return name
	case strings.HasPrefix(name, "locations/"):
		return fmt.Sprintf("projects/%s/%s", tc.Project, name)
	case strings.HasPrefix(name, prefix+"/"):
		if tc.Dialect == VertexAI {
			return fmt.Sprintf("projects/%s/locations/%s/%s", tc.Project, tc.Location, name)
		}
		return name
	case len(strings.Split(name, "/")) == expectedParts:
		if tc.Dialect == VertexAI {
			return fmt.Sprintf("projects/%s/locations/%s/%s/%s", tc.Project, tc.Location, prefix, name)
		}
		return prefix + "/" + name
	default:
		return name
	}
}

// NormalizeCachedContentName completes a cached-content resource name.
func NormalizeCachedContentName(tc *Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("dialect: cached content name is required")
	}
	return ResourceName(tc, name, "cachedContents", 1), nil
}

var fileURLRe = regexp.MustCompile(`files/([^/]+)$`)

// FileID extracts the bare file identifier from any of the accepted spellings:
// a file record's name, a video record's URI, a generated video's nested
// video URI, a files/<id> short form, a full download URL, or a plain id.
func FileID(v any) (string, error) {
	var s string
	switch vv := v.(type) {
	case string:
		s = vv
	case map[string]any:
		if name, ok := vv["name"].(string); ok {
			s = name
		} else if uri, ok := vv["uri"].(string); ok {
			s = uri
		} else if video, ok := vv["video"].(map[string]any); ok {
			s, _ = video["uri"].(string)
		}
	}
	if s == "" {
		return "", fmt.Errorf("dialect: could not extract a file id from %v", v)
	}
	if strings.HasPrefix(s, "https://") {
		m := fileURLRe.FindStringSubmatch(s)
		if m == nil {
			return "", fmt.Errorf("dialect: URL %q does not reference a file", s)
		}
		// Generated file URLs may carry a :download suffix on the id.
		id, _, _ := strings.Cut(m[1], ":")
		return id, nil
	}
	if id, ok := strings.CutPrefix(s, "files/"); ok {
		return id, nil
	}
	if strings.Contains(s, "/") {
		return "", fmt.Errorf("dialect: %q is not a file id", s)
	}
	return s, nil
}
