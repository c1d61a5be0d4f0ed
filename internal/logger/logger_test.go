package logger

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, level := range []string{"info", "debug", "error", "unknown"} {
		t.Run(level, func(t *testing.T) {
			assert.NotNil(t, New(level))
		})
	}
}

func TestNewJSON(t *testing.T) {
	assert.NotNil(t, NewJSON("info"))
}

func TestTruncateLongFields_InvalidJSON(t *testing.T) {
	body := "not valid json"
	assert.Equal(t, body, TruncateLongFields(body, 100))
}

func TestTruncateLongFields_InlineData(t *testing.T) {
	payload := map[string]any{
		"contents": []any{
			map[string]any{
				"parts": []any{
					map[string]any{
						"inlineData": map[string]any{
							"mimeType": "audio/pcm",
							"data":     strings.Repeat("A", 500),
						},
					},
				},
			},
		},
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	out := TruncateLongFields(string(raw), 200)
	assert.Contains(t, out, "[truncated 450 chars]")
	assert.Less(t, len(out), len(raw))
}

func TestTruncateLongFields_GenericLongString(t *testing.T) {
	raw := `{"text":"` + strings.Repeat("x", 300) + `"}`
	out := TruncateLongFields(raw, 100)
	assert.Contains(t, out, "... [truncated]")
}

func TestTruncateLongFields_ShortValuesUntouched(t *testing.T) {
	raw := `{"model":"models/gemini-2.0-flash","data":"short"}`
	out := TruncateLongFields(raw, 100)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "models/gemini-2.0-flash", got["model"])
	assert.Equal(t, "short", got["data"])
}
