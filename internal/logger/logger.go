package logger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// New creates a new slog.Logger instance with the specified logging level.
// level can be: "info", "debug", "error". Default is "info".
func New(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler)
}

// NewJSON creates a new slog.Logger with JSON output.
func NewJSON(level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler)
}

// parseLevel converts string level to slog.Level
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// binaryFields are payload keys that regularly carry large base64 blobs
// (inline media, generated images) and should never land in logs whole.
var binaryFields = map[string]bool{
	"data":               true,
	"imageBytes":         true,
	"videoBytes":         true,
	"bytesBase64Encoded": true,
	"thoughtSignature":   true,
}

// TruncateLongFields truncates long values inside a JSON payload for debug
// logging, so inline audio/image data does not drown the log stream.
func TruncateLongFields(body string, maxFieldLength int) string {
	var data map[string]any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return body
	}

	truncateValue(data, maxFieldLength)

	truncated, err := json.Marshal(data)
	if err != nil {
		return body
	}
	return string(truncated)
}

// truncateValue recursively truncates long string values in a map or slice.
func truncateValue(v any, maxLength int) {
	switch val := v.(type) {
	case map[string]any:
		for key, value := range val {
			str, isString := value.(string)
			switch {
			case isString && binaryFields[key] && len(str) > 50:
				val[key] = fmt.Sprintf("%s... [truncated %d chars]", str[:50], len(str)-50)
			case isString && len(str) > maxLength:
				val[key] = str[:maxLength] + "... [truncated]"
			default:
				truncateValue(value, maxLength)
			}
		}
	case []any:
		for _, item := range val {
			truncateValue(item, maxLength)
		}
	}
}
