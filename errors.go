package geminikit

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrPagerExhausted is returned by Pager.Next once no continuation token
// remains. Asking for another page then is a caller error, not a transport
// failure.
var ErrPagerExhausted = errors.New("geminikit: no more pages")

// APIError is an error response from the backend, carrying the HTTP status
// and the decoded error payload when one was present.
type APIError struct {
	Code    int    `json:"code,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("geminikit: API error %d (%s): %s", e.Code, e.Status, e.Message)
}

// ClientError is a 4xx backend response. The SDK never retries these.
type ClientError struct {
	APIError
}

// ServerError is a 5xx backend response. Retry policy is the caller's
// responsibility; only the chunked upload path retries internally.
type ServerError struct {
	APIError
}

// apiErrorFrom builds the typed error for a failed response body. Bodies are
// expected to be {"error": {"code", "status", "message"}} but anything
// undecodable still yields an error with the raw body as message.
func apiErrorFrom(statusCode int, body []byte) error {
	var envelope struct {
		Error APIError `json:"error"`
	}
	apiErr := APIError{Code: statusCode}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr = envelope.Error
		if apiErr.Code == 0 {
			apiErr.Code = statusCode
		}
	} else {
		apiErr.Message = string(body)
	}
	if apiErr.Code >= 500 {
		return &ServerError{APIError: apiErr}
	}
	return &ClientError{APIError: apiErr}
}

// streamAPIError builds the typed error for an error payload embedded in an
// otherwise successful SSE stream.
func streamAPIError(payload map[string]any) error {
	apiErr := APIError{}
	if code, ok := payload["code"].(float64); ok {
		apiErr.Code = int(code)
	}
	if status, ok := payload["status"].(string); ok {
		apiErr.Status = status
	}
	if message, ok := payload["message"].(string); ok {
		apiErr.Message = message
	}
	if apiErr.Code >= 500 {
		return &ServerError{APIError: apiErr}
	}
	return &ClientError{APIError: apiErr}
}
