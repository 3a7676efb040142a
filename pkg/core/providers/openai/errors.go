package openai

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Error represents an API error from OpenAI.
type Error struct {
	Status  int    `json:"status"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("openai: %s: %s (code: %s)", e.Type, e.Message, e.Code)
	}
	return fmt.Sprintf("openai: %s: %s", e.Type, e.Message)
}

// IsRetryable returns true if the request may succeed if retried.
func (e *Error) IsRetryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// openaiError is the error envelope OpenAI returns.
type openaiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// parseError parses an error response from OpenAI.
func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var oaiErr openaiError
	if err := json.Unmarshal(body, &oaiErr); err != nil || oaiErr.Error.Message == "" {
		return &Error{
			Status:  resp.StatusCode,
			Type:    "api_error",
			Message: string(body),
		}
	}

	errType := oaiErr.Error.Type
	if errType == "" {
		errType = "api_error"
	}
	return &Error{
		Status:  resp.StatusCode,
		Type:    errType,
		Message: oaiErr.Error.Message,
		Code:    oaiErr.Error.Code,
	}
}
