// Package core holds the canonical error taxonomy shared by the gateway
// handlers and the conversation/voice components.
package core

import "fmt"

// Error is the canonical API error carried through the gateway.
type Error struct {
	Type      ErrorType `json:"type"`
	Message   string    `json:"message"`
	Param     string    `json:"param,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrorType categorizes errors.
type ErrorType string

const (
	ErrInvalidRequest  ErrorType = "invalid_request_error"
	ErrPayloadTooLarge ErrorType = "payload_too_large_error"
	ErrNotFound        ErrorType = "not_found_error"
	ErrRateLimit       ErrorType = "rate_limit_error"
	ErrUnprocessable   ErrorType = "unprocessable_error"
	ErrProvider        ErrorType = "provider_error"
	ErrAPI             ErrorType = "api_error"
)

// NewInvalidRequestError creates an invalid request error.
func NewInvalidRequestError(message string) *Error {
	return &Error{Type: ErrInvalidRequest, Message: message}
}

// NewInvalidRequestErrorWithParam creates an invalid request error with a parameter.
func NewInvalidRequestErrorWithParam(message, param string) *Error {
	return &Error{Type: ErrInvalidRequest, Message: message, Param: param}
}

// NewPayloadTooLargeError creates an oversized payload error.
func NewPayloadTooLargeError(message string) *Error {
	return &Error{Type: ErrPayloadTooLarge, Message: message}
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(message string) *Error {
	return &Error{Type: ErrNotFound, Message: message}
}

// NewRateLimitError creates a rate limit error.
func NewRateLimitError(message string) *Error {
	return &Error{Type: ErrRateLimit, Message: message}
}

// NewUnprocessableError marks input that was valid at the transport level but
// could not be processed, such as audio that produced no usable transcript.
func NewUnprocessableError(message string) *Error {
	return &Error{Type: ErrUnprocessable, Message: message}
}

// NewProviderError reports an upstream provider failure. The underlying
// detail stays in the logs; the message is safe to return to clients.
func NewProviderError(provider string) *Error {
	return &Error{
		Type:    ErrProvider,
		Message: fmt.Sprintf("the %s backend is temporarily unavailable, please try again later", provider),
	}
}

// NewAPIError creates a generic API error.
func NewAPIError(message string) *Error {
	return &Error{Type: ErrAPI, Message: message}
}
