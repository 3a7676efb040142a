// Package apierror maps internal errors to the canonical wire error
// envelope and an HTTP status.
package apierror

import (
	"context"
	"errors"
	"net/http"

	"github.com/vmkdlabs/leadgate/pkg/core"
	"github.com/vmkdlabs/leadgate/pkg/core/providers/openai"
)

type Envelope struct {
	Error *core.Error `json:"error"`
}

func FromError(err error, requestID string) (*core.Error, int) {
	if err == nil {
		return nil, http.StatusOK
	}

	// Context timeouts/cancellation.
	if errors.Is(err, context.DeadlineExceeded) {
		return &core.Error{
			Type:      core.ErrAPI,
			Message:   "request timeout",
			RequestID: requestID,
		}, http.StatusGatewayTimeout
	}
	if errors.Is(err, context.Canceled) {
		return &core.Error{
			Type:      core.ErrAPI,
			Message:   "request cancelled",
			RequestID: requestID,
		}, http.StatusRequestTimeout
	}

	// Already canonical.
	var coreErr *core.Error
	if errors.As(err, &coreErr) && coreErr != nil {
		out := *coreErr
		out.RequestID = requestID
		return &out, statusFromType(coreErr.Type)
	}

	// OpenAI errors surface as a generic provider failure; upstream messages
	// are not forwarded to clients.
	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) && openaiErr != nil {
		out := core.NewProviderError("chat")
		out.RequestID = requestID
		return out, http.StatusBadGateway
	}

	// Unknown errors: treat as internal API error (do not leak details by default).
	return &core.Error{
		Type:      core.ErrAPI,
		Message:   "internal error",
		RequestID: requestID,
	}, http.StatusInternalServerError
}

func statusFromType(t core.ErrorType) int {
	switch t {
	case core.ErrInvalidRequest:
		return http.StatusBadRequest
	case core.ErrPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case core.ErrNotFound:
		return http.StatusNotFound
	case core.ErrRateLimit:
		return http.StatusTooManyRequests
	case core.ErrUnprocessable:
		return http.StatusUnprocessableEntity
	case core.ErrProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
