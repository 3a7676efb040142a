package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/vmkdlabs/leadgate/pkg/core"
	"github.com/vmkdlabs/leadgate/pkg/core/langdetect"
	"github.com/vmkdlabs/leadgate/pkg/core/lead"
	"github.com/vmkdlabs/leadgate/pkg/core/types"
	"github.com/vmkdlabs/leadgate/pkg/gateway/config"
	"github.com/vmkdlabs/leadgate/pkg/gateway/metrics"
	"github.com/vmkdlabs/leadgate/pkg/gateway/mw"
)

// Responder produces an assistant reply for a user message.
type Responder interface {
	Respond(ctx context.Context, userMessage string, history []types.Turn, lang types.Language) (string, error)
}

type chatRequest struct {
	Message   string         `json:"message"`
	SessionID string         `json:"session_id"`
	Language  types.Language `json:"language,omitempty"`
	History   []types.Turn   `json:"history,omitempty"`
}

type chatResponse struct {
	Reply     string         `json:"reply"`
	Language  types.Language `json:"language"`
	SessionID string         `json:"session_id"`
	Lead      *types.Lead    `json:"lead,omitempty"`
}

type ChatHandler struct {
	Config    config.Config
	Responder Responder
	Leads     *lead.Extractor
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
}

func (h ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqID, _ := mw.RequestIDFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErr(w, reqID, core.NewPayloadTooLargeError("request body too large"))
		return
	}

	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeErr(w, reqID, core.NewInvalidRequestError("request body must be valid JSON"))
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeErr(w, reqID, core.NewInvalidRequestErrorWithParam("message must not be empty", "message"))
		return
	}
	if utf8.RuneCountInString(req.Message) > h.Config.MaxMessageChars {
		writeErr(w, reqID, core.NewInvalidRequestErrorWithParam("message too long", "message"))
		return
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		writeErr(w, reqID, core.NewInvalidRequestErrorWithParam("session_id must not be empty", "session_id"))
		return
	}
	if utf8.RuneCountInString(req.SessionID) > h.Config.MaxSessionIDChars {
		writeErr(w, reqID, core.NewInvalidRequestErrorWithParam("session_id too long", "session_id"))
		return
	}

	// The server is stateless; the client replays history. Only the newest
	// turns go to the model, but lead extraction scans all of them since
	// contact details may sit in the oldest.
	recent := req.History
	if len(recent) > h.Config.MaxHistoryTurns {
		recent = recent[len(recent)-h.Config.MaxHistoryTurns:]
	}

	lang := langdetect.Resolve(req.Language, req.Message)

	reply, err := h.Responder.Respond(r.Context(), req.Message, recent, lang)
	if err != nil {
		if h.Metrics != nil {
			h.Metrics.RecordProviderError("chat")
		}
		h.Logger.Error("chat completion failed", "request_id", reqID, "error", err)
		writeErr(w, reqID, err)
		return
	}

	capturedLead := h.Leads.FromReply(reply)
	strategy := "marker"
	reply = lead.Strip(reply)
	if capturedLead == nil {
		capturedLead = h.Leads.FromConversation(req.Message, req.History)
		strategy = "conversation"
	}
	if capturedLead != nil {
		if h.Metrics != nil {
			h.Metrics.RecordLead(strategy)
		}
		h.Logger.Info("lead captured",
			"request_id", reqID,
			"session_id", req.SessionID,
			"strategy", strategy)
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Reply:     reply,
		Language:  lang,
		SessionID: req.SessionID,
		Lead:      capturedLead,
	})
}
