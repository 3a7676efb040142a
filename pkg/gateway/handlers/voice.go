package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/vmkdlabs/leadgate/pkg/core"
	"github.com/vmkdlabs/leadgate/pkg/core/types"
	"github.com/vmkdlabs/leadgate/pkg/core/voice"
	"github.com/vmkdlabs/leadgate/pkg/gateway/config"
	"github.com/vmkdlabs/leadgate/pkg/gateway/metrics"
	"github.com/vmkdlabs/leadgate/pkg/gateway/mw"
)

// VoicePipeline runs one transcribe/respond/synthesize turn.
type VoicePipeline interface {
	Process(ctx context.Context, audio io.Reader, format string, langHint types.Language) (*voice.Result, error)
}

// audioFormats maps accepted upload MIME types to provider format hints.
// Browsers report webm or ogg from MediaRecorder; the rest cover uploaded
// files.
var audioFormats = map[string]string{
	"audio/webm":  "webm",
	"video/webm":  "webm",
	"audio/ogg":   "ogg",
	"audio/oga":   "ogg",
	"audio/wav":   "wav",
	"audio/wave":  "wav",
	"audio/x-wav": "wav",
	"audio/mpeg":  "mp3",
	"audio/mp3":   "mp3",
	"audio/mp4":   "mp4",
}

type voiceResponse struct {
	Transcript string         `json:"transcript"`
	Reply      string         `json:"reply"`
	Language   types.Language `json:"detected_language"`
	AudioURL   string         `json:"audio_url,omitempty"`
	Lead       *types.Lead    `json:"lead,omitempty"`
}

type VoiceHandler struct {
	Config   config.Config
	Pipeline VoicePipeline
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

func (h VoiceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqID, _ := mw.RequestIDFrom(r.Context())

	// Multipart framing adds overhead beyond the audio itself.
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxAudioBytes+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeErr(w, reqID, core.NewPayloadTooLargeError("audio exceeds the upload size limit"))
			return
		}
		writeErr(w, reqID, core.NewInvalidRequestError("request must be multipart form data"))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeErr(w, reqID, core.NewInvalidRequestErrorWithParam("audio file is required", "audio"))
		return
	}
	defer file.Close()

	if header.Size == 0 {
		writeErr(w, reqID, core.NewInvalidRequestErrorWithParam("audio file is empty", "audio"))
		return
	}
	if header.Size > h.Config.MaxAudioBytes {
		writeErr(w, reqID, core.NewPayloadTooLargeError("audio exceeds the upload size limit"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mt
	}
	format, ok := audioFormats[contentType]
	if !ok {
		writeErr(w, reqID, core.NewInvalidRequestErrorWithParam("unsupported audio type", "audio"))
		return
	}

	langHint := types.Language(r.FormValue("language"))

	result, err := h.Pipeline.Process(r.Context(), file, format, langHint)
	if err != nil {
		// Client-side faults (bad audio, empty transcript) are not
		// provider failures.
		var coreErr *core.Error
		clientFault := errors.As(err, &coreErr) && coreErr.Type != core.ErrProvider
		if h.Metrics != nil && !clientFault {
			h.Metrics.RecordProviderError("voice")
		}
		h.Logger.Error("voice turn failed", "request_id", reqID, "error", err)
		writeErr(w, reqID, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordTranscript(string(result.Language))
		if result.AudioRef != "" {
			h.Metrics.RecordAudioArtifact()
		}
		if result.Lead != nil {
			h.Metrics.RecordLead("voice")
		}
	}
	if result.Lead != nil {
		h.Logger.Info("lead captured", "request_id", reqID, "strategy", "voice")
	}

	resp := voiceResponse{
		Transcript: result.Transcript,
		Reply:      result.Reply,
		Language:   result.Language,
		Lead:       result.Lead,
	}
	if result.AudioRef != "" {
		resp.AudioURL = "/api/audio/" + result.AudioRef
	}
	writeJSON(w, http.StatusOK, resp)
}
