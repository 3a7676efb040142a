package handlers

import (
	"net/http"

	"github.com/vmkdlabs/leadgate/pkg/gateway/config"
)

type HealthHandler struct{}

func (h HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

type ReadyHandler struct {
	Config config.Config
}

func (h ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type readyResp struct {
		OK     bool     `json:"ok"`
		Issues []string `json:"issues,omitempty"`
	}

	issues := make([]string, 0, 4)
	if h.Config.OpenAIAPIKey == "" {
		issues = append(issues, "openai api key not configured")
	}
	if h.Config.AudioDir == "" {
		issues = append(issues, "audio dir not configured")
	}
	if h.Config.MaxAudioBytes <= 0 {
		issues = append(issues, "max audio bytes must be > 0")
	}
	if h.Config.AudioTTL <= 0 {
		issues = append(issues, "audio ttl must be > 0")
	}
	if h.Config.ReadHeaderTimeout <= 0 || h.Config.ReadTimeout <= 0 || h.Config.HandlerTimeout <= 0 {
		issues = append(issues, "timeouts must be > 0")
	}

	ok := len(issues) == 0
	status := http.StatusOK
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, readyResp{OK: ok, Issues: issues})
}

// APIHealthHandler reports which providers the deployment has configured.
// The frontend uses it to decide whether to offer voice input.
type APIHealthHandler struct {
	Config config.Config
}

func (h APIHealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	type healthResp struct {
		Status   string          `json:"status"`
		Services map[string]bool `json:"services"`
	}

	chatReady := h.Config.OpenAIAPIKey != ""
	resp := healthResp{
		Status: "healthy",
		Services: map[string]bool{
			"chat":  chatReady,
			"stt":   chatReady, // Whisper shares the OpenAI credential
			"tts":   h.Config.GoogleTTSAPIKey != "",
			"leads": true,
		},
	}
	if !chatReady {
		resp.Status = "degraded"
	}
	writeJSON(w, http.StatusOK, resp)
}
