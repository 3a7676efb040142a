package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vmkdlabs/leadgate/pkg/gateway/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Addr:         ":0",
		OpenAIAPIKey: "sk-test",
		ChatModel:    "gpt-4o",
		WhisperModel: "whisper-1",

		GoogleTTSAPIKey: "goog-test",

		AudioDir:      t.TempDir(),
		AudioTTL:      time.Minute,
		MaxAudioBytes: 10 << 20,

		MaxMessageChars:   2000,
		MaxSessionIDChars: 128,
		MaxHistoryTurns:   50,

		TextRequestsPerMinute:  20,
		VoiceRequestsPerMinute: 10,
		RateLimitWindow:        time.Minute,

		CORSAllowedOrigins: map[string]struct{}{},

		ReadHeaderTimeout:   10 * time.Second,
		ReadTimeout:         30 * time.Second,
		HandlerTimeout:      2 * time.Minute,
		ShutdownGracePeriod: 30 * time.Second,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s, err := New(testConfig(t), logger)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s
}

func TestServer_UnknownRoute_ReturnsJSON404(t *testing.T) {
	s := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%q", ct)
	}
	if !strings.Contains(rr.Body.String(), `"type":"not_found_error"`) {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
}

func TestServer_HealthRoutes_Reachable(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics", "/api/health"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		s.Handler().ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("path %s: status=%d body=%q", path, rr.Code, rr.Body.String())
		}
	}
}

func TestServer_ChatRoute_ValidatesInput(t *testing.T) {
	s := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"","session_id":"s1"}`))
	req.Header.Set("Content-Type", "application/json")
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"type":"invalid_request_error"`) {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
}

func TestServer_RequestIDAssigned(t *testing.T) {
	s := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	s.Handler().ServeHTTP(rr, req)

	if id := rr.Header().Get("X-Request-ID"); !strings.HasPrefix(id, "req_") {
		t.Fatalf("request id = %q", id)
	}
}

func TestServer_AudioRoute_InvalidReference(t *testing.T) {
	s := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/audio/nope.mp3", nil)
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
}

func TestServer_RateLimitApplied(t *testing.T) {
	cfg := testConfig(t)
	cfg.TextRequestsPerMinute = 1
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	body := `{"message":""}`
	var last int
	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		s.Handler().ServeHTTP(rr, req)
		last = rr.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("second request status=%d, want 429", last)
	}
}
