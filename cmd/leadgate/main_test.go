package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/vmkdlabs/leadgate/pkg/gateway/config"
	gatewayserver "github.com/vmkdlabs/leadgate/pkg/gateway/server"
)

func TestRunMain_ReturnsNonZeroWhenConfigLoadFails(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	exitCode := runMain(context.Background(), &stderr, gatewayDeps{
		loadConfig: func() (config.Config, error) {
			return config.Config{}, errors.New("boom")
		},
		newGateway: func(cfg config.Config, logger *slog.Logger) (*gatewayserver.Server, error) {
			t.Fatalf("newGateway should not be called when config load fails")
			return nil, nil
		},
		signalNotify: func(c chan<- os.Signal, sig ...os.Signal) {},
		signalStop:   func(c chan<- os.Signal) {},
	})

	if exitCode != 1 {
		t.Fatalf("exitCode=%d, want 1", exitCode)
	}
	if got := stderr.String(); got == "" {
		t.Fatalf("expected stderr output for startup error")
	}
}

func TestBuildHTTPServer_UsesConfiguredAddress(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Addr:              "127.0.0.1:9999",
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       3 * time.Second,
	}

	srv := buildHTTPServer(cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	if srv.Addr != cfg.Addr {
		t.Fatalf("Addr=%q, want %q", srv.Addr, cfg.Addr)
	}
	if srv.ReadHeaderTimeout != cfg.ReadHeaderTimeout {
		t.Fatalf("ReadHeaderTimeout=%v, want %v", srv.ReadHeaderTimeout, cfg.ReadHeaderTimeout)
	}
	if srv.ReadTimeout != cfg.ReadTimeout {
		t.Fatalf("ReadTimeout=%v, want %v", srv.ReadTimeout, cfg.ReadTimeout)
	}
}

func TestGatewayHandlerStack_Smoke(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	gw, err := gatewayserver.New(config.Config{
		Addr:         ":0",
		OpenAIAPIKey: "sk-test",
		ChatModel:    "gpt-4o",
		WhisperModel: "whisper-1",

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

		ReadHeaderTimeout:   time.Second,
		ReadTimeout:         time.Second,
		HandlerTimeout:      time.Minute,
		ShutdownGracePeriod: time.Second,
	}, logger)
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}

	ts := httptest.NewServer(gw.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d, want %d", resp.StatusCode, http.StatusOK)
	}
}
