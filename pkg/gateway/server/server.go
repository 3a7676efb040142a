// Package server wires the configuration, providers, middleware, and
// handlers into one HTTP surface.
package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/vmkdlabs/leadgate/pkg/core/chat"
	"github.com/vmkdlabs/leadgate/pkg/core/lead"
	"github.com/vmkdlabs/leadgate/pkg/core/providers/openai"
	"github.com/vmkdlabs/leadgate/pkg/core/voice"
	"github.com/vmkdlabs/leadgate/pkg/core/voice/stt"
	"github.com/vmkdlabs/leadgate/pkg/core/voice/tts"
	"github.com/vmkdlabs/leadgate/pkg/gateway/audiostore"
	"github.com/vmkdlabs/leadgate/pkg/gateway/config"
	"github.com/vmkdlabs/leadgate/pkg/gateway/handlers"
	"github.com/vmkdlabs/leadgate/pkg/gateway/metrics"
	"github.com/vmkdlabs/leadgate/pkg/gateway/mw"
	"github.com/vmkdlabs/leadgate/pkg/gateway/ratelimit"
)

type Server struct {
	cfg    config.Config
	logger *slog.Logger
	mux    *http.ServeMux

	httpClient *http.Client
	limiter    *ratelimit.Limiter
	metrics    *metrics.Metrics
	store      *audiostore.Store
	chat       *chat.Orchestrator
	pipeline   *voice.Pipeline
	leads      *lead.Extractor
}

func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: 10 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	store, err := audiostore.New(cfg.AudioDir, cfg.AudioTTL, logger)
	if err != nil {
		return nil, fmt.Errorf("audio store: %w", err)
	}

	chatOpts := []openai.Option{
		openai.WithModel(cfg.ChatModel),
		openai.WithHTTPClient(httpClient),
	}
	if cfg.OpenAIBaseURL != "" {
		chatOpts = append(chatOpts, openai.WithBaseURL(cfg.OpenAIBaseURL))
	}
	chatProvider := openai.New(cfg.OpenAIAPIKey, chatOpts...)

	whisper := stt.NewWhisperWithClient(cfg.OpenAIAPIKey, httpClient)
	if cfg.OpenAIBaseURL != "" {
		whisper = whisper.WithBaseURL(cfg.OpenAIBaseURL)
	}

	google := tts.NewGoogleWithClient(cfg.GoogleTTSAPIKey, httpClient)
	if cfg.GoogleTTSBaseURL != "" {
		google = google.WithBaseURL(cfg.GoogleTTSBaseURL)
	}

	orchestrator := chat.NewOrchestrator(chatProvider, logger)
	leads := lead.NewExtractor(logger)
	pipeline := voice.NewPipeline(whisper, google, orchestrator, leads, store, logger).
		WithSTTModel(cfg.WhisperModel)

	s := &Server{
		cfg:        cfg,
		logger:     logger,
		mux:        http.NewServeMux(),
		httpClient: httpClient,
		limiter: ratelimit.New(ratelimit.Config{
			Window: cfg.RateLimitWindow,
		}),
		metrics:  metrics.New(""),
		store:    store,
		chat:     orchestrator,
		pipeline: pipeline,
		leads:    leads,
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.Handle("/healthz", handlers.HealthHandler{})
	s.mux.Handle("/readyz", handlers.ReadyHandler{Config: s.cfg})
	s.mux.Handle("/metrics", s.metrics.Handler())

	s.mux.Handle("/api/health", handlers.APIHealthHandler{Config: s.cfg})
	s.mux.Handle("/api/chat", handlers.ChatHandler{
		Config:    s.cfg,
		Responder: s.chat,
		Leads:     s.leads,
		Logger:    s.logger,
		Metrics:   s.metrics,
	})
	s.mux.Handle("/api/voice", handlers.VoiceHandler{
		Config:   s.cfg,
		Pipeline: s.pipeline,
		Logger:   s.logger,
		Metrics:  s.metrics,
	})
	s.mux.Handle("/api/audio/", handlers.AudioHandler{
		Store:  s.store,
		Logger: s.logger,
	})

	s.mux.Handle("/", handlers.NotFoundHandler{})
}

// Store exposes the artifact store for startup and shutdown sweeps.
func (s *Server) Store() *audiostore.Store {
	return s.store
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = mw.Timeout(s.cfg.HandlerTimeout, h)
	h = mw.RateLimit(s.cfg, s.limiter, s.metrics, h)
	h = mw.CORS(s.cfg, h)
	h = mw.Instrument(s.metrics, h)
	h = mw.Recover(s.logger, h)
	h = mw.AccessLog(s.logger, h)
	h = mw.RequestID(h)
	return h
}
