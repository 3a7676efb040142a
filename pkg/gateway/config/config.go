package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr string

	// OpenAI powers both chat completions and Whisper transcription.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	ChatModel     string
	WhisperModel  string

	GoogleTTSAPIKey  string
	GoogleTTSBaseURL string

	// Synthesized audio artifacts.
	AudioDir      string
	AudioTTL      time.Duration
	MaxAudioBytes int64

	// Request-shape limits.
	MaxMessageChars   int
	MaxSessionIDChars int
	MaxHistoryTurns   int

	// Per-client sliding-window rate limits (requests per minute).
	TextRequestsPerMinute  int
	VoiceRequestsPerMinute int
	RateLimitWindow        time.Duration

	// If true, client identity may be derived from proxy headers like X-Forwarded-For.
	// This should only be enabled when the gateway is deployed behind a trusted proxy/LB.
	TrustProxyHeaders bool

	// CORS
	CORSAllowedOrigins map[string]struct{} // empty => disabled

	// Operational defaults
	ReadHeaderTimeout   time.Duration
	ReadTimeout         time.Duration
	HandlerTimeout      time.Duration
	ShutdownGracePeriod time.Duration
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		Addr:                   envOr("LEADGATE_ADDR", ":8080"),
		OpenAIAPIKey:           strings.TrimSpace(os.Getenv("LEADGATE_OPENAI_API_KEY")),
		OpenAIBaseURL:          envOr("LEADGATE_OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ChatModel:              envOr("LEADGATE_CHAT_MODEL", "gpt-4o"),
		WhisperModel:           envOr("LEADGATE_WHISPER_MODEL", "whisper-1"),
		GoogleTTSAPIKey:        strings.TrimSpace(os.Getenv("LEADGATE_GOOGLE_TTS_API_KEY")),
		GoogleTTSBaseURL:       envOr("LEADGATE_GOOGLE_TTS_BASE_URL", "https://texttospeech.googleapis.com"),
		AudioDir:               envOr("LEADGATE_AUDIO_DIR", "audio_artifacts"),
		AudioTTL:               envDurationOr("LEADGATE_AUDIO_TTL", 5*time.Minute),
		MaxAudioBytes:          envInt64Or("LEADGATE_MAX_AUDIO_BYTES", 10<<20), // 10 MiB
		MaxMessageChars:        envIntOr("LEADGATE_MAX_MESSAGE_CHARS", 2000),
		MaxSessionIDChars:      envIntOr("LEADGATE_MAX_SESSION_ID_CHARS", 128),
		MaxHistoryTurns:        envIntOr("LEADGATE_MAX_HISTORY_TURNS", 50),
		TextRequestsPerMinute:  envIntOr("LEADGATE_TEXT_RPM", 20),
		VoiceRequestsPerMinute: envIntOr("LEADGATE_VOICE_RPM", 10),
		RateLimitWindow:        envDurationOr("LEADGATE_RATE_LIMIT_WINDOW", time.Minute),
		TrustProxyHeaders:      envBoolOr("LEADGATE_TRUST_PROXY_HEADERS", false),
		CORSAllowedOrigins:     make(map[string]struct{}),
		ReadHeaderTimeout:      envDurationOr("LEADGATE_READ_HEADER_TIMEOUT", 10*time.Second),
		ReadTimeout:            envDurationOr("LEADGATE_READ_TIMEOUT", 30*time.Second),
		HandlerTimeout:         envDurationOr("LEADGATE_TOTAL_REQUEST_TIMEOUT", 2*time.Minute),
		ShutdownGracePeriod:    envDurationOr("LEADGATE_SHUTDOWN_GRACE_PERIOD", 30*time.Second),
	}

	for _, origin := range splitCSV(os.Getenv("LEADGATE_CORS_ORIGINS")) {
		cfg.CORSAllowedOrigins[origin] = struct{}{}
	}

	if cfg.OpenAIAPIKey == "" {
		return Config{}, fmt.Errorf("LEADGATE_OPENAI_API_KEY must be set")
	}
	if strings.TrimSpace(cfg.AudioDir) == "" {
		return Config{}, fmt.Errorf("LEADGATE_AUDIO_DIR must not be empty")
	}
	if cfg.AudioTTL <= 0 {
		return Config{}, fmt.Errorf("LEADGATE_AUDIO_TTL must be > 0")
	}
	if cfg.MaxAudioBytes <= 0 {
		return Config{}, fmt.Errorf("LEADGATE_MAX_AUDIO_BYTES must be > 0")
	}
	if cfg.MaxMessageChars <= 0 {
		return Config{}, fmt.Errorf("LEADGATE_MAX_MESSAGE_CHARS must be > 0")
	}
	if cfg.MaxSessionIDChars <= 0 {
		return Config{}, fmt.Errorf("LEADGATE_MAX_SESSION_ID_CHARS must be > 0")
	}
	if cfg.MaxHistoryTurns <= 0 {
		return Config{}, fmt.Errorf("LEADGATE_MAX_HISTORY_TURNS must be > 0")
	}
	if cfg.TextRequestsPerMinute <= 0 {
		return Config{}, fmt.Errorf("LEADGATE_TEXT_RPM must be > 0")
	}
	if cfg.VoiceRequestsPerMinute <= 0 {
		return Config{}, fmt.Errorf("LEADGATE_VOICE_RPM must be > 0")
	}
	if cfg.RateLimitWindow <= 0 {
		return Config{}, fmt.Errorf("LEADGATE_RATE_LIMIT_WINDOW must be > 0")
	}
	if cfg.ReadHeaderTimeout <= 0 {
		return Config{}, fmt.Errorf("LEADGATE_READ_HEADER_TIMEOUT must be > 0")
	}
	if cfg.ReadTimeout <= 0 {
		return Config{}, fmt.Errorf("LEADGATE_READ_TIMEOUT must be > 0")
	}
	if cfg.HandlerTimeout <= 0 {
		return Config{}, fmt.Errorf("LEADGATE_TOTAL_REQUEST_TIMEOUT must be > 0")
	}
	if cfg.ShutdownGracePeriod <= 0 {
		return Config{}, fmt.Errorf("LEADGATE_SHUTDOWN_GRACE_PERIOD must be > 0")
	}

	return cfg, nil
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt64Or(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func envIntOr(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func envBoolOr(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return def
	}
}

func envDurationOr(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
