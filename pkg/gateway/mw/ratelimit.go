package mw

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vmkdlabs/leadgate/pkg/core"
	"github.com/vmkdlabs/leadgate/pkg/gateway/config"
	"github.com/vmkdlabs/leadgate/pkg/gateway/metrics"
	"github.com/vmkdlabs/leadgate/pkg/gateway/ratelimit"
)

func RateLimit(cfg config.Config, limiter *ratelimit.Limiter, m *metrics.Metrics, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	// Budgets are per client per endpoint; everything else passes through.
	limits := map[string]int{
		"/api/chat":  cfg.TextRequestsPerMinute,
		"/api/voice": cfg.VoiceRequestsPerMinute,
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		limit, ok := limits[r.URL.Path]
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		key := ClientIP(r, cfg.TrustProxyHeaders) + ":" + r.URL.Path
		dec := limiter.Allow(key, limit, time.Now())
		if !dec.Allowed {
			if m != nil {
				m.RecordRateLimitHit(r.URL.Path)
			}
			reqID, _ := RequestIDFrom(r.Context())
			if dec.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(dec.RetryAfter))
			}
			writeJSONError(w, http.StatusTooManyRequests, &core.Error{
				Type:      core.ErrRateLimit,
				Message:   "rate limit exceeded, please wait before sending more requests",
				RequestID: reqID,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
