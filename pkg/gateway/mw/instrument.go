package mw

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vmkdlabs/leadgate/pkg/gateway/metrics"
)

// Instrument records request counts and latency for the API endpoints.
// Health probes and the metrics endpoint itself are not counted.
func Instrument(m *metrics.Metrics, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}

		endpoint := r.URL.Path
		if strings.HasPrefix(endpoint, "/api/audio/") {
			endpoint = "/api/audio"
		}

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(sw, r)
		m.RecordRequest(endpoint, strconv.Itoa(sw.status), time.Since(start))
	})
}
