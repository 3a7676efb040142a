package mw

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds each request with a context deadline. Handlers surface an
// exceeded deadline as a timeout error through the usual error envelope.
func Timeout(d time.Duration, next http.Handler) http.Handler {
	if d <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
