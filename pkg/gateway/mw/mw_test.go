package mw

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestID_Generated(t *testing.T) {
	var gotID string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if gotID == "" || !strings.HasPrefix(gotID, "req_") {
		t.Fatalf("request id = %q", gotID)
	}
	if rec.Header().Get("X-Request-ID") != gotID {
		t.Fatalf("header id = %q, ctx id = %q", rec.Header().Get("X-Request-ID"), gotID)
	}
}

func TestRequestID_CallerSuppliedKept(t *testing.T) {
	var gotID string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = RequestIDFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req_caller")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if gotID != "req_caller" {
		t.Fatalf("request id = %q", gotID)
	}
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := Recover(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Fatalf("panic not logged: %s", buf.String())
	}
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := RequestID(AccessLog(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/chat", nil))

	out := buf.String()
	for _, want := range []string{`"status":418`, `"path":"/api/chat"`, `"method":"POST"`, `"request_id":"req_`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line missing %s: %s", want, out)
		}
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.7:52123"
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if got := ClientIP(r, false); got != "10.0.0.7" {
		t.Fatalf("untrusted ip = %q", got)
	}
	if got := ClientIP(r, true); got != "203.0.113.9" {
		t.Fatalf("trusted ip = %q", got)
	}

	r.Header.Del("X-Forwarded-For")
	if got := ClientIP(r, true); got != "10.0.0.7" {
		t.Fatalf("trusted without header = %q", got)
	}
}
