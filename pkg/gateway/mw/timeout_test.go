package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTimeout_SetsDeadline(t *testing.T) {
	var hadDeadline bool
	h := Timeout(time.Minute, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadDeadline = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !hadDeadline {
		t.Fatalf("expected a context deadline")
	}
}

func TestTimeout_ZeroDisables(t *testing.T) {
	var hadDeadline bool
	h := Timeout(0, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadDeadline = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if hadDeadline {
		t.Fatalf("expected no context deadline")
	}
}
