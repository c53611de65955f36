package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRealIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.5:5555"
	if got := RealIP(r); got != "10.0.0.5" {
		t.Errorf("RealIP = %q, want 10.0.0.5", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := RealIP(r); got != "203.0.113.7" {
		t.Errorf("RealIP = %q, want 203.0.113.7", got)
	}
}

func TestRequestLoggerLevels(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "level=INFO"},
		{http.StatusNotFound, "level=WARN"},
		{http.StatusInternalServerError, "level=ERROR"},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/habits", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(c.status)
		})
		h := RequestLogger(logger)(mux)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/habits", nil))

		out := buf.String()
		if !strings.Contains(out, c.level) {
			t.Errorf("status %d: log %q missing %s", c.status, out, c.level)
		}
		if !strings.Contains(out, "path=/api/habits") {
			t.Errorf("status %d: log %q missing path", c.status, out)
		}
	}
}

func TestStatusRecorderUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}
	if sr.Unwrap() != rec {
		t.Error("Unwrap should return the wrapped writer")
	}
}

func TestStatusRecorderHijackUnsupported(t *testing.T) {
	sr := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	if _, _, err := sr.Hijack(); err == nil {
		t.Error("expected error hijacking a recorder")
	}
}
