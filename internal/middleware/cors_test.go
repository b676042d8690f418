package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const boardOrigin = "https://board.flightboard.example"

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		requestOrigin  string
		method         string
		wantStatus     int
		wantHeader     string
	}{
		{
			name:           "no origins configured blocks all",
			allowedOrigins: []string{},
			requestOrigin:  boardOrigin,
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "", // No CORS header
		},
		{
			name:           "allowed origin gets header",
			allowedOrigins: []string{boardOrigin},
			requestOrigin:  boardOrigin,
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     boardOrigin,
		},
		{
			name:           "disallowed origin blocked on preflight",
			allowedOrigins: []string{boardOrigin},
			requestOrigin:  "https://evil.example",
			method:         http.MethodOptions,
			wantStatus:     http.StatusForbidden,
			wantHeader:     "",
		},
		{
			name:           "preflight returns no content",
			allowedOrigins: []string{boardOrigin},
			requestOrigin:  boardOrigin,
			method:         http.MethodOptions,
			wantStatus:     http.StatusNoContent,
			wantHeader:     boardOrigin,
		},
		{
			name:           "case insensitive origin match",
			allowedOrigins: []string{strings.ToUpper(boardOrigin)},
			requestOrigin:  boardOrigin,
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     boardOrigin,
		},
		{
			name:           "no origin header skips CORS",
			allowedOrigins: []string{boardOrigin},
			requestOrigin:  "",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCORSConfig()
			cfg.AllowedOrigins = tt.allowedOrigins

			handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, "/api/v1/flights", nil)
			if tt.requestOrigin != "" {
				req.Header.Set("Origin", tt.requestOrigin)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if got != tt.wantHeader {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantHeader)
			}
		})
	}
}

func TestCORSPreflightHeaders(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{boardOrigin}

	handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/flights", nil)
	req.Header.Set("Origin", boardOrigin)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("Access-Control-Allow-Methods not set on preflight")
	}

	// The browser client sends session tokens in Authorization, so
	// preflight must allow the header or every API call gets blocked.
	allowHeaders := rec.Header().Get("Access-Control-Allow-Headers")
	if allowHeaders == "" {
		t.Error("Access-Control-Allow-Headers not set on preflight")
	}
	if !strings.Contains(allowHeaders, "Authorization") {
		t.Errorf("Authorization missing from allowed headers: %q", allowHeaders)
	}

	if got := rec.Header().Get("Access-Control-Max-Age"); got == "" {
		t.Error("Access-Control-Max-Age not set on preflight")
	}
}
