package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func resetCORS(t *testing.T) {
	t.Cleanup(func() { SetCORSOptions(false, nil, nil, nil) })
}

func TestSetCORSOptions_DefaultsMethods(t *testing.T) {
	resetCORS(t)
	SetCORSOptions(true, []string{"https://example.com"}, nil, nil)
	if !corsEnabled {
		t.Fatalf("expected cors enabled")
	}
	if len(corsAllowedMethods) != 2 || corsAllowedMethods[0] != "GET" {
		t.Fatalf("unexpected methods: %v", corsAllowedMethods)
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	resetCORS(t)
	SetCORSOptions(true, []string{"https://example.com"}, nil, nil)
	h := NewMux(loadedService())

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Fatalf("allow-origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}

func TestCORS_DisabledAddsNoHeaders(t *testing.T) {
	resetCORS(t)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	NewMux(loadedService()).ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}
