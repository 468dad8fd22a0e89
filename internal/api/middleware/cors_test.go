package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Togather-Foundation/topicdir/internal/config"
)

func corsTestHandler(t *testing.T, logger zerolog.Logger, called *bool) http.Handler {
	t.Helper()
	cfg := config.CORSConfig{AllowedOrigins: config.DefaultAllowedOrigins}
	return CORS(cfg, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if called != nil {
			*called = true
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORS_AllowedOrigin(t *testing.T) {
	handler := corsTestHandler(t, zerolog.Nop(), nil)

	for _, origin := range config.DefaultAllowedOrigins {
		t.Run(origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/all", nil)
			req.Header.Set("Origin", origin)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d", rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != origin {
				t.Errorf("expected Access-Control-Allow-Origin: %s, got %s", origin, got)
			}
			if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
				t.Errorf("expected Access-Control-Allow-Credentials: true, got %s", got)
			}
			if got := rec.Header().Get("Vary"); got != "Origin" {
				t.Errorf("expected Vary: Origin, got %s", got)
			}
		})
	}
}

func TestCORS_BlockedOrigin(t *testing.T) {
	var logs bytes.Buffer
	handler := corsTestHandler(t, zerolog.New(&logs), nil)

	req := httptest.NewRequest(http.MethodGet, "/all", nil)
	req.Header.Set("Origin", "https://evil.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	// Request is served but without CORS headers
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no Access-Control-Allow-Origin header, got %s", got)
	}
	if !strings.Contains(logs.String(), "https://evil.com") {
		t.Errorf("expected rejected origin to be logged, got %q", logs.String())
	}
}

func TestCORS_NoOriginHeader(t *testing.T) {
	handler := corsTestHandler(t, zerolog.Nop(), nil)

	req := httptest.NewRequest(http.MethodGet, "/all", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS headers for same-origin request, got %s", got)
	}
}

func TestCORS_PreflightAllowed(t *testing.T) {
	called := false
	handler := corsTestHandler(t, zerolog.Nop(), &called)

	req := httptest.NewRequest(http.MethodOptions, "/search", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "x-api-key, content-type")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if called {
		t.Error("handler should not be called for OPTIONS preflight")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 for preflight, got %d", rec.Code)
	}
	expected := map[string]string{
		"Access-Control-Allow-Origin":      "http://localhost:5173",
		"Access-Control-Allow-Credentials": "true",
		"Access-Control-Allow-Methods":     "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT",
		"Access-Control-Allow-Headers":     "x-api-key, content-type",
		"Access-Control-Max-Age":           "600",
	}
	for header, want := range expected {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("expected %s: %s, got %s", header, want, got)
		}
	}
}

func TestCORS_PreflightDisallowed(t *testing.T) {
	called := false
	handler := corsTestHandler(t, zerolog.Nop(), &called)

	req := httptest.NewRequest(http.MethodOptions, "/search", nil)
	req.Header.Set("Origin", "https://evil.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if called {
		t.Error("handler should not be called for OPTIONS preflight")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "Disallowed CORS origin" {
		t.Errorf("unexpected body %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no Access-Control-Allow-Origin header, got %s", got)
	}
}

func TestCORS_PlainOptionsPassesThrough(t *testing.T) {
	called := false
	handler := corsTestHandler(t, zerolog.Nop(), &called)

	req := httptest.NewRequest(http.MethodOptions, "/search", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("OPTIONS without Access-Control-Request-Method is not a preflight")
	}
}

func TestIsOriginAllowed(t *testing.T) {
	allowed := []string{"https://cloe-frontend.vercel.app"}
	if !isOriginAllowed("HTTPS://Cloe-Frontend.Vercel.App", allowed) {
		t.Error("expected case-insensitive match")
	}
	if isOriginAllowed("https://cloe-frontend.vercel.app.evil.com", allowed) {
		t.Error("expected suffix not to match")
	}
}
