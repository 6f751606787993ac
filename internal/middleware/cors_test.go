package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsHandler(origins ...string) http.Handler {
	return CORS(CORSConfig{AllowedOrigins: origins})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
}

func TestCORS_AllowedOrigin(t *testing.T) {
	handler := corsHandler("https://app.example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Error("expected allow-origin header for allowed origin")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	handler := corsHandler("https://app.example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("disallowed origin must not receive CORS headers")
	}
}

func TestCORS_Preflight(t *testing.T) {
	handler := corsHandler("https://app.example.com")

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("expected allow-methods header on preflight")
	}
}

func TestCORS_NoOriginHeader(t *testing.T) {
	handler := corsHandler("https://app.example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for same-origin request, got %d", rec.Code)
	}
}
