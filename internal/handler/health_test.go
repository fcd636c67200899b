package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/webapp-backend/internal/handler"
)

func setupRouter(t *testing.T, version string) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewHealthHandler(version)
	r.GET("/health", h.HealthCheck)

	return r
}

func TestHealthCheck(t *testing.T) {
	r := setupRouter(t, "0.1.0")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	expected := `{"status":"ok","version":"0.1.0"}`
	if w.Body.String() != expected {
		t.Errorf("body: got %q, want %q", w.Body.String(), expected)
	}
}

func TestHealthCheck_ReportsConfiguredVersion(t *testing.T) {
	r := setupRouter(t, "2.3.4")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	r.ServeHTTP(w, req)

	expected := `{"status":"ok","version":"2.3.4"}`
	if w.Body.String() != expected {
		t.Errorf("body: got %q, want %q", w.Body.String(), expected)
	}
}
