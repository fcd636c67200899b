package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/webapp-backend/internal/logger"
	"github.com/jonesrussell/webapp-backend/internal/server"
)

const allowedOrigin = "http://localhost:5173"

// newCORSRouter builds a router with the CORS middleware and a GET /ping
// route that records whether the handler was reached.
func newCORSRouter(t *testing.T, cfg server.CORSConfig) (*gin.Engine, *bool) {
	t.Helper()

	handlerReached := false

	r := gin.New()
	r.Use(server.CORSMiddleware(cfg))
	r.GET("/ping", func(c *gin.Context) {
		handlerReached = true
		c.String(http.StatusOK, "pong")
	})

	return r, &handlerReached
}

func corsConfig() server.CORSConfig {
	return server.CORSConfig{
		Enabled:          true,
		AllowedOrigins:   []string{allowedOrigin},
		AllowCredentials: true,
	}
}

func TestCORSMiddleware_AllowedOriginEchoed(t *testing.T) {
	t.Parallel()

	r, _ := newCORSRouter(t, corsConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("Origin", allowedOrigin)
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != allowedOrigin {
		t.Errorf("Access-Control-Allow-Origin: got %q, want %q", got, allowedOrigin)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Access-Control-Allow-Credentials: got %q, want %q", got, "true")
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != "*" {
		t.Errorf("Access-Control-Allow-Methods: got %q, want %q", got, "*")
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); got != "*" {
		t.Errorf("Access-Control-Allow-Headers: got %q, want %q", got, "*")
	}
}

func TestCORSMiddleware_DisallowedOriginGetsNoHeaders(t *testing.T) {
	t.Parallel()

	r, handlerReached := newCORSRouter(t, corsConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("Origin", "http://evil.example.com")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin: got %q, want empty", got)
	}
	// The request itself still goes through; enforcement is the browser's job.
	if !*handlerReached {
		t.Error("handler not reached for disallowed origin")
	}
}

func TestCORSMiddleware_PreflightShortCircuits(t *testing.T) {
	t.Parallel()

	r, handlerReached := newCORSRouter(t, corsConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", http.NoBody)
	req.Header.Set("Origin", allowedOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("preflight status: got %d, want %d", w.Code, http.StatusOK)
	}
	if *handlerReached {
		t.Error("preflight request reached route handler")
	}
	if w.Body.Len() != 0 {
		t.Errorf("preflight body: got %q, want empty", w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != allowedOrigin {
		t.Errorf("Access-Control-Allow-Origin: got %q, want %q", got, allowedOrigin)
	}
}

func TestCORSMiddleware_WildcardOrigin(t *testing.T) {
	t.Parallel()

	cfg := corsConfig()
	cfg.AllowedOrigins = []string{"*"}
	r, _ := newCORSRouter(t, cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("Origin", "http://anywhere.example.com")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin: got %q, want %q", got, "*")
	}
}

func TestCORSMiddleware_NoOriginHeader(t *testing.T) {
	t.Parallel()

	r, handlerReached := newCORSRouter(t, corsConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin: got %q, want empty for same-origin request", got)
	}
	if !*handlerReached {
		t.Error("handler not reached for same-origin request")
	}
}

func TestRecoveryMiddleware_ReturnsInternalError(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(server.RecoveryMiddleware(logger.NewNop()))
	r.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", http.NoBody)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(server.RequestIDMiddleware())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("X-Request-ID response header is empty, want a generated ID")
	}
}

func TestRequestIDMiddleware_PreservesExistingID(t *testing.T) {
	t.Parallel()

	const inboundID = "trace-from-upstream-abc123"

	r := gin.New()
	r.Use(server.RequestIDMiddleware())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("X-Request-ID", inboundID)
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != inboundID {
		t.Errorf("response X-Request-ID = %q, want %q", got, inboundID)
	}
}
