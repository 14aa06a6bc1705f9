package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func setupRecoveryRouter(logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(logger))
	r.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})
	r.GET("/panic-after-write", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		panic("late panic")
	})
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestRecovery_NoPanic_PassesThrough(t *testing.T) {
	var logBuf bytes.Buffer
	r := setupRecoveryRouter(newTestLogger(&logBuf))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("expected body 'ok', got %q", w.Body.String())
	}
	if logBuf.Len() != 0 {
		t.Errorf("expected no log output, got:\n%s", logBuf.String())
	}
}

func TestRecovery_Panic_EnvelopeResponse(t *testing.T) {
	var logBuf bytes.Buffer
	r := setupRecoveryRouter(newTestLogger(&logBuf))

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse JSON response: %v", err)
	}
	if code, ok := body["statusCode"].(float64); !ok || int(code) != 500 {
		t.Errorf("expected statusCode 500, got %v", body["statusCode"])
	}
	if body["status"] != "INTERNAL_SERVER_ERROR" {
		t.Errorf("expected status INTERNAL_SERVER_ERROR, got %v", body["status"])
	}
	if msg, ok := body["message"].(string); !ok || msg != "internal server error" {
		t.Errorf("expected message 'internal server error', got %v", body["message"])
	}
	if _, exists := body["data"]; exists {
		t.Error("expected no 'data' field in response")
	}
}

func TestRecovery_Panic_LogsDetails(t *testing.T) {
	var logBuf bytes.Buffer
	r := setupRecoveryRouter(newTestLogger(&logBuf))

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	logOutput := logBuf.String()
	for _, want := range []string{"panic recovered", "test panic", "path=/panic", "stack="} {
		if !strings.Contains(logOutput, want) {
			t.Errorf("expected log to contain %q, got:\n%s", want, logOutput)
		}
	}
}

func TestRecovery_PanicAfterWrite_KeepsResponse(t *testing.T) {
	var logBuf bytes.Buffer
	r := setupRecoveryRouter(newTestLogger(&logBuf))

	req := httptest.NewRequest(http.MethodGet, "/panic-after-write", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 from the handler, got %d", w.Code)
	}
	if w.Body.String() != "partial" {
		t.Errorf("expected body 'partial', got %q", w.Body.String())
	}
	if !strings.Contains(logBuf.String(), "late panic") {
		t.Errorf("expected panic to be logged, got:\n%s", logBuf.String())
	}
}

func TestRecovery_Panic_AbortsFurtherHandlers(t *testing.T) {
	var logBuf bytes.Buffer

	handlerCalled := false
	r := gin.New()
	r.Use(Recovery(newTestLogger(&logBuf)))
	r.GET("/panic", func(c *gin.Context) {
		panic("abort test")
	}, func(c *gin.Context) {
		handlerCalled = true
		c.String(http.StatusOK, "should not reach")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if handlerCalled {
		t.Error("expected subsequent handler NOT to be called after panic recovery")
	}
}

func TestRecovery_NilLoggerUsesDefault(t *testing.T) {
	var logBuf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(newTestLogger(&logBuf))
	t.Cleanup(func() { slog.SetDefault(prev) })

	r := setupRecoveryRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if !strings.Contains(logBuf.String(), "test panic") {
		t.Errorf("expected default logger to receive the panic, got:\n%s", logBuf.String())
	}
}
