package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func readyResponse(t *testing.T, h *Handler) (int, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/ready", h.Ready)

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

	var out HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	return rr.Code, out
}

func TestReady(t *testing.T) {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.AddCheck("videos", func(context.Context) error { return nil })

	code, out := readyResponse(t, h)
	if code != http.StatusOK || out.Status != "ready" || out.Checks["videos"] != "ok" {
		t.Fatalf("unexpected %d %+v", code, out)
	}

	h.AddCheck("redis", func(context.Context) error { return errors.New("dial tcp: refused") })
	code, out = readyResponse(t, h)
	if code != http.StatusServiceUnavailable || out.Status != "not_ready" || out.Checks["redis"] != "unhealthy" {
		t.Fatalf("unexpected %d %+v", code, out)
	}
}
