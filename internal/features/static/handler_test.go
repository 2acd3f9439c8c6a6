package static

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mo-amir99/premium-video-server/pkg/request"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestEngine(dir string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(request.Handler(slog.New(slog.NewTextHandler(io.Discard, nil))))
	RegisterRoutes(engine, NewHandler(dir))
	return engine
}

func get(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func TestPages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.html"), "<h1>landing</h1>")
	writeFile(t, filepath.Join(dir, "admin", "index.html"), "<h1>admin</h1>")
	engine := newTestEngine(dir)

	if rr := get(engine, http.MethodGet, "/"); rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "landing") {
		t.Fatalf("landing: %d %q", rr.Code, rr.Body.String())
	}
	if rr := get(engine, http.MethodGet, "/admin"); rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "admin") {
		t.Fatalf("admin: %d %q", rr.Code, rr.Body.String())
	}
}

func TestPages_Missing(t *testing.T) {
	engine := newTestEngine(t.TempDir())

	rr := get(engine, http.MethodGet, "/admin")
	if rr.Code != http.StatusNotFound || !strings.Contains(rr.Body.String(), `"success":false`) {
		t.Fatalf("expected 404 envelope, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "css", "app.css"), "body{}")
	engine := newTestEngine(dir)

	if rr := get(engine, http.MethodGet, "/css/app.css"); rr.Code != http.StatusOK || rr.Body.String() != "body{}" {
		t.Fatalf("asset: %d %q", rr.Code, rr.Body.String())
	}
	if rr := get(engine, http.MethodHead, "/css/app.css"); rr.Code != http.StatusOK {
		t.Fatalf("head asset: %d", rr.Code)
	}
	if rr := get(engine, http.MethodGet, "/css/"); rr.Code != http.StatusNotFound {
		t.Fatalf("expected no directory listing, got %d", rr.Code)
	}
	if rr := get(engine, http.MethodGet, "/missing.js"); rr.Code != http.StatusNotFound {
		t.Fatalf("missing file: %d", rr.Code)
	}
	if rr := get(engine, http.MethodPost, "/css/app.css"); rr.Code != http.StatusNotFound {
		t.Fatalf("post: %d", rr.Code)
	}
	if rr := get(engine, http.MethodGet, "/../../etc/passwd"); rr.Code != http.StatusNotFound {
		t.Fatalf("traversal: %d", rr.Code)
	}
}
