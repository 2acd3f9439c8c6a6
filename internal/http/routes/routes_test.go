package routes

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mo-amir99/premium-video-server/internal/features/notification"
	"github.com/mo-amir99/premium-video-server/internal/features/user"
	"github.com/mo-amir99/premium-video-server/internal/features/video"
	"github.com/mo-amir99/premium-video-server/internal/store"
	"github.com/mo-amir99/premium-video-server/pkg/cache"
	"github.com/mo-amir99/premium-video-server/pkg/config"
	"github.com/mo-amir99/premium-video-server/pkg/health"
	"github.com/mo-amir99/premium-video-server/pkg/telegram"
)

type testServer struct {
	engine   *gin.Engine
	telegram *httptest.Server
	sent     chan telegram.SendMessageRequest
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dir := t.TempDir()
	staticDir := filepath.Join(dir, "public")
	if err := os.MkdirAll(filepath.Join(staticDir, "admin"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("landing"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		StaticDir:    staticDir,
		MaxBodyBytes: 1 << 20,
		RateLimit:    config.RateLimitConfig{Requests: 1000, Window: time.Minute},
	}

	videos, err := store.NewDocument(filepath.Join(dir, "data", store.VideosFile), video.EmptyCollection, logger)
	if err != nil {
		t.Fatal(err)
	}
	users, err := store.NewDocument(filepath.Join(dir, "data", store.UsersFile), user.EmptyIndex, logger)
	if err != nil {
		t.Fatal(err)
	}

	ts := &testServer{sent: make(chan telegram.SendMessageRequest, 16)}
	ts.telegram = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req telegram.SendMessageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		ts.sent <- req
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(ts.telegram.Close)

	counter := cache.NewMemoryCounter(0)
	t.Cleanup(func() { _ = counter.Close() })

	healthHandler := health.NewHandler(logger)
	healthHandler.AddCheck("videos", func(_ context.Context) error { return videos.Check() })

	client := telegram.NewClient("token", ts.telegram.URL, 5*time.Second)
	ts.engine = NewRouter(cfg, Dependencies{
		Videos:   videos,
		Users:    users,
		Notifier: notification.NewNotifier(client, 0, logger),
		Health:   healthHandler,
		Counter:  counter,
	}, logger)
	return ts
}

func (ts *testServer) do(t *testing.T, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	ts.engine.ServeHTTP(rr, req)

	out := map[string]interface{}{}
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	return rr.Code, out
}

func TestEndToEnd(t *testing.T) {
	ts := newTestServer(t)

	code, created := ts.do(t, http.MethodPost, "/api/videos", `{"title":"Launch","time":"9 PM","token":"40"}`)
	if code != http.StatusOK || created["success"] != true {
		t.Fatalf("create: %d %v", code, created)
	}
	id := int64(created["video"].(map[string]interface{})["id"].(float64))

	if code, _ := ts.do(t, http.MethodPost, "/api/register-user", `{"userId":1001}`); code != http.StatusOK {
		t.Fatalf("register: %d", code)
	}

	code, unlocked := ts.do(t, http.MethodPost, "/api/user/1001/unlock/"+jsonInt(id), "")
	if code != http.StatusOK || len(unlocked["unlockedVideos"].([]interface{})) != 1 {
		t.Fatalf("unlock: %d %v", code, unlocked)
	}

	code, sent := ts.do(t, http.MethodPost, "/api/send-notification",
		`{"videoData":{"title":"Launch","time":"9 PM","token":40},"userIds":[1001]}`)
	if code != http.StatusOK || sent["sent"] != float64(1) || sent["total"] != float64(1) {
		t.Fatalf("notify: %d %v", code, sent)
	}
	msg := <-ts.sent
	if msg.ChatID != "1001" || !strings.Contains(msg.Text, "Launch") {
		t.Fatalf("unexpected telegram message %+v", msg)
	}

	if code, body := ts.do(t, http.MethodPut, "/api/videos/1", `{"title":"x"}`); code != http.StatusNotFound || body["message"] != "Video not found" {
		t.Fatalf("update unknown: %d %v", code, body)
	}
}

func TestHealthEndpointsAndStatic(t *testing.T) {
	ts := newTestServer(t)

	for _, target := range []string{"/health", "/ready", "/version"} {
		if code, _ := ts.do(t, http.MethodGet, target, ""); code != http.StatusOK {
			t.Fatalf("%s: %d", target, code)
		}
	}

	rr := httptest.NewRecorder()
	ts.engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "http_requests_total") {
		t.Fatalf("metrics: %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	ts.engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "landing" {
		t.Fatalf("landing: %d %q", rr.Code, rr.Body.String())
	}

	if code, body := ts.do(t, http.MethodGet, "/admin", ""); code != http.StatusNotFound || body["success"] != false {
		t.Fatalf("missing admin page: %d %v", code, body)
	}
	if code, _ := ts.do(t, http.MethodGet, "/api/nope", ""); code != http.StatusNotFound {
		t.Fatalf("unknown api route: %d", code)
	}
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
