package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_CountsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Middleware())
	engine.GET("/api/user/:userId/unlocked", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/user/:userId/unlocked", "200"))
	for _, id := range []string{"1", "2"} {
		rr := httptest.NewRecorder()
		engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/user/"+id+"/unlocked", nil))
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/user/:userId/unlocked", "200"))

	if after-before != 2 {
		t.Fatalf("expected 2 requests under one label set, got %v", after-before)
	}
}

func TestRecordNotification(t *testing.T) {
	before := testutil.ToFloat64(notificationsTotal.WithLabelValues(NotificationFailed))
	RecordNotification(NotificationFailed)
	if got := testutil.ToFloat64(notificationsTotal.WithLabelValues(NotificationFailed)) - before; got != 1 {
		t.Fatalf("expected one failed notification, got %v", got)
	}
}

func TestRecordStoreWrite(t *testing.T) {
	before := testutil.ToFloat64(storeWritesTotal.WithLabelValues("users_data.json", "error"))
	RecordStoreWrite("users_data.json", errors.New("disk full"))
	if got := testutil.ToFloat64(storeWritesTotal.WithLabelValues("users_data.json", "error")) - before; got != 1 {
		t.Fatalf("expected one failed write, got %v", got)
	}
}
