package health

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Version information, typically set at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// CheckFunc reports whether one dependency is usable.
type CheckFunc func(ctx context.Context) error

// Handler handles health check endpoints.
type Handler struct {
	checks map[string]CheckFunc
	logger *slog.Logger
}

// NewHandler creates a new health check handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{
		checks: make(map[string]CheckFunc),
		logger: logger,
	}
}

// AddCheck registers a readiness check under name.
func (h *Handler) AddCheck(name string, check CheckFunc) {
	h.checks[name] = check
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Health is a liveness check that always returns OK.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   Version,
	})
}

// Ready runs every registered check and answers 503 if any fails.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]string, len(names))
	overallStatus := "ready"
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.logger.Error("health check failed", slog.String("check", name), slog.String("error", err.Error()))
			checks[name] = "unhealthy"
			overallStatus = "not_ready"
			continue
		}
		checks[name] = "ok"
	}

	statusCode := http.StatusOK
	if overallStatus != "ready" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now(),
		Version:   Version,
		Checks:    checks,
	})
}

// Version returns version information about the service.
func (h *Handler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    Version,
		"git_commit": GitCommit,
		"build_time": BuildTime,
	})
}
