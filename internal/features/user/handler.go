package user

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mo-amir99/premium-video-server/pkg/apperrors"
	"github.com/mo-amir99/premium-video-server/pkg/request"
	"github.com/mo-amir99/premium-video-server/pkg/response"
)

// Handler processes user HTTP requests.
type Handler struct {
	store  *Store
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler constructs a user handler instance.
func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger, now: time.Now}
}

// ListUnlocked returns the video ids a user has unlocked as a bare array.
func (h *Handler) ListUnlocked(c *gin.Context) {
	response.JSONNoCache(c, http.StatusOK, Unlocked(h.store, c.Param("userId")))
}

// Unlock grants a user access to a video.
func (h *Handler) Unlock(c *gin.Context) {
	userID := c.Param("userId")

	videoID, err := request.ParsePathID(c.Param("videoId"))
	if err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", ErrInvalidVideoID, err), "error unlocking video")
		return
	}

	unlocked, err := Unlock(h.store, userID, videoID, h.now())
	if err != nil {
		h.respondError(c, err, "error unlocking video")
		return
	}

	response.Success(c, http.StatusOK, response.Fields{"unlockedVideos": unlocked})
}

// Register records a user for future notifications; repeat calls are no-ops.
func (h *Handler) Register(c *gin.Context) {
	body, err := request.BindObject(c)
	if err != nil {
		h.respondError(c, err, "error registering user")
		return
	}

	userID, err := request.ReadIdentifier(body["userId"])
	if err != nil {
		h.respondError(c, apperrors.Validation(ErrUserIDRequired.Error(), err), "error registering user")
		return
	}

	created, err := Register(h.store, userID, h.now())
	if err != nil {
		h.respondError(c, err, "error registering user")
		return
	}

	if created {
		h.logger.Info("user registered", slog.String("user_id", userID))
	}
	response.OK(c, http.StatusOK)
}

func (h *Handler) respondError(c *gin.Context, err error, logMessage string) {
	appErr := apperrors.Wrap(err, err.Error(), http.StatusInternalServerError, apperrors.ErrInternal)
	attrs := []any{
		slog.String("code", string(appErr.Code())),
		slog.String("error", err.Error()),
	}

	if apperrors.Is(appErr, apperrors.ErrInternal) {
		h.logger.ErrorContext(c.Request.Context(), logMessage, attrs...)
	} else {
		h.logger.WarnContext(c.Request.Context(), logMessage, attrs...)
	}
	response.Error(c, appErr.StatusCode(), appErr.Message())
}
