package video

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mo-amir99/premium-video-server/pkg/apperrors"
	"github.com/mo-amir99/premium-video-server/pkg/request"
	"github.com/mo-amir99/premium-video-server/pkg/response"
)

// Handler processes video HTTP requests.
type Handler struct {
	store  *Store
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler constructs a video handler instance.
func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger, now: time.Now}
}

// List returns the whole videos collection as a bare array.
func (h *Handler) List(c *gin.Context) {
	response.JSONNoCache(c, http.StatusOK, List(h.store))
}

// Create appends a new video built from the request body.
func (h *Handler) Create(c *gin.Context) {
	body, err := request.BindObject(c)
	if err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", ErrInvalidBody, err), "error adding video")
		return
	}

	video, err := Create(h.store, body, h.now())
	if err != nil {
		h.respondError(c, err, "error adding video")
		return
	}

	h.logger.Info("new video added", slog.Int64("id", video.ID), slog.String("title", video.Title))
	response.Success(c, http.StatusOK, response.Fields{"video": video})
}

// Update merges the request body onto an existing video.
func (h *Handler) Update(c *gin.Context) {
	id, err := request.ParsePathID(c.Param("id"))
	if err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", ErrInvalidID, err), "error updating video")
		return
	}

	body, err := request.BindObject(c)
	if err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", ErrInvalidBody, err), "error updating video")
		return
	}

	video, err := Update(h.store, id, body)
	if err != nil {
		h.respondError(c, err, "error updating video")
		return
	}

	response.Success(c, http.StatusOK, response.Fields{"video": video})
}

// Delete removes a video; deleting an unknown id still succeeds.
func (h *Handler) Delete(c *gin.Context) {
	id, err := request.ParsePathID(c.Param("id"))
	if err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", ErrInvalidID, err), "error deleting video")
		return
	}

	if err := Delete(h.store, id); err != nil {
		h.respondError(c, err, "error deleting video")
		return
	}

	response.OK(c, http.StatusOK)
}

func (h *Handler) respondError(c *gin.Context, err error, logMessage string) {
	if errors.Is(err, ErrVideoNotFound) {
		h.logger.WarnContext(c.Request.Context(), "video not found", slog.String("id", c.Param("id")))
		response.Message(c, http.StatusNotFound, "Video not found")
		return
	}

	appErr := apperrors.Wrap(err, err.Error(), http.StatusInternalServerError, apperrors.ErrInternal)
	h.logger.ErrorContext(c.Request.Context(), logMessage,
		slog.String("code", string(appErr.Code())),
		slog.String("error", err.Error()),
	)
	response.Error(c, appErr.StatusCode(), appErr.Message())
}
