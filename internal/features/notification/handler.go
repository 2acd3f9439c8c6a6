package notification

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mo-amir99/premium-video-server/pkg/request"
	"github.com/mo-amir99/premium-video-server/pkg/response"
)

// Handler processes notification HTTP requests.
type Handler struct {
	notifier *Notifier
	logger   *slog.Logger
}

// NewHandler constructs a notification handler instance.
func NewHandler(notifier *Notifier, logger *slog.Logger) *Handler {
	return &Handler{notifier: notifier, logger: logger}
}

// Send announces a video to every listed user and reports the tally.
func (h *Handler) Send(c *gin.Context) {
	body, err := request.BindObject(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	recipients, err := parseRecipients(body["userIds"])
	if err != nil {
		h.respondError(c, err)
		return
	}

	if len(recipients) == 0 {
		h.logger.InfoContext(c.Request.Context(), "no users found to send notifications")
		response.Success(c, http.StatusOK, response.Fields{
			"sent":    0,
			"failed":  0,
			"total":   0,
			"message": "No users found",
		})
		return
	}

	video, err := parseVideoData(body["videoData"])
	if err != nil {
		h.respondError(c, err)
		return
	}

	// A client hanging up must not stop a broadcast already under way.
	ctx := context.WithoutCancel(c.Request.Context())
	res := h.notifier.Broadcast(ctx, recipients, BuildMessage(video))

	h.logger.InfoContext(ctx, "notification broadcast finished",
		slog.Int("sent", res.Sent),
		slog.Int("failed", res.Failed),
		slog.Int("total", res.Total),
	)

	response.Success(c, http.StatusOK, response.Fields{
		"sent":   res.Sent,
		"failed": res.Failed,
		"total":  res.Total,
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	h.logger.ErrorContext(c.Request.Context(), "error sending notifications", slog.String("error", err.Error()))
	response.Error(c, http.StatusInternalServerError, err.Error())
}

// parseRecipients only rejects a userIds value that is not a list. An entry
// that is not a usable id stays in place and is counted as a failed send.
func parseRecipients(value interface{}) ([]Recipient, error) {
	if value == nil {
		return nil, nil
	}
	items, ok := value.([]interface{})
	if !ok {
		return nil, ErrInvalidRecipients
	}

	recipients := make([]Recipient, 0, len(items))
	for i, item := range items {
		id, err := request.ReadIdentifier(item)
		if err != nil {
			recipients = append(recipients, Recipient{
				ChatID: fmt.Sprintf("%v", item),
				Err:    fmt.Errorf("userIds[%d]: %w", i, err),
			})
			continue
		}
		recipients = append(recipients, Recipient{ChatID: id})
	}
	return recipients, nil
}

func parseVideoData(value interface{}) (VideoData, error) {
	if value == nil {
		return VideoData{}, nil
	}
	obj, ok := value.(map[string]interface{})
	if !ok {
		return VideoData{}, ErrInvalidVideoData
	}

	var v VideoData
	var err error
	if v.Title, err = request.ReadString(obj["title"]); err != nil {
		return VideoData{}, fmt.Errorf("videoData.title: %w", err)
	}
	if v.Time, err = request.ReadString(obj["time"]); err != nil {
		return VideoData{}, fmt.Errorf("videoData.time: %w", err)
	}
	if v.Token, err = request.ReadString(obj["token"]); err != nil {
		return VideoData{}, fmt.Errorf("videoData.token: %w", err)
	}
	return v, nil
}
