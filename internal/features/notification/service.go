package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/mo-amir99/premium-video-server/pkg/metrics"
	"github.com/mo-amir99/premium-video-server/pkg/telegram"
)

// Sender delivers one message to one chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID, text, parseMode string) error
}

// Result summarizes a broadcast.
type Result struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

// Notifier announces videos to a list of recipients one at a time.
type Notifier struct {
	sender Sender
	delay  time.Duration
	logger *slog.Logger
	sleep  func(context.Context, time.Duration)
}

// NewNotifier creates a notifier pausing delay between consecutive sends.
func NewNotifier(sender Sender, delay time.Duration, logger *slog.Logger) *Notifier {
	return &Notifier{sender: sender, delay: delay, logger: logger, sleep: sleepContext}
}

// Recipient is one entry of a broadcast list. Err is set when the caller
// supplied an id that cannot be used as a chat id.
type Recipient struct {
	ChatID string
	Err    error
}

// Broadcast sends text to every recipient in order, pausing the configured
// delay after each attempt. A failed delivery is counted and skipped; it never
// aborts the remaining sends.
func (n *Notifier) Broadcast(ctx context.Context, recipients []Recipient, text string) Result {
	res := Result{Total: len(recipients)}

	for _, r := range recipients {
		err := r.Err
		if err == nil {
			err = n.sender.SendMessage(ctx, r.ChatID, text, telegram.ParseModeHTML)
		}

		if err != nil {
			res.Failed++
			metrics.RecordNotification(metrics.NotificationFailed)
			n.logger.ErrorContext(ctx, "failed to send notification",
				slog.String("user_id", r.ChatID),
				slog.String("error", err.Error()),
			)
		} else {
			res.Sent++
			metrics.RecordNotification(metrics.NotificationSent)
			n.logger.InfoContext(ctx, "notification sent", slog.String("user_id", r.ChatID))
		}

		if n.delay > 0 {
			n.sleep(ctx, n.delay)
		}
	}

	return res
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
