package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeSender struct {
	mu    sync.Mutex
	calls []string
	texts []string
	modes []string
	fail  map[string]bool
}

func (f *fakeSender) SendMessage(_ context.Context, chatID, text, parseMode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, chatID)
	f.texts = append(f.texts, text)
	f.modes = append(f.modes, parseMode)
	if f.fail[chatID] {
		return errors.New("chat not found")
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBroadcast_CountsAndOrder(t *testing.T) {
	sender := &fakeSender{fail: map[string]bool{"b": true}}
	n := NewNotifier(sender, 100*time.Millisecond, discardLogger())

	var pauses []time.Duration
	n.sleep = func(_ context.Context, d time.Duration) { pauses = append(pauses, d) }

	res := n.Broadcast(context.Background(), []Recipient{{ChatID: "a"}, {ChatID: "b"}, {ChatID: "c"}}, "hello")

	if res != (Result{Sent: 2, Failed: 1, Total: 3}) {
		t.Fatalf("unexpected result %+v", res)
	}
	if !reflect.DeepEqual(sender.calls, []string{"a", "b", "c"}) {
		t.Fatalf("attempts out of order: %v", sender.calls)
	}
	for i, mode := range sender.modes {
		if mode != "HTML" || sender.texts[i] != "hello" {
			t.Fatalf("call %d sent %q with mode %q", i, sender.texts[i], mode)
		}
	}
	if !reflect.DeepEqual(pauses, []time.Duration{100 * time.Millisecond, 100 * time.Millisecond, 100 * time.Millisecond}) {
		t.Fatalf("expected a pause after every attempt, got %v", pauses)
	}
}

func TestBroadcast_UnusableRecipientCountsAsFailed(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, 50*time.Millisecond, discardLogger())

	var pauses int
	n.sleep = func(context.Context, time.Duration) { pauses++ }

	res := n.Broadcast(context.Background(), []Recipient{
		{ChatID: "1"},
		{ChatID: "<nil>", Err: errors.New("identifier must be a string or number")},
		{ChatID: "3"},
	}, "hi")

	if res != (Result{Sent: 2, Failed: 1, Total: 3}) {
		t.Fatalf("unexpected result %+v", res)
	}
	if !reflect.DeepEqual(sender.calls, []string{"1", "3"}) {
		t.Fatalf("expected only usable ids sent, got %v", sender.calls)
	}
	if pauses != 3 {
		t.Fatalf("expected the bad entry to be paced like any attempt, got %d pauses", pauses)
	}
}

func TestBroadcast_Empty(t *testing.T) {
	sender := &fakeSender{}
	res := NewNotifier(sender, time.Second, discardLogger()).Broadcast(context.Background(), nil, "x")
	if res != (Result{}) || len(sender.calls) != 0 {
		t.Fatalf("expected no attempts, got %+v and %v", res, sender.calls)
	}
}

func TestBuildMessage(t *testing.T) {
	msg := BuildMessage(VideoData{Title: "Night Show", Time: "9 PM", Token: "50"})
	for _, want := range []string{"📹 Night Show", "⏰ 9 PM", "🔥 50 টোকেন", "/start"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}
