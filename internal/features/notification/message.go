package notification

import "fmt"

// VideoData is the subset of a video announced to subscribers.
type VideoData struct {
	Title string
	Time  string
	Token string
}

// BuildMessage renders the announcement sent for a new premium video.
func BuildMessage(v VideoData) string {
	return fmt.Sprintf(`🎬 নতুন প্রিমিয়াম ভিডিও যোগ করা হয়েছে!

📹 %s
⏰ %s
🔥 %s টোকেন দিয়ে আনলক করুন

এখনই দেখুন: /start`, v.Title, v.Time, v.Token)
}
