package user

import (
	"slices"
	"time"

	"github.com/mo-amir99/premium-video-server/internal/store"
)

// Record is the per-user state kept in the users document.
type Record struct {
	UnlockedVideos []int64 `json:"unlockedVideos"`
	RegisteredAt   string  `json:"registeredAt,omitempty"`
}

// Index maps an opaque user id to its record.
type Index = map[string]Record

// Store is the document holding every user record.
type Store = store.Document[Index]

// EmptyIndex is the value of a fresh or unreadable users document.
func EmptyIndex() Index { return Index{} }

func newRecord(now time.Time) Record {
	return Record{
		UnlockedVideos: []int64{},
		RegisteredAt:   now.UTC().Format(store.TimestampLayout),
	}
}

// Unlocked returns the ids unlocked by userID; unknown users have none.
func Unlocked(s *Store, userID string) []int64 {
	rec, ok := s.Read()[userID]
	if !ok || rec.UnlockedVideos == nil {
		return []int64{}
	}
	return rec.UnlockedVideos
}

// Unlock records videoID for userID, creating the user when needed.
// Unlocking an already unlocked video changes nothing.
func Unlock(s *Store, userID string, videoID int64, now time.Time) ([]int64, error) {
	var unlocked []int64
	err := s.Update(func(users *Index) (bool, error) {
		rec, exists := (*users)[userID]
		if !exists {
			rec = newRecord(now)
		}
		if rec.UnlockedVideos == nil {
			rec.UnlockedVideos = []int64{}
		}

		if slices.Contains(rec.UnlockedVideos, videoID) {
			unlocked = rec.UnlockedVideos
			return false, nil
		}
		rec.UnlockedVideos = append(rec.UnlockedVideos, videoID)

		(*users)[userID] = rec
		unlocked = rec.UnlockedVideos
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return unlocked, nil
}

// Register creates an empty record for userID unless one already exists.
func Register(s *Store, userID string, now time.Time) (created bool, err error) {
	err = s.Update(func(users *Index) (bool, error) {
		if _, exists := (*users)[userID]; exists {
			return false, nil
		}
		(*users)[userID] = newRecord(now)
		created = true
		return true, nil
	})
	return created, err
}
