package video

import (
	"fmt"
	"time"

	"github.com/mo-amir99/premium-video-server/internal/store"
	"github.com/mo-amir99/premium-video-server/pkg/request"
)

// Video is a premium video metadata record.
type Video struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Category    string `json:"category,omitempty"`
	Time        string `json:"time,omitempty"`
	Token       int64  `json:"token"`
	UploadDate  string `json:"uploadDate"`
	Views       int64  `json:"views"`
}

// Collection is the persisted, insertion-ordered list of videos.
type Collection = []Video

// Store is the document holding every video.
type Store = store.Document[Collection]

// EmptyCollection is the value of a fresh or unreadable videos document.
func EmptyCollection() Collection { return Collection{} }

// field applies one caller-supplied JSON value onto a Video.
type field func(v *Video, value interface{}) error

func stringField(dst func(*Video) *string) field {
	return func(v *Video, value interface{}) error {
		s, err := request.ReadString(value)
		if err != nil {
			return err
		}
		*dst(v) = s
		return nil
	}
}

func intField(dst func(*Video) *int64) field {
	return func(v *Video, value interface{}) error {
		n, err := request.ReadInt(value)
		if err != nil {
			return err
		}
		*dst(v) = n
		return nil
	}
}

// mutableFields lists every caller-writable field. id and uploadDate are
// server managed; anything not listed here is dropped.
var mutableFields = map[string]field{
	"title":       stringField(func(v *Video) *string { return &v.Title }),
	"description": stringField(func(v *Video) *string { return &v.Description }),
	"thumbnail":   stringField(func(v *Video) *string { return &v.Thumbnail }),
	"videoUrl":    stringField(func(v *Video) *string { return &v.VideoURL }),
	"duration":    stringField(func(v *Video) *string { return &v.Duration }),
	"category":    stringField(func(v *Video) *string { return &v.Category }),
	"time":        stringField(func(v *Video) *string { return &v.Time }),
	"token":       intField(func(v *Video) *int64 { return &v.Token }),
	"views":       intField(func(v *Video) *int64 { return &v.Views }),
}

// Merge shallow-merges body onto v: present schema fields overwrite, absent
// ones keep their value. v is left untouched when any field fails to coerce.
func Merge(v Video, body map[string]interface{}) (Video, error) {
	merged := v
	for key, value := range body {
		apply, ok := mutableFields[key]
		if !ok {
			continue
		}
		if err := apply(&merged, value); err != nil {
			return v, fmt.Errorf("%s: %w", key, err)
		}
	}
	return merged, nil
}

// nextID returns now in milliseconds, bumped past the largest existing id so
// rapid successive creates never collide.
func nextID(videos Collection, now time.Time) int64 {
	id := now.UnixMilli()
	for _, v := range videos {
		if v.ID >= id {
			id = v.ID + 1
		}
	}
	return id
}

// List returns every stored video in insertion order.
func List(s *Store) Collection {
	return s.Read()
}

// Create builds a new video from body, appends it and persists the collection.
func Create(s *Store, body map[string]interface{}, now time.Time) (Video, error) {
	var created Video
	err := s.Update(func(videos *Collection) (bool, error) {
		v, err := Merge(Video{}, body)
		if err != nil {
			return false, err
		}
		v.ID = nextID(*videos, now)
		v.UploadDate = now.UTC().Format(store.TimestampLayout)

		*videos = append(*videos, v)
		created = v
		return true, nil
	})
	if err != nil {
		return Video{}, err
	}
	return created, nil
}

// Update merges body onto the video with the given id and persists the result.
func Update(s *Store, id int64, body map[string]interface{}) (Video, error) {
	var updated Video
	err := s.Update(func(videos *Collection) (bool, error) {
		for i := range *videos {
			if (*videos)[i].ID != id {
				continue
			}
			merged, err := Merge((*videos)[i], body)
			if err != nil {
				return false, err
			}
			(*videos)[i] = merged
			updated = merged
			return true, nil
		}
		return false, ErrVideoNotFound
	})
	if err != nil {
		return Video{}, err
	}
	return updated, nil
}

// Delete removes every video with the given id. The collection is written
// back even when nothing matched.
func Delete(s *Store, id int64) error {
	return s.Update(func(videos *Collection) (bool, error) {
		kept := make(Collection, 0, len(*videos))
		for _, v := range *videos {
			if v.ID != id {
				kept = append(kept, v)
			}
		}
		*videos = kept
		return true, nil
	})
}
