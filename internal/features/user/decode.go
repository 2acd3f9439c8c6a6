package user

import (
	"encoding/json"

	"github.com/mo-amir99/premium-video-server/pkg/request"
)

// UnmarshalJSON reads stored records leniently. Unlock ids written as
// numeric strings are coerced; entries that cannot be coerced are skipped
// so one bad id never discards the whole users document.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		UnlockedVideos []interface{} `json:"unlockedVideos"`
		RegisteredAt   interface{}   `json:"registeredAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Record
	if raw.UnlockedVideos != nil {
		out.UnlockedVideos = make([]int64, 0, len(raw.UnlockedVideos))
		for _, value := range raw.UnlockedVideos {
			if value == nil {
				continue
			}
			id, err := request.ReadInt(value)
			if err != nil {
				continue
			}
			out.UnlockedVideos = append(out.UnlockedVideos, id)
		}
	}
	if s, err := request.ReadString(raw.RegisteredAt); err == nil {
		out.RegisteredAt = s
	}

	*r = out
	return nil
}
