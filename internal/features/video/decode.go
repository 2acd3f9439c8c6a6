package video

import (
	"encoding/json"

	"github.com/mo-amir99/premium-video-server/pkg/request"
)

// UnmarshalJSON reads stored videos leniently. Documents written by earlier
// versions hold numeric fields as strings and arbitrary extra keys; a field
// that cannot be coerced keeps its zero value instead of failing the whole
// collection.
func (v *Video) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Video
	for key, value := range raw {
		switch key {
		case "id":
			if id, err := request.ReadInt(value); err == nil {
				out.ID = id
			}
		case "uploadDate":
			if s, err := request.ReadString(value); err == nil {
				out.UploadDate = s
			}
		default:
			if apply, ok := mutableFields[key]; ok {
				_ = apply(&out, value)
			}
		}
	}

	*v = out
	return nil
}
