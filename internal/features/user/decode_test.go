package user

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestUnmarshal_LegacyRecords(t *testing.T) {
	data := []byte(`{
		"u1": {"unlockedVideos": ["5", 6, "abc", null], "registeredAt": "2024-01-01T00:00:00.000Z"},
		"u2": {"unlockedVideos": [7]},
		"u3": {}
	}`)

	var got Index
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := Index{
		"u1": {UnlockedVideos: []int64{5, 6}, RegisteredAt: "2024-01-01T00:00:00.000Z"},
		"u2": {UnlockedVideos: []int64{7}},
		"u3": {},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestUnmarshal_RecordNotObject(t *testing.T) {
	var got Index
	if err := json.Unmarshal([]byte(`{"u1": [1, 2]}`), &got); err == nil {
		t.Fatalf("expected error for non-object record")
	}
}
