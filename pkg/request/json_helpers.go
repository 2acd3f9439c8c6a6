package request

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ReadString accepts a JSON string, or a number rendered in decimal form.
func ReadString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("value is not a string")
	}
}

// ReadInt converts JSON numbers (float64) and numeric strings to int64.
func ReadInt(value interface{}) (int64, error) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("value is not a finite number")
		}
		// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
		if v >= math.MaxInt64 || v < math.MinInt64 {
			return 0, fmt.Errorf("value %g is out of range", v)
		}
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		return strconv.ParseInt(v.String(), 10, 64)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not a number", v)
		}
		return parsed, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("value is not a number")
	}
}

// ReadIdentifier reads an opaque identifier that clients send either as a
// JSON string or a JSON number (Telegram chat ids arrive as numbers).
func ReadIdentifier(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return "", fmt.Errorf("identifier is empty")
		}
		return trimmed, nil
	case float64:
		if v != math.Trunc(v) {
			return "", fmt.Errorf("identifier %v is not an integer", v)
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("identifier must be a string or number")
	}
}

// ParsePathID parses an integer path parameter.
func ParsePathID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
