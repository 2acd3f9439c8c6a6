package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

// BindObject decodes the request body as a JSON object. An empty body reads
// as an empty object, as existing clients rely on.
func BindObject(c *gin.Context) (map[string]interface{}, error) {
	body := map[string]interface{}{}
	if c.Request.Body == nil {
		return body, nil
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return body, nil
	}

	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if body == nil {
		body = map[string]interface{}{}
	}
	return body, nil
}
