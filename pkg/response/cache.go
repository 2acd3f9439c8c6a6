package response

import (
	"github.com/gin-gonic/gin"
)

// JSONNoCache writes a raw JSON payload with no-cache headers.
// List endpoints return bare arrays, not envelopes.
func JSONNoCache(c *gin.Context, status int, payload interface{}) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.JSON(status, payload)
}
