package middleware

import (
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

var staticExtensions = map[string]struct{}{
	".css": {}, ".js": {}, ".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {},
	".webp": {}, ".svg": {}, ".ico": {}, ".woff": {}, ".woff2": {}, ".ttf": {},
}

// CacheControl disables caching for the API and lets browsers keep static
// assets for a day. Static files are not fingerprinted, so a year is too long.
func CacheControl() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		switch {
		case path == "/api" || strings.HasPrefix(path, "/api/"):
			c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
		case isStaticAsset(path):
			c.Header("Cache-Control", "public, max-age=86400")
		}

		c.Next()
	}
}

func isStaticAsset(path string) bool {
	_, ok := staticExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
