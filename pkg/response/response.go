package response

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// Fields is the payload merged into a response envelope alongside "success".
type Fields map[string]interface{}

// Success writes {"success": true, ...fields}, the shape existing clients expect.
func Success(c *gin.Context, status int, fields Fields) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// OK writes a bare {"success": true}.
func OK(c *gin.Context, status int) {
	Success(c, status, nil)
}

// Error writes {"success": false, "error": message}.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// Message writes {"success": false, "message": message}, used for lookups that found nothing.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// ErrorWithLog writes an error response and logs the error via slog.
func ErrorWithLog(logger *slog.Logger, c *gin.Context, status int, message string, err error) {
	if logger != nil && err != nil {
		logger.ErrorContext(c.Request.Context(), message, slog.Int("status", status), slog.String("error", err.Error()))
	}

	Error(c, status, message)
}
