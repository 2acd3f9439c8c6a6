package notification

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts notification endpoints.
func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	router.POST("/send-notification", h.Send)
}
