package static

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the page routes and the catch-all file server.
func RegisterRoutes(engine *gin.Engine, h *Handler) {
	engine.GET("/", h.Landing)
	engine.GET("/admin", h.Admin)
	engine.NoRoute(h.Fallback)
}
