package video

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches video endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	videos := router.Group("/videos")
	{
		videos.GET("", handler.List)
		videos.POST("", handler.Create)
		videos.PUT("/:id", handler.Update)
		videos.DELETE("/:id", handler.Delete)
	}
}
