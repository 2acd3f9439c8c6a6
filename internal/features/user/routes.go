package user

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches user endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	users := router.Group("/user/:userId")
	{
		users.GET("/unlocked", handler.ListUnlocked)
		users.POST("/unlock/:videoId", handler.Unlock)
	}

	router.POST("/register-user", handler.Register)
}
