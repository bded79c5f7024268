package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	group := g.Group("/items")
	group.Use(identityMiddleware)
	{
		group.GET("", h.ListByOwner)
		group.POST("", h.Create)
		group.GET("/search", h.Search)
		group.GET("/:itemId", h.Get)
		group.PATCH("/:itemId", h.Update)
		group.POST("/:itemId/comment", h.CreateComment)
		group.POST("/:itemId/image", h.UploadImage)
		group.GET("/:itemId/image", h.GetImage)
	}
}
