package events

import (
	"github.com/gin-gonic/gin"

	"github.com/mediawatch/labeling-api/api/types"
)

// RegisterRoutes registers event browsing routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/", ListEvents(deps))
	router.GET("/:id", GetEvent(deps))
}
