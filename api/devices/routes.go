package devices

import (
	"github.com/gin-gonic/gin"

	"github.com/mediawatch/labeling-api/api/types"
)

// RegisterRoutes registers device registry routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/register", RegisterDevice(deps))
	router.GET("/", ListDevices(deps))
	router.GET("/:id", GetDevice(deps))
	router.PUT("/:id", UpdateDevice(deps))
	router.DELETE("/:id", DeleteDevice(deps))
}
