package labels

import (
	"github.com/gin-gonic/gin"

	"github.com/mediawatch/labeling-api/api/types"
)

// RegisterRoutes registers label routes. The program guide lookup stays
// public for display clients; everything else requires authentication.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, authenticate gin.HandlerFunc) {
	router.GET("/program-guides/:date/:deviceId", ProgramGuide(deps))

	router.POST("/", authenticate, CreateLabel(deps))
	router.GET("/", authenticate, ListLabels(deps))
	router.GET("/unlabeled", authenticate, ListUnlabeledEvents(deps))
	router.DELETE("/bulk", authenticate, DeleteLabelsBulk(deps))
	router.PUT("/:id", authenticate, UpdateLabel(deps))
	router.DELETE("/:id", authenticate, DeleteLabel(deps))
}
