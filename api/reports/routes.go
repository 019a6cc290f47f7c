package reports

import (
	"github.com/gin-gonic/gin"

	"github.com/mediawatch/labeling-api/api/types"
	reportsService "github.com/mediawatch/labeling-api/internal/services/reports"
)

// RegisterRoutes registers one route per report pipeline
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/"+string(reportsService.KindUserLabeling), UserLabeling(deps))
	router.GET("/"+string(reportsService.KindContentLabeling), ContentLabeling(deps))
	router.GET("/"+string(reportsService.KindEmployeePerformance), EmployeePerformance(deps))
	router.GET("/"+string(reportsService.KindLabelTypeDistribution), LabelTypeDistribution(deps))
	router.GET("/"+string(reportsService.KindDeviceActivity), DeviceActivity(deps))
	router.GET("/"+string(reportsService.KindLabelingEfficiency), LabelingEfficiency(deps))
}
