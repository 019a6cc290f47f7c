package reports

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mediawatch/labeling-api/api/types"
	reportsService "github.com/mediawatch/labeling-api/internal/services/reports"
)

// parseOptions reads the filter vocabulary shared by all report endpoints
func parseOptions(c *gin.Context) (reportsService.Options, bool) {
	page, limit := types.ParsePagination(c)

	opts := reportsService.Options{
		Page:      page,
		Limit:     limit,
		DeviceID:  c.Query("device_id"),
		LabelType: c.Query("label_type"),
		CreatedBy: c.Query("created_by"),
		Format:    c.Query("format"),
		Sort:      c.DefaultQuery("sort", "desc"),
	}

	startDate, ok := types.ParseDateQuery(c, "start_date")
	if !ok {
		return opts, false
	}
	opts.StartDate = startDate

	endDate, ok := types.ParseDateQuery(c, "end_date")
	if !ok {
		return opts, false
	}
	opts.EndDate = endDate

	date, ok := types.ParseDateQuery(c, "date")
	if !ok {
		return opts, false
	}
	opts.Date = date

	return opts, true
}

// send renders a report page, either as JSON or as a CSV attachment
func send(c *gin.Context, opts reportsService.Options, kind reportsService.Kind, result any, csv string) {
	if opts.Format == reportsService.FormatCSV {
		c.Header("Content-Disposition", `attachment; filename="`+string(kind)+`-report.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
		return
	}
	types.SendSuccess(c, result)
}

// UserLabeling reports label counts per user, type and creation instant
// @Summary      User labeling report
// @Description  Label counts grouped by creator, label type and creation instant
// @Tags         reports
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size"
// @Param        start_date query string false "Inclusive start day (YYYY-MM-DD)"
// @Param        end_date query string false "Inclusive end day (YYYY-MM-DD)"
// @Param        device_id query string false "Filter by device with member events"
// @Param        label_type query string false "Filter by label type"
// @Param        created_by query string false "Filter by creator"
// @Param        format query string false "Set to csv for a CSV attachment"
// @Success      200 {object} reports.Result[reports.UserLabelingRow] "Report page"
// @Router       /api/v1/reports/user-labeling [get]
func UserLabeling(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, ok := parseOptions(c)
		if !ok {
			return
		}

		result, err := deps.ReportService.UserLabeling(c.Request.Context(), opts)
		if err != nil {
			types.SendError(c, err)
			return
		}

		send(c, opts, reportsService.KindUserLabeling, result, result.CSV)
	}
}

// ContentLabeling reports the labeled/unlabeled split per device
// @Summary      Content labeling report
// @Description  Labeled and unlabeled event counts per device
// @Tags         reports
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size"
// @Param        start_date query string false "Inclusive start day (YYYY-MM-DD)"
// @Param        end_date query string false "Inclusive end day (YYYY-MM-DD)"
// @Param        device_id query string false "Filter by device identifier"
// @Param        format query string false "Set to csv for a CSV attachment"
// @Success      200 {object} reports.Result[reports.ContentLabelingRow] "Report page"
// @Router       /api/v1/reports/content-labeling [get]
func ContentLabeling(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, ok := parseOptions(c)
		if !ok {
			return
		}

		result, err := deps.ReportService.ContentLabeling(c.Request.Context(), opts)
		if err != nil {
			types.SendError(c, err)
			return
		}

		send(c, opts, reportsService.KindContentLabeling, result, result.CSV)
	}
}

// EmployeePerformance reports per-creator label counts with full label detail
// @Summary      Employee performance report
// @Description  Per-creator label counts with the full detail of each label in scope
// @Tags         reports
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size"
// @Param        date query string false "Restrict to one calendar day (YYYY-MM-DD)"
// @Param        format query string false "Set to csv for a CSV attachment"
// @Success      200 {object} reports.Result[reports.EmployeePerformanceRow] "Report page"
// @Router       /api/v1/reports/employee-performance [get]
func EmployeePerformance(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, ok := parseOptions(c)
		if !ok {
			return
		}

		result, err := deps.ReportService.EmployeePerformance(c.Request.Context(), opts)
		if err != nil {
			types.SendError(c, err)
			return
		}

		send(c, opts, reportsService.KindEmployeePerformance, result, result.CSV)
	}
}

// LabelTypeDistribution reports each label type's share of the filtered set
// @Summary      Label type distribution report
// @Description  Count and percentage share per label type
// @Tags         reports
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size"
// @Param        start_date query string false "Inclusive start day (YYYY-MM-DD)"
// @Param        end_date query string false "Inclusive end day (YYYY-MM-DD)"
// @Param        device_id query string false "Filter by device with member events"
// @Param        format query string false "Set to csv for a CSV attachment"
// @Success      200 {object} reports.Result[reports.TypeDistributionRow] "Report page"
// @Router       /api/v1/reports/label-type-distribution [get]
func LabelTypeDistribution(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, ok := parseOptions(c)
		if !ok {
			return
		}

		result, err := deps.ReportService.LabelTypeDistribution(c.Request.Context(), opts)
		if err != nil {
			types.SendError(c, err)
			return
		}

		send(c, opts, reportsService.KindLabelTypeDistribution, result, result.CSV)
	}
}

// DeviceActivity reports per-device event totals with a label type breakdown
// @Summary      Device activity report
// @Description  Per-device event totals, labeled/unlabeled split and label type breakdown
// @Tags         reports
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size"
// @Param        start_date query string false "Inclusive start day (YYYY-MM-DD)"
// @Param        end_date query string false "Inclusive end day (YYYY-MM-DD)"
// @Param        device_id query string false "Filter by device identifier"
// @Param        format query string false "Set to csv for a CSV attachment"
// @Success      200 {object} reports.Result[reports.DeviceActivityRow] "Report page"
// @Router       /api/v1/reports/device-activity-summary [get]
func DeviceActivity(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, ok := parseOptions(c)
		if !ok {
			return
		}

		result, err := deps.ReportService.DeviceActivity(c.Request.Context(), opts)
		if err != nil {
			types.SendError(c, err)
			return
		}

		send(c, opts, reportsService.KindDeviceActivity, result, result.CSV)
	}
}

// LabelingEfficiency reports per-creator labeling latency summaries
// @Summary      Labeling efficiency report
// @Description  Per-creator label counts with average and total labeling latency
// @Tags         reports
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size"
// @Param        start_date query string false "Inclusive start day (YYYY-MM-DD)"
// @Param        end_date query string false "Inclusive end day (YYYY-MM-DD)"
// @Param        created_by query string false "Filter by creator"
// @Param        format query string false "Set to csv for a CSV attachment"
// @Success      200 {object} reports.Result[reports.EfficiencyRow] "Report page"
// @Router       /api/v1/reports/labeling-efficiency [get]
func LabelingEfficiency(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, ok := parseOptions(c)
		if !ok {
			return
		}

		result, err := deps.ReportService.LabelingEfficiency(c.Request.Context(), opts)
		if err != nil {
			types.SendError(c, err)
			return
		}

		send(c, opts, reportsService.KindLabelingEfficiency, result, result.CSV)
	}
}
