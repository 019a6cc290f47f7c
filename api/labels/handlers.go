package labels

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mediawatch/labeling-api/api/middleware"
	"github.com/mediawatch/labeling-api/api/types"
	labelsService "github.com/mediawatch/labeling-api/internal/services/labels"
)

// CreateLabel creates a label over a set of events
// @Summary      Create label
// @Description  Group one or more unlabeled events under a new label with a typed payload
// @Tags         labels
// @Accept       json
// @Produce      json
// @Param        label body labels.CreateLabelInput true "Label data"
// @Success      201 {object} models.LabelDetail "Created label"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      404 {object} types.ErrorResponse "Event not found"
// @Failure      409 {object} types.ErrorResponse "Event already labeled"
// @Router       /api/v1/labels [post]
func CreateLabel(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input labelsService.CreateLabelInput
		if !types.BindJSONOrError(c, &input) {
			return
		}

		// Attribution comes from the authenticated principal, never the body
		if claims, ok := middleware.GetClaims(c); ok {
			input.CreatedBy = claims.Email
		}

		label, err := deps.LabelService.CreateLabel(c.Request.Context(), input)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendCreated(c, label)
	}
}

// ListLabels returns a page of labels with their payloads and member events
// @Summary      List labels
// @Description  Retrieve labels with optional date, creator, type and device filters
// @Tags         labels
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size"
// @Param        start_date query string false "Inclusive start day (YYYY-MM-DD)"
// @Param        end_date query string false "Inclusive end day (YYYY-MM-DD)"
// @Param        created_by query string false "Filter by creator"
// @Param        label_type query string false "Filter by label type"
// @Param        device_id query string false "Filter by device with member events"
// @Param        sort query string false "Sort by creation time: asc or desc" default(desc)
// @Success      200 {object} labels.LabelPage "Page of labels"
// @Failure      400 {object} types.ErrorResponse "Invalid filter"
// @Router       /api/v1/labels [get]
func ListLabels(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := types.ParsePagination(c)

		startDate, ok := types.ParseDateQuery(c, "start_date")
		if !ok {
			return
		}
		endDate, ok := types.ParseDateQuery(c, "end_date")
		if !ok {
			return
		}

		result, err := deps.LabelService.ListLabels(c.Request.Context(), labelsService.ListLabelsOptions{
			Page:      page,
			Limit:     limit,
			StartDate: startDate,
			EndDate:   endDate,
			CreatedBy: c.Query("created_by"),
			LabelType: c.Query("label_type"),
			DeviceID:  c.Query("device_id"),
			Sort:      c.DefaultQuery("sort", "desc"),
		})
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, result)
	}
}

// ListUnlabeledEvents returns a page of events not yet claimed by any label
// @Summary      List unlabeled events
// @Description  Retrieve events that do not belong to any label, with optional filters
// @Tags         labels
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size"
// @Param        start_date query string false "Inclusive start day (YYYY-MM-DD)"
// @Param        end_date query string false "Inclusive end day (YYYY-MM-DD)"
// @Param        device_id query string false "Filter by device identifier"
// @Param        types query string false "Comma-separated event type codes"
// @Param        sort query string false "Sort by timestamp: asc or desc" default(asc)
// @Success      200 {object} labels.EventPage "Page of unlabeled events"
// @Failure      400 {object} types.ErrorResponse "Invalid filter"
// @Router       /api/v1/labels/unlabeled [get]
func ListUnlabeledEvents(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := types.ParsePagination(c)

		startDate, ok := types.ParseDateQuery(c, "start_date")
		if !ok {
			return
		}
		endDate, ok := types.ParseDateQuery(c, "end_date")
		if !ok {
			return
		}
		eventTypes, ok := types.ParseIntListQuery(c, "types")
		if !ok {
			return
		}

		result, err := deps.LabelService.ListUnlabeledEvents(c.Request.Context(), labelsService.UnlabeledEventsOptions{
			Page:      page,
			Limit:     limit,
			StartDate: startDate,
			EndDate:   endDate,
			DeviceID:  c.Query("device_id"),
			Types:     eventTypes,
			Sort:      c.DefaultQuery("sort", "asc"),
		})
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, result)
	}
}

// ProgramGuide returns the labeled schedule for one day on one device
// @Summary      Program guide
// @Description  Retrieve labels overlapping the given day on the given device, as schedule entries
// @Tags         labels
// @Produce      json
// @Param        date path string true "Day (YYYY-MM-DD)"
// @Param        deviceId path string true "Device identifier"
// @Success      200 {object} object{entries=[]models.ProgramGuideEntry} "Schedule entries"
// @Failure      400 {object} types.ErrorResponse "Invalid date"
// @Router       /api/v1/labels/program-guides/{date}/{deviceId} [get]
func ProgramGuide(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, err := time.ParseInLocation("2006-01-02", c.Param("date"), time.Local)
		if err != nil {
			types.SendBadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}

		entries, err := deps.LabelService.ProgramGuide(c.Request.Context(), day, c.Param("deviceId"))
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"entries": entries})
	}
}

// UpdateLabel applies a partial update to a label
// @Summary      Update label
// @Description  Update a label's type, notes, payload or member event set
// @Tags         labels
// @Accept       json
// @Produce      json
// @Param        id path int true "Label ID"
// @Param        label body labels.UpdateLabelInput true "Fields to update"
// @Success      200 {object} models.LabelDetail "Updated label"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      404 {object} types.ErrorResponse "Label not found"
// @Failure      409 {object} types.ErrorResponse "Event already labeled"
// @Router       /api/v1/labels/{id} [put]
func UpdateLabel(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		var input labelsService.UpdateLabelInput
		if !types.BindJSONOrError(c, &input) {
			return
		}

		label, err := deps.LabelService.UpdateLabel(c.Request.Context(), id, input)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, label)
	}
}

// DeleteLabel removes one label, freeing its member events
// @Summary      Delete label
// @Description  Delete a label by ID; its member events become unlabeled again
// @Tags         labels
// @Produce      json
// @Param        id path int true "Label ID"
// @Success      200 {object} object{message=string} "Label deleted"
// @Failure      404 {object} types.ErrorResponse "Label not found"
// @Router       /api/v1/labels/{id} [delete]
func DeleteLabel(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		if err := deps.LabelService.DeleteLabel(c.Request.Context(), id); err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Label deleted successfully"})
	}
}

type bulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// DeleteLabelsBulk removes several labels in one call
// @Summary      Bulk delete labels
// @Description  Delete several labels by ID; missing IDs are ignored
// @Tags         labels
// @Accept       json
// @Produce      json
// @Param        ids body labels.bulkDeleteRequest true "Label IDs"
// @Success      200 {object} object{message=string} "Labels deleted"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Router       /api/v1/labels/bulk [delete]
func DeleteLabelsBulk(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req bulkDeleteRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if err := deps.LabelService.DeleteLabelsBulk(c.Request.Context(), req.IDs); err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Labels deleted successfully"})
	}
}
