package events

import (
	"github.com/gin-gonic/gin"

	"github.com/mediawatch/labeling-api/api/types"
	eventsService "github.com/mediawatch/labeling-api/internal/services/events"
)

// ListEvents returns a page of captured events
// @Summary      List events
// @Description  Retrieve captured events with optional date, device and type filters
// @Tags         events
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size"
// @Param        start_date query string false "Inclusive start day (YYYY-MM-DD)"
// @Param        end_date query string false "Inclusive end day (YYYY-MM-DD)"
// @Param        device_id query string false "Filter by device identifier"
// @Param        types query string false "Comma-separated event type codes"
// @Param        sort query string false "Sort by timestamp: asc or desc" default(desc)
// @Success      200 {object} events.EventPage "Page of events"
// @Failure      400 {object} types.ErrorResponse "Invalid filter"
// @Router       /api/v1/events [get]
func ListEvents(deps *types.Dependencies) gin.HandlerFunc {
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

		result, err := deps.EventService.ListEvents(c.Request.Context(), eventsService.ListEventsOptions{
			Page:      page,
			Limit:     limit,
			StartDate: startDate,
			EndDate:   endDate,
			DeviceID:  c.Query("device_id"),
			Types:     eventTypes,
			Sort:      c.DefaultQuery("sort", "desc"),
		})
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, result)
	}
}

// GetEvent returns a single event with its children and label memberships
// @Summary      Get event
// @Description  Retrieve one captured event by ID, including detections and label memberships
// @Tags         events
// @Produce      json
// @Param        id path int64 true "Event ID"
// @Success      200 {object} models.EventDetail "Event"
// @Failure      400 {object} types.ErrorResponse "Invalid event ID"
// @Failure      404 {object} types.ErrorResponse "Event not found"
// @Router       /api/v1/events/{id} [get]
func GetEvent(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseInt64Param(c, "id")
		if !ok {
			return
		}

		event, err := deps.EventService.GetEvent(c.Request.Context(), id)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, event)
	}
}
