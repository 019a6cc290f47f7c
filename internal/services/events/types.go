package events

import (
	"time"

	"github.com/mediawatch/labeling-api/internal/models"
)

// ListEventsOptions filters and paginates event listings
type ListEventsOptions struct {
	Page      int
	Limit     int
	StartDate *time.Time
	EndDate   *time.Time
	DeviceID  string
	Types     []int
	Sort      string // asc or desc, by timestamp
}

// EventPage is one page of events with pagination metadata
type EventPage struct {
	Events      []models.EventDetail `json:"events"`
	Total       int64                `json:"total"`
	TotalPages  int                  `json:"totalPages"`
	CurrentPage int                  `json:"currentPage"`
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
