package events

import (
	"context"

	"github.com/mediawatch/labeling-api/internal/models"
)

// Repository defines the interface for event data access. Events are written
// by the ingestion pipeline; this service exposes read paths only.
type Repository interface {
	GetEventByID(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context, opts ListEventsOptions) ([]models.Event, int64, error)
}

// Service defines the interface for event business logic
type Service interface {
	GetEvent(ctx context.Context, id int64) (*models.EventDetail, error)
	ListEvents(ctx context.Context, opts ListEventsOptions) (*EventPage, error)
}
