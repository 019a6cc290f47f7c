package labels

import (
	"context"
	"time"

	"github.com/mediawatch/labeling-api/internal/models"
)

// Repository defines the interface for label data access
type Repository interface {
	// Event resolution
	FindEventsByIDs(ctx context.Context, ids []int64) ([]models.Event, error)

	// Create operations
	CreateLabel(ctx context.Context, label *models.Label, payload interface{}) error

	// Read operations
	GetLabelByID(ctx context.Context, id uint) (*models.Label, error)
	ListLabels(ctx context.Context, opts ListLabelsOptions) ([]models.Label, int64, error)
	ListUnlabeledEvents(ctx context.Context, opts UnlabeledEventsOptions) ([]models.Event, int64, error)
	ListLabelsOverlapping(ctx context.Context, startTime, endTime int64, deviceID string) ([]models.Label, error)

	// Update operations
	UpdateLabel(ctx context.Context, id uint, changes LabelChanges) error

	// Delete operations
	DeleteLabel(ctx context.Context, id uint) error
	DeleteLabels(ctx context.Context, ids []uint) error
}

// Service defines the interface for label business logic
type Service interface {
	CreateLabel(ctx context.Context, input CreateLabelInput) (*models.LabelDetail, error)
	UpdateLabel(ctx context.Context, id uint, input UpdateLabelInput) (*models.LabelDetail, error)
	DeleteLabel(ctx context.Context, id uint) error
	DeleteLabelsBulk(ctx context.Context, ids []uint) error
	GetLabel(ctx context.Context, id uint) (*models.LabelDetail, error)
	ListLabels(ctx context.Context, opts ListLabelsOptions) (*LabelPage, error)
	ListUnlabeledEvents(ctx context.Context, opts UnlabeledEventsOptions) (*EventPage, error)
	ProgramGuide(ctx context.Context, day time.Time, deviceID string) ([]models.ProgramGuideEntry, error)
}
