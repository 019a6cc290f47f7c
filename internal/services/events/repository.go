package events

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mediawatch/labeling-api/internal/models"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new event repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// GetEventByID retrieves one event with its recognition children and any
// label memberships
func (r *RepositoryImpl) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).
		Preload("Ads").
		Preload("Channels").
		Preload("Content").
		Preload("Labels.Label.Events.Event").
		Preload("Labels.Label.Song").
		Preload("Labels.Label.Ad").
		Preload("Labels.Label.Error").
		Preload("Labels.Label.Program").
		First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEvents returns one page of events plus the filtered total
func (r *RepositoryImpl) ListEvents(ctx context.Context, opts ListEventsOptions) ([]models.Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{})

	if opts.StartDate != nil {
		query = query.Where("events.timestamp >= ?", opts.StartDate.Unix())
	}
	if opts.EndDate != nil {
		query = query.Where("events.timestamp <= ?", opts.EndDate.Unix())
	}
	if opts.DeviceID != "" {
		query = query.Where("events.device_id = ?", opts.DeviceID)
	}
	if len(opts.Types) > 0 {
		query = query.Where("events.type IN ?", opts.Types)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting events: %w", err)
	}

	var events []models.Event
	if err := query.
		Preload("Ads").
		Preload("Channels").
		Preload("Content").
		Preload("Labels.Label.Events.Event").
		Preload("Labels.Label.Song").
		Preload("Labels.Label.Ad").
		Preload("Labels.Label.Error").
		Preload("Labels.Label.Program").
		Order("events.timestamp " + sortDirection(opts.Sort)).
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("listing events: %w", err)
	}

	return events, total, nil
}

func sortDirection(sort string) string {
	if sort == "asc" {
		return "ASC"
	}
	return "DESC"
}
