package events

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/mediawatch/labeling-api/pkg/errors"

	"github.com/mediawatch/labeling-api/internal/models"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
}

// NewService creates a new event service
func NewService(repository Repository) Service {
	return &ServiceImpl{
		repository: repository,
	}
}

// GetEvent retrieves one event in its external representation, with any label
// it belongs to embedded
func (s *ServiceImpl) GetEvent(ctx context.Context, id int64) (*models.EventDetail, error) {
	event, err := s.repository.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("event", id)
		}
		return nil, apperrors.FromDatabase("get", "event", err)
	}
	detail := models.NewEventDetail(event)
	return &detail, nil
}

// ListEvents returns one page of events matching the filters
func (s *ServiceImpl) ListEvents(ctx context.Context, opts ListEventsOptions) (*EventPage, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}

	events, total, err := s.repository.ListEvents(ctx, opts)
	if err != nil {
		return nil, apperrors.FromDatabase("list", "events", err)
	}

	details := make([]models.EventDetail, 0, len(events))
	for i := range events {
		details = append(details, models.NewEventDetail(&events[i]))
	}

	return &EventPage{
		Events:      details,
		Total:       total,
		TotalPages:  totalPages(total, opts.Limit),
		CurrentPage: opts.Page,
	}, nil
}
