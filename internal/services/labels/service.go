package labels

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/mediawatch/labeling-api/pkg/errors"

	"github.com/mediawatch/labeling-api/internal/models"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
}

// NewService creates a new label service
func NewService(repository Repository) Service {
	return &ServiceImpl{
		repository: repository,
	}
}

// CreateLabel validates the payload invariant, resolves the member events,
// derives the span, and persists everything atomically
func (s *ServiceImpl) CreateLabel(ctx context.Context, input CreateLabelInput) (*models.LabelDetail, error) {
	if len(input.EventIDs) == 0 {
		return nil, apperrors.ValidationError("event_ids", "at least one event id is required")
	}
	if err := input.LabelPayload.Validate(input.LabelType); err != nil {
		return nil, err
	}

	events, err := s.resolveEvents(ctx, input.EventIDs)
	if err != nil {
		return nil, err
	}

	startTime, endTime := span(events)
	label := &models.Label{
		LabelType: input.LabelType,
		CreatedBy: input.CreatedBy,
		StartTime: startTime,
		EndTime:   endTime,
		Notes:     input.Notes,
		Events:    memberships(events),
	}

	if err := s.repository.CreateLabel(ctx, label, input.payloadFor(input.LabelType)); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("label", "one or more events already belong to a label")
		}
		return nil, apperrors.FromDatabase("create", "label", err)
	}

	return s.GetLabel(ctx, label.ID)
}

// UpdateLabel applies a partial update. A supplied membership set replaces
// the old one wholesale and the span is recomputed from the new set only.
func (s *ServiceImpl) UpdateLabel(ctx context.Context, id uint, input UpdateLabelInput) (*models.LabelDetail, error) {
	existing, err := s.repository.GetLabelByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("label", id)
		}
		return nil, apperrors.FromDatabase("get", "label", err)
	}

	changes := LabelChanges{Columns: map[string]interface{}{}}

	// Re-validate the payload invariant against the final type: the existing
	// type unless overridden
	finalType := existing.LabelType
	if input.LabelType != nil {
		finalType = *input.LabelType
	}
	if input.LabelType != nil || input.HasAny() {
		if err := input.LabelPayload.Validate(finalType); err != nil {
			return nil, err
		}
		changes.Payload = input.payloadFor(finalType)
	}
	if input.LabelType != nil {
		changes.Columns["label_type"] = finalType
	}

	if input.Notes.Set {
		changes.Columns["notes"] = input.Notes.Value
	}

	if input.EventIDs != nil {
		if len(*input.EventIDs) == 0 {
			return nil, apperrors.ValidationError("event_ids", "membership set cannot be emptied")
		}
		events, err := s.resolveEvents(ctx, *input.EventIDs)
		if err != nil {
			return nil, err
		}
		startTime, endTime := span(events)
		changes.Columns["start_time"] = startTime
		changes.Columns["end_time"] = endTime
		changes.ReplaceEvents = memberships(events)
	}

	if err := s.repository.UpdateLabel(ctx, id, changes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("label", id)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("label", "one or more events already belong to a label")
		}
		return nil, apperrors.FromDatabase("update", "label", err)
	}

	return s.GetLabel(ctx, id)
}

// DeleteLabel removes a single label, cascading to memberships and payload
func (s *ServiceImpl) DeleteLabel(ctx context.Context, id uint) error {
	if err := s.repository.DeleteLabel(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("label", id)
		}
		return apperrors.FromDatabase("delete", "label", err)
	}
	return nil
}

// DeleteLabelsBulk removes the labels that exist and silently skips the ones
// that do not; repeating the same call succeeds
func (s *ServiceImpl) DeleteLabelsBulk(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return apperrors.ValidationError("label_ids", "at least one label id is required")
	}
	if err := s.repository.DeleteLabels(ctx, ids); err != nil {
		return apperrors.FromDatabase("delete", "labels", err)
	}
	return nil
}

// GetLabel retrieves one label in its external representation
func (s *ServiceImpl) GetLabel(ctx context.Context, id uint) (*models.LabelDetail, error) {
	label, err := s.repository.GetLabelByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("label", id)
		}
		return nil, apperrors.FromDatabase("get", "label", err)
	}
	detail := models.NewLabelDetail(label)
	return &detail, nil
}

// ListLabels returns one page of labels matching the filters
func (s *ServiceImpl) ListLabels(ctx context.Context, opts ListLabelsOptions) (*LabelPage, error) {
	normalizePaging(&opts.Page, &opts.Limit)

	labelRows, total, err := s.repository.ListLabels(ctx, opts)
	if err != nil {
		return nil, apperrors.FromDatabase("list", "labels", err)
	}

	details := make([]models.LabelDetail, 0, len(labelRows))
	for i := range labelRows {
		details = append(details, models.NewLabelDetail(&labelRows[i]))
	}

	return &LabelPage{
		Labels:      details,
		Total:       total,
		TotalPages:  totalPages(total, opts.Limit),
		CurrentPage: opts.Page,
	}, nil
}

// ListUnlabeledEvents returns one page of events that no label references
func (s *ServiceImpl) ListUnlabeledEvents(ctx context.Context, opts UnlabeledEventsOptions) (*EventPage, error) {
	normalizePaging(&opts.Page, &opts.Limit)

	events, total, err := s.repository.ListUnlabeledEvents(ctx, opts)
	if err != nil {
		return nil, apperrors.FromDatabase("list", "unlabeled events", err)
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

// ProgramGuide returns the labels whose span overlaps the given local day for
// one device, ordered by start time
func (s *ServiceImpl) ProgramGuide(ctx context.Context, day time.Time, deviceID string) ([]models.ProgramGuideEntry, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())

	labelRows, err := s.repository.ListLabelsOverlapping(ctx, dayStart.Unix(), dayEnd.Unix(), deviceID)
	if err != nil {
		return nil, apperrors.FromDatabase("list", "program guide labels", err)
	}

	entries := make([]models.ProgramGuideEntry, 0, len(labelRows))
	for i := range labelRows {
		detail := models.NewLabelDetail(&labelRows[i])
		entry := models.ProgramGuideEntry{
			ID:         detail.ID,
			LabelType:  detail.LabelType,
			CreatedBy:  detail.CreatedBy,
			CreatedAt:  detail.CreatedAt,
			StartTime:  detail.StartTime,
			EndTime:    detail.EndTime,
			Notes:      detail.Notes,
			ImagePaths: detail.ImagePaths,
			Song:       detail.Song,
			Ad:         detail.Ad,
			Error:      detail.Error,
			Program:    detail.Program,
		}
		if deviceID != "" {
			d := deviceID
			entry.DeviceID = &d
		} else if len(labelRows[i].Events) > 0 && labelRows[i].Events[0].Event != nil {
			d := labelRows[i].Events[0].Event.DeviceID
			entry.DeviceID = &d
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// resolveEvents looks up every requested event id and fails with NotFound if
// any is missing; there is no partial creation
func (s *ServiceImpl) resolveEvents(ctx context.Context, ids []models.Int64String) ([]models.Event, error) {
	rawIDs := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		v := id.Int64()
		if _, ok := seen[v]; ok {
			return nil, apperrors.ValidationError("event_ids", "duplicate event id")
		}
		seen[v] = struct{}{}
		rawIDs = append(rawIDs, v)
	}

	events, err := s.repository.FindEventsByIDs(ctx, rawIDs)
	if err != nil {
		return nil, apperrors.FromDatabase("find", "events", err)
	}
	if len(events) != len(rawIDs) {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "one or more events not found")
	}
	return events, nil
}

// payloadFor returns the payload row matching the label type. Validate must
// have succeeded first.
func (p LabelPayload) payloadFor(labelType models.LabelType) interface{} {
	switch labelType {
	case models.LabelTypeSong:
		return p.Song
	case models.LabelTypeAd:
		return p.Ad
	case models.LabelTypeError:
		return p.Error
	case models.LabelTypeProgram:
		return p.Program
	}
	return nil
}

// span derives [min, max] over the events' timestamps
func span(events []models.Event) (int64, int64) {
	startTime := events[0].Timestamp
	endTime := events[0].Timestamp
	for _, e := range events[1:] {
		if e.Timestamp < startTime {
			startTime = e.Timestamp
		}
		if e.Timestamp > endTime {
			endTime = e.Timestamp
		}
	}
	return startTime, endTime
}

// memberships builds join rows ordered by event timestamp
func memberships(events []models.Event) []models.LabelEvent {
	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	rows := make([]models.LabelEvent, 0, len(sorted))
	for _, e := range sorted {
		rows = append(rows, models.LabelEvent{EventID: e.ID})
	}
	return rows
}

// normalizePaging clamps page and limit to sane minimums
func normalizePaging(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 {
		*limit = 10
	}
}
