package labels

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

// NewRepository creates a new label repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// FindEventsByIDs resolves a set of event ids. Missing ids are simply absent
// from the result; the service decides whether that is an error.
func (r *RepositoryImpl) FindEventsByIDs(ctx context.Context, ids []int64) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("finding events: %w", err)
	}
	return events, nil
}

// CreateLabel persists the label row, its membership rows, and the single
// polymorphic payload row atomically. Either all three succeed or none are
// visible.
func (r *RepositoryImpl) CreateLabel(ctx context.Context, label *models.Label, payload interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		memberships := label.Events
		label.Events = nil

		if err := tx.Create(label).Error; err != nil {
			return fmt.Errorf("creating label: %w", err)
		}

		for i := range memberships {
			memberships[i].LabelID = label.ID
		}
		if err := tx.Create(&memberships).Error; err != nil {
			return fmt.Errorf("creating label memberships: %w", err)
		}
		label.Events = memberships

		if err := createPayload(tx, label.ID, payload); err != nil {
			return err
		}

		return nil
	})
}

// createPayload inserts the payload row for its label
func createPayload(tx *gorm.DB, labelID uint, payload interface{}) error {
	switch p := payload.(type) {
	case *models.LabelSong:
		p.LabelID = labelID
		p.ID = 0
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("creating song payload: %w", err)
		}
	case *models.LabelAd:
		p.LabelID = labelID
		p.ID = 0
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("creating ad payload: %w", err)
		}
	case *models.LabelError:
		p.LabelID = labelID
		p.ID = 0
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("creating error payload: %w", err)
		}
	case *models.LabelProgram:
		p.LabelID = labelID
		p.ID = 0
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("creating program payload: %w", err)
		}
	default:
		return fmt.Errorf("unsupported payload type %T", payload)
	}
	return nil
}

// deletePayloads removes every payload row for a set of labels, regardless of
// kind
func deletePayloads(tx *gorm.DB, labelIDs []uint) error {
	if err := tx.Where("label_id IN ?", labelIDs).Delete(&models.LabelSong{}).Error; err != nil {
		return fmt.Errorf("deleting song payloads: %w", err)
	}
	if err := tx.Where("label_id IN ?", labelIDs).Delete(&models.LabelAd{}).Error; err != nil {
		return fmt.Errorf("deleting ad payloads: %w", err)
	}
	if err := tx.Where("label_id IN ?", labelIDs).Delete(&models.LabelError{}).Error; err != nil {
		return fmt.Errorf("deleting error payloads: %w", err)
	}
	if err := tx.Where("label_id IN ?", labelIDs).Delete(&models.LabelProgram{}).Error; err != nil {
		return fmt.Errorf("deleting program payloads: %w", err)
	}
	return nil
}

// GetLabelByID retrieves a label with its memberships, member events, and
// payload
func (r *RepositoryImpl) GetLabelByID(ctx context.Context, id uint) (*models.Label, error) {
	var label models.Label
	if err := r.db.WithContext(ctx).
		Preload("Events.Event").
		Preload("Song").
		Preload("Ad").
		Preload("Error").
		Preload("Program").
		First(&label, id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// ListLabels returns one page of labels plus the filtered total
func (r *RepositoryImpl) ListLabels(ctx context.Context, opts ListLabelsOptions) ([]models.Label, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Label{})

	if opts.StartDate != nil {
		query = query.Where("labels.created_at >= ?", *opts.StartDate)
	}
	if opts.EndDate != nil {
		query = query.Where("labels.created_at <= ?", *opts.EndDate)
	}
	if opts.CreatedBy != "" {
		query = query.Where("labels.created_by = ?", opts.CreatedBy)
	}
	if opts.LabelType != "" {
		query = query.Where("labels.label_type = ?", opts.LabelType)
	}
	if opts.DeviceID != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM label_events je JOIN events e ON e.id = je.event_id WHERE je.label_id = labels.id AND e.device_id = ?)",
			opts.DeviceID,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting labels: %w", err)
	}

	var labelRows []models.Label
	if err := query.
		Preload("Events.Event").
		Preload("Song").
		Preload("Ad").
		Preload("Error").
		Preload("Program").
		Order("labels.created_at " + sortDirection(opts.Sort)).
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&labelRows).Error; err != nil {
		return nil, 0, fmt.Errorf("listing labels: %w", err)
	}

	return labelRows, total, nil
}

// ListUnlabeledEvents returns one page of events with zero label memberships.
// This is an anti-join against the membership table, not a nullable-column
// check.
func (r *RepositoryImpl) ListUnlabeledEvents(ctx context.Context, opts UnlabeledEventsOptions) ([]models.Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{}).
		Where("NOT EXISTS (SELECT 1 FROM label_events WHERE label_events.event_id = events.id)")

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
		return nil, 0, fmt.Errorf("counting unlabeled events: %w", err)
	}

	var events []models.Event
	if err := query.
		Preload("Ads").
		Preload("Channels").
		Preload("Content").
		Order("events.timestamp " + sortDirection(opts.Sort)).
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("listing unlabeled events: %w", err)
	}

	return events, total, nil
}

// ListLabelsOverlapping returns labels whose [start_time, end_time] span
// overlaps the given range and that touch the given device, ordered by
// start_time
func (r *RepositoryImpl) ListLabelsOverlapping(ctx context.Context, startTime, endTime int64, deviceID string) ([]models.Label, error) {
	var labelRows []models.Label
	query := r.db.WithContext(ctx).Model(&models.Label{}).
		Where("labels.start_time <= ? AND labels.end_time >= ?", endTime, startTime)
	if deviceID != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM label_events je JOIN events e ON e.id = je.event_id WHERE je.label_id = labels.id AND e.device_id = ?)",
			deviceID,
		)
	}
	if err := query.
		Preload("Events.Event").
		Preload("Song").
		Preload("Ad").
		Preload("Error").
		Preload("Program").
		Order("labels.start_time ASC").
		Find(&labelRows).Error; err != nil {
		return nil, fmt.Errorf("listing overlapping labels: %w", err)
	}
	return labelRows, nil
}

// UpdateLabel applies column changes, an optional wholesale membership
// replacement, and an optional payload replacement in one transaction
func (r *RepositoryImpl) UpdateLabel(ctx context.Context, id uint, changes LabelChanges) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(changes.Columns) > 0 {
			result := tx.Model(&models.Label{}).Where("id = ?", id).Updates(changes.Columns)
			if result.Error != nil {
				return fmt.Errorf("updating label: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		if changes.ReplaceEvents != nil {
			if err := tx.Where("label_id = ?", id).Delete(&models.LabelEvent{}).Error; err != nil {
				return fmt.Errorf("removing old memberships: %w", err)
			}
			memberships := changes.ReplaceEvents
			for i := range memberships {
				memberships[i].LabelID = id
			}
			if err := tx.Create(&memberships).Error; err != nil {
				return fmt.Errorf("creating new memberships: %w", err)
			}
		}

		if changes.Payload != nil {
			if err := deletePayloads(tx, []uint{id}); err != nil {
				return err
			}
			if err := createPayload(tx, id, changes.Payload); err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteLabel removes a label, its memberships, and its payload
func (r *RepositoryImpl) DeleteLabel(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("label_id = ?", id).Delete(&models.LabelEvent{}).Error; err != nil {
			return fmt.Errorf("deleting label memberships: %w", err)
		}
		if err := deletePayloads(tx, []uint{id}); err != nil {
			return err
		}
		result := tx.Delete(&models.Label{}, id)
		if result.Error != nil {
			return fmt.Errorf("deleting label: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeleteLabels removes a set of labels best-effort: ids that do not exist are
// skipped, so repeating the same call is a no-op
func (r *RepositoryImpl) DeleteLabels(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("label_id IN ?", ids).Delete(&models.LabelEvent{}).Error; err != nil {
			return fmt.Errorf("deleting label memberships: %w", err)
		}
		if err := deletePayloads(tx, ids); err != nil {
			return err
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.Label{}).Error; err != nil {
			return fmt.Errorf("deleting labels: %w", err)
		}
		return nil
	})
}

// sortDirection normalizes a sort option to ASC or DESC (default DESC)
func sortDirection(sort string) string {
	if sort == "asc" {
		return "ASC"
	}
	return "DESC"
}
