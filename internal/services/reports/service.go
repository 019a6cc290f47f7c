package reports

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/mediawatch/labeling-api/pkg/errors"

	"github.com/mediawatch/labeling-api/internal/models"
)

// Service defines the interface for the report pipelines
type Service interface {
	UserLabeling(ctx context.Context, opts Options) (*Result[UserLabelingRow], error)
	ContentLabeling(ctx context.Context, opts Options) (*Result[ContentLabelingRow], error)
	EmployeePerformance(ctx context.Context, opts Options) (*Result[EmployeePerformanceRow], error)
	LabelTypeDistribution(ctx context.Context, opts Options) (*Result[TypeDistributionRow], error)
	DeviceActivity(ctx context.Context, opts Options) (*Result[DeviceActivityRow], error)
	LabelingEfficiency(ctx context.Context, opts Options) (*Result[EfficiencyRow], error)
	Run(ctx context.Context, kind Kind, opts Options) (any, error)
}

// ServiceImpl implements the Service interface. Reports are read-only, so
// the pipelines query the store directly.
type ServiceImpl struct {
	db *gorm.DB
}

// NewService creates a new report service
func NewService(db *gorm.DB) Service {
	return &ServiceImpl{db: db}
}

// Run dispatches to the pipeline for the given kind
func (s *ServiceImpl) Run(ctx context.Context, kind Kind, opts Options) (any, error) {
	switch kind {
	case KindUserLabeling:
		return s.UserLabeling(ctx, opts)
	case KindContentLabeling:
		return s.ContentLabeling(ctx, opts)
	case KindEmployeePerformance:
		return s.EmployeePerformance(ctx, opts)
	case KindLabelTypeDistribution:
		return s.LabelTypeDistribution(ctx, opts)
	case KindDeviceActivity:
		return s.DeviceActivity(ctx, opts)
	case KindLabelingEfficiency:
		return s.LabelingEfficiency(ctx, opts)
	}
	return nil, apperrors.ValidationError("report", "unknown report kind: "+string(kind))
}

const deviceMembershipClause = "EXISTS (SELECT 1 FROM label_events je JOIN events e ON e.id = je.event_id WHERE je.label_id = labels.id AND e.device_id = ?)"

// labelQuery applies the shared label filter vocabulary
func (s *ServiceImpl) labelQuery(ctx context.Context, opts Options) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Label{})
	if opts.StartDate != nil {
		query = query.Where("labels.created_at >= ?", *opts.StartDate)
	}
	if opts.EndDate != nil {
		query = query.Where("labels.created_at <= ?", *opts.EndDate)
	}
	if opts.DeviceID != "" {
		query = query.Where(deviceMembershipClause, opts.DeviceID)
	}
	if opts.LabelType != "" {
		query = query.Where("labels.label_type = ?", opts.LabelType)
	}
	if opts.CreatedBy != "" {
		query = query.Where("labels.created_by = ?", opts.CreatedBy)
	}
	return query
}

// eventQuery applies the shared event filter vocabulary
func (s *ServiceImpl) eventQuery(ctx context.Context, opts Options) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Event{})
	if opts.StartDate != nil {
		query = query.Where("events.created_at >= ?", *opts.StartDate)
	}
	if opts.EndDate != nil {
		query = query.Where("events.created_at <= ?", *opts.EndDate)
	}
	if opts.DeviceID != "" {
		query = query.Where("events.device_id = ?", opts.DeviceID)
	}
	return query
}

type userLabelingGroup struct {
	CreatedBy  string
	LabelType  models.LabelType
	CreatedAt  time.Time
	LabelCount int64
}

// UserLabeling groups labels by (creator, type, creation instant) and
// annotates each group with the distinct devices its member events touched
func (s *ServiceImpl) UserLabeling(ctx context.Context, opts Options) (*Result[UserLabelingRow], error) {
	normalize(&opts)

	var total int64
	grouped := s.labelQuery(ctx, opts).
		Select("1").
		Group("labels.created_by, labels.label_type, labels.created_at")
	if err := s.db.WithContext(ctx).Table("(?) AS grouped", grouped).Count(&total).Error; err != nil {
		return nil, apperrors.FromDatabase("count", "user labeling groups", err)
	}

	var groups []userLabelingGroup
	if err := s.labelQuery(ctx, opts).
		Select("labels.created_by AS created_by, labels.label_type AS label_type, labels.created_at AS created_at, COUNT(labels.id) AS label_count").
		Group("labels.created_by, labels.label_type, labels.created_at").
		Order("labels.created_at " + sortDirection(opts.Sort)).
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Scan(&groups).Error; err != nil {
		return nil, apperrors.FromDatabase("list", "user labeling groups", err)
	}

	rows := make([]UserLabelingRow, 0, len(groups))
	for _, g := range groups {
		var deviceIDs []string
		if err := s.db.WithContext(ctx).
			Table("label_events je").
			Joins("JOIN events e ON e.id = je.event_id").
			Joins("JOIN labels l ON l.id = je.label_id").
			Where("l.created_by = ? AND l.label_type = ? AND l.created_at = ?", g.CreatedBy, g.LabelType, g.CreatedAt).
			Distinct().
			Pluck("e.device_id", &deviceIDs).Error; err != nil {
			return nil, apperrors.FromDatabase("list", "group device ids", err)
		}
		if deviceIDs == nil {
			deviceIDs = []string{}
		}
		rows = append(rows, UserLabelingRow{
			User:       g.CreatedBy,
			LabelCount: g.LabelCount,
			LabelType:  g.LabelType,
			DeviceIDs:  deviceIDs,
			CreatedAt:  g.CreatedAt,
		})
	}

	result := &Result[UserLabelingRow]{
		Rows:        rows,
		Total:       total,
		TotalPages:  totalPages(total, opts.Limit),
		CurrentPage: opts.Page,
	}
	if opts.Format == FormatCSV {
		csv, err := renderUserLabelingCSV(rows)
		if err != nil {
			return nil, err
		}
		result.CSV = csv
	}
	return result, nil
}

type deviceGroup struct {
	DeviceID    string
	TotalEvents int64
}

// ContentLabeling splits each device's events into labeled and unlabeled
func (s *ServiceImpl) ContentLabeling(ctx context.Context, opts Options) (*Result[ContentLabelingRow], error) {
	normalize(&opts)

	var total int64
	if err := s.eventQuery(ctx, opts).Distinct("events.device_id").Count(&total).Error; err != nil {
		return nil, apperrors.FromDatabase("count", "devices", err)
	}

	var groups []deviceGroup
	if err := s.eventQuery(ctx, opts).
		Select("events.device_id AS device_id, COUNT(events.id) AS total_events").
		Group("events.device_id").
		Order("events.device_id ASC").
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Scan(&groups).Error; err != nil {
		return nil, apperrors.FromDatabase("list", "device groups", err)
	}

	rows := make([]ContentLabelingRow, 0, len(groups))
	for _, g := range groups {
		var labeled int64
		if err := s.eventQuery(ctx, opts).
			Where("events.device_id = ?", g.DeviceID).
			Where("EXISTS (SELECT 1 FROM label_events WHERE label_events.event_id = events.id)").
			Count(&labeled).Error; err != nil {
			return nil, apperrors.FromDatabase("count", "labeled events", err)
		}
		rows = append(rows, ContentLabelingRow{
			DeviceID:       g.DeviceID,
			LabeledCount:   labeled,
			UnlabeledCount: g.TotalEvents - labeled,
			TotalEvents:    g.TotalEvents,
		})
	}

	result := &Result[ContentLabelingRow]{
		Rows:        rows,
		Total:       total,
		TotalPages:  totalPages(total, opts.Limit),
		CurrentPage: opts.Page,
	}
	if opts.Format == FormatCSV {
		csv, err := renderContentLabelingCSV(rows)
		if err != nil {
			return nil, err
		}
		result.CSV = csv
	}
	return result, nil
}

// performanceQuery applies the employee-performance filters: a single local
// calendar day instead of an open date range, and no creator filter since the
// creator is the grouping key
func (s *ServiceImpl) performanceQuery(ctx context.Context, opts Options) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Label{})
	if opts.Date != nil {
		d := *opts.Date
		dayStart := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		dayEnd := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, d.Location())
		query = query.Where("labels.created_at BETWEEN ? AND ?", dayStart, dayEnd)
	}
	if opts.DeviceID != "" {
		query = query.Where(deviceMembershipClause, opts.DeviceID)
	}
	if opts.LabelType != "" {
		query = query.Where("labels.label_type = ?", opts.LabelType)
	}
	return query
}

type creatorGroup struct {
	CreatedBy  string
	LabelCount int64
}

// EmployeePerformance groups labels by creator, most prolific first, and
// returns each creator's labels in full detail
func (s *ServiceImpl) EmployeePerformance(ctx context.Context, opts Options) (*Result[EmployeePerformanceRow], error) {
	normalize(&opts)

	var total int64
	if err := s.performanceQuery(ctx, opts).Distinct("labels.created_by").Count(&total).Error; err != nil {
		return nil, apperrors.FromDatabase("count", "creators", err)
	}

	var groups []creatorGroup
	if err := s.performanceQuery(ctx, opts).
		Select("labels.created_by AS created_by, COUNT(labels.id) AS label_count").
		Group("labels.created_by").
		Order("label_count DESC").
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Scan(&groups).Error; err != nil {
		return nil, apperrors.FromDatabase("list", "creator groups", err)
	}

	rows := make([]EmployeePerformanceRow, 0, len(groups))
	for _, g := range groups {
		var labelRows []models.Label
		if err := s.performanceQuery(ctx, opts).
			Where("labels.created_by = ?", g.CreatedBy).
			Preload("Events.Event").
			Preload("Song").
			Preload("Ad").
			Preload("Error").
			Preload("Program").
			Find(&labelRows).Error; err != nil {
			return nil, apperrors.FromDatabase("list", "creator labels", err)
		}

		details := make([]models.LabelDetail, 0, len(labelRows))
		for i := range labelRows {
			details = append(details, models.NewLabelDetail(&labelRows[i]))
		}
		rows = append(rows, EmployeePerformanceRow{
			User:       g.CreatedBy,
			LabelCount: g.LabelCount,
			Labels:     details,
		})
	}

	result := &Result[EmployeePerformanceRow]{
		Rows:        rows,
		Total:       total,
		TotalPages:  totalPages(total, opts.Limit),
		CurrentPage: opts.Page,
	}
	if opts.Format == FormatCSV {
		csv, err := renderEmployeePerformanceCSV(rows)
		if err != nil {
			return nil, err
		}
		result.CSV = csv
	}
	return result, nil
}

type typeGroup struct {
	LabelType  models.LabelType
	LabelCount int64
}

// LabelTypeDistribution computes each label type's share of the filtered
// label set. The percentage denominator is the filtered total, so an empty
// set yields 0 rather than a division error.
func (s *ServiceImpl) LabelTypeDistribution(ctx context.Context, opts Options) (*Result[TypeDistributionRow], error) {
	normalize(&opts)

	var totalLabels int64
	if err := s.labelQuery(ctx, opts).Count(&totalLabels).Error; err != nil {
		return nil, apperrors.FromDatabase("count", "labels", err)
	}

	var total int64
	if err := s.labelQuery(ctx, opts).Distinct("labels.label_type").Count(&total).Error; err != nil {
		return nil, apperrors.FromDatabase("count", "label types", err)
	}

	var groups []typeGroup
	if err := s.labelQuery(ctx, opts).
		Select("labels.label_type AS label_type, COUNT(labels.id) AS label_count").
		Group("labels.label_type").
		Order("label_count DESC").
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Scan(&groups).Error; err != nil {
		return nil, apperrors.FromDatabase("list", "label type groups", err)
	}

	rows := make([]TypeDistributionRow, 0, len(groups))
	for _, g := range groups {
		percentage := 0.0
		if totalLabels > 0 {
			percentage = float64(g.LabelCount) / float64(totalLabels) * 100
		}
		rows = append(rows, TypeDistributionRow{
			LabelType:  g.LabelType,
			Count:      g.LabelCount,
			Percentage: percentage,
		})
	}

	result := &Result[TypeDistributionRow]{
		Rows:        rows,
		Total:       total,
		TotalPages:  totalPages(total, opts.Limit),
		CurrentPage: opts.Page,
	}
	if opts.Format == FormatCSV {
		csv, err := renderTypeDistributionCSV(rows)
		if err != nil {
			return nil, err
		}
		result.CSV = csv
	}
	return result, nil
}

// DeviceActivity reports each device's event totals with a per-label-type
// breakdown scoped to that device
func (s *ServiceImpl) DeviceActivity(ctx context.Context, opts Options) (*Result[DeviceActivityRow], error) {
	normalize(&opts)

	var total int64
	if err := s.eventQuery(ctx, opts).Distinct("events.device_id").Count(&total).Error; err != nil {
		return nil, apperrors.FromDatabase("count", "devices", err)
	}

	var groups []deviceGroup
	if err := s.eventQuery(ctx, opts).
		Select("events.device_id AS device_id, COUNT(events.id) AS total_events").
		Group("events.device_id").
		Order("events.device_id ASC").
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Scan(&groups).Error; err != nil {
		return nil, apperrors.FromDatabase("list", "device groups", err)
	}

	rows := make([]DeviceActivityRow, 0, len(groups))
	for _, g := range groups {
		var labeled int64
		if err := s.eventQuery(ctx, opts).
			Where("events.device_id = ?", g.DeviceID).
			Where("EXISTS (SELECT 1 FROM label_events WHERE label_events.event_id = events.id)").
			Count(&labeled).Error; err != nil {
			return nil, apperrors.FromDatabase("count", "labeled events", err)
		}

		breakdown, err := s.deviceTypeBreakdown(ctx, opts, g.DeviceID)
		if err != nil {
			return nil, err
		}

		rows = append(rows, DeviceActivityRow{
			DeviceID:        g.DeviceID,
			TotalEvents:     g.TotalEvents,
			LabeledEvents:   labeled,
			UnlabeledEvents: g.TotalEvents - labeled,
			LabelTypes:      breakdown,
		})
	}

	result := &Result[DeviceActivityRow]{
		Rows:        rows,
		Total:       total,
		TotalPages:  totalPages(total, opts.Limit),
		CurrentPage: opts.Page,
	}
	if opts.Format == FormatCSV {
		csv, err := renderDeviceActivityCSV(rows)
		if err != nil {
			return nil, err
		}
		result.CSV = csv
	}
	return result, nil
}

// deviceTypeBreakdown counts labels per type among labels touching the given
// device within the event filters
func (s *ServiceImpl) deviceTypeBreakdown(ctx context.Context, opts Options, deviceID string) ([]TypeCount, error) {
	query := s.db.WithContext(ctx).Model(&models.Label{}).
		Joins("JOIN label_events je ON je.label_id = labels.id").
		Joins("JOIN events e ON e.id = je.event_id").
		Where("e.device_id = ?", deviceID)
	if opts.StartDate != nil {
		query = query.Where("e.created_at >= ?", *opts.StartDate)
	}
	if opts.EndDate != nil {
		query = query.Where("e.created_at <= ?", *opts.EndDate)
	}

	var groups []typeGroup
	if err := query.
		Select("labels.label_type AS label_type, COUNT(DISTINCT labels.id) AS label_count").
		Group("labels.label_type").
		Scan(&groups).Error; err != nil {
		return nil, apperrors.FromDatabase("list", "device label types", err)
	}

	breakdown := make([]TypeCount, 0, len(groups))
	for _, g := range groups {
		breakdown = append(breakdown, TypeCount{LabelType: g.LabelType, Count: g.LabelCount})
	}
	return breakdown, nil
}

// LabelingEfficiency measures per-creator labeling latency: the gap between
// a label's creation instant and its earliest member event
func (s *ServiceImpl) LabelingEfficiency(ctx context.Context, opts Options) (*Result[EfficiencyRow], error) {
	normalize(&opts)

	var total int64
	if err := s.labelQuery(ctx, opts).Distinct("labels.created_by").Count(&total).Error; err != nil {
		return nil, apperrors.FromDatabase("count", "creators", err)
	}

	var groups []creatorGroup
	if err := s.labelQuery(ctx, opts).
		Select("labels.created_by AS created_by, COUNT(labels.id) AS label_count").
		Group("labels.created_by").
		Order("label_count DESC").
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Scan(&groups).Error; err != nil {
		return nil, apperrors.FromDatabase("list", "creator groups", err)
	}

	rows := make([]EfficiencyRow, 0, len(groups))
	for _, g := range groups {
		var labelRows []models.Label
		if err := s.labelQuery(ctx, opts).
			Where("labels.created_by = ?", g.CreatedBy).
			Preload("Events.Event").
			Find(&labelRows).Error; err != nil {
			return nil, apperrors.FromDatabase("list", "creator labels", err)
		}

		var latencies []float64
		for i := range labelRows {
			minTimestamp, ok := earliestMemberTimestamp(&labelRows[i])
			if !ok {
				continue
			}
			latencies = append(latencies, float64(labelRows[i].CreatedAt.Unix()-minTimestamp))
		}

		row := EfficiencyRow{User: g.CreatedBy, LabelCount: g.LabelCount}
		if len(latencies) > 0 {
			var sum float64
			for _, l := range latencies {
				sum += l
			}
			avg := sum / float64(len(latencies))
			row.AverageLabelingTimeSeconds = &avg
			totalTime := sum
			row.TotalLabelingTimeSeconds = &totalTime
		}
		rows = append(rows, row)
	}

	result := &Result[EfficiencyRow]{
		Rows:        rows,
		Total:       total,
		TotalPages:  totalPages(total, opts.Limit),
		CurrentPage: opts.Page,
	}
	if opts.Format == FormatCSV {
		csv, err := renderEfficiencyCSV(rows)
		if err != nil {
			return nil, err
		}
		result.CSV = csv
	}
	return result, nil
}

// earliestMemberTimestamp returns the minimum member event timestamp, or
// false when the label has no resolvable member events
func earliestMemberTimestamp(l *models.Label) (int64, bool) {
	found := false
	var min int64
	for _, m := range l.Events {
		if m.Event == nil {
			continue
		}
		if !found || m.Event.Timestamp < min {
			min = m.Event.Timestamp
			found = true
		}
	}
	return min, found
}

func sortDirection(sort string) string {
	if sort == "asc" {
		return "ASC"
	}
	return "DESC"
}
