package reports

import (
	"time"

	apperrors "github.com/mediawatch/labeling-api/pkg/errors"

	"github.com/mediawatch/labeling-api/internal/models"
)

// Kind identifies one of the six fixed report pipelines
type Kind string

const (
	KindUserLabeling          Kind = "user-labeling"
	KindContentLabeling       Kind = "content-labeling"
	KindEmployeePerformance   Kind = "employee-performance"
	KindLabelTypeDistribution Kind = "label-type-distribution"
	KindDeviceActivity        Kind = "device-activity-summary"
	KindLabelingEfficiency    Kind = "labeling-efficiency"
)

// ParseKind maps a route segment onto a report kind
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindUserLabeling, KindContentLabeling, KindEmployeePerformance,
		KindLabelTypeDistribution, KindDeviceActivity, KindLabelingEfficiency:
		return Kind(s), nil
	}
	return "", apperrors.ValidationError("report", "unknown report kind: "+s)
}

// FormatCSV requests the flat tabular rendering alongside the rows
const FormatCSV = "csv"

// Options is the filter vocabulary shared by all six reports. Each pipeline
// uses the subset that makes sense for its grouping.
type Options struct {
	Page      int
	Limit     int
	StartDate *time.Time
	EndDate   *time.Time
	DeviceID  string
	LabelType string
	CreatedBy string
	Date      *time.Time // single calendar day, employee performance only
	Format    string     // "" for rows only, "csv" to add the tabular rendering
	Sort      string     // asc or desc where the pipeline supports it
}

// Result is one page of report rows. Total counts every group matching the
// filters, not just the groups on this page, so paginating over any report
// always sums to Total.
type Result[T any] struct {
	Rows        []T    `json:"report"`
	Total       int64  `json:"total"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	CSV         string `json:"csv,omitempty"`
}

// UserLabelingRow is one (creator, label type, creation instant) group
type UserLabelingRow struct {
	User       string           `json:"user"`
	LabelCount int64            `json:"labelCount"`
	LabelType  models.LabelType `json:"labelType"`
	DeviceIDs  []string         `json:"deviceIds"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// ContentLabelingRow is one device's labeled/unlabeled split
type ContentLabelingRow struct {
	DeviceID       string `json:"deviceId"`
	LabeledCount   int64  `json:"labeledCount"`
	UnlabeledCount int64  `json:"unlabeledCount"`
	TotalEvents    int64  `json:"totalEvents"`
}

// EmployeePerformanceRow is one creator's label count plus the full detail of
// every label in scope
type EmployeePerformanceRow struct {
	User       string               `json:"user"`
	LabelCount int64                `json:"labelCount"`
	Labels     []models.LabelDetail `json:"labels"`
}

// TypeDistributionRow is one label type's share of the filtered label set
type TypeDistributionRow struct {
	LabelType  models.LabelType `json:"labelType"`
	Count      int64            `json:"count"`
	Percentage float64          `json:"percentage"`
}

// TypeCount pairs a label type with its count within one device's breakdown
type TypeCount struct {
	LabelType models.LabelType `json:"labelType"`
	Count     int64            `json:"count"`
}

// DeviceActivityRow is one device's event totals with a per-type breakdown
type DeviceActivityRow struct {
	DeviceID        string      `json:"deviceId"`
	TotalEvents     int64       `json:"totalEvents"`
	LabeledEvents   int64       `json:"labeledEvents"`
	UnlabeledEvents int64       `json:"unlabeledEvents"`
	LabelTypes      []TypeCount `json:"labelTypes"`
}

// EfficiencyRow is one creator's labeling latency summary. Averages and
// totals are nil when none of the creator's labels have resolvable member
// events, never 0 by accident.
type EfficiencyRow struct {
	User                       string   `json:"user"`
	LabelCount                 int64    `json:"labelCount"`
	AverageLabelingTimeSeconds *float64 `json:"averageLabelingTimeSeconds"`
	TotalLabelingTimeSeconds   *float64 `json:"totalLabelingTimeSeconds"`
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

func normalize(opts *Options) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}
}
