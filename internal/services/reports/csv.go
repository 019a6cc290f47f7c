package reports

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	apperrors "github.com/mediawatch/labeling-api/pkg/errors"
)

// CSV renderings are pure projections of the row lists the JSON path returns.
// List-valued fields join on "," and per-type breakdowns on ";".

type userLabelingCSVRow struct {
	User       string `csv:"user"`
	LabelCount int64  `csv:"labelCount"`
	LabelType  string `csv:"labelType"`
	DeviceIDs  string `csv:"deviceIds"`
	CreatedAt  string `csv:"createdAt"`
}

func renderUserLabelingCSV(rows []UserLabelingRow) (string, error) {
	flat := make([]userLabelingCSVRow, 0, len(rows))
	for _, r := range rows {
		flat = append(flat, userLabelingCSVRow{
			User:       r.User,
			LabelCount: r.LabelCount,
			LabelType:  string(r.LabelType),
			DeviceIDs:  strings.Join(r.DeviceIDs, ","),
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		})
	}
	return marshalCSV(&flat)
}

type contentLabelingCSVRow struct {
	DeviceID       string `csv:"deviceId"`
	LabeledCount   int64  `csv:"labeledCount"`
	UnlabeledCount int64  `csv:"unlabeledCount"`
	TotalEvents    int64  `csv:"totalEvents"`
}

func renderContentLabelingCSV(rows []ContentLabelingRow) (string, error) {
	flat := make([]contentLabelingCSVRow, 0, len(rows))
	for _, r := range rows {
		flat = append(flat, contentLabelingCSVRow(r))
	}
	return marshalCSV(&flat)
}

type employeePerformanceCSVRow struct {
	User       string `csv:"user"`
	LabelCount int64  `csv:"labelCount"`
	LabelID    uint   `csv:"labelId"`
	LabelType  string `csv:"labelType"`
	CreatedAt  string `csv:"createdAt"`
	EventIDs   string `csv:"eventIds"`
	ImagePaths string `csv:"imagePaths"`
	Notes      string `csv:"notes"`
}

// renderEmployeePerformanceCSV emits one line per label, repeating the
// creator columns
func renderEmployeePerformanceCSV(rows []EmployeePerformanceRow) (string, error) {
	var flat []employeePerformanceCSVRow
	for _, r := range rows {
		for _, l := range r.Labels {
			ids := make([]string, 0, len(l.EventIDs))
			for _, id := range l.EventIDs {
				ids = append(ids, id.String())
			}
			paths := make([]string, 0, len(l.ImagePaths))
			for _, p := range l.ImagePaths {
				if p != nil {
					paths = append(paths, *p)
				} else {
					paths = append(paths, "")
				}
			}
			notes := ""
			if l.Notes != nil {
				notes = *l.Notes
			}
			flat = append(flat, employeePerformanceCSVRow{
				User:       r.User,
				LabelCount: r.LabelCount,
				LabelID:    l.ID,
				LabelType:  string(l.LabelType),
				CreatedAt:  l.CreatedAt.Format(time.RFC3339),
				EventIDs:   strings.Join(ids, ","),
				ImagePaths: strings.Join(paths, ","),
				Notes:      notes,
			})
		}
	}
	return marshalCSV(&flat)
}

type typeDistributionCSVRow struct {
	LabelType  string  `csv:"labelType"`
	Count      int64   `csv:"count"`
	Percentage float64 `csv:"percentage"`
}

func renderTypeDistributionCSV(rows []TypeDistributionRow) (string, error) {
	flat := make([]typeDistributionCSVRow, 0, len(rows))
	for _, r := range rows {
		flat = append(flat, typeDistributionCSVRow{
			LabelType:  string(r.LabelType),
			Count:      r.Count,
			Percentage: r.Percentage,
		})
	}
	return marshalCSV(&flat)
}

type deviceActivityCSVRow struct {
	DeviceID        string `csv:"deviceId"`
	TotalEvents     int64  `csv:"totalEvents"`
	LabeledEvents   int64  `csv:"labeledEvents"`
	UnlabeledEvents int64  `csv:"unlabeledEvents"`
	LabelTypes      string `csv:"labelTypes"`
}

func renderDeviceActivityCSV(rows []DeviceActivityRow) (string, error) {
	flat := make([]deviceActivityCSVRow, 0, len(rows))
	for _, r := range rows {
		pairs := make([]string, 0, len(r.LabelTypes))
		for _, tc := range r.LabelTypes {
			pairs = append(pairs, fmt.Sprintf("%s:%d", tc.LabelType, tc.Count))
		}
		flat = append(flat, deviceActivityCSVRow{
			DeviceID:        r.DeviceID,
			TotalEvents:     r.TotalEvents,
			LabeledEvents:   r.LabeledEvents,
			UnlabeledEvents: r.UnlabeledEvents,
			LabelTypes:      strings.Join(pairs, ";"),
		})
	}
	return marshalCSV(&flat)
}

type efficiencyCSVRow struct {
	User                       string `csv:"user"`
	LabelCount                 int64  `csv:"labelCount"`
	AverageLabelingTimeSeconds string `csv:"averageLabelingTimeSeconds"`
	TotalLabelingTimeSeconds   string `csv:"totalLabelingTimeSeconds"`
}

func renderEfficiencyCSV(rows []EfficiencyRow) (string, error) {
	flat := make([]efficiencyCSVRow, 0, len(rows))
	for _, r := range rows {
		flat = append(flat, efficiencyCSVRow{
			User:                       r.User,
			LabelCount:                 r.LabelCount,
			AverageLabelingTimeSeconds: formatNullableSeconds(r.AverageLabelingTimeSeconds),
			TotalLabelingTimeSeconds:   formatNullableSeconds(r.TotalLabelingTimeSeconds),
		})
	}
	return marshalCSV(&flat)
}

func formatNullableSeconds(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func marshalCSV(rows interface{}) (string, error) {
	out, err := gocsv.MarshalString(rows)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "rendering csv")
	}
	return out, nil
}
