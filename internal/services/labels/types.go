package labels

import (
	"bytes"
	"encoding/json"
	"time"

	apperrors "github.com/mediawatch/labeling-api/pkg/errors"

	"github.com/mediawatch/labeling-api/internal/models"
)

// OptionalString distinguishes a field that was absent from one that was
// explicitly set to null. An explicit null clears the stored value.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// LabelPayload carries at most one of the four typed payloads. The
// exactly-one-matching invariant is enforced by Validate before any write.
type LabelPayload struct {
	Song    *models.LabelSong    `json:"song,omitempty"`
	Ad      *models.LabelAd      `json:"ad,omitempty"`
	Error   *models.LabelError   `json:"error,omitempty"`
	Program *models.LabelProgram `json:"program,omitempty"`
}

// HasAny reports whether any payload is present
func (p LabelPayload) HasAny() bool {
	return p.Song != nil || p.Ad != nil || p.Error != nil || p.Program != nil
}

// Validate checks that exactly the payload matching labelType is present and
// that the payload's own required fields are set
func (p LabelPayload) Validate(labelType models.LabelType) error {
	if !labelType.Valid() {
		return apperrors.ValidationError("label_type", "must be one of song, ad, error, program")
	}

	present := 0
	if p.Song != nil {
		present++
	}
	if p.Ad != nil {
		present++
	}
	if p.Error != nil {
		present++
	}
	if p.Program != nil {
		present++
	}
	if present != 1 {
		return apperrors.ValidationError("label_type", "exactly one label payload must be provided")
	}

	switch labelType {
	case models.LabelTypeSong:
		if p.Song == nil {
			return apperrors.ValidationError("song", "song payload is required for song labels")
		}
		if p.Song.SongName == "" {
			return apperrors.ValidationError("song.song_name", "song name is required")
		}
		if p.Song.ReleaseYear != nil && *p.Song.ReleaseYear <= 0 {
			return apperrors.ValidationError("song.release_year", "release year must be positive")
		}
	case models.LabelTypeAd:
		if p.Ad == nil {
			return apperrors.ValidationError("ad", "ad payload is required for ad labels")
		}
		if !p.Ad.Type.Valid() {
			return apperrors.ValidationError("ad.type", "must be one of COMMERCIAL_BREAK, SPOT_OUTSIDE_BREAK, AUTO_PROMO")
		}
		if p.Ad.Brand == "" {
			return apperrors.ValidationError("ad.brand", "brand is required")
		}
	case models.LabelTypeError:
		if p.Error == nil {
			return apperrors.ValidationError("error", "error payload is required for error labels")
		}
		if p.Error.ErrorType == "" {
			return apperrors.ValidationError("error.error_type", "error type is required")
		}
	case models.LabelTypeProgram:
		if p.Program == nil {
			return apperrors.ValidationError("program", "program payload is required for program labels")
		}
		if p.Program.ProgramName == "" {
			return apperrors.ValidationError("program.program_name", "program name is required")
		}
		if p.Program.EpisodeNumber != nil && *p.Program.EpisodeNumber <= 0 {
			return apperrors.ValidationError("program.episode_number", "episode number must be positive")
		}
		if p.Program.SeasonNumber != nil && *p.Program.SeasonNumber <= 0 {
			return apperrors.ValidationError("program.season_number", "season number must be positive")
		}
	}

	return nil
}

// CreateLabelInput is the request to create a label over a set of events
type CreateLabelInput struct {
	EventIDs  []models.Int64String `json:"event_ids"`
	LabelType models.LabelType     `json:"label_type"`
	Notes     *string              `json:"notes"`
	LabelPayload
	CreatedBy string `json:"-"`
}

// UpdateLabelInput is a partial update. Absent fields are left untouched; a
// supplied EventIDs slice replaces the whole membership set, and a null Notes
// clears the stored notes.
type UpdateLabelInput struct {
	LabelType *models.LabelType     `json:"label_type"`
	Notes     OptionalString        `json:"notes"`
	EventIDs  *[]models.Int64String `json:"event_ids"`
	LabelPayload
}

// ListLabelsOptions filters and paginates label listings
type ListLabelsOptions struct {
	Page      int
	Limit     int
	StartDate *time.Time
	EndDate   *time.Time
	CreatedBy string
	LabelType string
	DeviceID  string
	Sort      string // asc or desc, by created_at
}

// UnlabeledEventsOptions filters and paginates the unlabeled-event view
type UnlabeledEventsOptions struct {
	Page      int
	Limit     int
	StartDate *time.Time
	EndDate   *time.Time
	DeviceID  string
	Types     []int
	Sort      string // asc or desc, by timestamp
}

// LabelPage is one page of labels with pagination metadata
type LabelPage struct {
	Labels      []models.LabelDetail `json:"labels"`
	Total       int64                `json:"total"`
	TotalPages  int                  `json:"totalPages"`
	CurrentPage int                  `json:"currentPage"`
}

// EventPage is one page of events with pagination metadata
type EventPage struct {
	Events      []models.EventDetail `json:"events"`
	Total       int64                `json:"total"`
	TotalPages  int                  `json:"totalPages"`
	CurrentPage int                  `json:"currentPage"`
}

// LabelChanges describes a persisted update. Columns are applied to the label
// row; ReplaceEvents, when non-nil, swaps the whole membership set; Payload,
// when non-nil, replaces the single polymorphic payload row.
type LabelChanges struct {
	Columns       map[string]interface{}
	ReplaceEvents []models.LabelEvent
	Payload       interface{}
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
