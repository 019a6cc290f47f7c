package models

import (
	"sort"
	"time"
)

// LabelType discriminates the polymorphic label payload
type LabelType string

const (
	LabelTypeSong    LabelType = "song"
	LabelTypeAd      LabelType = "ad"
	LabelTypeError   LabelType = "error"
	LabelTypeProgram LabelType = "program"
)

// Valid reports whether the label type is one of the four known kinds
func (t LabelType) Valid() bool {
	switch t {
	case LabelTypeSong, LabelTypeAd, LabelTypeError, LabelTypeProgram:
		return true
	}
	return false
}

// AdType categorizes ad labels
type AdType string

const (
	AdTypeCommercialBreak  AdType = "COMMERCIAL_BREAK"
	AdTypeSpotOutsideBreak AdType = "SPOT_OUTSIDE_BREAK"
	AdTypeAutoPromo        AdType = "AUTO_PROMO"
)

// Valid reports whether the ad type is a known category
func (t AdType) Valid() bool {
	switch t {
	case AdTypeCommercialBreak, AdTypeSpotOutsideBreak, AdTypeAutoPromo:
		return true
	}
	return false
}

// Label is an annotator-created classification spanning one or more events.
// StartTime and EndTime are derived from the member events and are never set
// independently.
type Label struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	LabelType LabelType `json:"label_type" gorm:"not null;index"`
	CreatedBy string    `json:"created_by" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	StartTime int64     `json:"start_time" gorm:"not null"` // Seconds since epoch
	EndTime   int64     `json:"end_time" gorm:"not null"`   // Seconds since epoch
	Notes     *string   `json:"notes"`

	Events  []LabelEvent  `json:"-" gorm:"foreignKey:LabelID;constraint:OnDelete:CASCADE"`
	Song    *LabelSong    `json:"song,omitempty" gorm:"foreignKey:LabelID;constraint:OnDelete:CASCADE"`
	Ad      *LabelAd      `json:"ad,omitempty" gorm:"foreignKey:LabelID;constraint:OnDelete:CASCADE"`
	Error   *LabelError   `json:"error,omitempty" gorm:"foreignKey:LabelID;constraint:OnDelete:CASCADE"`
	Program *LabelProgram `json:"program,omitempty" gorm:"foreignKey:LabelID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the Label model
func (Label) TableName() string {
	return "labels"
}

// LabelEvent joins a label to one of its member events. The composite primary
// key guarantees pair uniqueness; the unique index on event_id enforces that
// an event belongs to at most one label.
type LabelEvent struct {
	LabelID uint  `json:"label_id" gorm:"primaryKey;autoIncrement:false"`
	EventID int64 `json:"event_id" gorm:"primaryKey;autoIncrement:false;uniqueIndex"`

	Label *Label `json:"-" gorm:"foreignKey:LabelID"`
	Event *Event `json:"-" gorm:"foreignKey:EventID"`
}

// TableName returns the table name for the LabelEvent join model
func (LabelEvent) TableName() string {
	return "label_events"
}

// LabelSong is the payload for song labels
type LabelSong struct {
	ID          uint    `json:"-" gorm:"primaryKey"`
	LabelID     uint    `json:"label_id" gorm:"uniqueIndex;not null"`
	SongName    string  `json:"song_name" gorm:"not null"`
	Artist      *string `json:"artist"`
	Album       *string `json:"album"`
	Language    *string `json:"language"`
	ReleaseYear *int    `json:"release_year"`
}

// TableName returns the table name for the LabelSong model
func (LabelSong) TableName() string {
	return "label_songs"
}

// LabelAd is the payload for ad labels
type LabelAd struct {
	ID       uint    `json:"-" gorm:"primaryKey"`
	LabelID  uint    `json:"label_id" gorm:"uniqueIndex;not null"`
	Type     AdType  `json:"type" gorm:"not null"`
	Brand    string  `json:"brand" gorm:"not null"`
	Product  *string `json:"product"`
	Category *string `json:"category"`
	Sector   *string `json:"sector"`
	Format   *string `json:"format"`
}

// TableName returns the table name for the LabelAd model
func (LabelAd) TableName() string {
	return "label_ads"
}

// LabelError is the payload for error labels
type LabelError struct {
	ID        uint   `json:"-" gorm:"primaryKey"`
	LabelID   uint   `json:"label_id" gorm:"uniqueIndex;not null"`
	ErrorType string `json:"error_type" gorm:"not null"`
}

// TableName returns the table name for the LabelError model
func (LabelError) TableName() string {
	return "label_errors"
}

// LabelProgram is the payload for program labels
type LabelProgram struct {
	ID            uint    `json:"-" gorm:"primaryKey"`
	LabelID       uint    `json:"label_id" gorm:"uniqueIndex;not null"`
	ProgramName   string  `json:"program_name" gorm:"not null"`
	Genre         *string `json:"genre"`
	EpisodeNumber *int    `json:"episode_number"`
	SeasonNumber  *int    `json:"season_number"`
	Language      *string `json:"language"`
}

// TableName returns the table name for the LabelProgram model
func (LabelProgram) TableName() string {
	return "label_programs"
}

// LabelDetail is the external representation of a label. Member event ids and
// image paths are emitted in ascending event-timestamp order so UI clients
// can render the filmstrip directly.
type LabelDetail struct {
	ID         uint          `json:"id"`
	EventIDs   []Int64String `json:"event_ids"`
	LabelType  LabelType     `json:"label_type"`
	CreatedBy  string        `json:"created_by"`
	CreatedAt  time.Time     `json:"created_at"`
	StartTime  Int64String   `json:"start_time"`
	EndTime    Int64String   `json:"end_time"`
	Notes      *string       `json:"notes"`
	ImagePaths []*string     `json:"image_paths"`
	Song       *LabelSong    `json:"song"`
	Ad         *LabelAd      `json:"ad"`
	Error      *LabelError   `json:"error"`
	Program    *LabelProgram `json:"program"`
}

// NewLabelDetail converts a stored label (memberships preloaded with their
// events) into its external representation.
func NewLabelDetail(l *Label) LabelDetail {
	memberships := make([]LabelEvent, len(l.Events))
	copy(memberships, l.Events)
	sort.SliceStable(memberships, func(i, j int) bool {
		var ti, tj int64
		if memberships[i].Event != nil {
			ti = memberships[i].Event.Timestamp
		}
		if memberships[j].Event != nil {
			tj = memberships[j].Event.Timestamp
		}
		return ti < tj
	})

	eventIDs := make([]Int64String, 0, len(memberships))
	imagePaths := make([]*string, 0, len(memberships))
	for _, m := range memberships {
		eventIDs = append(eventIDs, Int64String(m.EventID))
		if m.Event != nil {
			imagePaths = append(imagePaths, m.Event.ImagePath)
		} else {
			imagePaths = append(imagePaths, nil)
		}
	}

	return LabelDetail{
		ID:         l.ID,
		EventIDs:   eventIDs,
		LabelType:  l.LabelType,
		CreatedBy:  l.CreatedBy,
		CreatedAt:  l.CreatedAt,
		StartTime:  Int64String(l.StartTime),
		EndTime:    Int64String(l.EndTime),
		Notes:      l.Notes,
		ImagePaths: imagePaths,
		Song:       l.Song,
		Ad:         l.Ad,
		Error:      l.Error,
		Program:    l.Program,
	}
}

// ProgramGuideEntry is a label projected onto a single device's daily guide
type ProgramGuideEntry struct {
	ID         uint          `json:"id"`
	LabelType  LabelType     `json:"label_type"`
	CreatedBy  string        `json:"created_by"`
	CreatedAt  time.Time     `json:"created_at"`
	StartTime  Int64String   `json:"start_time"`
	EndTime    Int64String   `json:"end_time"`
	Notes      *string       `json:"notes"`
	DeviceID   *string       `json:"device_id"`
	ImagePaths []*string     `json:"image_paths"`
	Song       *LabelSong    `json:"song"`
	Ad         *LabelAd      `json:"ad"`
	Error      *LabelError   `json:"error"`
	Program    *LabelProgram `json:"program"`
}
