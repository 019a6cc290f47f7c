package models

import (
	"time"
)

// Event is a single device-observed recognition instant. Events are written
// by the ingestion pipeline with pre-assigned 64-bit ids; this service only
// reads them.
type Event struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	DeviceID  string    `json:"device_id" gorm:"not null;index"`
	Timestamp int64     `json:"timestamp" gorm:"not null;index"` // Seconds since epoch
	Type      int       `json:"type" gorm:"not null;index"`
	ImagePath *string   `json:"image_path"`
	MaxScore  *float64  `json:"max_score"`
	CreatedAt time.Time `json:"created_at"`

	Ads      []EventAd      `json:"ads,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Channels []EventChannel `json:"channels,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Content  []EventContent `json:"content,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Labels   []LabelEvent   `json:"-" gorm:"foreignKey:EventID"`
}

// TableName returns the table name for the Event model
func (Event) TableName() string {
	return "events"
}

// EventAd is an ad recognized within an event
type EventAd struct {
	ID      uint     `json:"id" gorm:"primaryKey"`
	EventID int64    `json:"-" gorm:"not null;index"`
	Name    string   `json:"name" gorm:"not null"`
	Score   *float64 `json:"score"`
}

// EventChannel is a channel recognized within an event
type EventChannel struct {
	ID      uint     `json:"id" gorm:"primaryKey"`
	EventID int64    `json:"-" gorm:"not null;index"`
	Name    string   `json:"name" gorm:"not null"`
	Score   *float64 `json:"score"`
}

// EventContent is a content fragment recognized within an event
type EventContent struct {
	ID      uint     `json:"id" gorm:"primaryKey"`
	EventID int64    `json:"-" gorm:"not null;index"`
	Name    string   `json:"name" gorm:"not null"`
	Score   *float64 `json:"score"`
}

// EventDetail is the external representation of an event. 64-bit fields are
// string-encoded via Int64String.
type EventDetail struct {
	ID        Int64String    `json:"id"`
	DeviceID  string         `json:"device_id"`
	Timestamp Int64String    `json:"timestamp"`
	Type      int            `json:"type"`
	ImagePath *string        `json:"image_path"`
	MaxScore  *float64       `json:"max_score"`
	CreatedAt time.Time      `json:"created_at"`
	Ads       []EventAd      `json:"ads"`
	Channels  []EventChannel `json:"channels"`
	Content   []EventContent `json:"content"`
	Labels    []LabelDetail  `json:"labels,omitempty"`
}

// NewEventDetail converts a stored event into its external representation.
// Labels are included only when the membership rows were loaded with their
// parent labels.
func NewEventDetail(e *Event) EventDetail {
	detail := EventDetail{
		ID:        Int64String(e.ID),
		DeviceID:  e.DeviceID,
		Timestamp: Int64String(e.Timestamp),
		Type:      e.Type,
		ImagePath: e.ImagePath,
		MaxScore:  e.MaxScore,
		CreatedAt: e.CreatedAt,
		Ads:       e.Ads,
		Channels:  e.Channels,
		Content:   e.Content,
	}
	if detail.Ads == nil {
		detail.Ads = []EventAd{}
	}
	if detail.Channels == nil {
		detail.Channels = []EventChannel{}
	}
	if detail.Content == nil {
		detail.Content = []EventContent{}
	}
	for _, membership := range e.Labels {
		if membership.Label != nil {
			detail.Labels = append(detail.Labels, NewLabelDetail(membership.Label))
		}
	}
	return detail
}
