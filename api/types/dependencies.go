package types

import (
	"github.com/mediawatch/labeling-api/internal/database"
	"github.com/mediawatch/labeling-api/internal/services/auth"
	"github.com/mediawatch/labeling-api/internal/services/devices"
	"github.com/mediawatch/labeling-api/internal/services/events"
	"github.com/mediawatch/labeling-api/internal/services/labels"
	"github.com/mediawatch/labeling-api/internal/services/reports"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB            *database.DB
	EventService  events.Service
	LabelService  labels.Service
	ReportService reports.Service
	DeviceService devices.Service
	AuthService   auth.Service
}
