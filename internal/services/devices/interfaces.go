package devices

import (
	"context"

	"github.com/mediawatch/labeling-api/internal/models"
)

// Repository defines the interface for device data access
type Repository interface {
	CreateDevice(ctx context.Context, device *models.Device) error
	GetDeviceByDeviceID(ctx context.Context, deviceID string) (*models.Device, error)
	ListDevices(ctx context.Context, opts ListDevicesOptions) ([]models.Device, int64, error)
	UpdateDevice(ctx context.Context, deviceID string, isActive *bool) (*models.Device, error)
	DeleteDevice(ctx context.Context, deviceID string) error
}

// Service defines the interface for device business logic
type Service interface {
	RegisterDevice(ctx context.Context, input RegisterDeviceInput) (*models.Device, error)
	GetDevice(ctx context.Context, deviceID string) (*models.Device, error)
	ListDevices(ctx context.Context, opts ListDevicesOptions) (*DevicePage, error)
	UpdateDevice(ctx context.Context, deviceID string, input UpdateDeviceInput) (*models.Device, error)
	DeleteDevice(ctx context.Context, deviceID string) error
}

// RegisterDeviceInput is the request to register a monitoring device
type RegisterDeviceInput struct {
	DeviceID string `json:"device_id" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// UpdateDeviceInput is a partial device update
type UpdateDeviceInput struct {
	IsActive *bool `json:"is_active"`
}

// ListDevicesOptions filters and paginates device listings
type ListDevicesOptions struct {
	Page     int
	Limit    int
	IsActive *bool
}

// DevicePage is one page of devices with pagination metadata
type DevicePage struct {
	Devices     []models.Device `json:"devices"`
	Total       int64           `json:"total"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
}
