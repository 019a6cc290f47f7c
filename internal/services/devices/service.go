package devices

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/mediawatch/labeling-api/pkg/errors"

	"github.com/mediawatch/labeling-api/internal/models"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
}

// NewService creates a new device service
func NewService(repository Repository) Service {
	return &ServiceImpl{
		repository: repository,
	}
}

// RegisterDevice registers a new monitoring device; device ids are unique
func (s *ServiceImpl) RegisterDevice(ctx context.Context, input RegisterDeviceInput) (*models.Device, error) {
	if input.DeviceID == "" {
		return nil, apperrors.ValidationError("device_id", "device id is required")
	}

	device := &models.Device{
		DeviceID: input.DeviceID,
		IsActive: true,
	}
	if input.IsActive != nil {
		device.IsActive = *input.IsActive
	}

	if err := s.repository.CreateDevice(ctx, device); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("device", "device id already exists")
		}
		return nil, apperrors.FromDatabase("create", "device", err)
	}
	return device, nil
}

// GetDevice retrieves a device by its external identifier
func (s *ServiceImpl) GetDevice(ctx context.Context, deviceID string) (*models.Device, error) {
	device, err := s.repository.GetDeviceByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("device", deviceID)
		}
		return nil, apperrors.FromDatabase("get", "device", err)
	}
	return device, nil
}

// ListDevices returns one page of devices, optionally filtered by activity
func (s *ServiceImpl) ListDevices(ctx context.Context, opts ListDevicesOptions) (*DevicePage, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}

	devices, total, err := s.repository.ListDevices(ctx, opts)
	if err != nil {
		return nil, apperrors.FromDatabase("list", "devices", err)
	}

	totalPages := total / int64(opts.Limit)
	if total%int64(opts.Limit) != 0 {
		totalPages++
	}

	return &DevicePage{
		Devices:     devices,
		Total:       total,
		TotalPages:  int(totalPages),
		CurrentPage: opts.Page,
	}, nil
}

// UpdateDevice applies a partial update to a device
func (s *ServiceImpl) UpdateDevice(ctx context.Context, deviceID string, input UpdateDeviceInput) (*models.Device, error) {
	device, err := s.repository.UpdateDevice(ctx, deviceID, input.IsActive)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("device", deviceID)
		}
		return nil, apperrors.FromDatabase("update", "device", err)
	}
	return device, nil
}

// DeleteDevice removes a device registration
func (s *ServiceImpl) DeleteDevice(ctx context.Context, deviceID string) error {
	if err := s.repository.DeleteDevice(ctx, deviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("device", deviceID)
		}
		return apperrors.FromDatabase("delete", "device", err)
	}
	return nil
}
