package devices

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

// NewRepository creates a new device repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// CreateDevice registers a device. Duplicate device ids surface as
// gorm.ErrDuplicatedKey.
func (r *RepositoryImpl) CreateDevice(ctx context.Context, device *models.Device) error {
	return r.db.WithContext(ctx).Create(device).Error
}

// GetDeviceByDeviceID retrieves a device by its external identifier
func (r *RepositoryImpl) GetDeviceByDeviceID(ctx context.Context, deviceID string) (*models.Device, error) {
	var device models.Device
	if err := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		First(&device).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

// ListDevices returns one page of devices plus the filtered total
func (r *RepositoryImpl) ListDevices(ctx context.Context, opts ListDevicesOptions) ([]models.Device, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Device{})
	if opts.IsActive != nil {
		query = query.Where("is_active = ?", *opts.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting devices: %w", err)
	}

	var devices []models.Device
	if err := query.
		Order("device_id ASC").
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&devices).Error; err != nil {
		return nil, 0, fmt.Errorf("listing devices: %w", err)
	}

	return devices, total, nil
}

// UpdateDevice applies a partial update addressed by external identifier
func (r *RepositoryImpl) UpdateDevice(ctx context.Context, deviceID string, isActive *bool) (*models.Device, error) {
	if isActive != nil {
		result := r.db.WithContext(ctx).
			Model(&models.Device{}).
			Where("device_id = ?", deviceID).
			Update("is_active", *isActive)
		if result.Error != nil {
			return nil, fmt.Errorf("updating device: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetDeviceByDeviceID(ctx, deviceID)
}

// DeleteDevice removes a device by external identifier
func (r *RepositoryImpl) DeleteDevice(ctx context.Context, deviceID string) error {
	result := r.db.WithContext(ctx).
		Unscoped().
		Where("device_id = ?", deviceID).
		Delete(&models.Device{})
	if result.Error != nil {
		return fmt.Errorf("deleting device: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
