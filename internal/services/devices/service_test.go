package devices

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "github.com/mediawatch/labeling-api/pkg/errors"

	"github.com/mediawatch/labeling-api/internal/models"
)

func setupService(t *testing.T) Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Device{}))
	return NewService(NewRepository(db))
}

func TestRegisterDevice(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	device, err := service.RegisterDevice(ctx, RegisterDeviceInput{DeviceID: "tv-01"})
	require.NoError(t, err)
	assert.True(t, device.IsActive)

	t.Run("duplicate id conflicts", func(t *testing.T) {
		_, err := service.RegisterDevice(ctx, RegisterDeviceInput{DeviceID: "tv-01"})
		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeConflict, apperrors.GetCode(err))
	})

	t.Run("missing id rejected", func(t *testing.T) {
		_, err := service.RegisterDevice(ctx, RegisterDeviceInput{})
		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
	})

	t.Run("explicit inactive", func(t *testing.T) {
		inactive := false
		device, err := service.RegisterDevice(ctx, RegisterDeviceInput{DeviceID: "tv-02", IsActive: &inactive})
		require.NoError(t, err)
		assert.False(t, device.IsActive)
	})
}

func TestListDevices(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	inactive := false
	_, err := service.RegisterDevice(ctx, RegisterDeviceInput{DeviceID: "tv-01"})
	require.NoError(t, err)
	_, err = service.RegisterDevice(ctx, RegisterDeviceInput{DeviceID: "tv-02", IsActive: &inactive})
	require.NoError(t, err)

	page, err := service.ListDevices(ctx, ListDevicesOptions{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	active := true
	page, err = service.ListDevices(ctx, ListDevicesOptions{Page: 1, Limit: 10, IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Devices, 1)
	assert.Equal(t, "tv-01", page.Devices[0].DeviceID)
}

func TestUpdateAndDeleteDevice(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	_, err := service.RegisterDevice(ctx, RegisterDeviceInput{DeviceID: "tv-01"})
	require.NoError(t, err)

	inactive := false
	device, err := service.UpdateDevice(ctx, "tv-01", UpdateDeviceInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, device.IsActive)

	_, err = service.UpdateDevice(ctx, "missing", UpdateDeviceInput{IsActive: &inactive})
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))

	require.NoError(t, service.DeleteDevice(ctx, "tv-01"))

	err = service.DeleteDevice(ctx, "tv-01")
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))

	_, err = service.GetDevice(ctx, "tv-01")
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}
