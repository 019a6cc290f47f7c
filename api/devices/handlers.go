package devices

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mediawatch/labeling-api/api/types"
	devicesService "github.com/mediawatch/labeling-api/internal/services/devices"
)

// RegisterDevice registers a new monitoring device
// @Summary      Register device
// @Description  Register a monitoring device by its external identifier
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        device body devices.RegisterDeviceInput true "Device data"
// @Success      201 {object} models.Device "Registered device"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      409 {object} types.ErrorResponse "Device already registered"
// @Router       /api/v1/devices/register [post]
func RegisterDevice(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input devicesService.RegisterDeviceInput
		if !types.BindJSONOrError(c, &input) {
			return
		}

		device, err := deps.DeviceService.RegisterDevice(c.Request.Context(), input)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendCreated(c, device)
	}
}

// ListDevices returns a page of registered devices
// @Summary      List devices
// @Description  Retrieve registered devices, optionally filtered by active state
// @Tags         devices
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size"
// @Param        is_active query bool false "Filter by active state"
// @Success      200 {object} devices.DevicePage "Page of devices"
// @Router       /api/v1/devices [get]
func ListDevices(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := types.ParsePagination(c)

		opts := devicesService.ListDevicesOptions{Page: page, Limit: limit}
		if raw := c.Query("is_active"); raw != "" {
			active, err := strconv.ParseBool(raw)
			if err != nil {
				types.SendBadRequest(c, "Invalid is_active, expected true or false")
				return
			}
			opts.IsActive = &active
		}

		result, err := deps.DeviceService.ListDevices(c.Request.Context(), opts)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, result)
	}
}

// GetDevice returns a single device by its external identifier
// @Summary      Get device
// @Description  Retrieve a registered device by its external identifier
// @Tags         devices
// @Produce      json
// @Param        id path string true "Device identifier"
// @Success      200 {object} models.Device "Device"
// @Failure      404 {object} types.ErrorResponse "Device not found"
// @Router       /api/v1/devices/{id} [get]
func GetDevice(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		device, err := deps.DeviceService.GetDevice(c.Request.Context(), c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, device)
	}
}

// UpdateDevice updates a device's active state
// @Summary      Update device
// @Description  Update a registered device's active state
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id path string true "Device identifier"
// @Param        device body devices.UpdateDeviceInput true "Fields to update"
// @Success      200 {object} models.Device "Updated device"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      404 {object} types.ErrorResponse "Device not found"
// @Router       /api/v1/devices/{id} [put]
func UpdateDevice(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input devicesService.UpdateDeviceInput
		if !types.BindJSONOrError(c, &input) {
			return
		}

		device, err := deps.DeviceService.UpdateDevice(c.Request.Context(), c.Param("id"), input)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, device)
	}
}

// DeleteDevice removes a device from the registry
// @Summary      Delete device
// @Description  Remove a registered device by its external identifier
// @Tags         devices
// @Produce      json
// @Param        id path string true "Device identifier"
// @Success      200 {object} object{message=string} "Device deleted"
// @Failure      404 {object} types.ErrorResponse "Device not found"
// @Router       /api/v1/devices/{id} [delete]
func DeleteDevice(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.DeviceService.DeleteDevice(c.Request.Context(), c.Param("id")); err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Device deleted successfully"})
	}
}
