package models

import "gorm.io/gorm"

// Device is a registered monitoring device
type Device struct {
	gorm.Model
	DeviceID string `json:"device_id" gorm:"uniqueIndex;not null"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

// TableName returns the table name for the Device model
func (Device) TableName() string {
	return "devices"
}
