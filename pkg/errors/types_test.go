package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDefaultHTTPCodes(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeDatabaseQuery, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New(tt.code, "boom")
			assert.Equal(t, tt.expected, err.GetHTTPCode())
			assert.Equal(t, tt.expected, GetHTTPCode(err))
		})
	}
}

func TestConstructors(t *testing.T) {
	notFound := NotFound("label", 42)
	assert.Equal(t, ErrCodeNotFound, notFound.Code)
	assert.Contains(t, notFound.Error(), "label not found")
	assert.Equal(t, 42, notFound.Details["id"])

	validation := ValidationError("label_type", "must be one of song, ad, error, program")
	assert.Equal(t, ErrCodeValidation, validation.Code)
	assert.Contains(t, validation.Error(), "label_type")

	conflict := Conflict("event", "event already belongs to a label")
	assert.Equal(t, ErrCodeConflict, conflict.Code)
	assert.Contains(t, conflict.Error(), "event conflict")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := Wrap(cause, ErrCodeDatabaseQuery, "write failed")

	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "disk full")
}

func TestFromDatabase(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{"record not found", gorm.ErrRecordNotFound, ErrCodeNotFound},
		{"duplicate key", gorm.ErrDuplicatedKey, ErrCodeConflict},
		{"anything else", errors.New("locked"), ErrCodeDatabaseQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromDatabase("create", "label", tt.err)
			assert.Equal(t, tt.wantCode, err.Code)
		})
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := NotFound("device", "device-001")
	assert.True(t, Is(err, ErrCodeNotFound))
	assert.False(t, Is(err, ErrCodeConflict))
	assert.Equal(t, ErrCodeNotFound, GetCode(err))

	plain := errors.New("plain")
	assert.False(t, Is(plain, ErrCodeNotFound))
	assert.Equal(t, ErrCodeInternal, GetCode(plain))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPCode(plain))
}
