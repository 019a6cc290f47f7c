package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "github.com/mediawatch/labeling-api/pkg/errors"

	"github.com/mediawatch/labeling-api/internal/models"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockRepository) ListEvents(ctx context.Context, opts ListEventsOptions) ([]models.Event, int64, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Event), args.Get(1).(int64), args.Error(2)
}

func TestServiceImpl_GetEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("string-encodes 64-bit fields", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("GetEventByID", ctx, int64(9007199254740993)).Return(&models.Event{
			ID:        9007199254740993,
			DeviceID:  "tv-01",
			Timestamp: 1700000000,
			Type:      1,
		}, nil)

		detail, err := service.GetEvent(ctx, 9007199254740993)
		require.NoError(t, err)
		// above 2^53, so the string form must be exact
		assert.Equal(t, "9007199254740993", detail.ID.String())
		assert.Equal(t, "1700000000", detail.Timestamp.String())
		assert.NotNil(t, detail.Ads)
		assert.NotNil(t, detail.Channels)
		assert.NotNil(t, detail.Content)

		mockRepo.AssertExpectations(t)
	})

	t.Run("translates missing event to NotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("GetEventByID", ctx, int64(999)).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.GetEvent(ctx, 999)
		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})
}

func TestServiceImpl_ListEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes paging and computes page count", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("ListEvents", ctx, mock.MatchedBy(func(opts ListEventsOptions) bool {
			return opts.Page == 1 && opts.Limit == 10
		})).Return([]models.Event{
			{ID: 1, DeviceID: "tv-01", Timestamp: 100, Type: 1},
		}, int64(25), nil)

		page, err := service.ListEvents(ctx, ListEventsOptions{Page: 0, Limit: 0})
		require.NoError(t, err)
		assert.Equal(t, int64(25), page.Total)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 1, page.CurrentPage)
		require.Len(t, page.Events, 1)

		mockRepo.AssertExpectations(t)
	})
}
