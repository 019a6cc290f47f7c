package labels

import (
	"context"
	"encoding/json"
	"testing"
	"time"

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

func (m *MockRepository) FindEventsByIDs(ctx context.Context, ids []int64) ([]models.Event, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockRepository) CreateLabel(ctx context.Context, label *models.Label, payload interface{}) error {
	args := m.Called(ctx, label, payload)
	return args.Error(0)
}

func (m *MockRepository) GetLabelByID(ctx context.Context, id uint) (*models.Label, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Label), args.Error(1)
}

func (m *MockRepository) ListLabels(ctx context.Context, opts ListLabelsOptions) ([]models.Label, int64, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Label), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) ListUnlabeledEvents(ctx context.Context, opts UnlabeledEventsOptions) ([]models.Event, int64, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Event), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) ListLabelsOverlapping(ctx context.Context, startTime, endTime int64, deviceID string) ([]models.Label, error) {
	args := m.Called(ctx, startTime, endTime, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Label), args.Error(1)
}

func (m *MockRepository) UpdateLabel(ctx context.Context, id uint, changes LabelChanges) error {
	args := m.Called(ctx, id, changes)
	return args.Error(0)
}

func (m *MockRepository) DeleteLabel(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) DeleteLabels(ctx context.Context, ids []uint) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func songPayload() LabelPayload {
	return LabelPayload{Song: &models.LabelSong{SongName: "Test Song"}}
}

func eventIDs(ids ...int64) []models.Int64String {
	out := make([]models.Int64String, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Int64String(id))
	}
	return out
}

func TestServiceImpl_CreateLabel(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty event set", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		_, err := service.CreateLabel(ctx, CreateLabelInput{
			LabelType:    models.LabelTypeSong,
			LabelPayload: songPayload(),
		})
		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))

		mockRepo.AssertNotCalled(t, "CreateLabel")
	})

	t.Run("rejects mismatched or missing payloads", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		tests := []struct {
			name      string
			labelType models.LabelType
			payload   LabelPayload
		}{
			{
				name:      "no payload",
				labelType: models.LabelTypeSong,
				payload:   LabelPayload{},
			},
			{
				name:      "wrong payload kind",
				labelType: models.LabelTypeSong,
				payload:   LabelPayload{Ad: &models.LabelAd{Type: models.AdTypeCommercialBreak, Brand: "Acme"}},
			},
			{
				name:      "two payloads",
				labelType: models.LabelTypeSong,
				payload: LabelPayload{
					Song: &models.LabelSong{SongName: "Test Song"},
					Ad:   &models.LabelAd{Type: models.AdTypeCommercialBreak, Brand: "Acme"},
				},
			},
			{
				name:      "unknown label type",
				labelType: models.LabelType("movie"),
				payload:   songPayload(),
			},
			{
				name:      "song without name",
				labelType: models.LabelTypeSong,
				payload:   LabelPayload{Song: &models.LabelSong{}},
			},
			{
				name:      "ad without brand",
				labelType: models.LabelTypeAd,
				payload:   LabelPayload{Ad: &models.LabelAd{Type: models.AdTypeAutoPromo}},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := service.CreateLabel(ctx, CreateLabelInput{
					EventIDs:     eventIDs(1),
					LabelType:    tt.labelType,
					LabelPayload: tt.payload,
				})
				assert.Error(t, err)
				assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
			})
		}

		mockRepo.AssertNotCalled(t, "CreateLabel")
	})

	t.Run("derives span from member event timestamps", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		events := []models.Event{
			{ID: 1, DeviceID: "tv-01", Timestamp: 10, Type: 1},
			{ID: 2, DeviceID: "tv-01", Timestamp: 30, Type: 1},
			{ID: 3, DeviceID: "tv-01", Timestamp: 20, Type: 1},
		}

		mockRepo.On("FindEventsByIDs", ctx, []int64{1, 2, 3}).Return(events, nil)
		mockRepo.On("CreateLabel", ctx, mock.AnythingOfType("*models.Label"), mock.Anything).
			Run(func(args mock.Arguments) {
				label := args.Get(1).(*models.Label)
				label.ID = 7
				assert.Equal(t, int64(10), label.StartTime)
				assert.Equal(t, int64(30), label.EndTime)
				require.Len(t, label.Events, 3)
				// memberships sorted by event timestamp
				assert.Equal(t, int64(1), label.Events[0].EventID)
				assert.Equal(t, int64(3), label.Events[1].EventID)
				assert.Equal(t, int64(2), label.Events[2].EventID)
			}).
			Return(nil)
		mockRepo.On("GetLabelByID", ctx, uint(7)).Return(&models.Label{
			ID:        7,
			LabelType: models.LabelTypeSong,
			StartTime: 10,
			EndTime:   30,
			Song:      &models.LabelSong{LabelID: 7, SongName: "Test Song"},
		}, nil)

		detail, err := service.CreateLabel(ctx, CreateLabelInput{
			EventIDs:     eventIDs(1, 2, 3),
			LabelType:    models.LabelTypeSong,
			LabelPayload: songPayload(),
			CreatedBy:    "annotator@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(7), detail.ID)
		assert.Equal(t, "10", detail.StartTime.String())
		assert.Equal(t, "30", detail.EndTime.String())

		mockRepo.AssertExpectations(t)
	})

	t.Run("fails when any event is missing", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("FindEventsByIDs", ctx, []int64{1, 999}).Return([]models.Event{
			{ID: 1, Timestamp: 10},
		}, nil)

		_, err := service.CreateLabel(ctx, CreateLabelInput{
			EventIDs:     eventIDs(1, 999),
			LabelType:    models.LabelTypeSong,
			LabelPayload: songPayload(),
		})
		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))

		mockRepo.AssertNotCalled(t, "CreateLabel")
	})

	t.Run("rejects duplicate event ids", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		_, err := service.CreateLabel(ctx, CreateLabelInput{
			EventIDs:     eventIDs(5, 5),
			LabelType:    models.LabelTypeSong,
			LabelPayload: songPayload(),
		})
		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))

		mockRepo.AssertNotCalled(t, "FindEventsByIDs")
	})
}

func TestServiceImpl_UpdateLabel(t *testing.T) {
	ctx := context.Background()

	existing := func() *models.Label {
		return &models.Label{
			ID:        4,
			LabelType: models.LabelTypeSong,
			StartTime: 10,
			EndTime:   30,
			Song:      &models.LabelSong{LabelID: 4, SongName: "Old Song"},
		}
	}

	t.Run("validates payload against existing type when type not supplied", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("GetLabelByID", ctx, uint(4)).Return(existing(), nil)

		// ad payload on a song label without a type change must fail
		_, err := service.UpdateLabel(ctx, 4, UpdateLabelInput{
			LabelPayload: LabelPayload{Ad: &models.LabelAd{Type: models.AdTypeCommercialBreak, Brand: "Acme"}},
		})
		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))

		mockRepo.AssertNotCalled(t, "UpdateLabel")
	})

	t.Run("changes type and payload together", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		adType := models.LabelTypeAd
		updated := &models.Label{
			ID:        4,
			LabelType: models.LabelTypeAd,
			StartTime: 10,
			EndTime:   30,
			Ad:        &models.LabelAd{LabelID: 4, Type: models.AdTypeCommercialBreak, Brand: "Acme"},
		}

		mockRepo.On("GetLabelByID", ctx, uint(4)).Return(existing(), nil).Once()
		mockRepo.On("UpdateLabel", ctx, uint(4), mock.AnythingOfType("LabelChanges")).
			Run(func(args mock.Arguments) {
				changes := args.Get(2).(LabelChanges)
				assert.Equal(t, models.LabelTypeAd, changes.Columns["label_type"])
				assert.IsType(t, &models.LabelAd{}, changes.Payload)
				assert.Nil(t, changes.ReplaceEvents)
			}).
			Return(nil)
		mockRepo.On("GetLabelByID", ctx, uint(4)).Return(updated, nil).Once()

		detail, err := service.UpdateLabel(ctx, 4, UpdateLabelInput{
			LabelType:    &adType,
			LabelPayload: LabelPayload{Ad: &models.LabelAd{Type: models.AdTypeCommercialBreak, Brand: "Acme"}},
		})
		require.NoError(t, err)
		assert.Equal(t, models.LabelTypeAd, detail.LabelType)
		require.NotNil(t, detail.Ad)
		assert.Equal(t, "Acme", detail.Ad.Brand)

		mockRepo.AssertExpectations(t)
	})

	t.Run("recomputes span when memberships are replaced", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("GetLabelByID", ctx, uint(4)).Return(existing(), nil)
		mockRepo.On("FindEventsByIDs", ctx, []int64{8, 9}).Return([]models.Event{
			{ID: 8, Timestamp: 100},
			{ID: 9, Timestamp: 50},
		}, nil)
		mockRepo.On("UpdateLabel", ctx, uint(4), mock.AnythingOfType("LabelChanges")).
			Run(func(args mock.Arguments) {
				changes := args.Get(2).(LabelChanges)
				assert.Equal(t, int64(50), changes.Columns["start_time"])
				assert.Equal(t, int64(100), changes.Columns["end_time"])
				require.Len(t, changes.ReplaceEvents, 2)
				assert.Equal(t, int64(9), changes.ReplaceEvents[0].EventID)
				assert.Equal(t, int64(8), changes.ReplaceEvents[1].EventID)
			}).
			Return(nil)

		ids := eventIDs(8, 9)
		_, err := service.UpdateLabel(ctx, 4, UpdateLabelInput{EventIDs: &ids})
		require.NoError(t, err)

		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects emptying the membership set", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("GetLabelByID", ctx, uint(4)).Return(existing(), nil)

		empty := []models.Int64String{}
		_, err := service.UpdateLabel(ctx, 4, UpdateLabelInput{EventIDs: &empty})
		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))

		mockRepo.AssertNotCalled(t, "UpdateLabel")
	})

	t.Run("explicit null clears notes, absent leaves them alone", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		withNotes := existing()
		note := "old note"
		withNotes.Notes = &note
		mockRepo.On("GetLabelByID", ctx, uint(4)).Return(withNotes, nil)
		mockRepo.On("UpdateLabel", ctx, uint(4), mock.AnythingOfType("LabelChanges")).
			Run(func(args mock.Arguments) {
				changes := args.Get(2).(LabelChanges)
				value, present := changes.Columns["notes"]
				assert.True(t, present)
				assert.Nil(t, value)
			}).
			Return(nil)

		var input UpdateLabelInput
		require.NoError(t, json.Unmarshal([]byte(`{"notes": null}`), &input))
		assert.True(t, input.Notes.Set)
		assert.Nil(t, input.Notes.Value)

		_, err := service.UpdateLabel(ctx, 4, input)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)

		var untouched UpdateLabelInput
		require.NoError(t, json.Unmarshal([]byte(`{"label_type": "song"}`), &untouched))
		assert.False(t, untouched.Notes.Set)
	})

	t.Run("handles label not found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("GetLabelByID", ctx, uint(999)).Return(nil, gorm.ErrRecordNotFound)

		notes := "note"
		_, err := service.UpdateLabel(ctx, 999, UpdateLabelInput{Notes: OptionalString{Set: true, Value: &notes}})
		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})
}

func TestServiceImpl_DeleteLabelsBulk(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty id list", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		err := service.DeleteLabelsBulk(ctx, nil)
		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))

		mockRepo.AssertNotCalled(t, "DeleteLabels")
	})

	t.Run("passes ids through", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("DeleteLabels", ctx, []uint{1, 2, 3}).Return(nil)

		err := service.DeleteLabelsBulk(ctx, []uint{1, 2, 3})
		require.NoError(t, err)

		mockRepo.AssertExpectations(t)
	})
}

func TestServiceImpl_ProgramGuide(t *testing.T) {
	ctx := context.Background()

	t.Run("queries the whole local day", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		day := time.Date(2025, 3, 14, 15, 4, 5, 0, time.UTC)
		dayStart := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC).Unix()
		dayEnd := time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC).Unix()

		mockRepo.On("ListLabelsOverlapping", ctx, dayStart, dayEnd, "tv-01").Return([]models.Label{
			{
				ID:        1,
				LabelType: models.LabelTypeProgram,
				StartTime: dayStart + 3600,
				EndTime:   dayStart + 7200,
				Program:   &models.LabelProgram{LabelID: 1, ProgramName: "Morning Show"},
			},
		}, nil)

		entries, err := service.ProgramGuide(ctx, day, "tv-01")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, models.LabelTypeProgram, entries[0].LabelType)
		require.NotNil(t, entries[0].DeviceID)
		assert.Equal(t, "tv-01", *entries[0].DeviceID)

		mockRepo.AssertExpectations(t)
	})
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(1, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(11, 10))
	assert.Equal(t, 5, totalPages(5, 1))
}
