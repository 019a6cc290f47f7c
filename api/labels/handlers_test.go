package labels

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mediawatch/labeling-api/api/types"
	"github.com/mediawatch/labeling-api/internal/models"
	"github.com/mediawatch/labeling-api/internal/services/auth"
	labelsService "github.com/mediawatch/labeling-api/internal/services/labels"
	apperrors "github.com/mediawatch/labeling-api/pkg/errors"
)

// MockLabelService is a mock implementation of the label Service interface
type MockLabelService struct {
	mock.Mock
}

func (m *MockLabelService) CreateLabel(ctx context.Context, input labelsService.CreateLabelInput) (*models.LabelDetail, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabelDetail), args.Error(1)
}

func (m *MockLabelService) UpdateLabel(ctx context.Context, id uint, input labelsService.UpdateLabelInput) (*models.LabelDetail, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabelDetail), args.Error(1)
}

func (m *MockLabelService) DeleteLabel(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLabelService) DeleteLabelsBulk(ctx context.Context, ids []uint) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockLabelService) GetLabel(ctx context.Context, id uint) (*models.LabelDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabelDetail), args.Error(1)
}

func (m *MockLabelService) ListLabels(ctx context.Context, opts labelsService.ListLabelsOptions) (*labelsService.LabelPage, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*labelsService.LabelPage), args.Error(1)
}

func (m *MockLabelService) ListUnlabeledEvents(ctx context.Context, opts labelsService.UnlabeledEventsOptions) (*labelsService.EventPage, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*labelsService.EventPage), args.Error(1)
}

func (m *MockLabelService) ProgramGuide(ctx context.Context, day time.Time, deviceID string) ([]models.ProgramGuideEntry, error) {
	args := m.Called(ctx, day, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProgramGuideEntry), args.Error(1)
}

// setClaims mimics the authentication middleware for handler tests
func setClaims(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("auth_claims", &auth.Claims{UserID: 1, Email: email, Role: models.RoleAnnotator})
	}
}

func setupEngine(service labelsService.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	deps := &types.Dependencies{LabelService: service}
	group := engine.Group("/api/v1/labels")
	RegisterRoutes(group, deps, setClaims("annotator@example.com"))
	return engine
}

func TestCreateLabelAttribution(t *testing.T) {
	service := new(MockLabelService)
	service.On("CreateLabel", mock.Anything, mock.MatchedBy(func(input labelsService.CreateLabelInput) bool {
		return input.CreatedBy == "annotator@example.com"
	})).Return(&models.LabelDetail{ID: 1, LabelType: models.LabelTypeSong}, nil)

	engine := setupEngine(service)

	body := map[string]interface{}{
		"event_ids":  []string{"100"},
		"label_type": "song",
		"song":       map[string]interface{}{"song_name": "Test Song"},
	}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/labels/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	service.AssertExpectations(t)
}

func TestCreateLabelServiceErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"validation error", apperrors.ValidationError("event_ids", "at least one event id is required"), http.StatusBadRequest},
		{"missing event", apperrors.NotFound("event", "100"), http.StatusNotFound},
		{"already labeled", apperrors.Conflict("event", "event already belongs to a label"), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockLabelService)
			service.On("CreateLabel", mock.Anything, mock.Anything).Return(nil, tt.err)
			engine := setupEngine(service)

			body := `{"event_ids":["100"],"label_type":"song","song":{"song_name":"x"}}`
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/labels/", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")

			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestListLabelsPassesFilters(t *testing.T) {
	service := new(MockLabelService)
	service.On("ListLabels", mock.Anything, mock.MatchedBy(func(opts labelsService.ListLabelsOptions) bool {
		return opts.Page == 2 && opts.Limit == 5 &&
			opts.CreatedBy == "alice" && opts.LabelType == "song" &&
			opts.DeviceID == "device-001" && opts.Sort == "asc" &&
			opts.StartDate != nil && opts.EndDate != nil
	})).Return(&labelsService.LabelPage{
		Labels:      []models.LabelDetail{},
		Total:       0,
		TotalPages:  0,
		CurrentPage: 2,
	}, nil)

	engine := setupEngine(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/labels/?page=2&limit=5&created_by=alice&label_type=song&device_id=device-001&sort=asc&start_date=2026-01-01&end_date=2026-01-31", nil)

	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestListLabelsBadDate(t *testing.T) {
	service := new(MockLabelService)
	engine := setupEngine(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/labels/?start_date=January", nil)

	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "ListLabels")
}

func TestDeleteLabelNotFound(t *testing.T) {
	service := new(MockLabelService)
	service.On("DeleteLabel", mock.Anything, uint(42)).Return(apperrors.NotFound("label", "42"))
	engine := setupEngine(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/labels/42", nil)

	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteLabelsBulk(t *testing.T) {
	service := new(MockLabelService)
	service.On("DeleteLabelsBulk", mock.Anything, []uint{1, 2, 3}).Return(nil)
	engine := setupEngine(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/labels/bulk", bytes.NewBufferString(`{"ids":[1,2,3]}`))
	req.Header.Set("Content-Type", "application/json")

	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestProgramGuide(t *testing.T) {
	service := new(MockLabelService)
	service.On("ProgramGuide", mock.Anything, mock.MatchedBy(func(day time.Time) bool {
		return day.Year() == 2026 && day.Month() == time.March && day.Day() == 15
	}), "device-001").Return([]models.ProgramGuideEntry{}, nil)

	engine := setupEngine(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/labels/program-guides/2026-03-15/device-001", nil)

	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestProgramGuideBadDate(t *testing.T) {
	service := new(MockLabelService)
	engine := setupEngine(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/labels/program-guides/yesterday/device-001", nil)

	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "ProgramGuide")
}
