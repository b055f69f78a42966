package routers

import (
	"context"
	"mdtcare-service/internal/app/config"
	"mdtcare-service/internal/app/delivery/http/controllers"
	"mdtcare-service/internal/app/delivery/http/middlewares"
	"mdtcare-service/internal/app/models"
	"mdtcare-service/internal/app/services/shared/jwtmanager"
	"mdtcare-service/internal/pkg/dto/requests"
	"mdtcare-service/internal/pkg/dto/responses"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockMeetingUsecase struct {
	mock.Mock
}

func (m *MockMeetingUsecase) CreateMeeting(ctx context.Context, request *requests.CreateMeeting) (*models.MDTMeeting, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MDTMeeting), args.Error(1)
}

func (m *MockMeetingUsecase) FindMeetingByID(ctx context.Context, meetingID string) (*models.MDTMeeting, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MDTMeeting), args.Error(1)
}

func (m *MockMeetingUsecase) StartMeeting(ctx context.Context, meetingID string) (*models.MDTMeeting, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MDTMeeting), args.Error(1)
}

func (m *MockMeetingUsecase) CompleteMeeting(ctx context.Context, meetingID string) (*models.MDTMeeting, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MDTMeeting), args.Error(1)
}

func (m *MockMeetingUsecase) CancelMeeting(ctx context.Context, meetingID string) (*models.MDTMeeting, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MDTMeeting), args.Error(1)
}

func (m *MockMeetingUsecase) RecordDecision(ctx context.Context, meetingID string, request *requests.RecordDecision) (*models.MDTMeeting, error) {
	args := m.Called(ctx, meetingID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MDTMeeting), args.Error(1)
}

func (m *MockMeetingUsecase) GenerateMeetingSummary(ctx context.Context, meetingID string) (*responses.MeetingSummary, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.MeetingSummary), args.Error(1)
}

func TestMeetingRouter(t *testing.T) {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		JWT: config.JWT{Secret: "test-secret", ExpTimeInHour: 1},
	}
	jwtManager, err := jwtmanager.NewJWTManager(internalConfig)
	require.NoError(t, err, "JWT manager should initialize with a secret")

	mockMeetingUsecase := new(MockMeetingUsecase)
	meetingController := controllers.NewMeetingController(logger, mockMeetingUsecase)
	middlewareSet := &middlewares.Middlewares{
		Log:            logger,
		JWTManager:     jwtManager,
		InternalConfig: internalConfig,
	}

	router := chi.NewRouter()
	router.Use(middlewareSet.RequestIDMiddleware)
	router.Route("/meetings", func(r chi.Router) {
		attachMeetingRouter(r, middlewareSet, meetingController)
	})

	token, err := jwtManager.CreateToken(models.TeamMember{
		ID:                  "tm-lead",
		Name:                "Dr. Osei",
		Specialty:           "medicine",
		IsPrimaryConsultant: true,
	})
	require.NoError(t, err, "token creation should succeed")

	t.Run("rejects a request without a bearer token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/meetings/meeting-1", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "Expected status code to be 401")
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/meetings/meeting-1", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "Expected status code to be 401")
	})

	t.Run("fetches a meeting for an authenticated clinician", func(t *testing.T) {
		mockMeetingUsecase.On("FindMeetingByID", mock.Anything, "meeting-1").
			Return(&models.MDTMeeting{ID: "meeting-1", PatientID: "patient-1", Status: models.MeetingScheduled}, nil).Once()

		req := httptest.NewRequest("GET", "/meetings/meeting-1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "Expected status code to be 200")
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"), "Expected a request ID on the response")
		mockMeetingUsecase.AssertExpectations(t)
	})

	t.Run("creates a meeting and stamps the creator from the token", func(t *testing.T) {
		var received *requests.CreateMeeting
		mockMeetingUsecase.On("CreateMeeting", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				received = args.Get(1).(*requests.CreateMeeting)
			}).
			Return(&models.MDTMeeting{ID: "meeting-2", Status: models.MeetingScheduled}, nil).Once()

		body := `{
			"patient_id": "patient-1",
			"title": "Sepsis review",
			"scheduled_date": "2026-03-12T14:00:00Z",
			"duration_minutes": 45,
			"attendees": [
				{"id": "tm-lead", "name": "Dr. Osei", "specialty": "medicine", "is_primary_consultant": true}
			]
		}`
		req := httptest.NewRequest("POST", "/meetings/", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code, "Expected status code to be 201")
		require.NotNil(t, received)
		assert.Equal(t, "tm-lead", received.CreatedBy, "Expected the creator to come from the token subject")
		mockMeetingUsecase.AssertExpectations(t)
	})

	t.Run("rejects an invalid meeting payload", func(t *testing.T) {
		body := `{"patient_id": "patient-1"}`
		req := httptest.NewRequest("POST", "/meetings/", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "Expected status code to be 400")
	})
}
