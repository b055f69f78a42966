package plans

import (
	"context"
	"mdtcare-service/internal/app/config"
	"mdtcare-service/internal/app/contracts"
	"mdtcare-service/internal/app/models"
	"mdtcare-service/internal/pkg/constvars"
	"mdtcare-service/internal/pkg/dto/requests"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Insert(ctx context.Context, plan *models.SpecialtyTreatmentPlan) (*models.SpecialtyTreatmentPlan, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpecialtyTreatmentPlan), args.Error(1)
}

func (m *MockPlanRepository) FindByID(ctx context.Context, planID string) (*models.SpecialtyTreatmentPlan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpecialtyTreatmentPlan), args.Error(1)
}

func (m *MockPlanRepository) FindByPatientAndMeeting(ctx context.Context, patientID, meetingID string) ([]models.SpecialtyTreatmentPlan, error) {
	args := m.Called(ctx, patientID, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SpecialtyTreatmentPlan), args.Error(1)
}

func (m *MockPlanRepository) FindActiveBySpecialty(ctx context.Context, patientID, specialty, meetingID string) (*models.SpecialtyTreatmentPlan, error) {
	args := m.Called(ctx, patientID, specialty, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpecialtyTreatmentPlan), args.Error(1)
}

func (m *MockPlanRepository) FindPendingForReview(ctx context.Context, excludeSubmitterID string) ([]models.SpecialtyTreatmentPlan, error) {
	args := m.Called(ctx, excludeSubmitterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SpecialtyTreatmentPlan), args.Error(1)
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *models.SpecialtyTreatmentPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

type MockPlanEventPublisher struct {
	mock.Mock
}

func (m *MockPlanEventPublisher) Publish(ctx context.Context, event contracts.PlanLifecycleEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestPlanUsecase(repo *MockPlanRepository, locker *MockLockerService, publisher *MockPlanEventPublisher) *planUsecase {
	return &planUsecase{
		PlanRepository: repo,
		LockerService:  locker,
		EventPublisher: publisher,
		InternalConfig: &config.InternalConfig{
			MDT: config.MDT{PlanLockTTLSeconds: 5, ReviewIntervalDays: 7},
		},
		Log: zap.NewNop(),
	}
}

func submittedPlan() *models.SpecialtyTreatmentPlan {
	return &models.SpecialtyTreatmentPlan{
		ID:             "plan-1",
		PatientID:      "patient-1",
		MeetingID:      "meeting-1",
		Specialty:      "surgery",
		SubmittedBy:    models.TeamMember{ID: "tm-submitter", Name: "Dr. Blake", Specialty: "surgery"},
		Status:         models.PlanSubmitted,
		ApprovalStatus: models.ApprovalPending,
	}
}

func TestPlanUsecase_CreateSpecialtyPlan(t *testing.T) {
	request := &requests.CreateSpecialtyPlan{
		PatientID:       "patient-1",
		MeetingID:       "meeting-1",
		Specialty:       "Surgery",
		SubmittedByID:   "tm-submitter",
		SubmittedByName: "Dr. Blake",
		Diagnoses:       []string{"cellulitis"},
	}

	t.Run("creates a draft plan with a normalized specialty", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		mockLocker := new(MockLockerService)
		mockPublisher := new(MockPlanEventPublisher)
		usecase := newTestPlanUsecase(mockRepo, mockLocker, mockPublisher)

		mockLocker.On("TryLock", mock.Anything, mock.Anything, 5*time.Second).Return(true, "lock-value", nil)
		mockLocker.On("Unlock", mock.Anything, mock.Anything, "lock-value").Return(nil)
		mockRepo.On("FindActiveBySpecialty", mock.Anything, "patient-1", "surgery", "meeting-1").Return(nil, nil)

		var inserted *models.SpecialtyTreatmentPlan
		mockRepo.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			inserted = args.Get(1).(*models.SpecialtyTreatmentPlan)
		}).Return(&models.SpecialtyTreatmentPlan{ID: "plan-1"}, nil)

		created, err := usecase.CreateSpecialtyPlan(context.Background(), request)

		require.NoError(t, err)
		require.NotNil(t, created)
		require.NotNil(t, inserted)
		assert.Equal(t, "surgery", inserted.Specialty)
		assert.Equal(t, models.PlanDraft, inserted.Status)
		assert.Equal(t, models.ApprovalPending, inserted.ApprovalStatus)
		assert.Equal(t, "tm-submitter", inserted.SubmittedBy.ID)
		assert.NotEmpty(t, inserted.ID)
		mockRepo.AssertExpectations(t)
		mockLocker.AssertExpectations(t)
	})

	t.Run("rejects a second active plan for the same specialty", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		mockLocker := new(MockLockerService)
		usecase := newTestPlanUsecase(mockRepo, mockLocker, new(MockPlanEventPublisher))

		mockLocker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(true, "lock-value", nil)
		mockLocker.On("Unlock", mock.Anything, mock.Anything, "lock-value").Return(nil)
		mockRepo.On("FindActiveBySpecialty", mock.Anything, "patient-1", "surgery", "meeting-1").
			Return(submittedPlan(), nil)

		created, err := usecase.CreateSpecialtyPlan(context.Background(), request)

		assert.Error(t, err)
		assert.Nil(t, created)
		mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("refuses when the submission lock is held", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		mockLocker := new(MockLockerService)
		usecase := newTestPlanUsecase(mockRepo, mockLocker, new(MockPlanEventPublisher))

		mockLocker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(false, "", nil)

		created, err := usecase.CreateSpecialtyPlan(context.Background(), request)

		assert.Error(t, err)
		assert.Nil(t, created)
		mockRepo.AssertNotCalled(t, "FindActiveBySpecialty", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPlanUsecase_SubmitPlan(t *testing.T) {
	t.Run("moves a draft to submitted and publishes the event", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		mockPublisher := new(MockPlanEventPublisher)
		usecase := newTestPlanUsecase(mockRepo, new(MockLockerService), mockPublisher)

		draft := submittedPlan()
		draft.Status = models.PlanDraft
		mockRepo.On("FindByID", mock.Anything, "plan-1").Return(draft, nil)
		mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
		mockPublisher.On("Publish", mock.Anything, mock.MatchedBy(func(event contracts.PlanLifecycleEvent) bool {
			return event.Event == constvars.EventPlanSubmitted && event.PlanID == "plan-1"
		})).Return(nil)

		submitted, err := usecase.SubmitPlan(context.Background(), "plan-1", models.TeamMember{ID: "tm-submitter"})

		require.NoError(t, err)
		assert.Equal(t, models.PlanSubmitted, submitted.Status)
		require.NotNil(t, submitted.SubmittedAt)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("refuses to submit twice", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		usecase := newTestPlanUsecase(mockRepo, new(MockLockerService), new(MockPlanEventPublisher))

		mockRepo.On("FindByID", mock.Anything, "plan-1").Return(submittedPlan(), nil)

		submitted, err := usecase.SubmitPlan(context.Background(), "plan-1", models.TeamMember{ID: "tm-submitter"})

		assert.Error(t, err)
		assert.Nil(t, submitted)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestPlanUsecase_ApprovePlan(t *testing.T) {
	t.Run("a primary consultant approves a submitted plan", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		usecase := newTestPlanUsecase(mockRepo, new(MockLockerService), new(MockPlanEventPublisher))

		mockRepo.On("FindByID", mock.Anything, "plan-1").Return(submittedPlan(), nil)
		mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		approved, err := usecase.ApprovePlan(context.Background(), "plan-1", models.TeamMember{ID: "tm-reviewer", IsPrimaryConsultant: true})

		require.NoError(t, err)
		assert.Equal(t, models.PlanApproved, approved.Status)
		assert.Equal(t, models.ApprovalApproved, approved.ApprovalStatus)
		assert.Equal(t, "tm-reviewer", approved.ApprovedBy)
		require.NotNil(t, approved.ApprovalDate)
	})

	t.Run("a contributing specialty may approve", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		usecase := newTestPlanUsecase(mockRepo, new(MockLockerService), new(MockPlanEventPublisher))

		mockRepo.On("FindByID", mock.Anything, "plan-1").Return(submittedPlan(), nil)
		mockRepo.On("FindByPatientAndMeeting", mock.Anything, "patient-1", "meeting-1").
			Return([]models.SpecialtyTreatmentPlan{*submittedPlan(), {Specialty: "nursing"}}, nil)
		mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		approved, err := usecase.ApprovePlan(context.Background(), "plan-1", models.TeamMember{ID: "tm-n", Specialty: "nursing"})

		require.NoError(t, err)
		assert.Equal(t, models.ApprovalApproved, approved.ApprovalStatus)
	})

	t.Run("rejects a reviewer outside the team", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		usecase := newTestPlanUsecase(mockRepo, new(MockLockerService), new(MockPlanEventPublisher))

		mockRepo.On("FindByID", mock.Anything, "plan-1").Return(submittedPlan(), nil)
		mockRepo.On("FindByPatientAndMeeting", mock.Anything, "patient-1", "meeting-1").
			Return([]models.SpecialtyTreatmentPlan{*submittedPlan()}, nil)

		approved, err := usecase.ApprovePlan(context.Background(), "plan-1", models.TeamMember{ID: "tm-x", Specialty: "psychiatry"})

		assert.Error(t, err)
		assert.Nil(t, approved)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("forbids reviewing your own submission", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		usecase := newTestPlanUsecase(mockRepo, new(MockLockerService), new(MockPlanEventPublisher))

		mockRepo.On("FindByID", mock.Anything, "plan-1").Return(submittedPlan(), nil)

		approved, err := usecase.ApprovePlan(context.Background(), "plan-1", models.TeamMember{ID: "tm-submitter"})

		assert.Error(t, err)
		assert.Nil(t, approved)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("refuses a plan that is not under review", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		usecase := newTestPlanUsecase(mockRepo, new(MockLockerService), new(MockPlanEventPublisher))

		draft := submittedPlan()
		draft.Status = models.PlanDraft
		mockRepo.On("FindByID", mock.Anything, "plan-1").Return(draft, nil)

		approved, err := usecase.ApprovePlan(context.Background(), "plan-1", models.TeamMember{ID: "tm-reviewer"})

		assert.Error(t, err)
		assert.Nil(t, approved)
	})
}

func TestPlanUsecase_RejectPlan(t *testing.T) {
	t.Run("requires a reason", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		usecase := newTestPlanUsecase(mockRepo, new(MockLockerService), new(MockPlanEventPublisher))

		rejected, err := usecase.RejectPlan(context.Background(), "plan-1", models.TeamMember{ID: "tm-reviewer"}, "  ")

		assert.Error(t, err)
		assert.Nil(t, rejected)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("records the rejection reason", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		usecase := newTestPlanUsecase(mockRepo, new(MockLockerService), new(MockPlanEventPublisher))

		mockRepo.On("FindByID", mock.Anything, "plan-1").Return(submittedPlan(), nil)
		mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		rejected, err := usecase.RejectPlan(context.Background(), "plan-1", models.TeamMember{ID: "tm-reviewer", IsPrimaryConsultant: true}, "contradicts renal function results")

		require.NoError(t, err)
		assert.Equal(t, models.PlanRejected, rejected.Status)
		assert.Equal(t, models.ApprovalRejected, rejected.ApprovalStatus)
		assert.Equal(t, "contradicts renal function results", rejected.RejectionReason)
	})
}

func TestPlanUsecase_RequestRevision(t *testing.T) {
	t.Run("requires notes", func(t *testing.T) {
		usecase := newTestPlanUsecase(new(MockPlanRepository), new(MockLockerService), new(MockPlanEventPublisher))

		plan, err := usecase.RequestRevision(context.Background(), "plan-1", models.TeamMember{ID: "tm-reviewer"}, "")

		assert.Error(t, err)
		assert.Nil(t, plan)
	})

	t.Run("flags the plan for revision", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		usecase := newTestPlanUsecase(mockRepo, new(MockLockerService), new(MockPlanEventPublisher))

		mockRepo.On("FindByID", mock.Anything, "plan-1").Return(submittedPlan(), nil)
		mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		plan, err := usecase.RequestRevision(context.Background(), "plan-1", models.TeamMember{ID: "tm-reviewer", IsPrimaryConsultant: true}, "add wound swab results")

		require.NoError(t, err)
		assert.Equal(t, models.ApprovalNeedsRevision, plan.ApprovalStatus)
		assert.Equal(t, "add wound swab results", plan.RevisionNotes)
	})
}

func TestPlanUsecase_ResubmitPlan(t *testing.T) {
	t.Run("resubmits a plan flagged for revision", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		usecase := newTestPlanUsecase(mockRepo, new(MockLockerService), new(MockPlanEventPublisher))

		flagged := submittedPlan()
		flagged.ApprovalStatus = models.ApprovalNeedsRevision
		flagged.RevisionNotes = "add wound swab results"
		flagged.RevisionCount = 1
		mockRepo.On("FindByID", mock.Anything, "plan-1").Return(flagged, nil)
		mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		plan, err := usecase.ResubmitPlan(context.Background(), "plan-1", models.TeamMember{ID: "tm-submitter"}, &requests.ResubmitPlan{
			ClinicalFindings: "swab grew staph aureus",
		})

		require.NoError(t, err)
		assert.Equal(t, models.ApprovalPending, plan.ApprovalStatus)
		assert.Empty(t, plan.RevisionNotes)
		assert.Equal(t, 2, plan.RevisionCount)
		assert.Equal(t, "swab grew staph aureus", plan.ClinicalFindings)
	})

	t.Run("treats rejection as terminal", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		usecase := newTestPlanUsecase(mockRepo, new(MockLockerService), new(MockPlanEventPublisher))

		rejected := submittedPlan()
		rejected.Status = models.PlanRejected
		rejected.ApprovalStatus = models.ApprovalRejected
		mockRepo.On("FindByID", mock.Anything, "plan-1").Return(rejected, nil)

		plan, err := usecase.ResubmitPlan(context.Background(), "plan-1", models.TeamMember{ID: "tm-submitter"}, &requests.ResubmitPlan{})

		assert.Error(t, err)
		assert.Nil(t, plan)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("refuses a plan that is still pending review", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		usecase := newTestPlanUsecase(mockRepo, new(MockLockerService), new(MockPlanEventPublisher))

		mockRepo.On("FindByID", mock.Anything, "plan-1").Return(submittedPlan(), nil)

		plan, err := usecase.ResubmitPlan(context.Background(), "plan-1", models.TeamMember{ID: "tm-submitter"}, &requests.ResubmitPlan{})

		assert.Error(t, err)
		assert.Nil(t, plan)
	})
}
