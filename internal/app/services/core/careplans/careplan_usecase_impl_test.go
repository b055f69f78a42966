package careplans

import (
	"context"
	"mdtcare-service/internal/app/config"
	"mdtcare-service/internal/app/contracts"
	"mdtcare-service/internal/app/models"
	"mdtcare-service/internal/app/services/shared/interactions"
	"mdtcare-service/internal/pkg/constvars"
	"mdtcare-service/internal/pkg/dto/requests"
	"mdtcare-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCarePlanRepository struct {
	mock.Mock
}

func (m *MockCarePlanRepository) Insert(ctx context.Context, plan *models.HarmonizedCarePlan) (*models.HarmonizedCarePlan, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		// Echo the inserted plan so tests can assert on the engine output.
		return plan, args.Error(1)
	}
	return args.Get(0).(*models.HarmonizedCarePlan), args.Error(1)
}

func (m *MockCarePlanRepository) FindByID(ctx context.Context, carePlanID string) (*models.HarmonizedCarePlan, error) {
	args := m.Called(ctx, carePlanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HarmonizedCarePlan), args.Error(1)
}

func (m *MockCarePlanRepository) FindLatestByPatientAndMeeting(ctx context.Context, patientID, meetingID string) (*models.HarmonizedCarePlan, error) {
	args := m.Called(ctx, patientID, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HarmonizedCarePlan), args.Error(1)
}

func (m *MockCarePlanRepository) UpdateWithRevision(ctx context.Context, plan *models.HarmonizedCarePlan, expectedRevision int) error {
	args := m.Called(ctx, plan, expectedRevision)
	return args.Error(0)
}

func (m *MockCarePlanRepository) MarkSuperseded(ctx context.Context, carePlanID string, expectedRevision int) error {
	args := m.Called(ctx, carePlanID, expectedRevision)
	return args.Error(0)
}

type MockSourcePlanRepository struct {
	mock.Mock
}

func (m *MockSourcePlanRepository) Insert(ctx context.Context, plan *models.SpecialtyTreatmentPlan) (*models.SpecialtyTreatmentPlan, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpecialtyTreatmentPlan), args.Error(1)
}

func (m *MockSourcePlanRepository) FindByID(ctx context.Context, planID string) (*models.SpecialtyTreatmentPlan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpecialtyTreatmentPlan), args.Error(1)
}

func (m *MockSourcePlanRepository) FindByPatientAndMeeting(ctx context.Context, patientID, meetingID string) ([]models.SpecialtyTreatmentPlan, error) {
	args := m.Called(ctx, patientID, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SpecialtyTreatmentPlan), args.Error(1)
}

func (m *MockSourcePlanRepository) FindActiveBySpecialty(ctx context.Context, patientID, specialty, meetingID string) (*models.SpecialtyTreatmentPlan, error) {
	args := m.Called(ctx, patientID, specialty, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpecialtyTreatmentPlan), args.Error(1)
}

func (m *MockSourcePlanRepository) FindPendingForReview(ctx context.Context, excludeSubmitterID string) ([]models.SpecialtyTreatmentPlan, error) {
	args := m.Called(ctx, excludeSubmitterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SpecialtyTreatmentPlan), args.Error(1)
}

func (m *MockSourcePlanRepository) Update(ctx context.Context, plan *models.SpecialtyTreatmentPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event contracts.PlanLifecycleEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestCarePlanUsecase(
	carePlanRepo *MockCarePlanRepository,
	planRepo *MockSourcePlanRepository,
	publisher *MockEventPublisher,
) *carePlanUsecase {
	return &carePlanUsecase{
		CarePlanRepository: carePlanRepo,
		PlanRepository:     planRepo,
		RuleProvider:       interactions.NewRuleEngine(),
		EventPublisher:     publisher,
		InternalConfig: &config.InternalConfig{
			MDT: config.MDT{ReviewIntervalDays: 7},
		},
		Log: zap.NewNop(),
	}
}

func approvableCarePlan() *models.HarmonizedCarePlan {
	return &models.HarmonizedCarePlan{
		ID:                "cp-1",
		PatientID:         "patient-1",
		MeetingID:         "meeting-1",
		PrimaryConsultant: fixedPrimaryConsultant(),
		Version:           1,
		Status:            models.CarePlanDraft,
		Approvals:         []models.ApprovalRecord{},
		TeamResponsibilities: []models.TeamResponsibility{
			{Specialty: "surgery", TeamLead: "Dr. Blake"},
			{Specialty: "nursing", TeamLead: "SN Carter"},
		},
	}
}

func TestCarePlanUsecase_HarmonizeTreatmentPlans(t *testing.T) {
	request := &requests.HarmonizePlans{PatientID: "patient-1", MeetingID: "meeting-1"}

	t.Run("only the primary consultant may harmonize", func(t *testing.T) {
		usecase := newTestCarePlanUsecase(new(MockCarePlanRepository), new(MockSourcePlanRepository), new(MockEventPublisher))

		plan, err := usecase.HarmonizeTreatmentPlans(context.Background(), request, models.TeamMember{ID: "tm-s", Specialty: "surgery"})

		assert.Error(t, err)
		assert.Nil(t, plan)
	})

	t.Run("requires at least two eligible plans", func(t *testing.T) {
		mockCarePlanRepo := new(MockCarePlanRepository)
		mockPlanRepo := new(MockSourcePlanRepository)
		usecase := newTestCarePlanUsecase(mockCarePlanRepo, mockPlanRepo, new(MockEventPublisher))

		draft := surgeryPlan()
		draft.Status = models.PlanDraft
		mockPlanRepo.On("FindByPatientAndMeeting", mock.Anything, "patient-1", "meeting-1").
			Return([]models.SpecialtyTreatmentPlan{draft, medicinePlan()}, nil)

		plan, err := usecase.HarmonizeTreatmentPlans(context.Background(), request, fixedPrimaryConsultant())

		assert.Error(t, err)
		assert.Nil(t, plan)
		mockCarePlanRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("creates the first version and publishes the event", func(t *testing.T) {
		mockCarePlanRepo := new(MockCarePlanRepository)
		mockPlanRepo := new(MockSourcePlanRepository)
		mockPublisher := new(MockEventPublisher)
		usecase := newTestCarePlanUsecase(mockCarePlanRepo, mockPlanRepo, mockPublisher)

		mockPlanRepo.On("FindByPatientAndMeeting", mock.Anything, "patient-1", "meeting-1").
			Return([]models.SpecialtyTreatmentPlan{surgeryPlan(), medicinePlan()}, nil)
		mockCarePlanRepo.On("FindLatestByPatientAndMeeting", mock.Anything, "patient-1", "meeting-1").Return(nil, nil)
		mockCarePlanRepo.On("Insert", mock.Anything, mock.Anything).Return(nil, nil)
		mockPublisher.On("Publish", mock.Anything, mock.MatchedBy(func(event contracts.PlanLifecycleEvent) bool {
			return event.Event == constvars.EventCarePlanHarmonized && event.Version == 1
		})).Return(nil)

		plan, err := usecase.HarmonizeTreatmentPlans(context.Background(), request, fixedPrimaryConsultant())

		require.NoError(t, err)
		require.NotNil(t, plan)
		assert.Equal(t, 1, plan.Version)
		assert.Equal(t, models.CarePlanDraft, plan.Status)
		assert.NotEmpty(t, plan.ID)
		mockCarePlanRepo.AssertNotCalled(t, "MarkSuperseded", mock.Anything, mock.Anything, mock.Anything)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("supersedes the prior version on re-harmonization", func(t *testing.T) {
		mockCarePlanRepo := new(MockCarePlanRepository)
		mockPlanRepo := new(MockSourcePlanRepository)
		mockPublisher := new(MockEventPublisher)
		usecase := newTestCarePlanUsecase(mockCarePlanRepo, mockPlanRepo, mockPublisher)

		prior := approvableCarePlan()
		prior.Revision = 3
		mockPlanRepo.On("FindByPatientAndMeeting", mock.Anything, "patient-1", "meeting-1").
			Return([]models.SpecialtyTreatmentPlan{surgeryPlan(), medicinePlan()}, nil)
		mockCarePlanRepo.On("FindLatestByPatientAndMeeting", mock.Anything, "patient-1", "meeting-1").Return(prior, nil)
		mockCarePlanRepo.On("MarkSuperseded", mock.Anything, "cp-1", 3).Return(nil)
		mockCarePlanRepo.On("Insert", mock.Anything, mock.Anything).Return(nil, nil)
		mockPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		plan, err := usecase.HarmonizeTreatmentPlans(context.Background(), request, fixedPrimaryConsultant())

		require.NoError(t, err)
		assert.Equal(t, 2, plan.Version)
		mockCarePlanRepo.AssertExpectations(t)
	})

	t.Run("a racing harmonization surfaces as a version conflict", func(t *testing.T) {
		mockCarePlanRepo := new(MockCarePlanRepository)
		mockPlanRepo := new(MockSourcePlanRepository)
		mockPublisher := new(MockEventPublisher)
		usecase := newTestCarePlanUsecase(mockCarePlanRepo, mockPlanRepo, mockPublisher)

		// A concurrent call already inserted this version; the unique
		// patient/meeting/version index turns the second insert into a
		// conflict instead of a duplicate document.
		mockPlanRepo.On("FindByPatientAndMeeting", mock.Anything, "patient-1", "meeting-1").
			Return([]models.SpecialtyTreatmentPlan{surgeryPlan(), medicinePlan()}, nil)
		mockCarePlanRepo.On("FindLatestByPatientAndMeeting", mock.Anything, "patient-1", "meeting-1").Return(nil, nil)
		conflict := exceptions.ErrVersionConflict(nil)
		mockCarePlanRepo.On("Insert", mock.Anything, mock.Anything).Return(nil, conflict)

		plan, err := usecase.HarmonizeTreatmentPlans(context.Background(), request, fixedPrimaryConsultant())

		assert.ErrorIs(t, err, conflict)
		assert.Nil(t, plan)
		mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestCarePlanUsecase_ApproveCarePlan(t *testing.T) {
	t.Run("a contributing specialty approval stays non-final", func(t *testing.T) {
		mockCarePlanRepo := new(MockCarePlanRepository)
		mockPublisher := new(MockEventPublisher)
		usecase := newTestCarePlanUsecase(mockCarePlanRepo, new(MockSourcePlanRepository), mockPublisher)

		mockCarePlanRepo.On("FindByID", mock.Anything, "cp-1").Return(approvableCarePlan(), nil)
		mockCarePlanRepo.On("UpdateWithRevision", mock.Anything, mock.Anything, 0).Return(nil)

		plan, err := usecase.ApproveCarePlan(context.Background(), "cp-1", models.TeamMember{ID: "tm-s", Specialty: "surgery"}, "agreed")

		require.NoError(t, err)
		assert.Equal(t, models.CarePlanPendingApproval, plan.Status)
		assert.Nil(t, plan.FinalApproval)
		require.Len(t, plan.Approvals, 1)
		assert.Equal(t, "tm-s", plan.Approvals[0].ApprovedBy)
		assert.Equal(t, "agreed", plan.Approvals[0].Comments)
		mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("the primary consultant approval is final", func(t *testing.T) {
		mockCarePlanRepo := new(MockCarePlanRepository)
		mockPublisher := new(MockEventPublisher)
		usecase := newTestCarePlanUsecase(mockCarePlanRepo, new(MockSourcePlanRepository), mockPublisher)

		reviewed := approvableCarePlan()
		reviewed.Status = models.CarePlanPendingApproval
		reviewed.Revision = 1
		reviewed.Approvals = []models.ApprovalRecord{{ApprovedBy: "tm-s", Specialty: "surgery"}}
		mockCarePlanRepo.On("FindByID", mock.Anything, "cp-1").Return(reviewed, nil)
		mockCarePlanRepo.On("UpdateWithRevision", mock.Anything, mock.Anything, 1).Return(nil)
		mockPublisher.On("Publish", mock.Anything, mock.MatchedBy(func(event contracts.PlanLifecycleEvent) bool {
			return event.Event == constvars.EventCarePlanApproved && event.PlanID == "cp-1"
		})).Return(nil)

		plan, err := usecase.ApproveCarePlan(context.Background(), "cp-1", fixedPrimaryConsultant(), "ratified")

		require.NoError(t, err)
		assert.Equal(t, models.CarePlanApproved, plan.Status)
		require.NotNil(t, plan.FinalApproval)
		assert.Equal(t, "tm-lead", plan.FinalApproval.ApprovedBy)
		assert.Len(t, plan.Approvals, 2)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("final approval happens exactly once", func(t *testing.T) {
		mockCarePlanRepo := new(MockCarePlanRepository)
		usecase := newTestCarePlanUsecase(mockCarePlanRepo, new(MockSourcePlanRepository), new(MockEventPublisher))

		finalized := approvableCarePlan()
		finalized.Status = models.CarePlanApproved
		finalized.FinalApproval = &models.FinalApproval{ApprovedBy: "tm-lead", ApprovedAt: time.Now().UTC()}
		mockCarePlanRepo.On("FindByID", mock.Anything, "cp-1").Return(finalized, nil)

		plan, err := usecase.ApproveCarePlan(context.Background(), "cp-1", fixedPrimaryConsultant(), "")

		assert.Error(t, err)
		assert.Nil(t, plan)
		mockCarePlanRepo.AssertNotCalled(t, "UpdateWithRevision", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects an approver outside the team", func(t *testing.T) {
		mockCarePlanRepo := new(MockCarePlanRepository)
		usecase := newTestCarePlanUsecase(mockCarePlanRepo, new(MockSourcePlanRepository), new(MockEventPublisher))

		mockCarePlanRepo.On("FindByID", mock.Anything, "cp-1").Return(approvableCarePlan(), nil)

		plan, err := usecase.ApproveCarePlan(context.Background(), "cp-1", models.TeamMember{ID: "tm-x", Specialty: "psychiatry"}, "")

		assert.Error(t, err)
		assert.Nil(t, plan)
		mockCarePlanRepo.AssertNotCalled(t, "UpdateWithRevision", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("a stale write surfaces as a version conflict", func(t *testing.T) {
		mockCarePlanRepo := new(MockCarePlanRepository)
		usecase := newTestCarePlanUsecase(mockCarePlanRepo, new(MockSourcePlanRepository), new(MockEventPublisher))

		mockCarePlanRepo.On("FindByID", mock.Anything, "cp-1").Return(approvableCarePlan(), nil)
		conflict := assert.AnError
		mockCarePlanRepo.On("UpdateWithRevision", mock.Anything, mock.Anything, 0).Return(conflict)

		plan, err := usecase.ApproveCarePlan(context.Background(), "cp-1", fixedPrimaryConsultant(), "")

		assert.ErrorIs(t, err, conflict)
		assert.Nil(t, plan)
	})

	t.Run("the second of two racing approvals is rejected, not merged", func(t *testing.T) {
		mockCarePlanRepo := new(MockCarePlanRepository)
		mockPublisher := new(MockEventPublisher)
		usecase := newTestCarePlanUsecase(mockCarePlanRepo, new(MockSourcePlanRepository), mockPublisher)

		// Both reviewers read the plan at revision 0; only the first write
		// may land, otherwise the second $set would drop the first reviewer's
		// approval record.
		mockCarePlanRepo.On("FindByID", mock.Anything, "cp-1").Return(approvableCarePlan(), nil).Once()
		mockCarePlanRepo.On("FindByID", mock.Anything, "cp-1").Return(approvableCarePlan(), nil).Once()
		mockCarePlanRepo.On("UpdateWithRevision", mock.Anything, mock.Anything, 0).Return(nil).Once()
		mockCarePlanRepo.On("UpdateWithRevision", mock.Anything, mock.Anything, 0).
			Return(exceptions.ErrVersionConflict(nil)).Once()

		first, err := usecase.ApproveCarePlan(context.Background(), "cp-1", models.TeamMember{ID: "tm-s", Specialty: "surgery"}, "agreed")
		require.NoError(t, err)
		require.Len(t, first.Approvals, 1)

		second, err := usecase.ApproveCarePlan(context.Background(), "cp-1", models.TeamMember{ID: "tm-n", Specialty: "nursing"}, "agreed")
		assert.Error(t, err)
		assert.Nil(t, second)
		mockCarePlanRepo.AssertExpectations(t)
	})
}

func TestCarePlanUsecase_CalculateTeamWorkload(t *testing.T) {
	mockCarePlanRepo := new(MockCarePlanRepository)
	usecase := newTestCarePlanUsecase(mockCarePlanRepo, new(MockSourcePlanRepository), new(MockEventPublisher))

	plan := approvableCarePlan()
	plan.Treatments = []models.HarmonizedTreatment{
		{Category: "wound_care", AssignedTeam: "surgery"},
		{Category: "glycaemic_control", AssignedTeam: "medicine"},
	}
	plan.Procedures = []models.PlannedProcedure{
		{Name: "incision and drainage", SourceSpecialty: "surgery"},
	}
	plan.TeamResponsibilities = []models.TeamResponsibility{
		{Specialty: "surgery", Responsibilities: []string{"debridement"}},
		{Specialty: "nursing", Responsibilities: []string{"dressing", "observations"}},
	}
	mockCarePlanRepo.On("FindByID", mock.Anything, "cp-1").Return(plan, nil)

	workload, err := usecase.CalculateTeamWorkload(context.Background(), "cp-1")

	require.NoError(t, err)
	assert.Equal(t, 3, workload["surgery"])
	assert.Equal(t, 1, workload["medicine"])
	assert.Equal(t, 2, workload["nursing"])
}
