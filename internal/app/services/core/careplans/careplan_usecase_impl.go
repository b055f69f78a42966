package careplans

import (
	"context"
	"mdtcare-service/internal/app/config"
	"mdtcare-service/internal/app/contracts"
	"mdtcare-service/internal/app/models"
	"mdtcare-service/internal/pkg/constvars"
	"mdtcare-service/internal/pkg/dto/requests"
	"mdtcare-service/internal/pkg/exceptions"
	"mdtcare-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type carePlanUsecase struct {
	CarePlanRepository contracts.CarePlanRepository
	PlanRepository     contracts.PlanRepository
	RuleProvider       contracts.InteractionRuleProvider
	EventPublisher     contracts.PlanEventPublisher
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

var (
	carePlanUsecaseInstance contracts.CarePlanUsecase
	onceCarePlanUsecase     sync.Once
)

func NewCarePlanUsecase(
	carePlanRepository contracts.CarePlanRepository,
	planRepository contracts.PlanRepository,
	ruleProvider contracts.InteractionRuleProvider,
	eventPublisher contracts.PlanEventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.CarePlanUsecase {
	onceCarePlanUsecase.Do(func() {
		instance := &carePlanUsecase{
			CarePlanRepository: carePlanRepository,
			PlanRepository:     planRepository,
			RuleProvider:       ruleProvider,
			EventPublisher:     eventPublisher,
			InternalConfig:     internalConfig,
			Log:                logger,
		}
		carePlanUsecaseInstance = instance
	})
	return carePlanUsecaseInstance
}

func (uc *carePlanUsecase) HarmonizeTreatmentPlans(ctx context.Context, request *requests.HarmonizePlans, consultant models.TeamMember) (*models.HarmonizedCarePlan, error) {
	if !consultant.IsPrimaryConsultant {
		return nil, exceptions.ErrApproverNotAuthorized(nil)
	}

	allPlans, err := uc.PlanRepository.FindByPatientAndMeeting(ctx, request.PatientID, request.MeetingID)
	if err != nil {
		return nil, err
	}

	// The engine only merges plans the workflow has let through.
	eligible := make([]models.SpecialtyTreatmentPlan, 0, len(allPlans))
	for _, plan := range allPlans {
		if plan.Status == models.PlanSubmitted || plan.Status == models.PlanApproved {
			eligible = append(eligible, plan)
		}
	}
	if len(eligible) < 2 {
		return nil, exceptions.ErrInsufficientPlans(nil)
	}

	version := 1
	prior, err := uc.CarePlanRepository.FindLatestByPatientAndMeeting(ctx, request.PatientID, request.MeetingID)
	if err != nil {
		return nil, err
	}
	if prior != nil {
		version = prior.Version + 1
		if prior.Status != models.CarePlanSuperseded {
			if err := uc.CarePlanRepository.MarkSuperseded(ctx, prior.ID, prior.Revision); err != nil {
				return nil, err
			}
		}
	}

	now := time.Now().UTC()
	harmonized := Harmonize(HarmonizeInput{
		Plans:              eligible,
		PrimaryConsultant:  consultant,
		PatientID:          request.PatientID,
		MeetingID:          request.MeetingID,
		Version:            version,
		ReviewIntervalDays: uc.InternalConfig.MDT.ReviewIntervalDays,
		Now:                now,
	}, uc.RuleProvider)
	harmonized.ID = utils.GenerateEntityID()

	created, err := uc.CarePlanRepository.Insert(ctx, harmonized)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("carePlanUsecase.HarmonizeTreatmentPlans succeeded",
		zap.String(constvars.LoggingCarePlanIDKey, created.ID),
		zap.String(constvars.LoggingPatientIDKey, created.PatientID),
		zap.Int(constvars.LoggingCarePlanVersionKey, created.Version),
	)

	if err := uc.EventPublisher.Publish(ctx, contracts.PlanLifecycleEvent{
		Event:      constvars.EventCarePlanHarmonized,
		PatientID:  created.PatientID,
		MeetingID:  created.MeetingID,
		PlanID:     created.ID,
		Version:    created.Version,
		Actor:      consultant.ID,
		OccurredAt: now,
	}); err != nil {
		return nil, err
	}

	return created, nil
}

func (uc *carePlanUsecase) FindCarePlanByID(ctx context.Context, carePlanID string) (*models.HarmonizedCarePlan, error) {
	plan, err := uc.CarePlanRepository.FindByID(ctx, carePlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, exceptions.ErrCarePlanNotFound(nil)
	}
	return plan, nil
}

// ApproveCarePlan appends an approval record; when the approver is the
// primary consultant the plan gets its final approval and turns terminal for
// this version. The write CAS runs on the revision stamp, so two reviewers
// holding the same copy cannot both land — the stale one gets a 409.
func (uc *carePlanUsecase) ApproveCarePlan(ctx context.Context, carePlanID string, approver models.TeamMember, comments string) (*models.HarmonizedCarePlan, error) {
	plan, err := uc.FindCarePlanByID(ctx, carePlanID)
	if err != nil {
		return nil, err
	}

	if !uc.isAuthorizedApprover(plan, approver) {
		return nil, exceptions.ErrApproverNotAuthorized(nil)
	}
	if plan.FinalApproval != nil {
		return nil, exceptions.ErrFinalApprovalAlreadySet()
	}
	if !plan.Status.AcceptsApprovals() {
		return nil, exceptions.ErrPlanInvalidTransition(string(plan.Status), string(models.CarePlanApproved))
	}

	now := time.Now().UTC()
	expectedRevision := plan.Revision

	plan.Approvals = append(plan.Approvals, models.ApprovalRecord{
		ApprovedBy: approver.ID,
		Specialty:  approver.Specialty,
		Comments:   comments,
		ApprovedAt: now,
	})
	plan.UpdatedAt = now

	isFinal := approver.ID == plan.PrimaryConsultant.ID
	if isFinal {
		plan.Status = models.CarePlanApproved
		plan.FinalApproval = &models.FinalApproval{
			ApprovedBy: approver.ID,
			ApprovedAt: now,
		}
	} else {
		plan.Status = models.CarePlanPendingApproval
	}

	if err := uc.CarePlanRepository.UpdateWithRevision(ctx, plan, expectedRevision); err != nil {
		return nil, err
	}

	if isFinal {
		if err := uc.EventPublisher.Publish(ctx, contracts.PlanLifecycleEvent{
			Event:      constvars.EventCarePlanApproved,
			PatientID:  plan.PatientID,
			MeetingID:  plan.MeetingID,
			PlanID:     plan.ID,
			Version:    plan.Version,
			Actor:      approver.ID,
			OccurredAt: now,
		}); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

func (uc *carePlanUsecase) CalculateTeamWorkload(ctx context.Context, carePlanID string) (map[string]int, error) {
	plan, err := uc.FindCarePlanByID(ctx, carePlanID)
	if err != nil {
		return nil, err
	}

	workload := make(map[string]int)
	for _, treatment := range plan.Treatments {
		workload[treatment.AssignedTeam]++
	}
	for _, procedure := range plan.Procedures {
		workload[procedure.SourceSpecialty]++
	}
	for _, responsibility := range plan.TeamResponsibilities {
		workload[responsibility.Specialty] += len(responsibility.Responsibilities)
	}
	return workload, nil
}

// isAuthorizedApprover admits the designated primary consultant and members
// of any specialty that contributed a plan to the merge.
func (uc *carePlanUsecase) isAuthorizedApprover(plan *models.HarmonizedCarePlan, approver models.TeamMember) bool {
	if approver.ID == plan.PrimaryConsultant.ID {
		return true
	}
	for _, specialty := range plan.ContributingSpecialties() {
		if specialty == approver.Specialty {
			return true
		}
	}
	return false
}
