package plans

import (
	"context"
	"fmt"
	"mdtcare-service/internal/app/config"
	"mdtcare-service/internal/app/contracts"
	"mdtcare-service/internal/app/models"
	"mdtcare-service/internal/pkg/constvars"
	"mdtcare-service/internal/pkg/dto/requests"
	"mdtcare-service/internal/pkg/exceptions"
	"mdtcare-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type planUsecase struct {
	PlanRepository contracts.PlanRepository
	LockerService  contracts.LockerService
	EventPublisher contracts.PlanEventPublisher
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

var (
	planUsecaseInstance contracts.PlanUsecase
	oncePlanUsecase     sync.Once
)

func NewPlanUsecase(
	planRepository contracts.PlanRepository,
	lockerService contracts.LockerService,
	eventPublisher contracts.PlanEventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PlanUsecase {
	oncePlanUsecase.Do(func() {
		instance := &planUsecase{
			PlanRepository: planRepository,
			LockerService:  lockerService,
			EventPublisher: eventPublisher,
			InternalConfig: internalConfig,
			Log:            logger,
		}
		planUsecaseInstance = instance
	})
	return planUsecaseInstance
}

func (uc *planUsecase) CreateSpecialtyPlan(ctx context.Context, request *requests.CreateSpecialtyPlan) (*models.SpecialtyTreatmentPlan, error) {
	specialty := strings.ToLower(request.Specialty)

	// Concurrent submissions for the same patient/meeting race the duplicate
	// check, so creation is serialized behind a short-TTL lock.
	lockKey := fmt.Sprintf(constvars.RedisKeyPlanSubmissionLockFormat, request.PatientID, request.MeetingID)
	lockTTL := time.Duration(uc.InternalConfig.MDT.PlanLockTTLSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrPlanSubmissionLocked(nil)
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Warn("planUsecase.CreateSpecialtyPlan failed to release lock",
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(unlockErr),
			)
		}
	}()

	existing, err := uc.PlanRepository.FindActiveBySpecialty(ctx, request.PatientID, specialty, request.MeetingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrDuplicateSpecialtyPlan(nil)
	}

	now := time.Now().UTC()
	plan := &models.SpecialtyTreatmentPlan{
		ID:               utils.GenerateEntityID(),
		PatientID:        request.PatientID,
		MeetingID:        request.MeetingID,
		Specialty:        specialty,
		SubmittedBy:      models.TeamMember{ID: request.SubmittedByID, Name: request.SubmittedByName, Specialty: specialty},
		ClinicalFindings: request.ClinicalFindings,
		Diagnoses:        request.Diagnoses,
		Recommendations:  mapRecommendations(request.Recommendations),
		Medications:      mapMedications(request.Medications),
		Investigations:   mapInvestigations(request.Investigations),
		Procedures:       mapProcedures(request.Procedures),
		Goals:            mapGoals(request.Goals),
		Status:           models.PlanDraft,
		ApprovalStatus:   models.ApprovalPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := uc.PlanRepository.Insert(ctx, plan)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("planUsecase.CreateSpecialtyPlan succeeded",
		zap.String(constvars.LoggingPlanIDKey, created.ID),
		zap.String(constvars.LoggingPatientIDKey, created.PatientID),
		zap.String(constvars.LoggingSpecialtyKey, created.Specialty),
	)
	return created, nil
}

func (uc *planUsecase) SubmitPlan(ctx context.Context, planID string, actor models.TeamMember) (*models.SpecialtyTreatmentPlan, error) {
	plan, err := uc.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	if plan.Status != models.PlanDraft {
		return nil, exceptions.ErrPlanInvalidTransition(string(plan.Status), string(models.PlanSubmitted))
	}

	now := time.Now().UTC()
	plan.Status = models.PlanSubmitted
	plan.SubmittedAt = &now
	plan.UpdatedAt = now

	if err := uc.PlanRepository.Update(ctx, plan); err != nil {
		return nil, err
	}

	// Post-commit: the plan is already submitted, the caller may retry the
	// request if the event bus is down.
	if err := uc.EventPublisher.Publish(ctx, contracts.PlanLifecycleEvent{
		Event:      constvars.EventPlanSubmitted,
		PatientID:  plan.PatientID,
		MeetingID:  plan.MeetingID,
		PlanID:     plan.ID,
		Actor:      actor.ID,
		OccurredAt: now,
	}); err != nil {
		return nil, err
	}

	return plan, nil
}

func (uc *planUsecase) FindPlanByID(ctx context.Context, planID string) (*models.SpecialtyTreatmentPlan, error) {
	plan, err := uc.PlanRepository.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, exceptions.ErrPlanNotFound(nil)
	}
	return plan, nil
}

func (uc *planUsecase) FindPlans(ctx context.Context, patientID, meetingID string) ([]models.SpecialtyTreatmentPlan, error) {
	return uc.PlanRepository.FindByPatientAndMeeting(ctx, patientID, meetingID)
}

func (uc *planUsecase) ApprovePlan(ctx context.Context, planID string, approver models.TeamMember) (*models.SpecialtyTreatmentPlan, error) {
	plan, err := uc.findReviewablePlan(ctx, planID, approver)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan.ApprovalStatus = models.ApprovalApproved
	plan.Status = models.PlanApproved
	plan.ApprovedBy = approver.ID
	plan.ApprovalDate = &now
	plan.UpdatedAt = now

	if err := uc.PlanRepository.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (uc *planUsecase) RejectPlan(ctx context.Context, planID string, rejectedBy models.TeamMember, reason string) (*models.SpecialtyTreatmentPlan, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, exceptions.ErrRejectionReasonRequired()
	}

	plan, err := uc.findReviewablePlan(ctx, planID, rejectedBy)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan.ApprovalStatus = models.ApprovalRejected
	plan.Status = models.PlanRejected
	plan.RejectionReason = reason
	plan.UpdatedAt = now

	if err := uc.PlanRepository.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (uc *planUsecase) RequestRevision(ctx context.Context, planID string, reviewer models.TeamMember, notes string) (*models.SpecialtyTreatmentPlan, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, exceptions.ErrRevisionNotesRequired()
	}

	plan, err := uc.findReviewablePlan(ctx, planID, reviewer)
	if err != nil {
		return nil, err
	}

	plan.ApprovalStatus = models.ApprovalNeedsRevision
	plan.RevisionNotes = notes
	plan.UpdatedAt = time.Now().UTC()

	if err := uc.PlanRepository.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ResubmitPlan moves a needs_revision plan back to pending review in place,
// optionally replacing its clinical content. Rejected plans stay terminal;
// the specialty starts over with a fresh plan.
func (uc *planUsecase) ResubmitPlan(ctx context.Context, planID string, actor models.TeamMember, request *requests.ResubmitPlan) (*models.SpecialtyTreatmentPlan, error) {
	plan, err := uc.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	if plan.ApprovalStatus == models.ApprovalRejected {
		return nil, exceptions.ErrPlanRejectedIsTerminal()
	}
	if plan.ApprovalStatus != models.ApprovalNeedsRevision {
		return nil, exceptions.ErrPlanInvalidTransition(string(plan.ApprovalStatus), string(models.ApprovalPending))
	}

	if request.ClinicalFindings != "" {
		plan.ClinicalFindings = request.ClinicalFindings
	}
	if len(request.Diagnoses) > 0 {
		plan.Diagnoses = request.Diagnoses
	}
	if len(request.Recommendations) > 0 {
		plan.Recommendations = mapRecommendations(request.Recommendations)
	}
	if len(request.Medications) > 0 {
		plan.Medications = mapMedications(request.Medications)
	}
	if len(request.Investigations) > 0 {
		plan.Investigations = mapInvestigations(request.Investigations)
	}
	if len(request.Procedures) > 0 {
		plan.Procedures = mapProcedures(request.Procedures)
	}
	if len(request.Goals) > 0 {
		plan.Goals = mapGoals(request.Goals)
	}

	plan.ApprovalStatus = models.ApprovalPending
	plan.RevisionNotes = ""
	plan.RevisionCount++
	plan.UpdatedAt = time.Now().UTC()

	if err := uc.PlanRepository.Update(ctx, plan); err != nil {
		return nil, err
	}

	uc.Log.Info("planUsecase.ResubmitPlan succeeded",
		zap.String(constvars.LoggingPlanIDKey, plan.ID),
		zap.Int("revision_count", plan.RevisionCount),
	)
	return plan, nil
}

func (uc *planUsecase) GetPendingApprovals(ctx context.Context, consultantID string) ([]models.SpecialtyTreatmentPlan, error) {
	return uc.PlanRepository.FindPendingForReview(ctx, consultantID)
}

// findReviewablePlan loads the plan and enforces the shared review
// preconditions: the plan is submitted and pending, the reviewer is not
// reviewing their own submission, and the reviewer is either a primary
// consultant or belongs to a specialty contributing to this patient/meeting.
func (uc *planUsecase) findReviewablePlan(ctx context.Context, planID string, reviewer models.TeamMember) (*models.SpecialtyTreatmentPlan, error) {
	plan, err := uc.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	if plan.Status != models.PlanSubmitted || plan.ApprovalStatus != models.ApprovalPending {
		return nil, exceptions.ErrPlanInvalidTransition(string(plan.ApprovalStatus), string(models.ApprovalApproved))
	}
	if plan.SubmittedBy.ID == reviewer.ID {
		return nil, exceptions.ErrApproverNotAuthorized(nil)
	}

	authorized := reviewer.IsPrimaryConsultant
	if !authorized {
		reviewerSpecialty := strings.ToLower(reviewer.Specialty)
		siblings, err := uc.PlanRepository.FindByPatientAndMeeting(ctx, plan.PatientID, plan.MeetingID)
		if err != nil {
			return nil, err
		}
		for _, sibling := range siblings {
			if sibling.Specialty == reviewerSpecialty {
				authorized = true
				break
			}
		}
	}
	if !authorized {
		return nil, exceptions.ErrApproverNotAuthorized(nil)
	}
	return plan, nil
}

func mapRecommendations(in []requests.TreatmentRecommendation) []models.TreatmentRecommendation {
	out := make([]models.TreatmentRecommendation, 0, len(in))
	for _, recommendation := range in {
		out = append(out, models.TreatmentRecommendation{
			Category:    recommendation.Category,
			Description: recommendation.Description,
			Rationale:   recommendation.Rationale,
			Priority:    models.TreatmentPriority(recommendation.Priority),
			Frequency:   recommendation.Frequency,
			Duration:    recommendation.Duration,
		})
	}
	return out
}

func mapMedications(in []requests.MedicationRecommendation) []models.MedicationRecommendation {
	out := make([]models.MedicationRecommendation, 0, len(in))
	for _, medication := range in {
		out = append(out, models.MedicationRecommendation{
			MedicationName: medication.MedicationName,
			Dose:           medication.Dose,
			Route:          medication.Route,
			Frequency:      medication.Frequency,
			Action:         models.MedicationAction(medication.Action),
			Reason:         medication.Reason,
		})
	}
	return out
}

func mapInvestigations(in []requests.InvestigationRecommendation) []models.InvestigationRecommendation {
	out := make([]models.InvestigationRecommendation, 0, len(in))
	for _, investigation := range in {
		out = append(out, models.InvestigationRecommendation{
			TestName: investigation.TestName,
			Urgency:  models.TreatmentPriority(investigation.Urgency),
			Reason:   investigation.Reason,
		})
	}
	return out
}

func mapProcedures(in []requests.ProcedureRecommendation) []models.ProcedureRecommendation {
	out := make([]models.ProcedureRecommendation, 0, len(in))
	for _, procedure := range in {
		out = append(out, models.ProcedureRecommendation{
			Name:       procedure.Name,
			Indication: procedure.Indication,
			Timing:     procedure.Timing,
		})
	}
	return out
}

func mapGoals(in []requests.Goal) []models.Goal {
	out := make([]models.Goal, 0, len(in))
	for _, goal := range in {
		mapped := models.Goal{
			Description: goal.Description,
			Term:        models.GoalTerm(goal.Term),
		}
		if goal.TargetDate != "" {
			if targetDate, err := time.Parse("2006-01-02", goal.TargetDate); err == nil {
				mapped.TargetDate = &targetDate
			}
		}
		out = append(out, mapped)
	}
	return out
}
