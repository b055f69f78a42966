package contracts

import (
	"context"
	"mdtcare-service/internal/app/models"
	"mdtcare-service/internal/pkg/dto/requests"
)

type PlanUsecase interface {
	CreateSpecialtyPlan(ctx context.Context, request *requests.CreateSpecialtyPlan) (*models.SpecialtyTreatmentPlan, error)
	SubmitPlan(ctx context.Context, planID string, actor models.TeamMember) (*models.SpecialtyTreatmentPlan, error)
	FindPlanByID(ctx context.Context, planID string) (*models.SpecialtyTreatmentPlan, error)
	FindPlans(ctx context.Context, patientID, meetingID string) ([]models.SpecialtyTreatmentPlan, error)
	ApprovePlan(ctx context.Context, planID string, approver models.TeamMember) (*models.SpecialtyTreatmentPlan, error)
	RejectPlan(ctx context.Context, planID string, rejectedBy models.TeamMember, reason string) (*models.SpecialtyTreatmentPlan, error)
	RequestRevision(ctx context.Context, planID string, reviewer models.TeamMember, notes string) (*models.SpecialtyTreatmentPlan, error)
	ResubmitPlan(ctx context.Context, planID string, actor models.TeamMember, request *requests.ResubmitPlan) (*models.SpecialtyTreatmentPlan, error)
	GetPendingApprovals(ctx context.Context, consultantID string) ([]models.SpecialtyTreatmentPlan, error)
}

type PlanRepository interface {
	Insert(ctx context.Context, plan *models.SpecialtyTreatmentPlan) (*models.SpecialtyTreatmentPlan, error)
	FindByID(ctx context.Context, planID string) (*models.SpecialtyTreatmentPlan, error)
	FindByPatientAndMeeting(ctx context.Context, patientID, meetingID string) ([]models.SpecialtyTreatmentPlan, error)
	FindActiveBySpecialty(ctx context.Context, patientID, specialty, meetingID string) (*models.SpecialtyTreatmentPlan, error)
	FindPendingForReview(ctx context.Context, excludeSubmitterID string) ([]models.SpecialtyTreatmentPlan, error)
	Update(ctx context.Context, plan *models.SpecialtyTreatmentPlan) error
}
