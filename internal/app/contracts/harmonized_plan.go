package contracts

import (
	"context"
	"mdtcare-service/internal/app/models"
	"mdtcare-service/internal/pkg/dto/requests"
)

type CarePlanUsecase interface {
	HarmonizeTreatmentPlans(ctx context.Context, request *requests.HarmonizePlans, consultant models.TeamMember) (*models.HarmonizedCarePlan, error)
	FindCarePlanByID(ctx context.Context, carePlanID string) (*models.HarmonizedCarePlan, error)
	ApproveCarePlan(ctx context.Context, carePlanID string, approver models.TeamMember, comments string) (*models.HarmonizedCarePlan, error)
	CalculateTeamWorkload(ctx context.Context, carePlanID string) (map[string]int, error)
}

type CarePlanRepository interface {
	Insert(ctx context.Context, plan *models.HarmonizedCarePlan) (*models.HarmonizedCarePlan, error)
	FindByID(ctx context.Context, carePlanID string) (*models.HarmonizedCarePlan, error)
	FindLatestByPatientAndMeeting(ctx context.Context, patientID, meetingID string) (*models.HarmonizedCarePlan, error)
	// UpdateWithRevision persists plan only if the stored document still has
	// expectedRevision, and bumps the revision on success. Approvals leave
	// Version unchanged, so the CAS runs on the revision stamp; a stale write
	// surfaces as a version conflict.
	UpdateWithRevision(ctx context.Context, plan *models.HarmonizedCarePlan, expectedRevision int) error
	MarkSuperseded(ctx context.Context, carePlanID string, expectedRevision int) error
}
