package contracts

import (
	"context"
	"mdtcare-service/internal/app/models"
	"mdtcare-service/internal/pkg/dto/requests"
	"mdtcare-service/internal/pkg/dto/responses"
)

type MeetingUsecase interface {
	CreateMeeting(ctx context.Context, request *requests.CreateMeeting) (*models.MDTMeeting, error)
	FindMeetingByID(ctx context.Context, meetingID string) (*models.MDTMeeting, error)
	StartMeeting(ctx context.Context, meetingID string) (*models.MDTMeeting, error)
	CompleteMeeting(ctx context.Context, meetingID string) (*models.MDTMeeting, error)
	CancelMeeting(ctx context.Context, meetingID string) (*models.MDTMeeting, error)
	RecordDecision(ctx context.Context, meetingID string, request *requests.RecordDecision) (*models.MDTMeeting, error)
	GenerateMeetingSummary(ctx context.Context, meetingID string) (*responses.MeetingSummary, error)
}

type MeetingRepository interface {
	Insert(ctx context.Context, meeting *models.MDTMeeting) (*models.MDTMeeting, error)
	FindByID(ctx context.Context, meetingID string) (*models.MDTMeeting, error)
	Update(ctx context.Context, meeting *models.MDTMeeting) error
}
