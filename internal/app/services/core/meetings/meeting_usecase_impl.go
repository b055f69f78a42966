package meetings

import (
	"context"
	"fmt"
	"mdtcare-service/internal/app/config"
	"mdtcare-service/internal/app/contracts"
	"mdtcare-service/internal/app/models"
	"mdtcare-service/internal/pkg/constvars"
	"mdtcare-service/internal/pkg/dto/requests"
	"mdtcare-service/internal/pkg/dto/responses"
	"mdtcare-service/internal/pkg/exceptions"
	"mdtcare-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type meetingUsecase struct {
	MeetingRepository contracts.MeetingRepository
	SummaryArchiver   contracts.SummaryArchiver
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

var (
	meetingUsecaseInstance contracts.MeetingUsecase
	onceMeetingUsecase     sync.Once
)

func NewMeetingUsecase(
	meetingRepository contracts.MeetingRepository,
	summaryArchiver contracts.SummaryArchiver,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.MeetingUsecase {
	onceMeetingUsecase.Do(func() {
		instance := &meetingUsecase{
			MeetingRepository: meetingRepository,
			SummaryArchiver:   summaryArchiver,
			InternalConfig:    internalConfig,
			Log:               logger,
		}
		meetingUsecaseInstance = instance
	})
	return meetingUsecaseInstance
}

func (uc *meetingUsecase) CreateMeeting(ctx context.Context, request *requests.CreateMeeting) (*models.MDTMeeting, error) {
	scheduledDate, err := time.Parse(time.RFC3339, request.ScheduledDate)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	attendees := make([]models.TeamMember, 0, len(request.Attendees))
	for _, attendee := range request.Attendees {
		attendees = append(attendees, models.TeamMember{
			ID:                  attendee.ID,
			Name:                attendee.Name,
			Specialty:           strings.ToLower(attendee.Specialty),
			Role:                attendee.Role,
			IsPrimaryConsultant: attendee.IsPrimaryConsultant,
		})
	}

	now := time.Now().UTC()
	meeting := &models.MDTMeeting{
		ID:              utils.GenerateEntityID(),
		PatientID:       request.PatientID,
		Title:           request.Title,
		PatientSummary:  request.PatientSummary,
		ScheduledDate:   scheduledDate,
		DurationMinutes: request.DurationMinutes,
		Status:          models.MeetingScheduled,
		Attendees:       attendees,
		AgendaItems:     request.AgendaItems,
		Decisions:       []models.MeetingDecision{},
		CreatedBy:       request.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return uc.MeetingRepository.Insert(ctx, meeting)
}

func (uc *meetingUsecase) FindMeetingByID(ctx context.Context, meetingID string) (*models.MDTMeeting, error) {
	meeting, err := uc.MeetingRepository.FindByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, exceptions.ErrMeetingNotFound(nil)
	}
	return meeting, nil
}

func (uc *meetingUsecase) StartMeeting(ctx context.Context, meetingID string) (*models.MDTMeeting, error) {
	return uc.transitionMeeting(ctx, meetingID, models.MeetingInProgress)
}

func (uc *meetingUsecase) CompleteMeeting(ctx context.Context, meetingID string) (*models.MDTMeeting, error) {
	return uc.transitionMeeting(ctx, meetingID, models.MeetingCompleted)
}

func (uc *meetingUsecase) CancelMeeting(ctx context.Context, meetingID string) (*models.MDTMeeting, error) {
	return uc.transitionMeeting(ctx, meetingID, models.MeetingCancelled)
}

func (uc *meetingUsecase) transitionMeeting(ctx context.Context, meetingID string, next models.MeetingStatus) (*models.MDTMeeting, error) {
	meeting, err := uc.FindMeetingByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	if !meeting.Status.CanTransitionTo(next) {
		return nil, exceptions.ErrMeetingInvalidTransition(string(meeting.Status), string(next))
	}

	meeting.Status = next
	meeting.UpdatedAt = time.Now().UTC()
	if err := uc.MeetingRepository.Update(ctx, meeting); err != nil {
		return nil, err
	}

	uc.Log.Info("meetingUsecase.transitionMeeting succeeded",
		zap.String(constvars.LoggingMeetingIDKey, meeting.ID),
		zap.String("meeting_status", string(next)),
	)
	return meeting, nil
}

func (uc *meetingUsecase) RecordDecision(ctx context.Context, meetingID string, request *requests.RecordDecision) (*models.MDTMeeting, error) {
	meeting, err := uc.FindMeetingByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	// Decisions are only recorded while the meeting is live.
	if meeting.Status != models.MeetingInProgress {
		return nil, exceptions.ErrMeetingInvalidTransition(string(meeting.Status), string(models.MeetingInProgress))
	}

	now := time.Now().UTC()
	meeting.Decisions = append(meeting.Decisions, models.MeetingDecision{
		Description: request.Description,
		DecidedBy:   request.DecidedBy,
		DecidedAt:   now,
	})
	meeting.UpdatedAt = now

	if err := uc.MeetingRepository.Update(ctx, meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

func (uc *meetingUsecase) GenerateMeetingSummary(ctx context.Context, meetingID string) (*responses.MeetingSummary, error) {
	meeting, err := uc.FindMeetingByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	summaryText := buildSummaryText(meeting)
	generatedAt := time.Now().UTC()

	// Archival is best-effort: exporters can regenerate the object later,
	// so a storage failure must not block the caller.
	archiveURI, archiveErr := uc.SummaryArchiver.ArchiveSummary(ctx, meeting.ID, summaryText)
	if archiveErr != nil {
		uc.Log.Warn("meetingUsecase.GenerateMeetingSummary failed to archive summary",
			zap.String(constvars.LoggingMeetingIDKey, meeting.ID),
			zap.Error(archiveErr),
		)
		archiveURI = ""
	}

	return &responses.MeetingSummary{
		MeetingID:   meeting.ID,
		PatientID:   meeting.PatientID,
		Title:       meeting.Title,
		Status:      string(meeting.Status),
		Summary:     summaryText,
		ArchiveURI:  archiveURI,
		GeneratedAt: generatedAt,
	}, nil
}

func buildSummaryText(meeting *models.MDTMeeting) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "MDT Meeting Summary: %s\n", meeting.Title)
	fmt.Fprintf(&sb, "Patient: %s\n", meeting.PatientID)
	fmt.Fprintf(&sb, "Scheduled: %s (%d minutes)\n", meeting.ScheduledDate.Format(time.RFC3339), meeting.DurationMinutes)
	fmt.Fprintf(&sb, "Status: %s\n", meeting.Status)

	sb.WriteString("Attendees:\n")
	for _, attendee := range meeting.Attendees {
		role := attendee.Role
		if attendee.IsPrimaryConsultant {
			role = "primary consultant"
		}
		if role != "" {
			fmt.Fprintf(&sb, "- %s (%s, %s)\n", attendee.Name, attendee.Specialty, role)
		} else {
			fmt.Fprintf(&sb, "- %s (%s)\n", attendee.Name, attendee.Specialty)
		}
	}

	if len(meeting.AgendaItems) > 0 {
		sb.WriteString("Agenda:\n")
		for _, item := range meeting.AgendaItems {
			fmt.Fprintf(&sb, "- %s\n", item)
		}
	}

	sb.WriteString("Decisions:\n")
	if len(meeting.Decisions) == 0 {
		sb.WriteString("- none recorded\n")
	}
	for _, decision := range meeting.Decisions {
		fmt.Fprintf(&sb, "- %s (by %s at %s)\n", decision.Description, decision.DecidedBy, decision.DecidedAt.Format(time.RFC3339))
	}
	return sb.String()
}
