package models

import "time"

type MeetingStatus string

const (
	MeetingScheduled  MeetingStatus = "scheduled"
	MeetingInProgress MeetingStatus = "in_progress"
	MeetingCompleted  MeetingStatus = "completed"
	MeetingCancelled  MeetingStatus = "cancelled"
)

func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingScheduled, MeetingInProgress, MeetingCompleted, MeetingCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes the meeting lifecycle:
// scheduled -> in_progress -> completed | cancelled.
// A scheduled meeting may also be cancelled directly.
func (s MeetingStatus) CanTransitionTo(next MeetingStatus) bool {
	switch s {
	case MeetingScheduled:
		return next == MeetingInProgress || next == MeetingCancelled
	case MeetingInProgress:
		return next == MeetingCompleted || next == MeetingCancelled
	case MeetingCompleted, MeetingCancelled:
		return false
	}
	return false
}

type MeetingDecision struct {
	Description string    `json:"description" bson:"description"`
	DecidedBy   string    `json:"decidedBy" bson:"decidedBy"`
	DecidedAt   time.Time `json:"decidedAt" bson:"decidedAt"`
}

type MDTMeeting struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty"`
	PatientID string `json:"patientId" bson:"patientId"`
	Title     string `json:"title" bson:"title"`
	// PatientSummary is aggregated by an external clinical-data collaborator
	// and is opaque to this service.
	PatientSummary  string            `json:"patientSummary,omitempty" bson:"patientSummary,omitempty"`
	ScheduledDate   time.Time         `json:"scheduledDate" bson:"scheduledDate"`
	DurationMinutes int               `json:"durationMinutes" bson:"durationMinutes"`
	Status          MeetingStatus     `json:"status" bson:"status"`
	Attendees       []TeamMember      `json:"attendees,omitempty" bson:"attendees,omitempty"`
	AgendaItems     []string          `json:"agendaItems,omitempty" bson:"agendaItems,omitempty"`
	Decisions       []MeetingDecision `json:"decisions" bson:"decisions"`
	CreatedBy       string            `json:"createdBy" bson:"createdBy"`
	CreatedAt       time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt" bson:"updatedAt"`
}
