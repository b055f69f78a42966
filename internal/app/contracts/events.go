package contracts

import (
	"context"
	"time"
)

// PlanLifecycleEvent is the payload published to downstream collaborators
// (notification dispatch, report export) when a plan changes state.
type PlanLifecycleEvent struct {
	Event      string    `json:"event"`
	PatientID  string    `json:"patient_id"`
	MeetingID  string    `json:"meeting_id,omitempty"`
	PlanID     string    `json:"plan_id"`
	Version    int       `json:"version,omitempty"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}

type PlanEventPublisher interface {
	Publish(ctx context.Context, event PlanLifecycleEvent) error
}

// SummaryArchiver stores generated meeting summaries in object storage so
// external report exporters can pick them up.
type SummaryArchiver interface {
	ArchiveSummary(ctx context.Context, meetingID string, summary string) (string, error)
}
