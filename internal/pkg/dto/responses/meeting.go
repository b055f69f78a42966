package responses

import "time"

type MeetingSummary struct {
	MeetingID   string    `json:"meeting_id"`
	PatientID   string    `json:"patient_id"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	Summary     string    `json:"summary"`
	ArchiveURI  string    `json:"archive_uri,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}
