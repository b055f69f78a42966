package requests

type Attendee struct {
	ID                  string `json:"id" validate:"required"`
	Name                string `json:"name" validate:"required"`
	Specialty           string `json:"specialty" validate:"required,specialty"`
	Role                string `json:"role,omitempty"`
	IsPrimaryConsultant bool   `json:"is_primary_consultant"`
}

type CreateMeeting struct {
	PatientID       string     `json:"patient_id" validate:"required"`
	Title           string     `json:"title" validate:"required,min=3"`
	PatientSummary  string     `json:"patient_summary,omitempty"`
	ScheduledDate   string     `json:"scheduled_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	DurationMinutes int        `json:"duration_minutes" validate:"required,gt=0"`
	Attendees       []Attendee `json:"attendees" validate:"required,min=1,dive"`
	AgendaItems     []string   `json:"agenda_items,omitempty"`
	CreatedBy       string
}

type RecordDecision struct {
	Description string `json:"description" validate:"required"`
	DecidedBy   string
}
