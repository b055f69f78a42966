package requests

type HarmonizePlans struct {
	PatientID string `json:"patient_id" validate:"required"`
	MeetingID string `json:"meeting_id" validate:"required"`
}

type ApproveCarePlan struct {
	Comments string `json:"comments,omitempty"`
}
