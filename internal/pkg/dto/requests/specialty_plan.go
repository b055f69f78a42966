package requests

type TreatmentRecommendation struct {
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required"`
	Rationale   string `json:"rationale,omitempty"`
	Priority    string `json:"priority" validate:"required,priority"`
	Frequency   string `json:"frequency,omitempty"`
	Duration    string `json:"duration,omitempty"`
}

type MedicationRecommendation struct {
	MedicationName string `json:"medication_name" validate:"required"`
	Dose           string `json:"dose,omitempty"`
	Route          string `json:"route,omitempty"`
	Frequency      string `json:"frequency,omitempty"`
	Action         string `json:"action" validate:"required,medication_action"`
	Reason         string `json:"reason,omitempty"`
}

type InvestigationRecommendation struct {
	TestName string `json:"test_name" validate:"required"`
	Urgency  string `json:"urgency" validate:"required,urgency"`
	Reason   string `json:"reason,omitempty"`
}

type ProcedureRecommendation struct {
	Name       string `json:"name" validate:"required"`
	Indication string `json:"indication,omitempty"`
	Timing     string `json:"timing,omitempty"`
}

type Goal struct {
	Description string `json:"description" validate:"required"`
	Term        string `json:"term" validate:"required,oneof=short_term long_term"`
	TargetDate  string `json:"target_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreateSpecialtyPlan struct {
	PatientID        string                        `json:"patient_id" validate:"required"`
	MeetingID        string                        `json:"meeting_id,omitempty"`
	Specialty        string                        `json:"specialty" validate:"required,specialty"`
	ClinicalFindings string                        `json:"clinical_findings,omitempty"`
	Diagnoses        []string                      `json:"diagnoses" validate:"required,min=1"`
	Recommendations  []TreatmentRecommendation     `json:"recommendations" validate:"required,min=1,dive"`
	Medications      []MedicationRecommendation    `json:"medications,omitempty" validate:"omitempty,dive"`
	Investigations   []InvestigationRecommendation `json:"investigations,omitempty" validate:"omitempty,dive"`
	Procedures       []ProcedureRecommendation     `json:"procedures,omitempty" validate:"omitempty,dive"`
	Goals            []Goal                        `json:"goals,omitempty" validate:"omitempty,dive"`
	SubmittedByID    string
	SubmittedByName  string
}

type RejectPlan struct {
	Reason string `json:"reason" validate:"required"`
}

type RequestRevision struct {
	Notes string `json:"notes" validate:"required"`
}

// ResubmitPlan optionally replaces plan content while moving the plan from
// needs_revision back to pending review.
type ResubmitPlan struct {
	ClinicalFindings string                        `json:"clinical_findings,omitempty"`
	Diagnoses        []string                      `json:"diagnoses,omitempty"`
	Recommendations  []TreatmentRecommendation     `json:"recommendations,omitempty" validate:"omitempty,dive"`
	Medications      []MedicationRecommendation    `json:"medications,omitempty" validate:"omitempty,dive"`
	Investigations   []InvestigationRecommendation `json:"investigations,omitempty" validate:"omitempty,dive"`
	Procedures       []ProcedureRecommendation     `json:"procedures,omitempty" validate:"omitempty,dive"`
	Goals            []Goal                        `json:"goals,omitempty" validate:"omitempty,dive"`
}
