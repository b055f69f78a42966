package models

import "time"

// PlanStatus tracks a specialty plan through the workflow at large.
type PlanStatus string

const (
	PlanDraft      PlanStatus = "draft"
	PlanSubmitted  PlanStatus = "submitted"
	PlanApproved   PlanStatus = "approved"
	PlanRejected   PlanStatus = "rejected"
	PlanSuperseded PlanStatus = "superseded"
)

func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanDraft, PlanSubmitted, PlanApproved, PlanRejected, PlanSuperseded:
		return true
	}
	return false
}

// PlanApprovalState tracks the reviewer decision, independent of PlanStatus.
type PlanApprovalState string

const (
	ApprovalPending       PlanApprovalState = "pending"
	ApprovalApproved      PlanApprovalState = "approved"
	ApprovalRejected      PlanApprovalState = "rejected"
	ApprovalNeedsRevision PlanApprovalState = "needs_revision"
)

func (s PlanApprovalState) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected, ApprovalNeedsRevision:
		return true
	}
	return false
}

type TreatmentPriority string

const (
	PriorityRoutine  TreatmentPriority = "routine"
	PriorityUrgent   TreatmentPriority = "urgent"
	PriorityCritical TreatmentPriority = "critical"
)

// Rank orders priorities: critical > urgent > routine. Unknown values rank
// lowest so a malformed record can never win a merge.
func (p TreatmentPriority) Rank() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityUrgent:
		return 2
	case PriorityRoutine:
		return 1
	}
	return 0
}

type MedicationAction string

const (
	ActionContinue    MedicationAction = "continue"
	ActionModify      MedicationAction = "modify"
	ActionDiscontinue MedicationAction = "discontinue"
	ActionAdd         MedicationAction = "add"
)

// Rank orders reconciliation precedence: discontinue > modify > add > continue.
func (a MedicationAction) Rank() int {
	switch a {
	case ActionDiscontinue:
		return 4
	case ActionModify:
		return 3
	case ActionAdd:
		return 2
	case ActionContinue:
		return 1
	}
	return 0
}

type TreatmentRecommendation struct {
	Category    string            `json:"category" bson:"category"`
	Description string            `json:"description" bson:"description"`
	Rationale   string            `json:"rationale,omitempty" bson:"rationale,omitempty"`
	Priority    TreatmentPriority `json:"priority" bson:"priority"`
	Frequency   string            `json:"frequency,omitempty" bson:"frequency,omitempty"`
	Duration    string            `json:"duration,omitempty" bson:"duration,omitempty"`
}

type MedicationRecommendation struct {
	MedicationName string           `json:"medicationName" bson:"medicationName"`
	Dose           string           `json:"dose,omitempty" bson:"dose,omitempty"`
	Route          string           `json:"route,omitempty" bson:"route,omitempty"`
	Frequency      string           `json:"frequency,omitempty" bson:"frequency,omitempty"`
	Action         MedicationAction `json:"action" bson:"action"`
	Reason         string           `json:"reason,omitempty" bson:"reason,omitempty"`
}

type InvestigationRecommendation struct {
	TestName string            `json:"testName" bson:"testName"`
	Urgency  TreatmentPriority `json:"urgency" bson:"urgency"`
	Reason   string            `json:"reason,omitempty" bson:"reason,omitempty"`
}

type ProcedureRecommendation struct {
	Name       string `json:"name" bson:"name"`
	Indication string `json:"indication,omitempty" bson:"indication,omitempty"`
	Timing     string `json:"timing,omitempty" bson:"timing,omitempty"`
}

type GoalTerm string

const (
	GoalShortTerm GoalTerm = "short_term"
	GoalLongTerm  GoalTerm = "long_term"
)

type Goal struct {
	Description string     `json:"description" bson:"description"`
	Term        GoalTerm   `json:"term" bson:"term"`
	TargetDate  *time.Time `json:"targetDate,omitempty" bson:"targetDate,omitempty"`
}

// SpecialtyTreatmentPlan is one specialty's proposal for one patient,
// optionally scoped to a meeting. Plans are never deleted, only superseded.
type SpecialtyTreatmentPlan struct {
	ID               string                        `json:"id,omitempty" bson:"_id,omitempty"`
	PatientID        string                        `json:"patientId" bson:"patientId"`
	MeetingID        string                        `json:"meetingId,omitempty" bson:"meetingId,omitempty"`
	Specialty        string                        `json:"specialty" bson:"specialty"`
	SubmittedBy      TeamMember                    `json:"submittedBy" bson:"submittedBy"`
	ClinicalFindings string                        `json:"clinicalFindings,omitempty" bson:"clinicalFindings,omitempty"`
	Diagnoses        []string                      `json:"diagnoses" bson:"diagnoses"`
	Recommendations  []TreatmentRecommendation     `json:"recommendations" bson:"recommendations"`
	Medications      []MedicationRecommendation    `json:"medications,omitempty" bson:"medications,omitempty"`
	Investigations   []InvestigationRecommendation `json:"investigations,omitempty" bson:"investigations,omitempty"`
	Procedures       []ProcedureRecommendation     `json:"procedures,omitempty" bson:"procedures,omitempty"`
	Goals            []Goal                        `json:"goals,omitempty" bson:"goals,omitempty"`

	Status         PlanStatus        `json:"status" bson:"status"`
	ApprovalStatus PlanApprovalState `json:"approvalStatus" bson:"approvalStatus"`

	ApprovedBy      string     `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	ApprovalDate    *time.Time `json:"approvalDate,omitempty" bson:"approvalDate,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	RevisionNotes   string     `json:"revisionNotes,omitempty" bson:"revisionNotes,omitempty"`
	RevisionCount   int        `json:"revisionCount" bson:"revisionCount"`

	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
}

// TreatmentDescriptions lists the plan's treatment descriptions in order,
// used for team responsibility assignment on the harmonized plan.
func (p *SpecialtyTreatmentPlan) TreatmentDescriptions() []string {
	descriptions := make([]string, 0, len(p.Recommendations))
	for _, recommendation := range p.Recommendations {
		descriptions = append(descriptions, recommendation.Description)
	}
	return descriptions
}
