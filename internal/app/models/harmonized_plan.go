package models

import "time"

type CarePlanState string

const (
	CarePlanDraft           CarePlanState = "draft"
	CarePlanPendingApproval CarePlanState = "pending_approval"
	CarePlanApproved        CarePlanState = "approved"
	CarePlanActive          CarePlanState = "active"
	CarePlanSuperseded      CarePlanState = "superseded"
)

func (s CarePlanState) IsValid() bool {
	switch s {
	case CarePlanDraft, CarePlanPendingApproval, CarePlanApproved, CarePlanActive, CarePlanSuperseded:
		return true
	}
	return false
}

// AcceptsApprovals reports whether an approval may still be recorded against
// this version.
func (s CarePlanState) AcceptsApprovals() bool {
	return s == CarePlanDraft || s == CarePlanPendingApproval
}

type InteractionSeverity string

const (
	SeverityMinor    InteractionSeverity = "minor"
	SeverityModerate InteractionSeverity = "moderate"
	SeverityMajor    InteractionSeverity = "major"
)

// InteractionCheckState is deliberately tri-state: the rule table failing
// open (no rule for a drug) must read as "not checked", never as "clear".
type InteractionCheckState string

const (
	CheckNotChecked InteractionCheckState = "not_checked"
	CheckClear      InteractionCheckState = "checked_clear"
	CheckFlagged    InteractionCheckState = "checked_flagged"
)

type DrugInteraction struct {
	WithDrug   string              `json:"withDrug" bson:"withDrug"`
	Severity   InteractionSeverity `json:"severity" bson:"severity"`
	Management string              `json:"management,omitempty" bson:"management,omitempty"`
}

type TreatmentConflict struct {
	Category    string   `json:"category" bson:"category"`
	Specialties []string `json:"specialties" bson:"specialties"`
	Description string   `json:"description" bson:"description"`
	Resolved    bool     `json:"resolved" bson:"resolved"`
}

type HarmonizedTreatment struct {
	Category          string              `json:"category" bson:"category"`
	Description       string              `json:"description" bson:"description"`
	Rationale         string              `json:"rationale,omitempty" bson:"rationale,omitempty"`
	Priority          TreatmentPriority   `json:"priority" bson:"priority"`
	SourceSpecialties []string            `json:"sourceSpecialties" bson:"sourceSpecialties"`
	AssignedTeam      string              `json:"assignedTeam" bson:"assignedTeam"`
	Conflicts         []TreatmentConflict `json:"conflicts,omitempty" bson:"conflicts,omitempty"`
}

type OriginalMedicationOrder struct {
	Specialty string           `json:"specialty" bson:"specialty"`
	Action    MedicationAction `json:"action" bson:"action"`
	Dose      string           `json:"dose,omitempty" bson:"dose,omitempty"`
	Route     string           `json:"route,omitempty" bson:"route,omitempty"`
	Frequency string           `json:"frequency,omitempty" bson:"frequency,omitempty"`
	Reason    string           `json:"reason,omitempty" bson:"reason,omitempty"`
}

type MedicationStatus string

const (
	MedicationActive       MedicationStatus = "active"
	MedicationDiscontinued MedicationStatus = "discontinued"
)

type ReconciledMedication struct {
	MedicationName           string                    `json:"medicationName" bson:"medicationName"`
	Dose                     string                    `json:"dose,omitempty" bson:"dose,omitempty"`
	Route                    string                    `json:"route,omitempty" bson:"route,omitempty"`
	Frequency                string                    `json:"frequency,omitempty" bson:"frequency,omitempty"`
	OriginalRecommendations  []OriginalMedicationOrder `json:"originalRecommendations" bson:"originalRecommendations"`
	Interactions             []DrugInteraction         `json:"interactions,omitempty" bson:"interactions,omitempty"`
	ContraindicationsChecked InteractionCheckState     `json:"contraindicationsChecked" bson:"contraindicationsChecked"`
	FinalDecision            MedicationAction          `json:"finalDecision" bson:"finalDecision"`
	Rationale                string                    `json:"rationale,omitempty" bson:"rationale,omitempty"`
	DecidedBy                string                    `json:"decidedBy" bson:"decidedBy"`
	Status                   MedicationStatus          `json:"status" bson:"status"`
}

type PlannedProcedure struct {
	Name               string `json:"name" bson:"name"`
	Indication         string `json:"indication,omitempty" bson:"indication,omitempty"`
	Timing             string `json:"timing,omitempty" bson:"timing,omitempty"`
	SourceSpecialty    string `json:"sourceSpecialty" bson:"sourceSpecialty"`
	AnesthesiaRequired bool   `json:"anesthesiaRequired" bson:"anesthesiaRequired"`
}

type TeamResponsibility struct {
	Specialty        string   `json:"specialty" bson:"specialty"`
	TeamLead         string   `json:"teamLead" bson:"teamLead"`
	Responsibilities []string `json:"responsibilities" bson:"responsibilities"`
}

type ApprovalRecord struct {
	ApprovedBy string    `json:"approvedBy" bson:"approvedBy"`
	Specialty  string    `json:"specialty" bson:"specialty"`
	Comments   string    `json:"comments,omitempty" bson:"comments,omitempty"`
	ApprovedAt time.Time `json:"approvedAt" bson:"approvedAt"`
}

type FinalApproval struct {
	ApprovedBy string    `json:"approvedBy" bson:"approvedBy"`
	ApprovedAt time.Time `json:"approvedAt" bson:"approvedAt"`
}

// HarmonizedCarePlan is the merged, conflict-annotated output of the
// harmonization engine. Version increases monotonically per re-harmonization
// of the same patient/meeting; Revision is the write stamp every persisted
// update bumps, so approvals (which leave Version unchanged) still invalidate
// stale readers. Approvals are append-only; finalApproval is set exactly
// once, by the primary consultant.
type HarmonizedCarePlan struct {
	ID                   string                        `json:"id,omitempty" bson:"_id,omitempty"`
	PatientID            string                        `json:"patientId" bson:"patientId"`
	MeetingID            string                        `json:"meetingId" bson:"meetingId"`
	PrimaryConsultant    TeamMember                    `json:"primaryConsultant" bson:"primaryConsultant"`
	Version              int                           `json:"version" bson:"version"`
	Revision             int                           `json:"revision" bson:"revision"`
	Status               CarePlanState                 `json:"status" bson:"status"`
	PrimaryDiagnosis     string                        `json:"primaryDiagnosis,omitempty" bson:"primaryDiagnosis,omitempty"`
	SecondaryDiagnoses   []string                      `json:"secondaryDiagnoses,omitempty" bson:"secondaryDiagnoses,omitempty"`
	Treatments           []HarmonizedTreatment         `json:"treatments" bson:"treatments"`
	Medications          []ReconciledMedication        `json:"medications" bson:"medications"`
	Investigations       []InvestigationRecommendation `json:"investigations,omitempty" bson:"investigations,omitempty"`
	Procedures           []PlannedProcedure            `json:"procedures,omitempty" bson:"procedures,omitempty"`
	Goals                []Goal                        `json:"goals,omitempty" bson:"goals,omitempty"`
	TeamResponsibilities []TeamResponsibility          `json:"teamResponsibilities" bson:"teamResponsibilities"`
	Approvals            []ApprovalRecord              `json:"approvals" bson:"approvals"`
	FinalApproval        *FinalApproval                `json:"finalApproval,omitempty" bson:"finalApproval,omitempty"`
	ReviewDate           time.Time                     `json:"reviewDate" bson:"reviewDate"`
	EscalationCriteria   []string                      `json:"escalationCriteria" bson:"escalationCriteria"`
	CreatedAt            time.Time                     `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time                     `json:"updatedAt" bson:"updatedAt"`
}

// ContributingSpecialties lists the specialties that fed this plan, in team
// responsibility order.
func (p *HarmonizedCarePlan) ContributingSpecialties() []string {
	specialties := make([]string, 0, len(p.TeamResponsibilities))
	for _, responsibility := range p.TeamResponsibilities {
		specialties = append(specialties, responsibility.Specialty)
	}
	return specialties
}
