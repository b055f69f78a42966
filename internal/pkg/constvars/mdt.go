package constvars

// Mongo collections
const (
	MongoCollectionMeetings        = "mdt_meetings"
	MongoCollectionSpecialtyPlans  = "specialty_treatment_plans"
	MongoCollectionHarmonizedPlans = "harmonized_care_plans"
)

// Clinical specialties recognized by plan validation. The list mirrors the
// departments that participate in MDT meetings today; extending it only
// requires a new entry here.
var KnownSpecialties = map[string]bool{
	"surgery":             true,
	"medicine":            true,
	"nursing":             true,
	"radiology":           true,
	"oncology":            true,
	"pathology":           true,
	"physiotherapy":       true,
	"pharmacy":            true,
	"anesthesiology":      true,
	"palliative_care":     true,
	"endocrinology":       true,
	"wound_care":          true,
	"nutrition":           true,
	"social_work":         true,
	"psychiatry":          true,
	"rehabilitation":      true,
	"infectious_diseases": true,
}

// Specialties whose procedures imply anesthesia involvement.
const (
	SpecialtySurgery   = "surgery"
	SpecialtyRadiology = "radiology"
)

// Default escalation criteria attached to every harmonized care plan.
var DefaultEscalationCriteria = []string{
	"clinical deterioration outside agreed parameters",
	"new drug interaction or adverse reaction identified",
	"unresolved treatment conflict at review date",
	"patient or family request for plan review",
}

const (
	DefaultReviewIntervalDays = 7
)

// Redis key formats
const (
	RedisKeyPlanSubmissionLockFormat = "mdt:plan-lock:%s:%s"
)

// Plan lifecycle event names published to the events queue.
const (
	EventPlanSubmitted      = "plan.submitted"
	EventCarePlanHarmonized = "care_plan.harmonized"
	EventCarePlanApproved   = "care_plan.approved"
)
