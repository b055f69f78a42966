package constvars

// URL parameters
const (
	URLParamMeetingID  = "meeting_id"
	URLParamPlanID     = "plan_id"
	URLParamCarePlanID = "care_plan_id"
)
