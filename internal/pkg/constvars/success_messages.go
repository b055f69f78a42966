package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Meeting messages
	MeetingCreatedSuccess   = "meeting scheduled successfully"
	MeetingFetchedSuccess   = "get meeting successfully"
	MeetingStartedSuccess   = "meeting started"
	MeetingCompletedSuccess = "meeting completed"
	MeetingCancelledSuccess = "meeting cancelled"
	MeetingDecisionSuccess  = "meeting decision recorded"
	MeetingSummarySuccess   = "meeting summary generated"

	// Specialty plan messages
	PlanCreatedSuccess         = "specialty treatment plan created"
	PlanFetchedSuccess         = "get treatment plan successfully"
	PlanSubmittedSuccess       = "treatment plan submitted for review"
	PlanApprovedSuccess        = "treatment plan approved"
	PlanRejectedSuccess        = "treatment plan rejected"
	PlanRevisionRequestSuccess = "revision requested for treatment plan"
	PlanResubmittedSuccess     = "treatment plan resubmitted for review"
	PendingApprovalsGetSuccess = "get pending approvals successfully"

	// Harmonized care plan messages
	CarePlanHarmonizedSuccess = "care plan harmonized"
	CarePlanFetchedSuccess    = "get harmonized care plan successfully"
	CarePlanApprovedSuccess   = "care plan approval recorded"
	TeamWorkloadGetSuccess    = "get team workload successfully"
)
