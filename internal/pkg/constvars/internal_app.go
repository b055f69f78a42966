package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_CLINICIAN_KEY            ContextKey = "clinician"
)

const (
	REQUEST_ID_PREFIX = "MDT_SVC_"
)

const (
	ResourceMeetings  = "meetings"
	ResourcePlans     = "plans"
	ResourceCarePlans = "care-plans"
)
