package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingPatientIDKey          = "patient_id"
	LoggingMeetingIDKey          = "meeting_id"
	LoggingPlanIDKey             = "plan_id"
	LoggingCarePlanIDKey         = "care_plan_id"
	LoggingCarePlanVersionKey    = "care_plan_version"
	LoggingSpecialtyKey          = "specialty"
	LoggingClinicianIDKey        = "clinician_id"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingEventNameKey          = "event_name"
	LoggingQueueNameKey          = "queue_name"
	LoggingObjectNameKey         = "object_name"
)
