package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":          "is required",
	"min":               "must be at least %s characters long",
	"max":               "maximum at %s characters long",
	"oneof":             "must be one of [%s]",
	"gt":                "must be greater than %s",
	"gte":               "must be greater than or equal to %s",
	"datetime":          "must be a valid datetime",
	"uuid":              "must be a valid UUID",
	"specialty":         "must be a recognized clinical specialty",
	"priority":          "must be one of [routine, urgent, critical]",
	"urgency":           "must be one of [routine, urgent, critical]",
	"medication_action": "must be one of [continue, modify, discontinue, add]",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gt":    true,
	"gte":   true,
}

// Error messages for clients
const (
	ErrClientSomethingWrongWithApplication = "something went wrong with the application"
	ErrClientCannotProcessRequest          = "cannot process your request"
	ErrClientNotAuthorized                 = "you are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "you are not logged in"
	ErrClientServerLongRespond             = "server took too long to respond"

	ErrClientMeetingNotFound          = "meeting not found"
	ErrClientMeetingTransition        = "meeting cannot move to the requested state"
	ErrClientPlanNotFound             = "treatment plan not found"
	ErrClientCarePlanNotFound         = "harmonized care plan not found"
	ErrClientDuplicateSpecialtyPlan   = "this specialty already submitted a plan for the meeting"
	ErrClientInsufficientPlans        = "harmonization requires at least two submitted specialty plans"
	ErrClientPlanTransition           = "treatment plan cannot move to the requested state"
	ErrClientRejectionReasonRequired  = "a rejection reason is required"
	ErrClientRevisionNotesRequired    = "revision notes are required"
	ErrClientCarePlanStale            = "the care plan was modified by someone else, refresh and retry"
	ErrClientFinalApprovalAlreadySet  = "the care plan already has a final approval"
	ErrClientPlanSubmissionInProgress = "another plan submission for this patient is in progress, retry shortly"
)

// Error messages for developers
const (
	ErrDevValidationFailed               = "request validation failed"
	ErrDevInvalidInput                   = "invalid input"
	ErrDevCannotParseJSON                = "cannot parse JSON payload"
	ErrDevCannotMarshalJSON              = "cannot marshal JSON payload"
	ErrDevURLParamIDValidationFailed     = "URL parameter '%s' validation failed"
	ErrDevServerDeadlineExceeded         = "server deadline exceeded"
	ErrDevServerProcess                  = "internal process failed"
	ErrDevMissingRequestID               = "request ID missing from context"
	ErrDevAuthTokenMissing               = "authorization token missing"
	ErrDevAuthTokenInvalidOrExpired      = "authorization token invalid or expired"
	ErrDevAuthClinicianNotInContext      = "clinician identity not found in request context"
	ErrDevApproverNotAuthorized          = "approver is neither the primary consultant nor a contributing specialty"
	ErrDevMeetingNotFound                = "meeting document not found"
	ErrDevMeetingInvalidTransition       = "invalid meeting state transition from '%s' to '%s'"
	ErrDevPlanNotFound                   = "specialty treatment plan document not found"
	ErrDevPlanInvalidTransition          = "invalid plan approval transition from '%s' to '%s'"
	ErrDevPlanDuplicateForSpecialty      = "a plan already exists for (patient, specialty, meeting)"
	ErrDevPlanRejectedIsTerminal         = "rejected plans are terminal, create a replacement plan"
	ErrDevCarePlanNotFound               = "harmonized care plan document not found"
	ErrDevCarePlanVersionConflict        = "compare-and-swap on care plan version failed"
	ErrDevCarePlanFinalApprovalSet       = "final approval is already set for this care plan version"
	ErrDevInsufficientPlans              = "fewer than two plans supplied to the harmonization engine"
	ErrDevPlanSubmissionLockNotAcquired  = "could not acquire plan submission lock"
	ErrDevMongoDBFailedToFindDocument    = "mongo: failed to find document"
	ErrDevMongoDBFailedToInsertDocument  = "mongo: failed to insert document"
	ErrDevMongoDBFailedToUpdateDocument  = "mongo: failed to update document"
	ErrDevMongoDBFailedToIterateDocument = "mongo: failed to iterate documents"
	ErrDevRedisSetData                   = "redis: failed to set data"
	ErrDevRedisGetData                   = "redis: failed to get data"
	ErrDevRedisDeleteData                = "redis: failed to delete data"
	ErrDevRedisIncrementValue            = "redis: failed to increment value"
	ErrDevRedisUnlockNotOwner            = "redis: lock is not owned by this client"
	ErrDevRabbitMQPublishMessage         = "rabbitmq: failed to publish message to queue '%s'"
	ErrDevMinioFailedToCreateObject      = "minio: failed to store object in bucket '%s'"
)
