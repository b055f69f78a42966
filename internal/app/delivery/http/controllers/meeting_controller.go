package controllers

import (
	"context"
	"mdtcare-service/internal/app/contracts"
	"mdtcare-service/internal/app/models"
	"mdtcare-service/internal/pkg/constvars"
	"mdtcare-service/internal/pkg/dto/requests"
	"mdtcare-service/internal/pkg/exceptions"
	"mdtcare-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MeetingController struct {
	Log            *zap.Logger
	MeetingUsecase contracts.MeetingUsecase
}

var (
	meetingControllerInstance *MeetingController
	onceMeetingController     sync.Once
)

func NewMeetingController(logger *zap.Logger, meetingUsecase contracts.MeetingUsecase) *MeetingController {
	onceMeetingController.Do(func() {
		instance := &MeetingController{
			Log:            logger,
			MeetingUsecase: meetingUsecase,
		}
		meetingControllerInstance = instance
	})
	return meetingControllerInstance
}

func (ctrl *MeetingController) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("MeetingController.CreateMeeting requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("MeetingController.CreateMeeting called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	clinician, err := clinicianFromContext(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateMeeting)
	if err := utils.ParseAndValidateBody(r, request); err != nil {
		ctrl.Log.Error("MeetingController.CreateMeeting invalid payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.CreatedBy = clinician.ID

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	meeting, err := ctrl.MeetingUsecase.CreateMeeting(ctx, request)
	if err != nil {
		ctrl.Log.Error("MeetingController.CreateMeeting error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("MeetingController.CreateMeeting succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMeetingIDKey, meeting.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.MeetingCreatedSuccess, meeting)
}

func (ctrl *MeetingController) FindMeetingByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("MeetingController.FindMeetingByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	meetingID := chi.URLParam(r, constvars.URLParamMeetingID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	meeting, err := ctrl.MeetingUsecase.FindMeetingByID(ctx, meetingID)
	if err != nil {
		ctrl.Log.Error("MeetingController.FindMeetingByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.MeetingFetchedSuccess, meeting)
}

func (ctrl *MeetingController) StartMeeting(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "StartMeeting", ctrl.MeetingUsecase.StartMeeting, constvars.MeetingStartedSuccess)
}

func (ctrl *MeetingController) CompleteMeeting(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "CompleteMeeting", ctrl.MeetingUsecase.CompleteMeeting, constvars.MeetingCompletedSuccess)
}

func (ctrl *MeetingController) CancelMeeting(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "CancelMeeting", ctrl.MeetingUsecase.CancelMeeting, constvars.MeetingCancelledSuccess)
}

func (ctrl *MeetingController) RecordDecision(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("MeetingController.RecordDecision requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("MeetingController.RecordDecision called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	clinician, err := clinicianFromContext(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.RecordDecision)
	if err := utils.ParseAndValidateBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.DecidedBy = clinician.ID

	meetingID := chi.URLParam(r, constvars.URLParamMeetingID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	meeting, err := ctrl.MeetingUsecase.RecordDecision(ctx, meetingID, request)
	if err != nil {
		ctrl.Log.Error("MeetingController.RecordDecision error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.MeetingDecisionSuccess, meeting)
}

func (ctrl *MeetingController) GenerateMeetingSummary(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("MeetingController.GenerateMeetingSummary requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	meetingID := chi.URLParam(r, constvars.URLParamMeetingID)
	ctrl.Log.Info("MeetingController.GenerateMeetingSummary called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMeetingIDKey, meetingID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	summary, err := ctrl.MeetingUsecase.GenerateMeetingSummary(ctx, meetingID)
	if err != nil {
		ctrl.Log.Error("MeetingController.GenerateMeetingSummary error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.MeetingSummarySuccess, summary)
}

func (ctrl *MeetingController) transition(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	fn func(ctx context.Context, meetingID string) (*models.MDTMeeting, error),
	successMessage string,
) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("MeetingController." + operation + " requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	meetingID := chi.URLParam(r, constvars.URLParamMeetingID)
	ctrl.Log.Info("MeetingController."+operation+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMeetingIDKey, meetingID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	meeting, err := fn(ctx, meetingID)
	if err != nil {
		ctrl.Log.Error("MeetingController."+operation+" error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, meeting)
}
