package controllers

import (
	"context"
	"mdtcare-service/internal/app/contracts"
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

type PlanController struct {
	Log         *zap.Logger
	PlanUsecase contracts.PlanUsecase
}

var (
	planControllerInstance *PlanController
	oncePlanController     sync.Once
)

func NewPlanController(logger *zap.Logger, planUsecase contracts.PlanUsecase) *PlanController {
	oncePlanController.Do(func() {
		instance := &PlanController{
			Log:         logger,
			PlanUsecase: planUsecase,
		}
		planControllerInstance = instance
	})
	return planControllerInstance
}

func (ctrl *PlanController) CreateSpecialtyPlan(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PlanController.CreateSpecialtyPlan requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("PlanController.CreateSpecialtyPlan called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	clinician, err := clinicianFromContext(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateSpecialtyPlan)
	if err := utils.ParseAndValidateBody(r, request); err != nil {
		ctrl.Log.Error("PlanController.CreateSpecialtyPlan invalid payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.SubmittedByID = clinician.ID
	request.SubmittedByName = clinician.Name

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plan, err := ctrl.PlanUsecase.CreateSpecialtyPlan(ctx, request)
	if err != nil {
		ctrl.Log.Error("PlanController.CreateSpecialtyPlan error from usecase",
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

	ctrl.Log.Info("PlanController.CreateSpecialtyPlan succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPlanIDKey, plan.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PlanCreatedSuccess, plan)
}

func (ctrl *PlanController) SubmitPlan(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PlanController.SubmitPlan requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	clinician, err := clinicianFromContext(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	planID := chi.URLParam(r, constvars.URLParamPlanID)
	ctrl.Log.Info("PlanController.SubmitPlan called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPlanIDKey, planID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plan, err := ctrl.PlanUsecase.SubmitPlan(ctx, planID, clinician)
	if err != nil {
		ctrl.Log.Error("PlanController.SubmitPlan error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PlanSubmittedSuccess, plan)
}

func (ctrl *PlanController) FindPlanByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PlanController.FindPlanByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	planID := chi.URLParam(r, constvars.URLParamPlanID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plan, err := ctrl.PlanUsecase.FindPlanByID(ctx, planID)
	if err != nil {
		ctrl.Log.Error("PlanController.FindPlanByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PlanFetchedSuccess, plan)
}

func (ctrl *PlanController) FindPlans(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PlanController.FindPlans requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	patientID := r.URL.Query().Get("patient_id")
	meetingID := r.URL.Query().Get("meeting_id")
	if patientID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "patient_id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plans, err := ctrl.PlanUsecase.FindPlans(ctx, patientID, meetingID)
	if err != nil {
		ctrl.Log.Error("PlanController.FindPlans error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PlanFetchedSuccess, plans)
}

func (ctrl *PlanController) ApprovePlan(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PlanController.ApprovePlan requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	clinician, err := clinicianFromContext(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	planID := chi.URLParam(r, constvars.URLParamPlanID)
	ctrl.Log.Info("PlanController.ApprovePlan called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPlanIDKey, planID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plan, err := ctrl.PlanUsecase.ApprovePlan(ctx, planID, clinician)
	if err != nil {
		ctrl.Log.Error("PlanController.ApprovePlan error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PlanApprovedSuccess, plan)
}

func (ctrl *PlanController) RejectPlan(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PlanController.RejectPlan requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	clinician, err := clinicianFromContext(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.RejectPlan)
	if err := utils.ParseAndValidateBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	planID := chi.URLParam(r, constvars.URLParamPlanID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plan, err := ctrl.PlanUsecase.RejectPlan(ctx, planID, clinician, request.Reason)
	if err != nil {
		ctrl.Log.Error("PlanController.RejectPlan error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PlanRejectedSuccess, plan)
}

func (ctrl *PlanController) RequestRevision(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PlanController.RequestRevision requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	clinician, err := clinicianFromContext(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.RequestRevision)
	if err := utils.ParseAndValidateBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	planID := chi.URLParam(r, constvars.URLParamPlanID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plan, err := ctrl.PlanUsecase.RequestRevision(ctx, planID, clinician, request.Notes)
	if err != nil {
		ctrl.Log.Error("PlanController.RequestRevision error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PlanRevisionRequestSuccess, plan)
}

func (ctrl *PlanController) ResubmitPlan(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PlanController.ResubmitPlan requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	clinician, err := clinicianFromContext(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.ResubmitPlan)
	if err := utils.ParseAndValidateBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	planID := chi.URLParam(r, constvars.URLParamPlanID)
	ctrl.Log.Info("PlanController.ResubmitPlan called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPlanIDKey, planID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plan, err := ctrl.PlanUsecase.ResubmitPlan(ctx, planID, clinician, request)
	if err != nil {
		ctrl.Log.Error("PlanController.ResubmitPlan error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PlanResubmittedSuccess, plan)
}

func (ctrl *PlanController) GetPendingApprovals(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PlanController.GetPendingApprovals requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	clinician, err := clinicianFromContext(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	consultantID := r.URL.Query().Get("consultant_id")
	if consultantID == "" {
		consultantID = clinician.ID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plans, err := ctrl.PlanUsecase.GetPendingApprovals(ctx, consultantID)
	if err != nil {
		ctrl.Log.Error("PlanController.GetPendingApprovals error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PendingApprovalsGetSuccess, plans)
}
