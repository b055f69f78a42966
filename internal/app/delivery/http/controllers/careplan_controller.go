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

type CarePlanController struct {
	Log             *zap.Logger
	CarePlanUsecase contracts.CarePlanUsecase
}

var (
	carePlanControllerInstance *CarePlanController
	onceCarePlanController     sync.Once
)

func NewCarePlanController(logger *zap.Logger, carePlanUsecase contracts.CarePlanUsecase) *CarePlanController {
	onceCarePlanController.Do(func() {
		instance := &CarePlanController{
			Log:             logger,
			CarePlanUsecase: carePlanUsecase,
		}
		carePlanControllerInstance = instance
	})
	return carePlanControllerInstance
}

func (ctrl *CarePlanController) HarmonizeTreatmentPlans(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("CarePlanController.HarmonizeTreatmentPlans requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("CarePlanController.HarmonizeTreatmentPlans called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	clinician, err := clinicianFromContext(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.HarmonizePlans)
	if err := utils.ParseAndValidateBody(r, request); err != nil {
		ctrl.Log.Error("CarePlanController.HarmonizeTreatmentPlans invalid payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	carePlan, err := ctrl.CarePlanUsecase.HarmonizeTreatmentPlans(ctx, request, clinician)
	if err != nil {
		ctrl.Log.Error("CarePlanController.HarmonizeTreatmentPlans error from usecase",
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

	ctrl.Log.Info("CarePlanController.HarmonizeTreatmentPlans succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCarePlanIDKey, carePlan.ID),
		zap.Int(constvars.LoggingCarePlanVersionKey, carePlan.Version),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CarePlanHarmonizedSuccess, carePlan)
}

func (ctrl *CarePlanController) FindCarePlanByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("CarePlanController.FindCarePlanByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	carePlanID := chi.URLParam(r, constvars.URLParamCarePlanID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	carePlan, err := ctrl.CarePlanUsecase.FindCarePlanByID(ctx, carePlanID)
	if err != nil {
		ctrl.Log.Error("CarePlanController.FindCarePlanByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CarePlanFetchedSuccess, carePlan)
}

func (ctrl *CarePlanController) ApproveCarePlan(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("CarePlanController.ApproveCarePlan requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	clinician, err := clinicianFromContext(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.ApproveCarePlan)
	if err := utils.ParseAndValidateBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	carePlanID := chi.URLParam(r, constvars.URLParamCarePlanID)
	ctrl.Log.Info("CarePlanController.ApproveCarePlan called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCarePlanIDKey, carePlanID),
		zap.String(constvars.LoggingClinicianIDKey, clinician.ID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	carePlan, err := ctrl.CarePlanUsecase.ApproveCarePlan(ctx, carePlanID, clinician, request.Comments)
	if err != nil {
		ctrl.Log.Error("CarePlanController.ApproveCarePlan error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CarePlanApprovedSuccess, carePlan)
}

func (ctrl *CarePlanController) CalculateTeamWorkload(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("CarePlanController.CalculateTeamWorkload requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	carePlanID := chi.URLParam(r, constvars.URLParamCarePlanID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	workload, err := ctrl.CarePlanUsecase.CalculateTeamWorkload(ctx, carePlanID)
	if err != nil {
		ctrl.Log.Error("CarePlanController.CalculateTeamWorkload error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TeamWorkloadGetSuccess, workload)
}
