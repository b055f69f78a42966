package routers

import (
	"mdtcare-service/internal/app/delivery/http/controllers"
	"mdtcare-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachCarePlanRouter(router chi.Router, middlewares *middlewares.Middlewares, carePlanController *controllers.CarePlanController) {
	router.With(middlewares.Authenticate).Post("/harmonize", carePlanController.HarmonizeTreatmentPlans)
	router.With(middlewares.Authenticate).Get("/{care_plan_id}", carePlanController.FindCarePlanByID)
	router.With(middlewares.Authenticate).Post("/{care_plan_id}/approve", carePlanController.ApproveCarePlan)
	router.With(middlewares.Authenticate).Get("/{care_plan_id}/workload", carePlanController.CalculateTeamWorkload)
}
