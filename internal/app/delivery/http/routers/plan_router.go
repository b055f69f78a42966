package routers

import (
	"mdtcare-service/internal/app/delivery/http/controllers"
	"mdtcare-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPlanRouter(router chi.Router, middlewares *middlewares.Middlewares, planController *controllers.PlanController) {
	router.With(middlewares.Authenticate).Post("/", planController.CreateSpecialtyPlan)
	router.With(middlewares.Authenticate).Get("/", planController.FindPlans)
	// The static route must attach before the {plan_id} wildcard.
	router.With(middlewares.Authenticate).Get("/pending", planController.GetPendingApprovals)
	router.With(middlewares.Authenticate).Get("/{plan_id}", planController.FindPlanByID)
	router.With(middlewares.Authenticate).Post("/{plan_id}/submit", planController.SubmitPlan)
	router.With(middlewares.Authenticate).Post("/{plan_id}/approve", planController.ApprovePlan)
	router.With(middlewares.Authenticate).Post("/{plan_id}/reject", planController.RejectPlan)
	router.With(middlewares.Authenticate).Post("/{plan_id}/revision", planController.RequestRevision)
	router.With(middlewares.Authenticate).Post("/{plan_id}/resubmit", planController.ResubmitPlan)
}
