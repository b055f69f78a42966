package routers

import (
	"fmt"
	"mdtcare-service/internal/app/config"
	"mdtcare-service/internal/app/delivery/http/controllers"
	"mdtcare-service/internal/app/delivery/http/middlewares"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	meetingController *controllers.MeetingController,
	planController *controllers.PlanController,
	carePlanController *controllers.CarePlanController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	// Clients that keep exceeding the ceiling get temporarily blocked.
	router.Use(middlewares.RateLimiter.Limit)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/meetings", func(r chi.Router) {
				attachMeetingRouter(r, middlewares, meetingController)
			})

			r.Route("/plans", func(r chi.Router) {
				attachPlanRouter(r, middlewares, planController)
			})

			r.Route("/care-plans", func(r chi.Router) {
				attachCarePlanRouter(r, middlewares, carePlanController)
			})
		})
	})
}
