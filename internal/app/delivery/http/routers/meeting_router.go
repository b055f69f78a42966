package routers

import (
	"mdtcare-service/internal/app/delivery/http/controllers"
	"mdtcare-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachMeetingRouter(router chi.Router, middlewares *middlewares.Middlewares, meetingController *controllers.MeetingController) {
	router.With(middlewares.Authenticate).Post("/", meetingController.CreateMeeting)
	router.With(middlewares.Authenticate).Get("/{meeting_id}", meetingController.FindMeetingByID)
	router.With(middlewares.Authenticate).Post("/{meeting_id}/start", meetingController.StartMeeting)
	router.With(middlewares.Authenticate).Post("/{meeting_id}/complete", meetingController.CompleteMeeting)
	router.With(middlewares.Authenticate).Post("/{meeting_id}/cancel", meetingController.CancelMeeting)
	router.With(middlewares.Authenticate).Post("/{meeting_id}/decisions", meetingController.RecordDecision)
	router.With(middlewares.Authenticate).Get("/{meeting_id}/summary", meetingController.GenerateMeetingSummary)
}
