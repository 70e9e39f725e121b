package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/Akhil21232123/hirematrix/internal/handlers"
	"github.com/Akhil21232123/hirematrix/internal/middleware"
	"github.com/Akhil21232123/hirematrix/internal/models"
)

// InterviewRoutes mounts the candidate-facing interview flow. Everything
// beyond registration requires the session token issued at /start.
func InterviewRoutes(router *chi.Mux, jwtSecret string, interviewHandler *handlers.InterviewHandler, runHandler *handlers.RunHandler) {
	router.Route("/api/v1/interview", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.StartInterviewRequest]()).Post("/start", interviewHandler.StartHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(jwtSecret))

			r.Post("/round", interviewHandler.RoundHandler)
			r.Post("/next", interviewHandler.NextRoundHandler)
			r.With(middleware.ValidateRequest[*models.SubmitRoundRequest]()).Post("/submit", interviewHandler.SubmitHandler)
			r.With(middleware.ValidateRequest[*models.AnswerRequest]()).Post("/answer", interviewHandler.AnswerHandler)
			r.With(middleware.ValidateRequest[*models.ValidateAnswerRequest]()).Post("/validate-answer", interviewHandler.ValidateAnswerHandler)
			r.With(middleware.ValidateRequest[*models.BreachRequest]()).Post("/breach", interviewHandler.BreachHandler)
			r.With(middleware.ValidateRequest[*models.RunCodeRequest]()).Post("/run", runHandler.RunCodeHandler)
		})
	})
}
