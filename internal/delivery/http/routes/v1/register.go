package v1

import (
	"clarityhire/internal/delivery/http/handler"
	"clarityhire/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups everything mounted under /api/v1.
type Handlers struct {
	Auth        *handler.AuthHandler
	Company     *handler.CompanyHandler
	Question    *handler.QuestionHandler
	Job         *handler.JobHandler
	JobAssist   *handler.JobAssistHandler
	Application *handler.ApplicationHandler
}

func Register(r fiber.Router, h Handlers, session *middleware.SessionMiddleware) {
	if r == nil {
		return
	}

	authed := session.Required()
	recruiter := middleware.RequireRecruiter()

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
		r.Get("/me", authed, h.Auth.HandleMe)
	}
	if h.Company != nil {
		h.Company.RegisterRoutes(r.Group("/companies"))
	}
	if h.Question != nil {
		r.Post("/questions", authed, recruiter, h.Question.HandleCreate)
	}
	if h.JobAssist != nil {
		h.JobAssist.RegisterRoutes(r.Group("/ai/jobs", authed, recruiter))
	}

	RegisterJobs(r.Group("/jobs"), h, authed)

	if h.Application != nil {
		r.Post("/applications", h.Application.HandleSubmit)
		r.Get("/me/resumes", authed, h.Application.HandleListResumes)
	}
}
