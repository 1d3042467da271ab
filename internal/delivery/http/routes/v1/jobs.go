package v1

import (
	"clarityhire/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

func RegisterJobs(r fiber.Router, h Handlers, authed fiber.Handler) {
	if r == nil || h.Job == nil {
		return
	}

	recruiter := middleware.RequireRecruiter()

	r.Post("", authed, recruiter, h.Job.HandleCreate)
	r.Get("/:jobId", h.Job.HandleGet)
	r.Put("/:jobId", authed, recruiter, h.Job.HandleUpdate)
	r.Patch("/:jobId/status", authed, recruiter, h.Job.HandleChangeStatus)
	r.Get("/:jobId/applications", authed, recruiter, h.Job.HandleListApplications)
	r.Get("/:jobId/application-form", authed, h.Job.HandleApplicationForm)

	if h.Application != nil {
		r.Post("/:jobId/application/validate", authed, h.Application.HandleValidateDraft)
	}
}
