package handler

import (
	"clarityhire/internal/delivery/http/dto"
	"clarityhire/internal/delivery/http/middleware"
	"clarityhire/internal/pkg/response"
	"clarityhire/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	jobs         usecase.JobUsecase
	applications usecase.ApplicationUsecase
}

type statusRequest struct {
	Status string `json:"status"`
}

func NewJobHandler(jobs usecase.JobUsecase, applications usecase.ApplicationUsecase) *JobHandler {
	return &JobHandler{jobs: jobs, applications: applications}
}

func (h *JobHandler) HandleCreate(c fiber.Ctx) error {
	var req usecase.JobInput
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	j, err := h.jobs.Create(c.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobHandler) HandleUpdate(c fiber.Ctx) error {
	jobID, err := parseUUIDParam(c, "jobId")
	if err != nil {
		return err
	}
	var req usecase.JobInput
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	j, err := h.jobs.Update(c.Context(), middleware.SessionFrom(c), jobID, req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobHandler) HandleChangeStatus(c fiber.Ctx) error {
	jobID, err := parseUUIDParam(c, "jobId")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	j, err := h.jobs.ChangeStatus(c.Context(), middleware.SessionFrom(c), jobID, req.Status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobHandler) HandleGet(c fiber.Ctx) error {
	jobID, err := parseUUIDParam(c, "jobId")
	if err != nil {
		return err
	}

	details, err := h.jobs.Get(c.Context(), middleware.SessionFrom(c), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	data := map[string]any{
		"job":     dto.NewJobResponse(details.Job),
		"company": dto.NewCompanyResponse(details.Company),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *JobHandler) HandleApplicationForm(c fiber.Ctx) error {
	jobID, err := parseUUIDParam(c, "jobId")
	if err != nil {
		return err
	}

	f, err := h.jobs.ApplicationForm(c.Context(), middleware.SessionFrom(c), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	data := map[string]any{
		"job":     dto.NewJobResponse(f.Job),
		"company": dto.NewCompanyResponse(f.Company),
		"resumes": dto.NewResumeList(f.Resumes),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *JobHandler) HandleListApplications(c fiber.Ctx) error {
	jobID, err := parseUUIDParam(c, "jobId")
	if err != nil {
		return err
	}

	items, err := h.applications.ListForJob(c.Context(), middleware.SessionFrom(c), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationList(items))
}
