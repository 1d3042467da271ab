package handler

import (
	"clarityhire/internal/delivery/http/middleware"
	"clarityhire/internal/pkg/response"
	"clarityhire/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobAssistHandler struct {
	uc usecase.JobAssistUsecase
}

func NewJobAssistHandler(uc usecase.JobAssistUsecase) *JobAssistHandler {
	return &JobAssistHandler{uc: uc}
}

func (h *JobAssistHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/summary", h.GenerateSummary)
	r.Post("/list", h.GenerateList)
}

func (h *JobAssistHandler) GenerateSummary(c fiber.Ctx) error {
	var req usecase.GenerateSummaryInput
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	text, err := h.uc.GenerateSummary(c.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]string{"summary": text})
}

func (h *JobAssistHandler) GenerateList(c fiber.Ctx) error {
	var req usecase.GenerateListInput
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	items, err := h.uc.GenerateList(c.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"items": items})
}
