package handler

import (
	"log"

	"clarityhire/internal/delivery/http/dto"
	"clarityhire/internal/delivery/http/middleware"
	"clarityhire/internal/pkg/response"
	"clarityhire/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type QuestionHandler struct {
	uc     usecase.QuestionUsecase
	logger *log.Logger
}

func NewQuestionHandler(uc usecase.QuestionUsecase, logger *log.Logger) *QuestionHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &QuestionHandler{uc: uc, logger: logger}
}

// HandleListByCompany serves the catalog as a bare JSON array. Any failure,
// including a malformed id, is a plain-text 500.
func (h *QuestionHandler) HandleListByCompany(c fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("companyId"))
	if err != nil {
		h.logger.Printf("[Questions] invalid company id | company_id=%q err=%v", c.Params("companyId"), err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	items, err := h.uc.ListByCompany(c.Context(), companyID)
	if err != nil {
		h.logger.Printf("[Questions] list failed | company_id=%s err=%v", companyID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewQuestionList(items))
}

func (h *QuestionHandler) HandleCreate(c fiber.Ctx) error {
	var req usecase.CreateQuestionInput
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	q, err := h.uc.Create(c.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewQuestionResponse(q))
}
