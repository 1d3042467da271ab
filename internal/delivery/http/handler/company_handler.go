package handler

import (
	"clarityhire/internal/delivery/http/dto"
	"clarityhire/internal/pkg/response"
	"clarityhire/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("", h.List)
	r.Get("/slug-availability", h.SlugAvailability)
	r.Post("/register", h.Register)
	r.Get("/:slug", h.GetBySlug)
}

func (h *CompanyHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListCompanies(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyList(items))
}

func (h *CompanyHandler) SlugAvailability(c fiber.Ctx) error {
	res, err := h.uc.CheckSlug(c.Context(), c.Query("slug"))
	if err != nil {
		return mapUsecaseError(err)
	}
	if res.Suggestions == nil && !res.Available {
		res.Suggestions = []string{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *CompanyHandler) Register(c fiber.Ctx) error {
	var req usecase.RegisterCompanyInput
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	out, err := h.uc.RegisterCompany(c.Context(), req)
	if err != nil {
		return mapUsecaseError(err)
	}

	setSessionCookie(c, out.Tokens)
	data := map[string]any{
		"session":  dto.NewSessionResponse(out.User, out.Tokens),
		"company":  dto.NewCompanyResponse(out.Company),
		"memberId": out.Member.ID,
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, data)
}

func (h *CompanyHandler) GetBySlug(c fiber.Ctx) error {
	co, err := h.uc.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyResponse(co))
}
