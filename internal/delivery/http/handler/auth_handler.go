package handler

import (
	"errors"

	"clarityhire/internal/delivery/http/dto"
	"clarityhire/internal/delivery/http/middleware"
	"clarityhire/internal/pkg/response"
	"clarityhire/internal/usecase"
	ucauth "clarityhire/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req ucauth.RegisterInput
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	usr, tokens, err := h.uc.Register(c.Context(), req)
	if err != nil {
		return mapUsecaseError(err)
	}

	setSessionCookie(c, tokens)
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewSessionResponse(usr, tokens))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	usr, tokens, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapUsecaseError(err)
	}

	setSessionCookie(c, tokens)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionResponse(usr, tokens))
}

// Refresh accepts the refresh token as a bearer header or in the body.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok {
		var req refreshRequest
		if err := c.Bind().Body(&req); err == nil && req.RefreshToken != "" {
			tok, ok = req.RefreshToken, true
		}
	}
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	tokens, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRefreshTokenExpired):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
		case errors.Is(err, usecase.ErrInvalidRefreshToken):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		}
		return mapUsecaseError(err)
	}

	setSessionCookie(c, tokens)
	data := map[string]any{
		"accessToken":     tokens.AccessToken,
		"refreshToken":    tokens.RefreshToken,
		"isRecruiter":     tokens.Identity.IsRecruiter,
		"activeCompanyId": tokens.Identity.ActiveCompanyID,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *AuthHandler) HandleMe(c fiber.Ctx) error {
	p, err := h.uc.Me(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func setSessionCookie(c fiber.Ctx, tokens usecase.Tokens) {
	if tokens.AccessToken == "" {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tokens.AccessToken,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
