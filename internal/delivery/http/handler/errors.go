package handler

import (
	"errors"

	"clarityhire/internal/delivery/http/middleware"
	"clarityhire/internal/pkg/response"
	"clarityhire/internal/usecase"
	ucauth "clarityhire/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const msgValidationFailed = "Validation failed"

// mapUsecaseError translates usecase sentinels into AppErrors for the
// JSON API. Field errors travel in the response data.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, msgValidationFailed, verr.Fields, err)
	}
	var ferr *ucauth.FieldError
	if errors.As(err, &ferr) {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, msgValidationFailed, ferr.Fields, err)
	}

	switch {
	case errors.Is(err, usecase.ErrAuthenticationRequired), errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrUnknownSlug):
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, err)
	case errors.Is(err, usecase.ErrSlugTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Company slug already taken", nil, err)
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Invalid status transition", nil, err)
	case errors.Is(err, usecase.ErrMissingInput), errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrAIUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "AI generation unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func parseUUIDParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func badBody(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
}
