package handler

import (
	"context"
	"time"

	"clarityhire/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness plus the state of each dependency. A failing
// cache degrades the status but does not fail the check.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	data := map[string]string{"database": "ok", "cache": "ok"}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			data["database"] = "down"
			status = fiber.StatusServiceUnavailable
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			data["cache"] = "degraded"
		}
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "unhealthy", data)
	}
	return response.Success(c, status, response.MessageOK, data)
}
