package routes

import (
	"clarityhire/internal/delivery/http/middleware"
	v1 "clarityhire/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, h v1.Handlers, session *middleware.SessionMiddleware) {
	if r == nil {
		return
	}

	v1.Register(r, h, session)
}
