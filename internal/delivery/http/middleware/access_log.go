package middleware

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

// Middleware tags every request with a request id and logs one line once the
// handler chain has finished, including who the caller acted as.
func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(RequestIDHeader, rid)

		err := c.Next()

		path := c.Path()
		if m == nil || m.logger == nil || strings.HasPrefix(path, "/health") {
			return err
		}

		status := c.Response().StatusCode()
		var appErr *AppError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			status = appErr.StatusCode
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		case err != nil:
			status = fiber.StatusInternalServerError
		}

		s := SessionFrom(c)
		user, company := "-", "-"
		if s.Authenticated() {
			user = s.UserID.String()
		}
		if s.CompanyID != nil {
			company = s.CompanyID.String()
		}

		m.logger.Printf(
			"[HTTP] access | rid=%s method=%s path=%s status=%d latency=%s ip=%s user_id=%s company_id=%s resp_bytes=%d",
			rid, c.Method(), path, status, time.Since(start), c.IP(), user, company, len(c.Response().Body()),
		)
		return err
	}
}
