package app

import (
	"fmt"
	"strings"

	"clarityhire/internal/config"
	"clarityhire/internal/delivery/http/handler"
	"clarityhire/internal/delivery/http/middleware"
	"clarityhire/internal/delivery/http/routes"
	v1 "clarityhire/internal/delivery/http/routes/v1"
	"clarityhire/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type App struct {
	Fiber *fiber.App
}

const maxUploadBody = 6 * 1024 * 1024

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: maxUploadBody,
	})

	session := middleware.NewSessionMiddleware(c.JWT)
	registerGlobalMiddleware(f, c, session)
	registerRoutes(f, c, session)

	return &App{Fiber: f}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container, session *middleware.SessionMiddleware) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(c.Logger)
	app.Use(errMw.Middleware())

	accessLog := middleware.NewAccessLogMiddleware(c.Logger)
	app.Use(accessLog.Middleware())

	app.Use(session.Optional())

	tenant := middleware.NewTenantMiddleware(c.Companies, c.Logger)
	app.Use(tenant.Middleware())
}

func registerRoutes(app *fiber.App, c *Container, session *middleware.SessionMiddleware) {
	if app == nil {
		return
	}

	wsCompany := func(ctx fiber.Ctx) (uuid.UUID, bool) {
		id, err := middleware.SessionFrom(ctx).RecruiterCompany()
		return id, err == nil
	}

	registry := routes.NewRegistry(routes.Options{
		Health:  handler.NewHealthHandler(c.DB, c.Cache),
		Blobs:   handler.NewBlobHandler(c.Blobs, c.Logger),
		Pages:   handler.NewPageHandler(c.Companies, c.Jobs, c.Applications),
		WS:      ws.NewHandler(c.Hub, wsCompany, c.Logger),
		Session: session,
		V1: v1.Handlers{
			Auth:        handler.NewAuthHandler(c.Auth),
			Company:     handler.NewCompanyHandler(c.Companies),
			Question:    handler.NewQuestionHandler(c.Questions, c.Logger),
			Job:         handler.NewJobHandler(c.Jobs, c.Applications),
			JobAssist:   handler.NewJobAssistHandler(c.JobAssist),
			Application: handler.NewApplicationHandler(c.Applications, c.Logger),
		},
	})
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
