package routes

import (
	"clarityhire/internal/delivery/http/handler"
	"clarityhire/internal/delivery/http/middleware"
	v1 "clarityhire/internal/delivery/http/routes/v1"
	"clarityhire/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health  *handler.HealthHandler
	blobs   *handler.BlobHandler
	pages   *handler.PageHandler
	ws      *ws.Handler
	v1      v1.Handlers
	session *middleware.SessionMiddleware
}

type Options struct {
	Health  *handler.HealthHandler
	Blobs   *handler.BlobHandler
	Pages   *handler.PageHandler
	WS      *ws.Handler
	V1      v1.Handlers
	Session *middleware.SessionMiddleware
}

func NewRegistry(opts Options) *Registry {
	return &Registry{
		health:  opts.Health,
		blobs:   opts.Blobs,
		pages:   opts.Pages,
		ws:      opts.WS,
		v1:      opts.V1,
		session: opts.Session,
	}
}

// Register mounts every route. Page routes go last because their leading
// :companySlug parameter would otherwise shadow the fixed prefixes.
func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerBlobs(app)
	r.registerAPI(app)
	r.registerWS(app)
	r.registerPages(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerBlobs(app *fiber.App) {
	if r.blobs != nil {
		app.Get("/blobs/*", r.blobs.HandleGet)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	if r.v1.Question != nil {
		api.Get("/company/:companyId/questions", r.v1.Question.HandleListByCompany)
	}
	RegisterV1(api.Group("/v1"), r.v1, r.session)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws == nil {
		return
	}
	app.Get("/ws/recruiter", r.session.Required(), middleware.RequireRecruiter(), r.ws.HandleRecruiterWS)
}

func (r *Registry) registerPages(app *fiber.App) {
	if r.pages == nil {
		return
	}

	authed := r.session.Required()
	app.Get("/:companySlug/available-jobs", r.pages.HandleAvailableJobs)
	app.Get("/:companySlug/:memberId/dashboard", authed, r.pages.HandleDashboard)
	app.Get("/:companySlug/:memberId/manage-jobs", authed, r.pages.HandleManageJobs)
	app.Get("/:companySlug/:jobId", r.pages.HandleJobDetails)
}
