package app

import (
	"context"
	"log"
	"os"
	"time"

	"clarityhire/internal/config"
	"clarityhire/internal/database"
	dbpostgres "clarityhire/internal/database/postgres"
	"clarityhire/internal/infrastructure/ai"
	"clarityhire/internal/infrastructure/blob"
	"clarityhire/internal/infrastructure/cache"
	"clarityhire/internal/pkg/jwt"
	"clarityhire/internal/repository"
	"clarityhire/internal/usecase"
	"clarityhire/internal/ws"
)

// Container owns the process-wide handles. They are created once and shared
// by every request.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Blobs *blob.Store
	AI    *ai.Generator
	JWT   jwt.Service
	Hub   *ws.Hub

	Auth         *usecase.Auth
	Companies    *usecase.Companies
	Questions    *usecase.Questions
	Jobs         *usecase.Jobs
	JobAssist    *usecase.JobAssist
	Applications *usecase.Applications

	stopHub context.CancelFunc
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	blobs, err := blob.NewDiskStore(cfg.Blob.Dir, cfg.Blob.PublicURL)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	gen, err := ai.New(ctx, cfg.AI, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if !gen.Enabled() {
		logger.Printf("[AI] GEMINI_API_KEY not set, job assistance disabled")
	}

	c := Assemble(cfg, db, cache.NewRedis(cfg.Redis, logger), blobs, gen, logger)
	return c, nil
}

// Assemble wires repositories, usecases and the websocket hub around
// already-open handles and starts the hub.
func Assemble(cfg config.Config, db database.DB, redis *cache.Redis, blobs *blob.Store, gen *ai.Generator, logger *log.Logger) *Container {
	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redis,
		Blobs:  blobs,
		AI:     gen,
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
		Hub: ws.NewHub(logger),
	}

	hubCtx, stop := context.WithCancel(context.Background())
	c.stopHub = stop
	go c.Hub.Run(hubCtx)

	c.wireUsecases()
	return c
}

func (c *Container) wireUsecases() {
	users := repository.NewPostgresUserRepository(c.DB)
	companies := repository.NewPostgresCompanyRepository(c.DB)
	questions := repository.NewPostgresQuestionRepository(c.DB)
	jobs := repository.NewPostgresJobRepository(c.DB)
	resumes := repository.NewPostgresResumeRepository(c.DB)
	applications := repository.NewPostgresApplicationRepository(c.DB)

	c.Auth = usecase.NewAuthUsecase(users, companies, c.JWT)
	c.Companies = usecase.NewCompanyUsecase(c.DB, users, companies, c.Auth, c.Cache, c.Logger)
	c.Questions = usecase.NewQuestionUsecase(questions, c.Cache, c.Logger)
	c.Jobs = usecase.NewJobUsecase(c.DB, jobs, questions, companies, resumes, c.Cache, c.Logger)
	c.JobAssist = usecase.NewJobAssistUsecase(c.AI, c.Logger)
	c.Applications = usecase.NewApplicationUsecase(c.DB, jobs, resumes, applications, c.Blobs, c.Hub, c.Logger)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopHub != nil {
		c.stopHub()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
