package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os/signal"
	"syscall"
	"time"

	"clarityhire/internal/app"
	"clarityhire/internal/config"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Server] reading .env failed | err=%v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Server] config: %v", err)
	}

	server, cleanup, err := app.Bootstrap(cfg)
	if err != nil {
		log.Fatalf("[Server] bootstrap: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Printf("[Server] cleanup failed | err=%v", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Fatalf("[Server] invalid HTTP_PORT: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] listening | addr=%s env=%s", addr, cfg.App.Environment)
		errCh <- server.Fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Printf("[Server] stopped | err=%v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("[Server] shutdown failed | err=%v", err)
		}
	}
}
