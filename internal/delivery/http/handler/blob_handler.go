package handler

import (
	"errors"
	"io"
	"log"

	"clarityhire/internal/delivery/http/middleware"
	"clarityhire/internal/infrastructure/blob"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v3"
)

type BlobHandler struct {
	store  *blob.Store
	logger *log.Logger
}

func NewBlobHandler(store *blob.Store, logger *log.Logger) *BlobHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &BlobHandler{store: store, logger: logger}
}

func (h *BlobHandler) HandleGet(c fiber.Ctx) error {
	key := c.Params("*")
	f, err := h.store.Open(key)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) || errors.Is(err, blob.ErrInvalidKey) {
			return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		h.logger.Printf("[Blob] detect failed | key=%s err=%v", key, err)
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}

	body, err := io.ReadAll(f)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}

	c.Set(fiber.HeaderContentType, mt.String())
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	return c.Status(fiber.StatusOK).Send(body)
}
