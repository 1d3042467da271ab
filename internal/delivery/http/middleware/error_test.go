package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
)

func TestErrorMiddleware_NormalizesErrors(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	app.Get("/invalid", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusUnprocessableEntity, "Validation failed", map[string]string{"title": "required"}, nil)
	})
	app.Get("/boom", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password leaked", nil, errors.New("secret"))
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("oops")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/invalid", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	var body struct {
		Status  int               `json:"status"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Validation failed", body.Message)
	require.Equal(t, "required", body.Data["title"])

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	require.NotContains(t, string(raw), "leaked")

	resp, err = app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
