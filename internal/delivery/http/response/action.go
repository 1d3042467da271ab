// Package response holds the action-result envelope used by form posts.
package response

import "github.com/gofiber/fiber/v3"

// ActionResult mirrors what form actions return to the page that posted them.
// Field errors are only set for validation failures.
type ActionResult struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func ActionOK(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ActionResult{Success: true, Message: message})
}

func ActionFailed(c fiber.Ctx, status int, message string, fields map[string]string) error {
	return c.Status(status).JSON(ActionResult{Success: false, Error: message, Fields: fields})
}
