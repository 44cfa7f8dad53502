package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/learnbudget/server/internal/common"
)

type errorResponse struct {
	Message string `json:"message"`
}

func respondError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorResponse{Message: msg})
}

// statusFromError maps service-layer sentinel errors to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		return fiber.StatusConflict
	case errors.Is(err, common.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, common.ErrUserNotFound), errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, common.ErrorUnauthorized):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// fail logs the error and writes its mapped status with the error text.
// Internal errors get a generic message instead of the real cause.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	status := statusFromError(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		s.logger.Error(c.Context(), "request failed", "path", c.Path(), "error", err)
		msg = "internal error"
	}
	return respondError(c, status, msg)
}
