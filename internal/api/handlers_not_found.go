package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}

// ErrorHandler renders errors that escape a handler, including fiber's own
// 405/413/5xx, as {"error": ...}.
func (handler *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code >= fiber.StatusInternalServerError {
			handler.log.WithError(err).WithField("path", c.Path()).Error("request failed")
		}
		return apiError(c, fiberErr.Code, fiberErr.Message)
	}

	handler.log.WithError(err).WithField("path", c.Path()).Error("request failed")
	return apiError(c, fiber.StatusInternalServerError, "Failed to process request")
}
