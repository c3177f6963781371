package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shamaiem10/Vytal/internal/services"
)

var errInvalidUserID = errors.New("invalid user_id")

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrMissingFile):
		return apiError(c, fiber.StatusBadRequest, "No file uploaded")
	case errors.Is(err, services.ErrDuplicateEmail):
		return apiError(c, fiber.StatusBadRequest, "Email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrUserNotFound):
		return apiError(c, fiber.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, "No diary entries found")
	case errors.Is(err, services.ErrNoData):
		return apiError(c, fiber.StatusNotFound, "No diary data available")
	case errors.Is(err, services.ErrExtractionFailed):
		handler.log.WithError(err).Warn("prescription text extraction failed")
		return apiError(c, fiber.StatusBadGateway, "Could not extract text from image")
	case errors.Is(err, services.ErrUpstream):
		handler.log.WithError(err).Error("language model call failed")
		return apiError(c, fiber.StatusBadGateway, "AI service unavailable")
	default:
		handler.log.WithError(err).WithField("path", c.Path()).Error("request failed")
		return apiError(c, fiber.StatusInternalServerError, "Failed to process request")
	}
}

// optionalUserIDQuery reads ?user_id=; an absent or empty value means the
// whole diary.
func optionalUserIDQuery(c *fiber.Ctx) (*uint, error) {
	raw := strings.TrimSpace(c.Query("user_id"))
	if raw == "" {
		return nil, nil
	}
	return parseUserID(raw)
}

func parseUserID(raw string) (*uint, error) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || parsed == 0 {
		return nil, errInvalidUserID
	}
	userID := uint(parsed)
	return &userID, nil
}
