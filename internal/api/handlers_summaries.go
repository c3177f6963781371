package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) AISummary(c *fiber.Ctx) error {
	userID, err := optionalUserIDQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	summary, err := handler.summaries.Summarize(c.UserContext(), userID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(summary)
}
