package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AddDiaryEntry(c *fiber.Ctx) error {
	payload := diaryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := handler.diary.AddEntry(c.UserContext(), payload.toInput())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) ListDiaryEntries(c *fiber.Ctx) error {
	userID, err := optionalUserIDQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	return handler.sendDiaryEntries(c, userID)
}

func (handler *Handler) ListUserDiaryEntries(c *fiber.Ctx) error {
	userID, err := parseUserID(c.Params("user_id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	return handler.sendDiaryEntries(c, userID)
}

func (handler *Handler) sendDiaryEntries(c *fiber.Ctx, userID *uint) error {
	entries, err := handler.diary.ListEntries(c.UserContext(), userID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entries)
}

func (handler *Handler) LatestDiaryEntry(c *fiber.Ctx) error {
	userID, err := optionalUserIDQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	entry, err := handler.diary.LatestEntry(c.UserContext(), userID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) DiaryAnalysis(c *fiber.Ctx) error {
	userID, err := parseUserID(c.Params("user_id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	analysis, err := handler.diary.Analyze(c.UserContext(), *userID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(analysis)
}
