package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := signupInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	userID, err := handler.accounts.Register(c.UserContext(), input.Name, input.Email, input.Password)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered",
		"user_id": userID,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	userID, err := handler.accounts.Login(c.UserContext(), credentials.Email, credentials.Password)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user_id": userID,
	})
}
