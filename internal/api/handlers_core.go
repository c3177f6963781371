package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Home(c *fiber.Ctx) error {
	return c.SendString("Vytal Backend Running!")
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
