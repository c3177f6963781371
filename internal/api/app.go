package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewApp builds the fiber app with middleware, routes and JSON error bodies.
func NewApp(handler *Handler, bodyLimit int) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Vytal",
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
		ErrorHandler:          handler.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		Output: handler.log.Writer(),
	}))
	app.Use(compress.New())
	app.Use(cors.New())

	RegisterRoutes(app, handler)
	return app
}
