package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/", handler.Home)
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api")
	api.Post("/users", handler.Register)
	api.Post("/login", handler.Login)

	diary := api.Group("/diary")
	diary.Post("", handler.AddDiaryEntry)
	diary.Get("", handler.ListDiaryEntries)
	diary.Get("/latest", handler.LatestDiaryEntry)
	diary.Get("/analysis/:user_id<int>", handler.DiaryAnalysis)
	diary.Get("/:user_id<int>", handler.ListUserDiaryEntries)

	api.Get("/summaries/ai", handler.AISummary)

	prescriptions := api.Group("/prescriptions")
	prescriptions.Get("", handler.ListPrescriptions)
	prescriptions.Post("/upload", handler.UploadPrescription)

	app.Use(handler.NotFound)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
