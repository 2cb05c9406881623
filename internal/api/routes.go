package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Get("/me", handler.AuthRequired, handler.Me)

	questionnaire := api.Group("/questionnaire", handler.AuthRequired)
	questionnaire.Get("/options", handler.QuestionnaireOptions)
	questionnaire.Post("", handler.SubmitQuestionnaire)

	api.Get("/plan", handler.AuthRequired, handler.GetPlan)

	progress := api.Group("/progress", handler.AuthRequired)
	progress.Get("", handler.GetProgress)
	progress.Post("", handler.UpdateWeight)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
