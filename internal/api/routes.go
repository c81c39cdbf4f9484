package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/health", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Put("/location", handler.AuthRequired, handler.UpdateLocation)
	auth.Delete("/account", handler.AuthRequired, handler.DeleteAccount)

	symptoms := api.Group("/symptoms", handler.AuthRequired)
	symptoms.Get("", handler.GetSymptoms)
	symptoms.Post("/entry", handler.SubmitEntry)
	symptoms.Get("/history", handler.GetHistory)
	symptoms.Get("/history/:date", handler.GetHistoryForDate)
	symptoms.Get("/geographic", handler.GetGeographic)
}
