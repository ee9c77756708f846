package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/google", handler.GoogleSignIn)
	auth.Post("/guest", handler.GuestSignIn)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Delete("/account", handler.AuthRequired, handler.DeleteAccount)

	onboarding := api.Group("/onboarding", handler.AuthRequired)
	onboarding.Get("", handler.GetOnboarding)
	onboarding.Post("/basics", handler.OnboardingBasics)
	onboarding.Post("/goals", handler.OnboardingGoals)
	onboarding.Post("/document", handler.OnboardingDocument)
	onboarding.Post("/submit", handler.OnboardingSubmit)

	plans := api.Group("/plans", handler.AuthRequired)
	plans.Get("", handler.ListPlans)
	plans.Get("/:id", handler.GetPlan)
	plans.Delete("/:id", handler.DeletePlan)
	plans.Post("/:id/adjust", handler.AdjustPlan)
	plans.Get("/:id/logs", handler.ListWorkoutLogs)
	plans.Post("/:id/logs", handler.CreateWorkoutLog)

	logs := api.Group("/logs", handler.AuthRequired)
	logs.Delete("/:id", handler.DeleteWorkoutLog)

	api.Get("/dashboard", handler.AuthRequired, handler.Dashboard)
}
