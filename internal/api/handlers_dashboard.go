package api

import (
	"github.com/gofiber/fiber/v2"
)

// Dashboard summarizes the newest plan and the last week of logged
// workouts.
func (handler *Handler) Dashboard(c *fiber.Ctx) error {
	handler.ensureDependencies()

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	records, err := handler.planService.ListPlans(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	summary, err := handler.logService.WeekSummary(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	payload := fiber.Map{
		"plans": buildPlanSummaries(records),
		"week":  summary,
	}
	if len(records) > 0 {
		payload["latestPlan"] = buildPlanView(records[len(records)-1])
	}
	return c.JSON(payload)
}
