package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListPlans(c *fiber.Ctx) error {
	handler.ensureDependencies()

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	records, err := handler.planService.ListPlans(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"plans": buildPlanSummaries(records)})
}

func (handler *Handler) GetPlan(c *fiber.Ctx) error {
	handler.ensureDependencies()

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	record, err := handler.planService.GetPlan(user.ID, c.Params("id"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"plan": buildPlanView(record)})
}

func (handler *Handler) DeletePlan(c *fiber.Ctx) error {
	handler.ensureDependencies()

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.planService.DeletePlan(user.ID, c.Params("id")); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) AdjustPlan(c *fiber.Ctx) error {
	handler.ensureDependencies()

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := adjustPlanInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	record, explanation, err := handler.planService.AdjustPlan(c.Context(), user.ID, c.Params("id"), input.UserFeedback)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"plan":        buildPlanView(record),
		"explanation": explanation,
	})
}
