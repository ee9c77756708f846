package api

import (
	"strconv"

	"github.com/activelife/activelife/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) CreateWorkoutLog(c *fiber.Ctx) error {
	handler.ensureDependencies()

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := services.WorkoutLogInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	input.PlanID = c.Params("id")

	log, err := handler.logService.LogWorkout(user.ID, input)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"log": log})
}

func (handler *Handler) ListWorkoutLogs(c *fiber.Ctx) error {
	handler.ensureDependencies()

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	logs, err := handler.logService.ListByPlan(user.ID, c.Params("id"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"logs": logs})
}

func (handler *Handler) DeleteWorkoutLog(c *fiber.Ctx) error {
	handler.ensureDependencies()

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	logID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid log id")
	}

	if err := handler.logService.DeleteLog(user.ID, uint(logID)); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
