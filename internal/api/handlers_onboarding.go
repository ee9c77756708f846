package api

import (
	"github.com/activelife/activelife/internal/models"
	"github.com/gofiber/fiber/v2"
)

type onboardingView struct {
	State   string                `json:"state"`
	Data    models.OnboardingData `json:"data"`
	Touched []string              `json:"touched"`
}

func buildOnboardingView(draft models.OnboardingDraft) onboardingView {
	touched := draft.Touched
	if touched == nil {
		touched = []string{}
	}
	return onboardingView{
		State:   draft.State,
		Data:    draft.Data,
		Touched: touched,
	}
}

func (handler *Handler) GetOnboarding(c *fiber.Ctx) error {
	handler.ensureDependencies()

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	draft, err := handler.flowService.Draft(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(buildOnboardingView(draft))
}

func (handler *Handler) OnboardingBasics(c *fiber.Ctx) error {
	handler.ensureDependencies()

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := models.OnboardingData{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	draft, err := handler.flowService.SubmitBasics(user.ID, input)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(buildOnboardingView(draft))
}

func (handler *Handler) OnboardingGoals(c *fiber.Ctx) error {
	handler.ensureDependencies()

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := goalsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	draft, err := handler.flowService.SubmitGoals(user.ID, input.FitnessGoals)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(buildOnboardingView(draft))
}

func (handler *Handler) OnboardingDocument(c *fiber.Ctx) error {
	handler.ensureDependencies()

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := documentInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	draft, highlights, err := handler.flowService.AttachDocument(c.Context(), user.ID, input.Document)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"draft":      buildOnboardingView(draft),
		"highlights": highlights,
	})
}

func (handler *Handler) OnboardingSubmit(c *fiber.Ctx) error {
	handler.ensureDependencies()

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	record, err := handler.flowService.Submit(c.Context(), user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"plan": buildPlanView(record)})
}
