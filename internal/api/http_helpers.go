package api

import (
	"errors"

	"github.com/activelife/activelife/internal/db"
	"github.com/activelife/activelife/internal/identity"
	"github.com/activelife/activelife/internal/planner"
	"github.com/activelife/activelife/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondServiceError maps typed service failures onto HTTP responses.
// Recoverable validation problems carry a per-field map; corrupted state and
// missing wizard steps carry a redirect so the client can restart onboarding.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
	case errors.Is(err, services.ErrAuthCredentialsInvalid), errors.Is(err, identity.ErrTokenInvalid):
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "password must be at least 8 characters with upper, lower and digit")
	case errors.Is(err, services.ErrEmailTaken):
		return apiError(c, fiber.StatusConflict, "email already registered")
	case errors.Is(err, services.ErrOnboardingStepRequired):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":    "complete earlier onboarding steps first",
			"redirect": "/onboarding",
		})
	case errors.Is(err, db.ErrStateCorrupted):
		handler.logger.Warn("stored state corrupted", zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":    "stored data could not be read, please start over",
			"redirect": "/onboarding",
		})
	case errors.Is(err, db.ErrPlanNotFound), errors.Is(err, db.ErrDraftNotFound):
		return apiError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrFlowTransition):
		return apiError(c, fiber.StatusConflict, "onboarding is not at that step")
	case errors.Is(err, planner.ErrPlanFormatIncompatible):
		return apiError(c, fiber.StatusConflict, "this plan format does not support adjustment, create a new plan instead")
	case errors.Is(err, planner.ErrProviderQuota):
		return apiError(c, fiber.StatusTooManyRequests, "the plan service is busy, please try again later")
	case errors.Is(err, planner.ErrProviderFormat):
		return apiError(c, fiber.StatusBadGateway, "the plan service returned an unusable answer, please try again")
	case errors.Is(err, planner.ErrTransport):
		return apiError(c, fiber.StatusBadGateway, "the plan service could not be reached, please try again")
	default:
		handler.logger.Error("request failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
