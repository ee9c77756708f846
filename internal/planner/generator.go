package planner

import (
	"context"

	"github.com/activelife/activelife/internal/models"
)

// AdjustmentRequest embeds the current plan so the provider can produce a
// delta instead of a fresh plan.
type AdjustmentRequest struct {
	Current         models.PlanDocument
	UserFeedback    string
	PerformanceData string
	FitnessGoals    string
}

// AdjustmentResult carries the replacement plan plus the provider's
// explanation of what changed.
type AdjustmentResult struct {
	Plan        models.PlanDocument
	Explanation string
}

// Generator is the opaque generation service. Every method performs exactly
// one outbound call and never retries.
type Generator interface {
	GeneratePlan(ctx context.Context, input models.OnboardingData, risk *models.RiskAssessment) (models.PlanDocument, error)
	AdjustPlan(ctx context.Context, request AdjustmentRequest) (AdjustmentResult, error)
	ExtractHighlights(ctx context.Context, documentDataURI string) (models.ExtractedHighlights, error)
	AssessRisk(ctx context.Context, input models.OnboardingData) (models.RiskAssessment, error)
}
