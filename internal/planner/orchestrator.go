package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/activelife/activelife/internal/models"
	"go.uber.org/zap"
)

// HighlightsCache stores one extraction result per document content hash so
// an unchanged upload never triggers a second provider call.
type HighlightsCache interface {
	Get(userID uint, contentHash string) (models.ExtractedHighlights, bool, error)
	Put(userID uint, contentHash string, highlights models.ExtractedHighlights) error
}

// Orchestrator composes validated user data into provider requests and maps
// responses and failures into typed results. It never retries.
type Orchestrator struct {
	generator Generator
	cache     HighlightsCache
	logger    *zap.Logger
}

func NewOrchestrator(generator Generator, cache HighlightsCache, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{generator: generator, cache: cache, logger: logger}
}

// RequestNewPlan builds a provider request from onboarding fields and
// validates the returned document before handing it back.
func (orchestrator *Orchestrator) RequestNewPlan(ctx context.Context, input models.OnboardingData, risk *models.RiskAssessment) (models.PlanDocument, error) {
	document, err := orchestrator.generator.GeneratePlan(ctx, input, risk)
	if err != nil {
		return models.PlanDocument{}, err
	}
	if err := ValidatePlanDocument(document); err != nil {
		return models.PlanDocument{}, err
	}
	return document, nil
}

// RequestAdjustedPlan embeds the current plan so the provider can produce a
// delta. Legacy string-format plans cannot travel the structured adjustment
// path; that is a format-compatibility error, not a silent no-op.
func (orchestrator *Orchestrator) RequestAdjustedPlan(ctx context.Context, current models.PlanDocument, userFeedback string, performanceData string, fitnessGoals string) (AdjustmentResult, error) {
	if current.Format != models.PlanFormatStructured {
		return AdjustmentResult{}, ErrPlanFormatIncompatible
	}

	result, err := orchestrator.generator.AdjustPlan(ctx, AdjustmentRequest{
		Current:         current,
		UserFeedback:    userFeedback,
		PerformanceData: performanceData,
		FitnessGoals:    fitnessGoals,
	})
	if err != nil {
		return AdjustmentResult{}, err
	}
	if err := ValidatePlanDocument(result.Plan); err != nil {
		return AdjustmentResult{}, err
	}
	return result, nil
}

// RequestRiskAssessment derives the textual risk summary that is folded
// into the plan request when medical history is present.
func (orchestrator *Orchestrator) RequestRiskAssessment(ctx context.Context, input models.OnboardingData) (models.RiskAssessment, error) {
	assessment, err := orchestrator.generator.AssessRisk(ctx, input)
	if err != nil {
		return models.RiskAssessment{}, err
	}
	if strings.TrimSpace(assessment.RiskAssessment) == "" {
		return models.RiskAssessment{}, fmt.Errorf("%w: empty risk assessment", ErrProviderFormat)
	}
	return assessment, nil
}

// RequestHighlights extracts document highlights, consulting the cache
// first. Cache write failures are logged, not surfaced: the extraction
// itself succeeded.
func (orchestrator *Orchestrator) RequestHighlights(ctx context.Context, userID uint, documentDataURI string) (models.ExtractedHighlights, error) {
	contentHash := DocumentContentHash(documentDataURI)

	if orchestrator.cache != nil {
		cached, found, err := orchestrator.cache.Get(userID, contentHash)
		if err != nil {
			orchestrator.logger.Warn("highlights cache read failed", zap.Error(err))
		} else if found {
			return cached, nil
		}
	}

	highlights, err := orchestrator.generator.ExtractHighlights(ctx, documentDataURI)
	if err != nil {
		return models.ExtractedHighlights{}, err
	}

	if orchestrator.cache != nil {
		if err := orchestrator.cache.Put(userID, contentHash, highlights); err != nil {
			orchestrator.logger.Warn("highlights cache write failed", zap.Error(err))
		}
	}
	return highlights, nil
}

// ValidatePlanDocument checks a provider-produced document against the plan
// schema. A violation is a provider format error: the caller surfaces a
// retry suggestion and stores nothing.
func ValidatePlanDocument(document models.PlanDocument) error {
	if strings.TrimSpace(document.SafetyAdvice) == "" {
		return fmt.Errorf("%w: missing safetyAdvice", ErrProviderFormat)
	}

	switch document.Format {
	case models.PlanFormatLegacy:
		if strings.TrimSpace(document.ExerciseText) == "" {
			return fmt.Errorf("%w: legacy plan has no exercise text", ErrProviderFormat)
		}
		if strings.TrimSpace(document.DietText) == "" {
			return fmt.Errorf("%w: legacy plan has no diet text", ErrProviderFormat)
		}
	case models.PlanFormatStructured:
		if len(document.Days) == 0 {
			return fmt.Errorf("%w: structured plan has no days", ErrProviderFormat)
		}
		for index, day := range document.Days {
			if strings.TrimSpace(day.Day) == "" || strings.TrimSpace(day.Focus) == "" {
				return fmt.Errorf("%w: day %d is missing its name or focus", ErrProviderFormat, index)
			}
		}
		if document.Diet == nil || strings.TrimSpace(document.Diet.Summary) == "" {
			return fmt.Errorf("%w: structured plan has no diet summary", ErrProviderFormat)
		}
	default:
		return fmt.Errorf("%w: unknown plan format %q", ErrProviderFormat, document.Format)
	}

	return nil
}
