package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/activelife/activelife/internal/models"
	"github.com/activelife/activelife/internal/planner"
	"go.uber.org/zap"
)

// PerformanceWindowDays bounds how far back workout logs are summarized
// when a plan adjustment is requested.
const PerformanceWindowDays = 14

type PlanRepository interface {
	FindByID(userID uint, planID string) (models.PlanRecord, error)
	ListByUser(userID uint) ([]models.PlanRecord, error)
	Delete(userID uint, planID string) error
	ReplacePlanDocument(userID uint, planID string, document models.PlanDocument) error
}

type PlanLogRepository interface {
	ListByPlan(userID uint, planID string) ([]models.WorkoutLog, error)
	ListSince(userID uint, since time.Time) ([]models.WorkoutLog, error)
}

// PlanAdjuster is the orchestrator surface plan adjustment needs.
type PlanAdjuster interface {
	RequestAdjustedPlan(ctx context.Context, current models.PlanDocument, userFeedback string, performanceData string, fitnessGoals string) (planner.AdjustmentResult, error)
}

type PlanService struct {
	plans    PlanRepository
	logs     PlanLogRepository
	adjuster PlanAdjuster
	logger   *zap.Logger
}

func NewPlanService(plans PlanRepository, logs PlanLogRepository, adjuster PlanAdjuster, logger *zap.Logger) *PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{plans: plans, logs: logs, adjuster: adjuster, logger: logger}
}

func (service *PlanService) ListPlans(userID uint) ([]models.PlanRecord, error) {
	return service.plans.ListByUser(userID)
}

func (service *PlanService) GetPlan(userID uint, planID string) (models.PlanRecord, error) {
	return service.plans.FindByID(userID, planID)
}

// DeletePlan removes a plan. Deleting an already-deleted plan succeeds.
func (service *PlanService) DeletePlan(userID uint, planID string) error {
	return service.plans.Delete(userID, planID)
}

// AdjustPlan validates the feedback, summarizes recent workout logs into
// performance context and replaces the stored document in place. The plan
// keeps its id, name and creation time.
func (service *PlanService) AdjustPlan(ctx context.Context, userID uint, planID string, userFeedback string) (models.PlanRecord, string, error) {
	if err := ValidateFeedbackText(userFeedback); err != nil {
		return models.PlanRecord{}, "", err
	}

	record, err := service.plans.FindByID(userID, planID)
	if err != nil {
		return models.PlanRecord{}, "", err
	}

	performanceData := service.performanceSummary(userID, planID)
	result, err := service.adjuster.RequestAdjustedPlan(ctx, record.Plan, strings.TrimSpace(userFeedback), performanceData, record.Onboarding.FitnessGoals)
	if err != nil {
		return models.PlanRecord{}, "", err
	}

	if err := service.plans.ReplacePlanDocument(userID, planID, result.Plan); err != nil {
		return models.PlanRecord{}, "", err
	}

	record.Plan = result.Plan
	return record, result.Explanation, nil
}

// performanceSummary renders recent logs for this plan as prompt context.
// Log retrieval failures degrade to an empty summary; adjustment still runs
// on feedback alone.
func (service *PlanService) performanceSummary(userID uint, planID string) string {
	logs, err := service.logs.ListByPlan(userID, planID)
	if err != nil {
		service.logger.Warn("workout log lookup failed", zap.Error(err))
		return ""
	}

	cutoff := time.Now().AddDate(0, 0, -PerformanceWindowDays)
	lines := make([]string, 0, len(logs))
	for _, log := range logs {
		if log.Date.Before(cutoff) {
			continue
		}
		line := fmt.Sprintf("%s: %s for %d minutes", log.Date.Format("2006-01-02"), log.WorkoutFocus, log.DurationMinutes)
		if strings.TrimSpace(log.Notes) != "" {
			line += " (" + strings.TrimSpace(log.Notes) + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
