package services

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/activelife/activelife/internal/models"
)

type WorkoutLogRepository interface {
	Create(log *models.WorkoutLog) error
	ListByPlan(userID uint, planID string) ([]models.WorkoutLog, error)
	ListSince(userID uint, since time.Time) ([]models.WorkoutLog, error)
	Delete(userID uint, logID uint) error
}

type LogPlanLookup interface {
	FindByID(userID uint, planID string) (models.PlanRecord, error)
}

type WorkoutLogInput struct {
	PlanID          string `json:"planId"`
	Date            string `json:"date"`
	WorkoutFocus    string `json:"workoutFocus"`
	DurationMinutes int    `json:"durationMinutes"`
	Notes           string `json:"notes"`
}

// WeeklySummary aggregates the last seven days of logged workouts.
type WeeklySummary struct {
	Workouts     int `json:"workouts"`
	TotalMinutes int `json:"totalMinutes"`
}

type WorkoutLogService struct {
	logs  WorkoutLogRepository
	plans LogPlanLookup
}

func NewWorkoutLogService(logs WorkoutLogRepository, plans LogPlanLookup) *WorkoutLogService {
	return &WorkoutLogService{logs: logs, plans: plans}
}

// LogWorkout records a completed workout against a plan. The focus must be
// one of the plan's training days when the plan declares them; legacy text
// plans accept any focus.
func (service *WorkoutLogService) LogWorkout(userID uint, input WorkoutLogInput) (models.WorkoutLog, error) {
	fields := map[string]string{}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(input.Date))
	if err != nil {
		fields["date"] = "date must be in YYYY-MM-DD format"
	}
	focus := strings.TrimSpace(input.WorkoutFocus)
	if focus == "" {
		fields["workoutFocus"] = "workout focus is required"
	}
	if input.DurationMinutes <= 0 {
		fields["durationMinutes"] = "duration must be a positive number of minutes"
	}

	record, planErr := service.plans.FindByID(userID, input.PlanID)
	if planErr != nil {
		return models.WorkoutLog{}, planErr
	}
	if focus != "" {
		if allowed := record.Plan.FocusValues(); len(allowed) > 0 && !slices.Contains(allowed, focus) {
			fields["workoutFocus"] = fmt.Sprintf("focus must be one of: %s", strings.Join(allowed, ", "))
		}
	}

	if err := newValidationError(fields); err != nil {
		return models.WorkoutLog{}, err
	}

	log := models.WorkoutLog{
		UserID:          userID,
		PlanID:          input.PlanID,
		Date:            date,
		WorkoutFocus:    focus,
		DurationMinutes: input.DurationMinutes,
		Notes:           strings.TrimSpace(input.Notes),
	}
	if err := service.logs.Create(&log); err != nil {
		return models.WorkoutLog{}, err
	}
	return log, nil
}

func (service *WorkoutLogService) ListByPlan(userID uint, planID string) ([]models.WorkoutLog, error) {
	return service.logs.ListByPlan(userID, planID)
}

func (service *WorkoutLogService) DeleteLog(userID uint, logID uint) error {
	return service.logs.Delete(userID, logID)
}

func (service *WorkoutLogService) WeekSummary(userID uint) (WeeklySummary, error) {
	since := time.Now().AddDate(0, 0, -7)
	logs, err := service.logs.ListSince(userID, since)
	if err != nil {
		return WeeklySummary{}, err
	}

	summary := WeeklySummary{}
	for _, log := range logs {
		summary.Workouts++
		summary.TotalMinutes += log.DurationMinutes
	}
	return summary, nil
}
