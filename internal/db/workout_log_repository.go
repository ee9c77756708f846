package db

import (
	"time"

	"github.com/activelife/activelife/internal/models"
	"gorm.io/gorm"
)

type WorkoutLogRepository struct {
	database *gorm.DB
}

func NewWorkoutLogRepository(database *gorm.DB) *WorkoutLogRepository {
	return &WorkoutLogRepository{database: database}
}

func (repo *WorkoutLogRepository) Create(log *models.WorkoutLog) error {
	return repo.database.Create(log).Error
}

func (repo *WorkoutLogRepository) ListByPlan(userID uint, planID string) ([]models.WorkoutLog, error) {
	logs := make([]models.WorkoutLog, 0)
	if err := repo.database.
		Where("user_id = ? AND plan_id = ?", userID, planID).
		Order("date DESC, id DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *WorkoutLogRepository) ListSince(userID uint, since time.Time) ([]models.WorkoutLog, error) {
	logs := make([]models.WorkoutLog, 0)
	if err := repo.database.
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *WorkoutLogRepository) Delete(userID uint, logID uint) error {
	return repo.database.
		Where("id = ? AND user_id = ?", logID, userID).
		Delete(&models.WorkoutLog{}).Error
}
