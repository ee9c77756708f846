package db

import (
	"errors"

	"github.com/activelife/activelife/internal/models"
	"gorm.io/gorm"
)

var ErrDraftNotFound = errors.New("onboarding draft not found")

type OnboardingDraftRepository struct {
	database *gorm.DB
}

func NewOnboardingDraftRepository(database *gorm.DB) *OnboardingDraftRepository {
	return &OnboardingDraftRepository{database: database}
}

func (repo *OnboardingDraftRepository) Load(userID uint) (models.OnboardingDraft, error) {
	var draft models.OnboardingDraft
	if err := repo.database.Where("user_id = ?", userID).First(&draft).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.OnboardingDraft{}, ErrDraftNotFound
		}
		return models.OnboardingDraft{}, err
	}
	return draft, nil
}

// Save upserts the single draft row a user may have.
func (repo *OnboardingDraftRepository) Save(draft *models.OnboardingDraft) error {
	var existing models.OnboardingDraft
	err := repo.database.Where("user_id = ?", draft.UserID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.database.Create(draft).Error
	}
	if err != nil {
		return err
	}

	draft.ID = existing.ID
	draft.CreatedAt = existing.CreatedAt
	return repo.database.Save(draft).Error
}

func (repo *OnboardingDraftRepository) Clear(userID uint) error {
	return repo.database.Where("user_id = ?", userID).Delete(&models.OnboardingDraft{}).Error
}
