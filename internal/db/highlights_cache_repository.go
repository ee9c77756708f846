package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/activelife/activelife/internal/models"
	"gorm.io/gorm"
)

type HighlightsCacheRepository struct {
	database *gorm.DB
}

func NewHighlightsCacheRepository(database *gorm.DB) *HighlightsCacheRepository {
	return &HighlightsCacheRepository{database: database}
}

func (repo *HighlightsCacheRepository) Get(userID uint, contentHash string) (models.ExtractedHighlights, bool, error) {
	var entry models.HighlightsCacheEntry
	err := repo.database.
		Where("user_id = ? AND content_hash = ?", userID, contentHash).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ExtractedHighlights{}, false, nil
	}
	if err != nil {
		return models.ExtractedHighlights{}, false, err
	}

	highlights := models.ExtractedHighlights{}
	if err := json.Unmarshal([]byte(entry.PayloadJSON), &highlights); err != nil {
		return models.ExtractedHighlights{}, false, fmt.Errorf("%w: highlights cache entry %d: %v", ErrStateCorrupted, entry.ID, err)
	}
	return highlights, true, nil
}

func (repo *HighlightsCacheRepository) Put(userID uint, contentHash string, highlights models.ExtractedHighlights) error {
	payload, err := json.Marshal(highlights)
	if err != nil {
		return fmt.Errorf("encode highlights: %w", err)
	}

	entry := models.HighlightsCacheEntry{
		UserID:      userID,
		ContentHash: contentHash,
		PayloadJSON: string(payload),
		CreatedAt:   time.Now(),
	}
	return repo.database.Create(&entry).Error
}
