package db

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/activelife/activelife/internal/models"
	"gorm.io/gorm"
)

// ErrStateCorrupted marks stored state that fails to decode or carries an
// unknown envelope version. Callers redirect to onboarding instead of
// crashing.
var ErrStateCorrupted = errors.New("stored state is corrupted")

var ErrPlanNotFound = errors.New("plan not found")

// legacyPlanPayload is the version-1 envelope body: string-based plan
// fields with no format discriminant.
type legacyPlanPayload struct {
	ExercisePlan string         `json:"exercisePlan"`
	DietPlan     string         `json:"dietPlan"`
	Macros       *models.Macros `json:"macros,omitempty"`
	SafetyAdvice string         `json:"safetyAdvice"`
}

type PlanRepository struct {
	database *gorm.DB
}

func NewPlanRepository(database *gorm.DB) *PlanRepository {
	return &PlanRepository{database: database}
}

func (repo *PlanRepository) Create(userID uint, record *models.PlanRecord) error {
	planJSON, err := json.Marshal(record.Plan)
	if err != nil {
		return fmt.Errorf("encode plan document: %w", err)
	}
	onboardingJSON, err := json.Marshal(record.Onboarding)
	if err != nil {
		return fmt.Errorf("encode onboarding snapshot: %w", err)
	}

	row := models.StoredPlan{
		ID:             record.ID,
		UserID:         userID,
		Name:           record.Name,
		SchemaVersion:  models.PlanSchemaVersion,
		Format:         record.Plan.Format,
		OnboardingJSON: string(onboardingJSON),
		PlanJSON:       string(planJSON),
		CreatedAt:      record.CreatedAt,
	}
	return repo.database.Create(&row).Error
}

// ReplacePlanDocument swaps the plan body of an existing row in place. The
// row id and created_at are preserved; only the document and its format
// discriminant change.
func (repo *PlanRepository) ReplacePlanDocument(userID uint, planID string, document models.PlanDocument) error {
	planJSON, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("encode plan document: %w", err)
	}

	result := repo.database.Model(&models.StoredPlan{}).
		Where("id = ? AND user_id = ?", planID, userID).
		Updates(map[string]any{
			"schema_version": models.PlanSchemaVersion,
			"format":         document.Format,
			"plan_json":      string(planJSON),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (repo *PlanRepository) FindByID(userID uint, planID string) (models.PlanRecord, error) {
	var row models.StoredPlan
	if err := repo.database.Where("id = ? AND user_id = ?", planID, userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PlanRecord{}, ErrPlanNotFound
		}
		return models.PlanRecord{}, err
	}
	return decodePlanRow(row)
}

func (repo *PlanRepository) ListByUser(userID uint) ([]models.PlanRecord, error) {
	rows := make([]models.StoredPlan, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]models.PlanRecord, 0, len(rows))
	for _, row := range rows {
		record, err := decodePlanRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Delete removes a plan by id. Deleting an id that is not present is a
// no-op. Workout logs referencing the plan are left in place.
func (repo *PlanRepository) Delete(userID uint, planID string) error {
	return repo.database.
		Where("id = ? AND user_id = ?", planID, userID).
		Delete(&models.StoredPlan{}).Error
}

func decodePlanRow(row models.StoredPlan) (models.PlanRecord, error) {
	record := models.PlanRecord{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}

	if row.OnboardingJSON != "" {
		if err := json.Unmarshal([]byte(row.OnboardingJSON), &record.Onboarding); err != nil {
			return models.PlanRecord{}, fmt.Errorf("%w: onboarding snapshot of plan %s: %v", ErrStateCorrupted, row.ID, err)
		}
	}

	switch row.SchemaVersion {
	case 1:
		payload := legacyPlanPayload{}
		if err := json.Unmarshal([]byte(row.PlanJSON), &payload); err != nil {
			return models.PlanRecord{}, fmt.Errorf("%w: legacy plan %s: %v", ErrStateCorrupted, row.ID, err)
		}
		record.Plan = models.PlanDocument{
			Format:       models.PlanFormatLegacy,
			ExerciseText: payload.ExercisePlan,
			DietText:     payload.DietPlan,
			Macros:       payload.Macros,
			SafetyAdvice: payload.SafetyAdvice,
		}
	case models.PlanSchemaVersion:
		if err := json.Unmarshal([]byte(row.PlanJSON), &record.Plan); err != nil {
			return models.PlanRecord{}, fmt.Errorf("%w: plan %s: %v", ErrStateCorrupted, row.ID, err)
		}
		if record.Plan.Format != models.PlanFormatLegacy && record.Plan.Format != models.PlanFormatStructured {
			return models.PlanRecord{}, fmt.Errorf("%w: plan %s has unknown format %q", ErrStateCorrupted, row.ID, record.Plan.Format)
		}
	default:
		return models.PlanRecord{}, fmt.Errorf("%w: plan %s has unknown schema version %d", ErrStateCorrupted, row.ID, row.SchemaVersion)
	}

	return record, nil
}
