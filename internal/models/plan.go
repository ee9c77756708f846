package models

import "time"

const (
	PlanFormatLegacy     = "legacy"
	PlanFormatStructured = "structured"
)

// PlanSchemaVersion is the current version of the persisted plan envelope.
// Version 1 carried the legacy string-based plan; version 2 carries the
// tagged PlanDocument.
const PlanSchemaVersion = 2

type Exercise struct {
	Name string `json:"name"`
	Sets string `json:"sets"`
	Reps string `json:"reps"`
}

type DailyExercise struct {
	Day       string     `json:"day"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

type DietPlan struct {
	Summary   string   `json:"summary"`
	Breakfast []string `json:"breakfast"`
	Lunch     []string `json:"lunch"`
	Dinner    []string `json:"dinner"`
	Snacks    []string `json:"snacks"`
}

// Macros are percentages of daily calories. They are rendered exactly as
// generated; the presentation layer never re-normalizes them.
type Macros struct {
	Carbs   float64 `json:"carbs"`
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
}

// PlanDocument is a tagged union. Format decides which fields carry the
// plan: legacy uses ExerciseText/DietText, structured uses Days/Diet.
// Consumers must branch on Format and never assume the structured shape.
type PlanDocument struct {
	Format       string          `json:"format"`
	ExerciseText string          `json:"exerciseText,omitempty"`
	DietText     string          `json:"dietText,omitempty"`
	Days         []DailyExercise `json:"days,omitempty"`
	Diet         *DietPlan       `json:"diet,omitempty"`
	Macros       *Macros         `json:"macros,omitempty"`
	SafetyAdvice string          `json:"safetyAdvice"`
}

// FocusValues returns the distinct workout focus values a structured plan
// declares, in plan order. Legacy plans declare none.
func (document PlanDocument) FocusValues() []string {
	if document.Format != PlanFormatStructured {
		return nil
	}
	seen := make(map[string]bool, len(document.Days))
	values := make([]string, 0, len(document.Days))
	for _, day := range document.Days {
		if day.Focus == "" || seen[day.Focus] {
			continue
		}
		seen[day.Focus] = true
		values = append(values, day.Focus)
	}
	return values
}

// PlanRecord is the decoded form of a stored plan: the document plus its
// originating onboarding snapshot and metadata.
type PlanRecord struct {
	ID         string
	Name       string
	CreatedAt  time.Time
	Onboarding OnboardingData
	Plan       PlanDocument
}

// StoredPlan is the persisted row. PlanJSON and OnboardingJSON are managed
// by the plan repository, which wraps and unwraps the versioned envelope.
type StoredPlan struct {
	ID             string `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	SchemaVersion  int    `gorm:"not null"`
	Format         string `gorm:"not null"`
	OnboardingJSON string `gorm:"not null;default:'{}'"`
	PlanJSON       string `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
