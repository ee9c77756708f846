package models

import "time"

const (
	SexMale   = "male"
	SexFemale = "female"
	SexOther  = "other"
)

const (
	OnboardingAgeMin    = 16
	OnboardingAgeMax    = 100
	OnboardingHeightMin = 100
	OnboardingHeightMax = 250
	OnboardingWeightMin = 30
	OnboardingWeightMax = 300

	MinDetailedTextLength = 10
)

// OnboardingData is the snapshot collected by the wizard and embedded into
// every stored plan.
type OnboardingData struct {
	PlanName       string  `json:"planName,omitempty"`
	Age            int     `json:"age"`
	Sex            string  `json:"sex"`
	Height         float64 `json:"height"`
	Weight         float64 `json:"weight"`
	MedicalHistory string  `json:"medicalHistory,omitempty"`
	MedicalPDF     string  `json:"medicalPdf,omitempty"`
	FitnessGoals   string  `json:"fitnessGoals"`
}

// ExtractedHighlights is derived once from an uploaded medical document and
// used only to pre-fill wizard fields the user has not touched.
type ExtractedHighlights struct {
	Highlights string   `json:"highlights"`
	Age        *int     `json:"age,omitempty"`
	Sex        string   `json:"sex,omitempty"`
	Height     *float64 `json:"height,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
}

type RiskAssessment struct {
	RiskAssessment    string `json:"riskAssessment"`
	Contraindications string `json:"contraindications"`
}

const (
	FlowStateCollectingBasics  = "collecting_basics"
	FlowStateCollectingGoals   = "collecting_goals"
	FlowStateAnalyzingDocument = "analyzing_document"
	FlowStateSubmitting        = "submitting"
	FlowStateComplete          = "complete"
)

// OnboardingDraft persists the wizard between steps. Touched lists the
// fields the user entered explicitly; document extraction never overwrites
// a touched field.
type OnboardingDraft struct {
	ID        uint           `gorm:"primaryKey"`
	UserID    uint           `gorm:"uniqueIndex;not null"`
	State     string         `gorm:"not null;default:collecting_basics"`
	Data      OnboardingData `gorm:"serializer:json"`
	Touched   []string       `gorm:"serializer:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
