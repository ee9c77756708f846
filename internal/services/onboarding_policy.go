package services

import (
	"fmt"
	"strings"

	"github.com/activelife/activelife/internal/models"
)

// ValidateOnboardingBasics checks the step-1 fields. medicalHistory and
// planName are optional free text.
func ValidateOnboardingBasics(input models.OnboardingData) error {
	fields := map[string]string{}
	collectBasicsViolations(input, fields)
	return newValidationError(fields)
}

// ValidateOnboardingInput checks the complete wizard payload. Applied again
// immediately before the data is sent to the generation service.
func ValidateOnboardingInput(input models.OnboardingData) error {
	fields := map[string]string{}
	collectBasicsViolations(input, fields)
	if !IsDetailedText(input.FitnessGoals) {
		fields["fitnessGoals"] = fmt.Sprintf("describe your goals in at least %d characters", models.MinDetailedTextLength)
	}
	return newValidationError(fields)
}

func collectBasicsViolations(input models.OnboardingData, fields map[string]string) {
	if input.Age < models.OnboardingAgeMin || input.Age > models.OnboardingAgeMax {
		fields["age"] = fmt.Sprintf("age must be between %d and %d", models.OnboardingAgeMin, models.OnboardingAgeMax)
	}
	if !isValidSex(input.Sex) {
		fields["sex"] = "sex must be male, female or other"
	}
	if input.Height < models.OnboardingHeightMin || input.Height > models.OnboardingHeightMax {
		fields["height"] = fmt.Sprintf("height must be between %d and %d cm", models.OnboardingHeightMin, models.OnboardingHeightMax)
	}
	if input.Weight < models.OnboardingWeightMin || input.Weight > models.OnboardingWeightMax {
		fields["weight"] = fmt.Sprintf("weight must be between %d and %d kg", models.OnboardingWeightMin, models.OnboardingWeightMax)
	}
}

// ValidateFeedbackText gates plan adjustment: feedback shorter than the
// detailed-text minimum is rejected before any provider call.
func ValidateFeedbackText(feedback string) error {
	if !IsDetailedText(feedback) {
		return newValidationError(map[string]string{
			"userFeedback": fmt.Sprintf("describe your feedback in at least %d characters", models.MinDetailedTextLength),
		})
	}
	return nil
}

// IsDetailedText reports whether free text is long enough to be considered
// detailed enough for the generation service.
func IsDetailedText(value string) bool {
	return len(strings.TrimSpace(value)) >= models.MinDetailedTextLength
}

func isValidSex(sex string) bool {
	switch sex {
	case models.SexMale, models.SexFemale, models.SexOther:
		return true
	default:
		return false
	}
}
