package planner

import (
	"testing"

	"github.com/activelife/activelife/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPromptCatalog_ContainsAllPrompts(t *testing.T) {
	catalog, err := loadPromptCatalog()
	require.NoError(t, err)

	for _, name := range []string{"create_plan", "adjust_plan", "extract_highlights", "risk_assessment"} {
		assert.NotEmpty(t, catalog.model(name), "prompt %s has no model", name)
	}
}

func TestPromptCatalog_RendersWithRealData(t *testing.T) {
	catalog, err := loadPromptCatalog()
	require.NoError(t, err)

	created, err := catalog.render("create_plan", createPlanPromptData{
		OnboardingData: models.OnboardingData{
			Age:          30,
			Sex:          models.SexOther,
			Height:       175,
			Weight:       70,
			FitnessGoals: "Train for a triathlon",
		},
		RiskAssessment: "low",
		HasDocument:    true,
	})
	require.NoError(t, err)
	assert.Contains(t, created, "Train for a triathlon")

	adjusted, err := catalog.render("adjust_plan", adjustPlanPromptData{
		CurrentPlanJSON: `{"format":"structured"}`,
		Carbs:           40,
		Protein:         35,
		Fat:             25,
		UserFeedback:    "too much cardio",
		FitnessGoals:    "Train for a triathlon",
	})
	require.NoError(t, err)
	assert.Contains(t, adjusted, "too much cardio")

	_, err = catalog.render("missing_prompt", nil)
	assert.Error(t, err)
}
