package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/activelife/activelife/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	planResult       models.PlanDocument
	planErr          error
	planCalls        int
	adjustResult     AdjustmentResult
	adjustErr        error
	adjustCalls      int
	highlightsResult models.ExtractedHighlights
	highlightsErr    error
	highlightsCalls  int
	riskResult       models.RiskAssessment
	riskErr          error
}

func (generator *stubGenerator) GeneratePlan(_ context.Context, _ models.OnboardingData, _ *models.RiskAssessment) (models.PlanDocument, error) {
	generator.planCalls++
	return generator.planResult, generator.planErr
}

func (generator *stubGenerator) AdjustPlan(_ context.Context, _ AdjustmentRequest) (AdjustmentResult, error) {
	generator.adjustCalls++
	return generator.adjustResult, generator.adjustErr
}

func (generator *stubGenerator) ExtractHighlights(_ context.Context, _ string) (models.ExtractedHighlights, error) {
	generator.highlightsCalls++
	return generator.highlightsResult, generator.highlightsErr
}

func (generator *stubGenerator) AssessRisk(_ context.Context, _ models.OnboardingData) (models.RiskAssessment, error) {
	return generator.riskResult, generator.riskErr
}

type memoryCache struct {
	entries map[string]models.ExtractedHighlights
	getErr  error
	putErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]models.ExtractedHighlights)}
}

func (cache *memoryCache) Get(_ uint, contentHash string) (models.ExtractedHighlights, bool, error) {
	if cache.getErr != nil {
		return models.ExtractedHighlights{}, false, cache.getErr
	}
	highlights, found := cache.entries[contentHash]
	return highlights, found, nil
}

func (cache *memoryCache) Put(_ uint, contentHash string, highlights models.ExtractedHighlights) error {
	if cache.putErr != nil {
		return cache.putErr
	}
	cache.entries[contentHash] = highlights
	return nil
}

func validStructuredDocument() models.PlanDocument {
	return models.PlanDocument{
		Format: models.PlanFormatStructured,
		Days: []models.DailyExercise{
			{Day: "Monday", Focus: "Push", Exercises: []models.Exercise{{Name: "Bench Press", Sets: "4", Reps: "8"}}},
			{Day: "Wednesday", Focus: "Pull"},
		},
		Diet:         &models.DietPlan{Summary: "Balanced, protein forward"},
		Macros:       &models.Macros{Carbs: 40, Protein: 35, Fat: 25},
		SafetyAdvice: "Stay hydrated",
	}
}

func TestRequestNewPlan_ReturnsValidatedDocument(t *testing.T) {
	generator := &stubGenerator{planResult: validStructuredDocument()}
	orchestrator := NewOrchestrator(generator, nil, nil)

	document, err := orchestrator.RequestNewPlan(context.Background(), models.OnboardingData{}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PlanFormatStructured, document.Format)
	assert.Equal(t, 1, generator.planCalls)
}

func TestRequestNewPlan_RejectsMalformedProviderOutput(t *testing.T) {
	malformed := validStructuredDocument()
	malformed.SafetyAdvice = "   "
	generator := &stubGenerator{planResult: malformed}
	orchestrator := NewOrchestrator(generator, nil, nil)

	_, err := orchestrator.RequestNewPlan(context.Background(), models.OnboardingData{}, nil)
	assert.ErrorIs(t, err, ErrProviderFormat)
}

func TestRequestNewPlan_PassesQuotaErrorThrough(t *testing.T) {
	generator := &stubGenerator{planErr: ErrProviderQuota}
	orchestrator := NewOrchestrator(generator, nil, nil)

	_, err := orchestrator.RequestNewPlan(context.Background(), models.OnboardingData{}, nil)
	assert.ErrorIs(t, err, ErrProviderQuota)
	assert.Equal(t, 1, generator.planCalls, "failed requests are never retried")
}

func TestRequestAdjustedPlan_RefusesLegacyPlansWithoutCallingProvider(t *testing.T) {
	generator := &stubGenerator{}
	orchestrator := NewOrchestrator(generator, nil, nil)

	legacy := models.PlanDocument{
		Format:       models.PlanFormatLegacy,
		ExerciseText: "Do squats",
		DietText:     "Eat greens",
		SafetyAdvice: "Careful",
	}
	_, err := orchestrator.RequestAdjustedPlan(context.Background(), legacy, "more cardio please", "", "get fit")
	assert.ErrorIs(t, err, ErrPlanFormatIncompatible)
	assert.Zero(t, generator.adjustCalls)
}

func TestRequestAdjustedPlan_ValidatesReplacementDocument(t *testing.T) {
	broken := validStructuredDocument()
	broken.Diet = nil
	generator := &stubGenerator{adjustResult: AdjustmentResult{Plan: broken, Explanation: "tweaked"}}
	orchestrator := NewOrchestrator(generator, nil, nil)

	_, err := orchestrator.RequestAdjustedPlan(context.Background(), validStructuredDocument(), "more cardio please", "", "get fit")
	assert.ErrorIs(t, err, ErrProviderFormat)
}

func TestRequestRiskAssessment_RejectsEmptySummary(t *testing.T) {
	generator := &stubGenerator{riskResult: models.RiskAssessment{RiskAssessment: "  "}}
	orchestrator := NewOrchestrator(generator, nil, nil)

	_, err := orchestrator.RequestRiskAssessment(context.Background(), models.OnboardingData{})
	assert.ErrorIs(t, err, ErrProviderFormat)
}

func TestRequestHighlights_CachesPerDocumentContent(t *testing.T) {
	generator := &stubGenerator{highlightsResult: models.ExtractedHighlights{Highlights: "BP slightly elevated"}}
	cache := newMemoryCache()
	orchestrator := NewOrchestrator(generator, cache, nil)

	uri := "data:application/pdf;base64,AAAA"
	first, err := orchestrator.RequestHighlights(context.Background(), 1, uri)
	require.NoError(t, err)

	second, err := orchestrator.RequestHighlights(context.Background(), 1, uri)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, generator.highlightsCalls, "unchanged document must not trigger a second extraction")

	_, err = orchestrator.RequestHighlights(context.Background(), 1, "data:application/pdf;base64,BBBB")
	require.NoError(t, err)
	assert.Equal(t, 2, generator.highlightsCalls, "changed content is a fresh extraction")
}

func TestRequestHighlights_CacheFailuresAreNotFatal(t *testing.T) {
	generator := &stubGenerator{highlightsResult: models.ExtractedHighlights{Highlights: "ok"}}
	cache := newMemoryCache()
	cache.getErr = errors.New("cache down")
	cache.putErr = errors.New("cache down")
	orchestrator := NewOrchestrator(generator, cache, nil)

	highlights, err := orchestrator.RequestHighlights(context.Background(), 1, "data:application/pdf;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "ok", highlights.Highlights)
}

func TestValidatePlanDocument_CoversBothFormats(t *testing.T) {
	assert.NoError(t, ValidatePlanDocument(validStructuredDocument()))

	legacy := models.PlanDocument{
		Format:       models.PlanFormatLegacy,
		ExerciseText: "Do squats",
		DietText:     "Eat greens",
		SafetyAdvice: "Careful",
	}
	assert.NoError(t, ValidatePlanDocument(legacy))

	unknown := validStructuredDocument()
	unknown.Format = "v3"
	assert.ErrorIs(t, ValidatePlanDocument(unknown), ErrProviderFormat)

	missingDiet := validStructuredDocument()
	missingDiet.Diet = nil
	assert.ErrorIs(t, ValidatePlanDocument(missingDiet), ErrProviderFormat)
}
