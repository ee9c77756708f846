package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/activelife/activelife/internal/models"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiGenerator implements Generator on top of the Gemini API. All
// prompts request application/json responses constrained by an explicit
// response schema.
type GeminiGenerator struct {
	client  *genai.Client
	catalog *promptCatalog
	logger  *zap.Logger
}

func NewGeminiGenerator(ctx context.Context, apiKey string, logger *zap.Logger) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("generation service API key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	catalog, err := loadPromptCatalog()
	if err != nil {
		return nil, err
	}

	return &GeminiGenerator{client: client, catalog: catalog, logger: logger}, nil
}

type wirePlan struct {
	ExercisePlan []models.DailyExercise `json:"exercisePlan"`
	DietPlan     *models.DietPlan       `json:"dietPlan"`
	Macros       *models.Macros         `json:"macros"`
	SafetyAdvice string                 `json:"safetyAdvice"`
}

type wireAdjustment struct {
	AdjustedExercisePlan []models.DailyExercise `json:"adjustedExercisePlan"`
	AdjustedDietPlan     *models.DietPlan       `json:"adjustedDietPlan"`
	AdjustedMacros       *models.Macros         `json:"adjustedMacros"`
	SafetyAdvice         string                 `json:"safetyAdvice"`
	Explanation          string                 `json:"explanation"`
}

type createPlanPromptData struct {
	models.OnboardingData
	RiskAssessment    string
	Contraindications string
	HasDocument       bool
}

func (generator *GeminiGenerator) GeneratePlan(ctx context.Context, input models.OnboardingData, risk *models.RiskAssessment) (models.PlanDocument, error) {
	data := createPlanPromptData{
		OnboardingData: input,
		HasDocument:    input.MedicalPDF != "",
	}
	if risk != nil {
		data.RiskAssessment = risk.RiskAssessment
		data.Contraindications = risk.Contraindications
	}

	prompt, err := generator.catalog.render("create_plan", data)
	if err != nil {
		return models.PlanDocument{}, err
	}

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if input.MedicalPDF != "" {
		mimeType, payload, err := ParseDataURI(input.MedicalPDF)
		if err != nil {
			return models.PlanDocument{}, err
		}
		parts = append(parts, genai.NewPartFromBytes(payload, mimeType))
	}

	generator.logger.Info("requesting plan generation",
		zap.String("model", generator.catalog.model("create_plan")),
		zap.Bool("has_document", input.MedicalPDF != ""))

	raw, err := generator.generateJSON(ctx, "create_plan", parts, structuredPlanSchema)
	if err != nil {
		return models.PlanDocument{}, err
	}

	plan := wirePlan{}
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return models.PlanDocument{}, fmt.Errorf("%w: %v", ErrProviderFormat, err)
	}

	return models.PlanDocument{
		Format:       models.PlanFormatStructured,
		Days:         plan.ExercisePlan,
		Diet:         plan.DietPlan,
		Macros:       plan.Macros,
		SafetyAdvice: plan.SafetyAdvice,
	}, nil
}

type adjustPlanPromptData struct {
	CurrentPlanJSON string
	Carbs           float64
	Protein         float64
	Fat             float64
	UserFeedback    string
	PerformanceData string
	FitnessGoals    string
}

func (generator *GeminiGenerator) AdjustPlan(ctx context.Context, request AdjustmentRequest) (AdjustmentResult, error) {
	currentJSON, err := json.Marshal(request.Current)
	if err != nil {
		return AdjustmentResult{}, fmt.Errorf("encode current plan: %w", err)
	}

	data := adjustPlanPromptData{
		CurrentPlanJSON: string(currentJSON),
		UserFeedback:    request.UserFeedback,
		PerformanceData: request.PerformanceData,
		FitnessGoals:    request.FitnessGoals,
	}
	if request.Current.Macros != nil {
		data.Carbs = request.Current.Macros.Carbs
		data.Protein = request.Current.Macros.Protein
		data.Fat = request.Current.Macros.Fat
	}

	prompt, err := generator.catalog.render("adjust_plan", data)
	if err != nil {
		return AdjustmentResult{}, err
	}

	generator.logger.Info("requesting plan adjustment",
		zap.String("model", generator.catalog.model("adjust_plan")))

	raw, err := generator.generateJSON(ctx, "adjust_plan", []*genai.Part{genai.NewPartFromText(prompt)}, adjustedPlanSchema)
	if err != nil {
		return AdjustmentResult{}, err
	}

	adjustment := wireAdjustment{}
	if err := json.Unmarshal([]byte(raw), &adjustment); err != nil {
		return AdjustmentResult{}, fmt.Errorf("%w: %v", ErrProviderFormat, err)
	}

	safetyAdvice := adjustment.SafetyAdvice
	if safetyAdvice == "" {
		safetyAdvice = request.Current.SafetyAdvice
	}

	return AdjustmentResult{
		Plan: models.PlanDocument{
			Format:       models.PlanFormatStructured,
			Days:         adjustment.AdjustedExercisePlan,
			Diet:         adjustment.AdjustedDietPlan,
			Macros:       adjustment.AdjustedMacros,
			SafetyAdvice: safetyAdvice,
		},
		Explanation: adjustment.Explanation,
	}, nil
}

func (generator *GeminiGenerator) ExtractHighlights(ctx context.Context, documentDataURI string) (models.ExtractedHighlights, error) {
	mimeType, payload, err := ParseDataURI(documentDataURI)
	if err != nil {
		return models.ExtractedHighlights{}, err
	}

	prompt, err := generator.catalog.render("extract_highlights", nil)
	if err != nil {
		return models.ExtractedHighlights{}, err
	}

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(payload, mimeType),
	}

	generator.logger.Info("requesting document highlights",
		zap.String("model", generator.catalog.model("extract_highlights")),
		zap.Int("document_bytes", len(payload)))

	raw, err := generator.generateJSON(ctx, "extract_highlights", parts, highlightsSchema)
	if err != nil {
		return models.ExtractedHighlights{}, err
	}

	highlights := models.ExtractedHighlights{}
	if err := json.Unmarshal([]byte(raw), &highlights); err != nil {
		return models.ExtractedHighlights{}, fmt.Errorf("%w: %v", ErrProviderFormat, err)
	}
	if strings.TrimSpace(highlights.Highlights) == "" {
		return models.ExtractedHighlights{}, fmt.Errorf("%w: empty highlights", ErrProviderFormat)
	}
	return highlights, nil
}

func (generator *GeminiGenerator) AssessRisk(ctx context.Context, input models.OnboardingData) (models.RiskAssessment, error) {
	prompt, err := generator.catalog.render("risk_assessment", input)
	if err != nil {
		return models.RiskAssessment{}, err
	}

	generator.logger.Info("requesting risk assessment",
		zap.String("model", generator.catalog.model("risk_assessment")))

	raw, err := generator.generateJSON(ctx, "risk_assessment", []*genai.Part{genai.NewPartFromText(prompt)}, riskAssessmentSchema)
	if err != nil {
		return models.RiskAssessment{}, err
	}

	assessment := models.RiskAssessment{}
	if err := json.Unmarshal([]byte(raw), &assessment); err != nil {
		return models.RiskAssessment{}, fmt.Errorf("%w: %v", ErrProviderFormat, err)
	}
	return assessment, nil
}

// Close is a no-op; the genai client holds no resources needing release.
func (generator *GeminiGenerator) Close() error {
	return nil
}

func (generator *GeminiGenerator) generateJSON(ctx context.Context, promptName string, parts []*genai.Part, schema *genai.Schema) (string, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	response, err := generator.client.Models.GenerateContent(ctx,
		generator.catalog.model(promptName),
		contents,
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	)
	if err != nil {
		return "", mapProviderError(err)
	}

	text := strings.TrimSpace(response.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrProviderFormat)
	}
	return text, nil
}

func mapProviderError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", ErrProviderQuota, apiErr.Message)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}
